package services

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	apperrors "gemtrade/internal/errors"
	"gemtrade/internal/models"
	"gemtrade/internal/pagination"
	"gemtrade/internal/store"
)

// userService handles user-related business logic.
type userService struct {
	store  store.Store
	wallet WalletLedger
}

// NewUserService creates a new UserServicer.
func NewUserService(s store.Store, wallet WalletLedger) UserServicer {
	return &userService{store: s, wallet: wallet}
}

// CreateUser creates a user with an optional opening balance.
func (s *userService) CreateUser(ctx context.Context, username string, openingBalance decimal.Decimal) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Username is required")
	}
	if openingBalance.IsNegative() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Opening balance cannot be negative")
	}
	if err := checkScale(openingBalance, "Opening balance"); err != nil {
		return nil, err
	}

	user := &models.User{
		Username: username,
		Balance:  openingBalance,
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetUser retrieves a user by ID.
func (s *userService) GetUser(ctx context.Context, id string) (*models.User, error) {
	return s.store.GetUser(ctx, id)
}

// ListUsers returns a page of users.
func (s *userService) ListUsers(ctx context.Context, page pagination.PageRequest) (*pagination.PageResponse[models.User], error) {
	page.Defaults()

	users, total, err := s.store.ListUsers(ctx, page)
	if err != nil {
		return nil, err
	}
	result := pagination.NewPageResponse(users, page.Page, page.PageSize, total)
	return &result, nil
}

// Deposit credits cash to the user's wallet outside of any trade.
func (s *userService) Deposit(ctx context.Context, id string, amount decimal.Decimal) (*models.User, error) {
	return s.wallet.Credit(ctx, id, amount)
}

// Withdraw debits cash from the user's wallet outside of any trade.
func (s *userService) Withdraw(ctx context.Context, id string, amount decimal.Decimal) (*models.User, error) {
	return s.wallet.Debit(ctx, id, amount)
}
