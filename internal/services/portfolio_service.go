package services

import (
	"context"
	"errors"
	"math"

	"github.com/shopspring/decimal"

	apperrors "gemtrade/internal/errors"
	"gemtrade/internal/models"
	"gemtrade/internal/store"
)

// portfolioService handles holdings and cost-basis accounting.
type portfolioService struct {
	store store.Store
}

// NewPortfolioService creates a new PortfolioServicer.
func NewPortfolioService(s store.Store) PortfolioServicer {
	return &portfolioService{store: s}
}

// weightedAvgCost returns the average cost after adding qty units at price
// to a position of heldQty units at avgCost.
func weightedAvgCost(heldQty int64, avgCost decimal.Decimal, qty int64, price decimal.Decimal) decimal.Decimal {
	total := decimal.NewFromInt(heldQty).Add(decimal.NewFromInt(qty))
	if total.IsZero() {
		return decimal.Zero
	}
	held := avgCost.Mul(decimal.NewFromInt(heldQty))
	added := price.Mul(decimal.NewFromInt(qty))
	return held.Add(added).Div(total).Round(moneyScale)
}

// CreatePortfolio creates the user's single portfolio.
func (s *portfolioService) CreatePortfolio(ctx context.Context, userID string) (*models.Portfolio, error) {
	if _, err := s.store.GetUser(ctx, userID); err != nil {
		return nil, err
	}

	portfolio := &models.Portfolio{UserID: userID}
	if err := s.store.CreatePortfolio(ctx, portfolio); err != nil {
		return nil, err
	}
	portfolio.Holdings = []models.Holding{}
	return portfolio, nil
}

// GetPortfolio returns the user's portfolio with its holdings.
func (s *portfolioService) GetPortfolio(ctx context.Context, userID string) (*models.Portfolio, error) {
	portfolio, err := s.store.GetPortfolioByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	holdings, err := s.store.ListHoldings(ctx, portfolio.ID)
	if err != nil {
		return nil, err
	}
	portfolio.Holdings = holdings
	return portfolio, nil
}

// Buy adds quantity units at price to the user's holding of assetID,
// creating the holding if needed.
func (s *portfolioService) Buy(ctx context.Context, userID, assetID string, quantity int64, price decimal.Decimal) (*models.Holding, error) {
	if quantity <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Quantity must be greater than zero")
	}
	if price.IsNegative() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Price cannot be negative")
	}
	if err := checkScale(price, "Price"); err != nil {
		return nil, err
	}

	var holding *models.Holding
	err := s.store.Transaction(ctx, func(ctx context.Context) error {
		portfolio, err := s.store.GetPortfolioByUser(ctx, userID)
		if err != nil {
			return err
		}
		asset, err := s.store.GetAsset(ctx, assetID)
		if err != nil {
			return err
		}

		h, err := s.store.GetHoldingForUpdate(ctx, portfolio.ID, assetID)
		switch {
		case errors.Is(err, apperrors.ErrHoldingNotFound):
			h = &models.Holding{
				PortfolioID: portfolio.ID,
				AssetID:     assetID,
				Quantity:    quantity,
				AvgCost:     price,
			}
		case err != nil:
			return err
		default:
			if h.Quantity > math.MaxInt64-quantity {
				return apperrors.WithMessage(apperrors.ErrInvalidInput, "Quantity would exceed the maximum holding size")
			}
			h.AvgCost = weightedAvgCost(h.Quantity, h.AvgCost, quantity, price)
			h.Quantity += quantity
		}

		if err := s.store.SaveHolding(ctx, h); err != nil {
			return err
		}
		h.Name = asset.Name
		holding = h
		return nil
	})
	if err != nil {
		return nil, err
	}
	return holding, nil
}

// Sell removes quantity units from the user's holding of assetID. The
// holding is deleted when it reaches zero; the returned holding then has
// Quantity 0. A partial sale keeps AvgCost unchanged.
func (s *portfolioService) Sell(ctx context.Context, userID, assetID string, quantity int64) (*models.Holding, error) {
	if quantity <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Quantity must be greater than zero")
	}

	var holding *models.Holding
	err := s.store.Transaction(ctx, func(ctx context.Context) error {
		portfolio, err := s.store.GetPortfolioByUser(ctx, userID)
		if err != nil {
			return err
		}
		h, err := s.store.GetHoldingForUpdate(ctx, portfolio.ID, assetID)
		if err != nil {
			return err
		}
		if quantity > h.Quantity {
			return apperrors.ErrInsufficientQuantity
		}

		h.Quantity -= quantity
		if h.Quantity == 0 {
			err = s.store.DeleteHolding(ctx, h)
		} else {
			err = s.store.SaveHolding(ctx, h)
		}
		if err != nil {
			return err
		}

		asset, err := s.store.GetAsset(ctx, assetID)
		if err != nil {
			return err
		}
		h.Name = asset.Name
		holding = h
		return nil
	})
	if err != nil {
		return nil, err
	}
	return holding, nil
}

// Value sums quantity × current price over the user's holdings. A user
// without a portfolio, or with an empty one, is worth zero.
func (s *portfolioService) Value(ctx context.Context, userID string) (decimal.Decimal, error) {
	if _, err := s.store.GetUser(ctx, userID); err != nil {
		return decimal.Zero, err
	}

	portfolio, err := s.store.GetPortfolioByUser(ctx, userID)
	if errors.Is(err, apperrors.ErrPortfolioNotFound) {
		return decimal.Zero, nil
	}
	if err != nil {
		return decimal.Zero, err
	}

	positions, err := s.store.ListPositions(ctx, portfolio.ID)
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, p := range positions {
		total = total.Add(p.Price.Mul(decimal.NewFromInt(p.Quantity)))
	}
	return total, nil
}

// ListHoldings returns the user's holdings with asset names joined.
func (s *portfolioService) ListHoldings(ctx context.Context, userID string) ([]models.Holding, error) {
	portfolio, err := s.store.GetPortfolioByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.store.ListHoldings(ctx, portfolio.ID)
}

// GetHolding returns a single holding with its asset name joined.
func (s *portfolioService) GetHolding(ctx context.Context, userID, assetID string) (*models.Holding, error) {
	portfolio, err := s.store.GetPortfolioByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.store.GetHolding(ctx, portfolio.ID, assetID)
}
