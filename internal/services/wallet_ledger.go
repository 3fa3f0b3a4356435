package services

import (
	"context"

	"github.com/shopspring/decimal"

	apperrors "gemtrade/internal/errors"
	"gemtrade/internal/models"
	"gemtrade/internal/store"
)

// Gem rules: one gem per trade, plus a one-off bonus when the trade count
// lands exactly on a milestone.
const gemsPerTrade int64 = 1

var milestoneBonuses = map[int64]int64{
	5:  5,
	10: 10,
}

// milestoneBonus returns the bonus for reaching tradeCount, or 0.
func milestoneBonus(tradeCount int64) int64 {
	return milestoneBonuses[tradeCount]
}

// applyTrade returns the counters after one more trade and the gems it earned.
func applyTrade(tradeCount, gemCount int64) (newTradeCount, newGemCount, awarded int64) {
	newTradeCount = tradeCount + 1
	awarded = gemsPerTrade + milestoneBonus(newTradeCount)
	return newTradeCount, gemCount + awarded, awarded
}

type walletLedger struct {
	store store.Store
}

// NewWalletLedger creates a WalletLedger.
func NewWalletLedger(s store.Store) WalletLedger {
	return &walletLedger{store: s}
}

func requirePositive(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Amount must be greater than zero")
	}
	return checkScale(amount, "Amount")
}

// Debit subtracts amount from the user's balance. The balance is checked
// before anything is written, so a rejected debit changes nothing.
func (w *walletLedger) Debit(ctx context.Context, userID string, amount decimal.Decimal) (*models.User, error) {
	if err := requirePositive(amount); err != nil {
		return nil, err
	}

	var user *models.User
	err := w.store.Transaction(ctx, func(ctx context.Context) error {
		u, err := w.store.GetUserForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		if u.Balance.LessThan(amount) {
			return apperrors.ErrInsufficientFunds
		}
		u.Balance = u.Balance.Sub(amount)
		if err := w.store.SaveUser(ctx, u); err != nil {
			return err
		}
		user = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Credit adds amount to the user's balance.
func (w *walletLedger) Credit(ctx context.Context, userID string, amount decimal.Decimal) (*models.User, error) {
	if err := requirePositive(amount); err != nil {
		return nil, err
	}

	var user *models.User
	err := w.store.Transaction(ctx, func(ctx context.Context) error {
		u, err := w.store.GetUserForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		u.Balance = u.Balance.Add(amount)
		if err := w.store.SaveUser(ctx, u); err != nil {
			return err
		}
		user = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (w *walletLedger) RecordTrade(ctx context.Context, userID string) (*models.User, int64, error) {
	var (
		user    *models.User
		awarded int64
	)
	err := w.store.Transaction(ctx, func(ctx context.Context) error {
		u, err := w.store.GetUserForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		u.TradeCount, u.GemCount, awarded = applyTrade(u.TradeCount, u.GemCount)
		if err := w.store.SaveUser(ctx, u); err != nil {
			return err
		}
		user = u
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return user, awarded, nil
}
