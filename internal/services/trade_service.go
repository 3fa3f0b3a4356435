package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	apperrors "gemtrade/internal/errors"
	"gemtrade/internal/events"
	"gemtrade/internal/logger"
	"gemtrade/internal/metrics"
	"gemtrade/internal/models"
	"gemtrade/internal/pagination"
	"gemtrade/internal/store"
)

// TradeConfig bounds a single settlement.
type TradeConfig struct {
	// Timeout covers the whole settlement, retries included.
	Timeout time.Duration
	// MaxRetries is how many times a transient store failure is retried.
	MaxRetries int
	// RetryBackoff is the first retry delay; it doubles per attempt.
	RetryBackoff time.Duration
}

// DefaultTradeConfig returns the settlement defaults.
func DefaultTradeConfig() TradeConfig {
	return TradeConfig{
		Timeout:      5 * time.Second,
		MaxRetries:   2,
		RetryBackoff: 50 * time.Millisecond,
	}
}

const maxRetryBackoff = time.Second

// tradeService orchestrates wallet and portfolio changes as one unit.
type tradeService struct {
	store      store.Store
	wallet     WalletLedger
	portfolios PortfolioServicer
	publisher  events.Publisher
	cfg        TradeConfig
	now        func() time.Time
}

// NewTradeService creates a new TradeServicer. A nil publisher disables events.
func NewTradeService(s store.Store, wallet WalletLedger, portfolios PortfolioServicer, publisher events.Publisher, cfg TradeConfig) TradeServicer {
	if publisher == nil {
		publisher = events.LogPublisher{}
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTradeConfig().Timeout
	}
	return &tradeService{
		store:      s,
		wallet:     wallet,
		portfolios: portfolios,
		publisher:  publisher,
		cfg:        cfg,
		now:        time.Now,
	}
}

// ExecuteBuy settles a purchase. Funds are checked against the locked user
// row before any write, and the debit, holding change, counters and journal
// entry commit together.
func (s *tradeService) ExecuteBuy(ctx context.Context, userID, assetID string, quantity int64, price *decimal.Decimal) (*TradeResult, error) {
	if quantity <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Quantity must be greater than zero")
	}
	if price != nil {
		if price.IsNegative() {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Price cannot be negative")
		}
		if err := checkScale(*price, "Price"); err != nil {
			return nil, err
		}
	}

	return s.settle(ctx, models.TradeSideBuy, func(ctx context.Context) (*TradeResult, error) {
		user, err := s.store.GetUserForUpdate(ctx, userID)
		if err != nil {
			return nil, err
		}
		asset, err := s.store.GetAsset(ctx, assetID)
		if err != nil {
			return nil, err
		}

		unitPrice := asset.Price
		if price != nil {
			unitPrice = *price
		}
		totalCost := unitPrice.Mul(decimal.NewFromInt(quantity))
		if user.Balance.LessThan(totalCost) {
			return nil, apperrors.ErrInsufficientFunds
		}

		if totalCost.IsPositive() {
			if _, err := s.wallet.Debit(ctx, userID, totalCost); err != nil {
				return nil, err
			}
		}
		holding, err := s.portfolios.Buy(ctx, userID, assetID, quantity, unitPrice)
		if err != nil {
			return nil, err
		}
		return s.finish(ctx, userID, asset, models.TradeSideBuy, quantity, unitPrice, totalCost, holding)
	})
}

// ExecuteSell settles a sale at the asset's current price.
func (s *tradeService) ExecuteSell(ctx context.Context, userID, assetID string, quantity int64) (*TradeResult, error) {
	if quantity <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Quantity must be greater than zero")
	}

	return s.settle(ctx, models.TradeSideSell, func(ctx context.Context) (*TradeResult, error) {
		if _, err := s.store.GetUserForUpdate(ctx, userID); err != nil {
			return nil, err
		}
		holding, err := s.portfolios.Sell(ctx, userID, assetID, quantity)
		if err != nil {
			return nil, err
		}
		asset, err := s.store.GetAsset(ctx, assetID)
		if err != nil {
			return nil, err
		}

		proceeds := asset.Price.Mul(decimal.NewFromInt(quantity))
		if proceeds.IsPositive() {
			if _, err := s.wallet.Credit(ctx, userID, proceeds); err != nil {
				return nil, err
			}
		}
		return s.finish(ctx, userID, asset, models.TradeSideSell, quantity, asset.Price, proceeds, holding)
	})
}

// finish records the trade on the wallet and appends the journal entry.
func (s *tradeService) finish(
	ctx context.Context,
	userID string,
	asset *models.Asset,
	side models.TradeSide,
	quantity int64,
	price, total decimal.Decimal,
	holding *models.Holding,
) (*TradeResult, error) {
	user, awarded, err := s.wallet.RecordTrade(ctx, userID)
	if err != nil {
		return nil, err
	}

	trade := &models.Trade{
		UserID:      userID,
		AssetID:     asset.ID,
		AssetName:   asset.Name,
		Side:        side,
		Quantity:    quantity,
		Price:       price,
		Total:       total,
		GemsAwarded: awarded,
		TradeCount:  user.TradeCount,
		ExecutedAt:  s.now().UTC(),
	}
	if err := s.store.CreateTrade(ctx, trade); err != nil {
		return nil, err
	}
	return &TradeResult{Trade: trade, Holding: holding, User: user}, nil
}

// settle runs fn in a store transaction under the trade timeout, retrying
// transient failures. Events and metrics are emitted only after commit.
func (s *tradeService) settle(ctx context.Context, side models.TradeSide, fn func(ctx context.Context) (*TradeResult, error)) (*TradeResult, error) {
	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	var result *TradeResult
	err := s.withRetry(ctx, side, func() error {
		return s.store.Transaction(ctx, func(ctx context.Context) error {
			r, err := fn(ctx)
			if err != nil {
				return err
			}
			result = r
			return nil
		})
	})

	metrics.TradeLatency.WithLabelValues(string(side)).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.TradesTotal.WithLabelValues(string(side), apperrors.CodeOf(err)).Inc()
		return nil, err
	}
	metrics.TradesTotal.WithLabelValues(string(side), "ok").Inc()
	metrics.GemsAwarded.Add(float64(result.Trade.GemsAwarded))

	logger.Get().Infow("trade settled",
		"trade_id", result.Trade.ID,
		"user_id", result.Trade.UserID,
		"asset_id", result.Trade.AssetID,
		"side", side,
		"quantity", result.Trade.Quantity,
		"total", result.Trade.Total.String(),
		"gems_awarded", result.Trade.GemsAwarded,
	)
	s.publish(result)
	return result, nil
}

func (s *tradeService) withRetry(ctx context.Context, side models.TradeSide, fn func() error) error {
	delay := s.cfg.RetryBackoff
	for attempt := 0; ; attempt++ {
		err := fn()
		if err == nil || !apperrors.IsTransient(err) || attempt >= s.cfg.MaxRetries {
			return err
		}

		metrics.TradeRetries.WithLabelValues(string(side)).Inc()
		logger.Get().Warnw("transient store failure, retrying trade",
			"side", side,
			"attempt", attempt+1,
			"delay_ms", delay.Milliseconds(),
			"error", err,
		)
		if sleepErr := sleepWithContext(ctx, delay); sleepErr != nil {
			return err
		}
		if delay < maxRetryBackoff {
			delay *= 2
		}
	}
}

func sleepWithContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// publish sends the settlement event. Delivery failures are logged only;
// the trade is already committed.
func (s *tradeService) publish(r *TradeResult) {
	evt := events.TradeSettled{
		TradeID:     r.Trade.ID,
		UserID:      r.Trade.UserID,
		AssetID:     r.Trade.AssetID,
		Side:        string(r.Trade.Side),
		Quantity:    r.Trade.Quantity,
		Price:       r.Trade.Price,
		Total:       r.Trade.Total,
		GemsAwarded: r.Trade.GemsAwarded,
		GemCount:    r.User.GemCount,
		TradeCount:  r.User.TradeCount,
		ExecutedAt:  r.Trade.ExecutedAt,
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.publisher.PublishTradeSettled(ctx, evt); err != nil {
		logger.Get().Errorw("failed to publish trade event", "trade_id", evt.TradeID, "error", err)
	}
}

// ListTrades returns the user's trade journal, newest first.
func (s *tradeService) ListTrades(ctx context.Context, userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Trade], error) {
	if _, err := s.store.GetUser(ctx, userID); err != nil {
		return nil, err
	}
	page.Defaults()

	trades, total, err := s.store.ListTrades(ctx, userID, page)
	if err != nil {
		return nil, err
	}
	result := pagination.NewPageResponse(trades, page.Page, page.PageSize, total)
	return &result, nil
}
