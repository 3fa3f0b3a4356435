package store

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "gemtrade/internal/errors"
	"gemtrade/internal/models"
	"gemtrade/internal/pagination"
)

// GormStore implements Store on top of GORM (PostgreSQL or SQLite).
type GormStore struct {
	db          *gorm.DB
	lockTimeout time.Duration
}

// Option configures a GormStore.
type Option func(*GormStore)

// WithLockTimeout bounds how long a transaction waits for a row lock.
// Only applied on PostgreSQL, where it sets lock_timeout per transaction.
func WithLockTimeout(d time.Duration) Option {
	return func(s *GormStore) { s.lockTimeout = d }
}

// NewGormStore creates a Store backed by db.
func NewGormStore(db *gorm.DB, opts ...Option) *GormStore {
	s := &GormStore{db: db}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ Store = (*GormStore)(nil)

// conn returns the transaction carried by ctx, or the base handle.
func (s *GormStore) conn(ctx context.Context) *gorm.DB {
	if tx, ok := txFrom(ctx); ok {
		return tx.WithContext(ctx)
	}
	return s.db.WithContext(ctx)
}

func (s *GormStore) isPostgres() bool {
	return s.db.Dialector.Name() == "postgres"
}

// forUpdate adds SELECT ... FOR UPDATE where the dialect has row locks.
// SQLite serializes writers on its single connection instead.
func (s *GormStore) forUpdate(db *gorm.DB) *gorm.DB {
	if s.isPostgres() {
		return db.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return db
}

// Transaction implements Store.
func (s *GormStore) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if InTx(ctx) {
		return fn(ctx)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if s.lockTimeout > 0 && s.isPostgres() {
			stmt := fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", s.lockTimeout.Milliseconds())
			if err := tx.Exec(stmt).Error; err != nil {
				return err
			}
		}
		return fn(withTx(ctx, tx))
	})
	return translate(err, nil, nil)
}

// --- users ---

func (s *GormStore) CreateUser(ctx context.Context, user *models.User) error {
	return translate(s.conn(ctx).Create(user).Error, nil, apperrors.ErrDuplicateUsername)
}

func (s *GormStore) GetUser(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := s.conn(ctx).Where("id = ?", id).Take(&user).Error; err != nil {
		return nil, translate(err, apperrors.ErrUserNotFound, nil)
	}
	return &user, nil
}

func (s *GormStore) GetUserForUpdate(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := s.forUpdate(s.conn(ctx)).Where("id = ?", id).Take(&user).Error; err != nil {
		return nil, translate(err, apperrors.ErrUserNotFound, nil)
	}
	return &user, nil
}

func (s *GormStore) SaveUser(ctx context.Context, user *models.User) error {
	return translate(s.conn(ctx).Save(user).Error, nil, apperrors.ErrDuplicateUsername)
}

func (s *GormStore) ListUsers(ctx context.Context, page pagination.PageRequest) ([]models.User, int64, error) {
	var total int64
	if err := s.conn(ctx).Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, 0, translate(err, nil, nil)
	}

	var users []models.User
	if err := s.conn(ctx).Order("id ASC").Scopes(pagination.Paginate(page)).Find(&users).Error; err != nil {
		return nil, 0, translate(err, nil, nil)
	}
	return users, total, nil
}

// RankedUsers returns every user ordered by gem count descending, then id.
func (s *GormStore) RankedUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.conn(ctx).Order("gem_count DESC").Order("id ASC").Find(&users).Error; err != nil {
		return nil, translate(err, nil, nil)
	}
	return users, nil
}

func (s *GormStore) TopUsers(ctx context.Context, n int) ([]models.User, error) {
	var users []models.User
	if err := s.conn(ctx).Order("gem_count DESC").Order("id ASC").Limit(n).Find(&users).Error; err != nil {
		return nil, translate(err, nil, nil)
	}
	return users, nil
}

func (s *GormStore) UpdateRanks(ctx context.Context, ranks []RankAssignment) error {
	db := s.conn(ctx)
	for _, r := range ranks {
		if err := db.Model(&models.User{}).Where("id = ?", r.UserID).Update("rank", r.Rank).Error; err != nil {
			return translate(err, nil, nil)
		}
	}
	return nil
}

// --- assets ---

func (s *GormStore) CreateAsset(ctx context.Context, asset *models.Asset) error {
	return translate(s.conn(ctx).Create(asset).Error, nil, apperrors.ErrDuplicateAsset)
}

func (s *GormStore) GetAsset(ctx context.Context, id string) (*models.Asset, error) {
	var asset models.Asset
	if err := s.conn(ctx).Where("id = ?", id).Take(&asset).Error; err != nil {
		return nil, translate(err, apperrors.ErrAssetNotFound, nil)
	}
	return &asset, nil
}

func (s *GormStore) ListAssets(ctx context.Context, page pagination.PageRequest) ([]models.Asset, int64, error) {
	var total int64
	if err := s.conn(ctx).Model(&models.Asset{}).Count(&total).Error; err != nil {
		return nil, 0, translate(err, nil, nil)
	}

	var assets []models.Asset
	if err := s.conn(ctx).Order("name ASC").Scopes(pagination.Paginate(page)).Find(&assets).Error; err != nil {
		return nil, 0, translate(err, nil, nil)
	}
	return assets, total, nil
}

func (s *GormStore) SaveAsset(ctx context.Context, asset *models.Asset) error {
	return translate(s.conn(ctx).Save(asset).Error, nil, apperrors.ErrDuplicateAsset)
}

func (s *GormStore) DeleteAsset(ctx context.Context, id string) error {
	result := s.conn(ctx).Where("id = ?", id).Delete(&models.Asset{})
	if result.Error != nil {
		return translate(result.Error, nil, nil)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrAssetNotFound
	}
	return nil
}

func (s *GormStore) CountHoldingsForAsset(ctx context.Context, assetID string) (int64, error) {
	var count int64
	if err := s.conn(ctx).Model(&models.Holding{}).Where("asset_id = ?", assetID).Count(&count).Error; err != nil {
		return 0, translate(err, nil, nil)
	}
	return count, nil
}

// --- portfolios ---

func (s *GormStore) CreatePortfolio(ctx context.Context, portfolio *models.Portfolio) error {
	return translate(s.conn(ctx).Create(portfolio).Error, nil, apperrors.ErrPortfolioExists)
}

func (s *GormStore) GetPortfolioByUser(ctx context.Context, userID string) (*models.Portfolio, error) {
	var portfolio models.Portfolio
	if err := s.conn(ctx).Where("user_id = ?", userID).Take(&portfolio).Error; err != nil {
		return nil, translate(err, apperrors.ErrPortfolioNotFound, nil)
	}
	return &portfolio, nil
}

// --- holdings ---

// withAssetName selects holding columns plus the joined asset name.
func withAssetName(db *gorm.DB) *gorm.DB {
	return db.Model(&models.Holding{}).
		Select("holdings.*, assets.name AS name").
		Joins("JOIN assets ON assets.id = holdings.asset_id")
}

func (s *GormStore) GetHolding(ctx context.Context, portfolioID, assetID string) (*models.Holding, error) {
	var holding models.Holding
	err := s.conn(ctx).Scopes(withAssetName).
		Where("holdings.portfolio_id = ? AND holdings.asset_id = ?", portfolioID, assetID).
		Take(&holding).Error
	if err != nil {
		return nil, translate(err, apperrors.ErrHoldingNotFound, nil)
	}
	return &holding, nil
}

func (s *GormStore) GetHoldingForUpdate(ctx context.Context, portfolioID, assetID string) (*models.Holding, error) {
	var holding models.Holding
	err := s.forUpdate(s.conn(ctx)).
		Where("portfolio_id = ? AND asset_id = ?", portfolioID, assetID).
		Take(&holding).Error
	if err != nil {
		return nil, translate(err, apperrors.ErrHoldingNotFound, nil)
	}
	return &holding, nil
}

// SaveHolding inserts a new holding or updates an existing one.
func (s *GormStore) SaveHolding(ctx context.Context, holding *models.Holding) error {
	if holding.ID == "" {
		return translate(s.conn(ctx).Create(holding).Error, nil, nil)
	}
	err := s.conn(ctx).Model(holding).Updates(map[string]any{
		"quantity": holding.Quantity,
		"avg_cost": holding.AvgCost,
	}).Error
	return translate(err, nil, nil)
}

func (s *GormStore) DeleteHolding(ctx context.Context, holding *models.Holding) error {
	return translate(s.conn(ctx).Where("id = ?", holding.ID).Delete(&models.Holding{}).Error, nil, nil)
}

func (s *GormStore) ListHoldings(ctx context.Context, portfolioID string) ([]models.Holding, error) {
	holdings := []models.Holding{}
	err := s.conn(ctx).Scopes(withAssetName).
		Where("holdings.portfolio_id = ?", portfolioID).
		Order("assets.name ASC").
		Find(&holdings).Error
	if err != nil {
		return nil, translate(err, nil, nil)
	}
	return holdings, nil
}

func (s *GormStore) ListPositions(ctx context.Context, portfolioID string) ([]Position, error) {
	var positions []Position
	err := s.conn(ctx).Table("holdings").
		Select("holdings.asset_id AS asset_id, assets.name AS name, holdings.quantity AS quantity, assets.price AS price").
		Joins("JOIN assets ON assets.id = holdings.asset_id").
		Where("holdings.portfolio_id = ?", portfolioID).
		Scan(&positions).Error
	if err != nil {
		return nil, translate(err, nil, nil)
	}
	return positions, nil
}

// --- trades ---

func (s *GormStore) CreateTrade(ctx context.Context, trade *models.Trade) error {
	return translate(s.conn(ctx).Create(trade).Error, nil, nil)
}

func (s *GormStore) ListTrades(ctx context.Context, userID string, page pagination.PageRequest) ([]models.Trade, int64, error) {
	var total int64
	base := s.conn(ctx).Model(&models.Trade{}).Where("user_id = ?", userID)
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, translate(err, nil, nil)
	}

	var trades []models.Trade
	if err := s.conn(ctx).Where("user_id = ?", userID).
		Order("executed_at DESC").Order("id DESC").
		Scopes(pagination.Paginate(page)).
		Find(&trades).Error; err != nil {
		return nil, 0, translate(err, nil, nil)
	}
	return trades, total, nil
}

// --- audit ---

func (s *GormStore) CreateAuditLog(ctx context.Context, entry *models.AuditLog) error {
	return translate(s.conn(ctx).Create(entry).Error, nil, nil)
}
