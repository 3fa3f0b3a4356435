package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"gemtrade/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a unique username and zero balance.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	return CreateTestUserWithBalance(t, db, "0")
}

// CreateTestUserWithBalance creates a user holding the given cash balance.
func CreateTestUserWithBalance(t *testing.T, db *gorm.DB, balance string) *models.User {
	t.Helper()

	user := &models.User{
		Username: fmt.Sprintf("trader%d", nextID()),
		Balance:  decimal.RequireFromString(balance),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestUserWithGems creates a user with an explicit id and gem count,
// for ranking tests that depend on id order.
func CreateTestUserWithGems(t *testing.T, db *gorm.DB, id string, gems int64) *models.User {
	t.Helper()

	user := &models.User{
		Base:     models.Base{ID: id},
		Username: fmt.Sprintf("ranked%d", nextID()),
		Balance:  decimal.Zero,
		GemCount: gems,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create ranked test user: %v", err)
	}
	return user
}

// CreateTestAsset creates an asset with a unique name and the given price.
func CreateTestAsset(t *testing.T, db *gorm.DB, price string) *models.Asset {
	t.Helper()

	asset := &models.Asset{
		Name:  fmt.Sprintf("Asset %d", nextID()),
		Price: decimal.RequireFromString(price),
	}
	if err := db.Create(asset).Error; err != nil {
		t.Fatalf("failed to create test asset: %v", err)
	}
	return asset
}

// CreateTestPortfolio creates an empty portfolio for the user.
func CreateTestPortfolio(t *testing.T, db *gorm.DB, userID string) *models.Portfolio {
	t.Helper()

	portfolio := &models.Portfolio{UserID: userID}
	if err := db.Create(portfolio).Error; err != nil {
		t.Fatalf("failed to create test portfolio: %v", err)
	}
	return portfolio
}

// CreateTestHolding creates a holding directly, bypassing the accounting rules.
func CreateTestHolding(t *testing.T, db *gorm.DB, portfolioID, assetID string, quantity int64, avgCost string) *models.Holding {
	t.Helper()

	holding := &models.Holding{
		PortfolioID: portfolioID,
		AssetID:     assetID,
		Quantity:    quantity,
		AvgCost:     decimal.RequireFromString(avgCost),
	}
	if err := db.Create(holding).Error; err != nil {
		t.Fatalf("failed to create test holding: %v", err)
	}
	return holding
}

// ReloadUser reads the user's current row.
func ReloadUser(t *testing.T, db *gorm.DB, id string) *models.User {
	t.Helper()

	var user models.User
	if err := db.Where("id = ?", id).Take(&user).Error; err != nil {
		t.Fatalf("failed to reload user %s: %v", id, err)
	}
	return &user
}

// CountHoldings returns the number of holding rows for a portfolio.
func CountHoldings(t *testing.T, db *gorm.DB, portfolioID string) int64 {
	t.Helper()

	var n int64
	if err := db.Model(&models.Holding{}).Where("portfolio_id = ?", portfolioID).Count(&n).Error; err != nil {
		t.Fatalf("failed to count holdings: %v", err)
	}
	return n
}
