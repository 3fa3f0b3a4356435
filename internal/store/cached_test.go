package store

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"gemtrade/internal/models"
	"gemtrade/internal/testutil"
)

// unreachableRedis points at a port nothing listens on so every call fails fast.
func unreachableRedis() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
}

func TestCachedStore_FallsBackToPrimary(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	rdb := unreachableRedis()
	defer rdb.Close()
	s := NewCachedStore(NewGormStore(db), rdb, time.Minute)
	ctx := context.Background()

	a := &models.Asset{Name: "Silver", Price: decimal.NewFromInt(20)}
	testutil.AssertNoError(t, s.CreateAsset(ctx, a))

	got, err := s.GetAsset(ctx, a.ID)
	testutil.AssertNoError(t, err)
	testutil.AssertDecimal(t, "price", got.Price, "20")

	got.Price = decimal.NewFromInt(25)
	testutil.AssertNoError(t, s.SaveAsset(ctx, got))

	err = s.Transaction(ctx, func(ctx context.Context) error {
		inTx, err := s.GetAsset(ctx, a.ID)
		if err != nil {
			return err
		}
		testutil.AssertDecimal(t, "price in tx", inTx.Price, "25")
		return nil
	})
	testutil.AssertNoError(t, err)

	_, err = s.GetAsset(ctx, "missing")
	testutil.AssertAppError(t, err, "ASSET_NOT_FOUND")
}

func TestNewRedisClient(t *testing.T) {
	if _, err := NewRedisClient("not a url"); err == nil {
		t.Error("expected error for invalid url")
	}
	c, err := NewRedisClient("redis://localhost:6379/0")
	testutil.AssertNoError(t, err)
	_ = c.Close()
}
