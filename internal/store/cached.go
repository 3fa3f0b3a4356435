package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"gemtrade/internal/logger"
	"gemtrade/internal/models"
)

// CachedStore wraps a primary Store with a Redis read-through cache for
// assets. Writes go to the primary and invalidate the cached entry. Reads
// inside a transaction always go to the primary so a trade sees the price
// committed in the database, not a cached copy.
type CachedStore struct {
	Store
	rdb *redis.Client
	ttl time.Duration
}

// NewCachedStore creates a cached wrapper around a primary store.
func NewCachedStore(primary Store, rdb *redis.Client, ttl time.Duration) *CachedStore {
	return &CachedStore{Store: primary, rdb: rdb, ttl: ttl}
}

// NewRedisClient builds a client from a redis:// URL.
func NewRedisClient(url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	return redis.NewClient(opts), nil
}

func assetKey(id string) string {
	return "gemtrade:asset:" + id
}

func (s *CachedStore) GetAsset(ctx context.Context, id string) (*models.Asset, error) {
	if InTx(ctx) {
		return s.Store.GetAsset(ctx, id)
	}

	data, err := s.rdb.Get(ctx, assetKey(id)).Bytes()
	if err == nil {
		var a models.Asset
		if json.Unmarshal(data, &a) == nil {
			return &a, nil
		}
	}

	a, err := s.Store.GetAsset(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cacheAsset(ctx, a)
	return a, nil
}

func (s *CachedStore) CreateAsset(ctx context.Context, a *models.Asset) error {
	if err := s.Store.CreateAsset(ctx, a); err != nil {
		return err
	}
	if !InTx(ctx) {
		s.cacheAsset(ctx, a)
	}
	return nil
}

func (s *CachedStore) SaveAsset(ctx context.Context, a *models.Asset) error {
	if err := s.Store.SaveAsset(ctx, a); err != nil {
		return err
	}
	s.invalidate(ctx, a.ID)
	return nil
}

func (s *CachedStore) DeleteAsset(ctx context.Context, id string) error {
	if err := s.Store.DeleteAsset(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *CachedStore) cacheAsset(ctx context.Context, a *models.Asset) {
	data, err := json.Marshal(a)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, assetKey(a.ID), data, s.ttl).Err(); err != nil {
		logger.Get().Debugw("asset cache write failed", "asset_id", a.ID, "error", err)
	}
}

func (s *CachedStore) invalidate(ctx context.Context, id string) {
	if err := s.rdb.Del(ctx, assetKey(id)).Err(); err != nil {
		logger.Get().Warnw("asset cache invalidation failed", "asset_id", id, "error", err)
	}
}
