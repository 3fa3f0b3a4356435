package server

import (
	"fmt"

	"gemtrade/internal/config"
	"gemtrade/internal/database"
	"gemtrade/internal/logger"
	"gemtrade/internal/store"
)

// OpenStore connects to the configured database, applies migrations and
// returns the store, wrapped in the Redis asset cache when REDIS_URL is set.
// Close the returned manager on shutdown.
func OpenStore(cfg *config.Config) (store.Store, *database.Manager, error) {
	dbManager, err := database.NewManager(database.NewConfig(cfg))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create database manager: %w", err)
	}

	if err := dbManager.RunMigrations(); err != nil {
		_ = dbManager.Close()
		return nil, nil, fmt.Errorf("failed to run database migrations: %w", err)
	}

	var s store.Store = store.NewGormStore(dbManager.DB(), store.WithLockTimeout(cfg.DBLockTimeout))
	if cfg.RedisURL != "" {
		rdb, err := store.NewRedisClient(cfg.RedisURL)
		if err != nil {
			_ = dbManager.Close()
			return nil, nil, fmt.Errorf("failed to configure redis: %w", err)
		}
		s = store.NewCachedStore(s, rdb, cfg.AssetCacheTTL)
		logger.Get().Infow("asset cache enabled", "ttl", cfg.AssetCacheTTL.String())
	}
	return s, dbManager, nil
}
