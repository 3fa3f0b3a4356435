package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"gemtrade/internal/config"
	"gemtrade/internal/events"
	"gemtrade/internal/logger"
	"gemtrade/internal/server"
	"gemtrade/internal/services"
	"gemtrade/internal/validator"
)

// @title           Gemtrade API
// @version         1.0
// @description     Gamified paper-trading ledger: wallets, portfolios, atomic trade settlement and a gem leaderboard.

// @host      localhost:8080
// @BasePath  /api/v1

func main() {
	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger.Init(appConfig.Env, appConfig.LogLevel)
	defer logger.Sync()
	log := logger.Get()

	if appConfig.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	validator.Register()

	st, dbManager, err := server.OpenStore(appConfig)
	if err != nil {
		return err
	}
	defer func() {
		if err := dbManager.Close(); err != nil {
			log.Warnw("database close error", "error", err)
		}
	}()

	publisher := events.New(appConfig.KafkaBrokers, appConfig.KafkaTopic)
	defer func() {
		if err := publisher.Close(); err != nil {
			log.Warnw("event publisher close error", "error", err)
		}
	}()

	svc := server.NewServices(st, publisher, services.TradeConfig{
		Timeout:      appConfig.TradeTimeout,
		MaxRetries:   appConfig.TradeMaxRetries,
		RetryBackoff: appConfig.TradeRetryBackoff,
	})
	router := server.NewRouter(svc, server.Options{
		Currency:       appConfig.Currency,
		RateLimitRPS:   appConfig.RateLimitRPS,
		RateLimitBurst: appConfig.RateLimitBurst,
	})

	httpServer := &http.Server{
		Addr:              ":" + appConfig.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("Starting Gemtrade server on port %s (db=%s)", appConfig.Port, dbManager.Driver())
		log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	case sig := <-sigChan:
		log.Infow("shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	return nil
}
