// Package server assembles the HTTP router and the service graph behind it.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "gemtrade/internal/docs" // Register swagger docs
	"gemtrade/internal/events"
	"gemtrade/internal/handlers"
	"gemtrade/internal/metrics"
	"gemtrade/internal/middleware"
	"gemtrade/internal/services"
	"gemtrade/internal/store"
)

// Services is the full service graph.
type Services struct {
	Users      services.UserServicer
	Assets     services.AssetServicer
	Portfolios services.PortfolioServicer
	Trades     services.TradeServicer
	Ranking    services.RankingServicer
	Audit      services.AuditServicer
}

// NewServices wires every service over one store.
func NewServices(s store.Store, publisher events.Publisher, tradeCfg services.TradeConfig) Services {
	wallet := services.NewWalletLedger(s)
	portfolios := services.NewPortfolioService(s)
	return Services{
		Users:      services.NewUserService(s, wallet),
		Assets:     services.NewAssetService(s),
		Portfolios: portfolios,
		Trades:     services.NewTradeService(s, wallet, portfolios, publisher, tradeCfg),
		Ranking:    services.NewRankingService(s),
		Audit:      services.NewAuditService(s),
	}
}

// Options configures the router.
type Options struct {
	// Currency is the ISO 4217 code used in display strings.
	Currency string
	// RateLimitRPS and RateLimitBurst bound trade requests per client IP.
	RateLimitRPS   float64
	RateLimitBurst int
}

// NewRouter builds the gin engine with every route registered.
func NewRouter(svc Services, opts Options) *gin.Engine {
	userHandler := handlers.NewUserHandler(svc.Users, svc.Audit)
	assetHandler := handlers.NewAssetHandler(svc.Assets, svc.Audit)
	portfolioHandler := handlers.NewPortfolioHandler(svc.Portfolios, opts.Currency)
	tradeHandler := handlers.NewTradeHandler(svc.Trades, opts.Currency)
	leaderboardHandler := handlers.NewLeaderboardHandler(svc.Ranking)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(metrics.Middleware())
	router.Use(middleware.ErrorHandler())
	router.Use(cors())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	users := v1.Group("/users")
	users.POST("", userHandler.CreateUser)
	users.GET("", userHandler.ListUsers)
	users.GET("/:id", userHandler.GetUser)
	users.POST("/:id/deposit", userHandler.Deposit)
	users.POST("/:id/withdraw", userHandler.Withdraw)
	users.GET("/:id/trades", tradeHandler.ListTrades)

	assets := v1.Group("/assets")
	assets.POST("", assetHandler.CreateAsset)
	assets.GET("", assetHandler.ListAssets)
	assets.GET("/:id", assetHandler.GetAsset)
	assets.PUT("/:id", assetHandler.UpdateAsset)
	assets.DELETE("/:id", assetHandler.DeleteAsset)

	portfolios := v1.Group("/portfolios")
	portfolios.POST("", portfolioHandler.CreatePortfolio)
	portfolios.GET("/:user_id", portfolioHandler.GetPortfolio)
	portfolios.GET("/:user_id/value", portfolioHandler.GetValue)
	portfolios.GET("/:user_id/holdings", portfolioHandler.ListHoldings)
	portfolios.GET("/:user_id/holdings/:asset_id", portfolioHandler.GetHolding)

	trades := v1.Group("/trades")
	trades.Use(middleware.RateLimit(middleware.NewRateLimiter(opts.RateLimitRPS, opts.RateLimitBurst)))
	trades.POST("/:user_id/buy", tradeHandler.Buy)
	trades.POST("/:user_id/sell", tradeHandler.Sell)

	leaderboard := v1.Group("/leaderboard")
	leaderboard.GET("", leaderboardHandler.GetLeaderboard)
	leaderboard.POST("/ranks", leaderboardHandler.AssignRanks)

	return router
}

func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
