// Package metrics provides Prometheus instrumentation for trade settlement,
// ranking and the HTTP layer.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// TradesTotal counts settlement attempts by side and outcome (error code or "ok").
	TradesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gemtrade_trades_total",
		Help: "Trade settlement attempts by side and outcome",
	}, []string{"side", "outcome"})

	TradeLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "gemtrade_trade_latency_seconds",
		Help:    "Trade settlement latency in seconds, retries included",
		Buckets: prometheus.DefBuckets,
	}, []string{"side"})

	// TradeRetries counts transient failures that were retried.
	TradeRetries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gemtrade_trade_retries_total",
		Help: "Trade attempts retried after a transient store failure",
	}, []string{"side"})

	GemsAwarded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gemtrade_gems_awarded_total",
		Help: "Gems awarded across all settled trades",
	})

	RankingDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "gemtrade_ranking_duration_seconds",
		Help:    "Duration of full rank recomputation passes",
		Buckets: prometheus.DefBuckets,
	})

	RankedUsers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "gemtrade_ranked_users",
		Help: "Number of users ranked in the last pass",
	})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gemtrade_http_requests_total",
		Help: "Total HTTP requests",
	}, []string{"method", "path", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "gemtrade_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
	}, []string{"method", "path"})
)

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware records request counts and durations. The path label is the
// matched route template, so ids do not explode cardinality.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		HTTPRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}
