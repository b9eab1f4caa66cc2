package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "racketball_http_requests_total",
			Help: "Count of HTTP requests by route, method and status.",
		},
		[]string{"route", "method", "status"},
	)
	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "racketball_http_request_duration_seconds",
			Help:    "HTTP request latency by route and method.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)
)

// RequestLogger logs every request with its route, status and duration, and
// feeds the prometheus request counters.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		duration := time.Since(start)

		httpRequestsTotal.WithLabelValues(route, c.Request.Method, httpStatusLabel(status)).Inc()
		httpRequestDuration.WithLabelValues(route, c.Request.Method).Observe(duration.Seconds())

		attrs := []any{
			"method", c.Request.Method,
			"route", route,
			"status", status,
			"duration_ms", duration.Milliseconds(),
		}
		if status >= 500 {
			slog.Error("request failed", attrs...)
		} else if status >= 400 {
			slog.Warn("request rejected", attrs...)
		} else {
			slog.Info("request ok", attrs...)
		}
	}
}

func httpStatusLabel(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
