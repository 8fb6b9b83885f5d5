package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RedisErrors counts failed Redis commands, labeled by command name. The
// cache layer increments it from its command hook.
var RedisErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "redis_errors_total",
		Help: "Total number of Redis command errors",
	},
	[]string{"command"},
)

// FollowOperations counts follow-graph mutations by operation and outcome.
var FollowOperations = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "follow_operations_total",
		Help: "Total number of follow graph operations",
	},
	[]string{"operation", "outcome"},
)

// WebsocketConnections tracks currently open event-stream connections.
var WebsocketConnections = promauto.NewGauge(
	prometheus.GaugeOpts{
		Name: "websocket_connections",
		Help: "Number of open WebSocket event connections",
	},
)

// WebsocketDrops counts outbound WebSocket messages dropped because a
// client's send buffer was closed or full.
var WebsocketDrops = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "websocket_drops_total",
		Help: "Total WebSocket messages dropped due to backpressure",
	},
	[]string{"reason"},
)

// InitMetrics sets up the Prometheus HTTP metrics collector for the app.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// MetricsMiddleware returns the Fiber handler that records per-request
// HTTP metrics.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
