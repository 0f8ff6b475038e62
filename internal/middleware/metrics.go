package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RedisErrors counts Redis errors by operation type.
var RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "quill_redis_errors_total",
	Help: "Total number of Redis errors by operation type",
}, []string{"operation"})

// PageCacheLookups counts page cache hits and misses.
var PageCacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "quill_page_cache_lookups_total",
	Help: "Total number of page cache lookups by outcome",
}, []string{"outcome"})

// InitMetrics creates the Prometheus HTTP metrics collector for the service.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// MetricsMiddleware returns a Fiber handler that records request metrics.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
