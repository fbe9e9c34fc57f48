package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"

	"github.com/ExploreAritra/google-maps-drawing-tools/internal/core/domain"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "geodraw",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests processed",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "geodraw",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
	}, []string{"method", "path"})

	httpResponseSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "geodraw",
		Subsystem: "http",
		Name:      "response_size_bytes",
		Help:      "HTTP response size in bytes",
		Buckets:   prometheus.ExponentialBuckets(100, 10, 6),
	}, []string{"method", "path"})

	// Editor metrics
	ShapeEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "geodraw",
		Subsystem: "editor",
		Name:      "shape_events_total",
		Help:      "Total shape events raised by the editor",
	}, []string{"kind", "type"})

	ModeChanges = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "geodraw",
		Subsystem: "editor",
		Name:      "mode_changes_total",
		Help:      "Total drawing mode switches",
	}, []string{"mode"})

	InterchangeDocuments = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "geodraw",
		Subsystem: "interchange",
		Name:      "documents_total",
		Help:      "Total documents imported or exported",
	}, []string{"direction"})

	InterchangeShapes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "geodraw",
		Subsystem: "interchange",
		Name:      "shapes_total",
		Help:      "Total shapes carried by imported or exported documents",
	}, []string{"direction"})

	EventsAudited = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "geodraw",
		Subsystem: "auditor",
		Name:      "events_total",
		Help:      "Total shape events consumed from the broker",
	}, []string{"kind", "type"})

	ActiveWebSockets = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "geodraw",
		Subsystem: "ws",
		Name:      "active_connections",
		Help:      "Current number of active WebSocket connections",
	})

	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "geodraw",
		Subsystem: "cache",
		Name:      "hits_total",
		Help:      "Total cache hits",
	}, []string{"operation"})

	CacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "geodraw",
		Subsystem: "cache",
		Name:      "misses_total",
		Help:      "Total cache misses",
	}, []string{"operation"})
)

// RecordShapeEvent counts one editor event.
func RecordShapeEvent(ev domain.ShapeEvent) {
	ShapeEvents.WithLabelValues(string(ev.Kind), string(ev.Type)).Inc()
}

// Middleware records request metrics.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Response().StatusCode())
		// Route patterns (/v1/shapes/:kind) keep label cardinality bounded.
		path := c.Route().Path
		if path == "" {
			path = c.Path()
		}
		method := c.Method()

		httpRequestsTotal.WithLabelValues(method, path, status).Inc()
		httpRequestDuration.WithLabelValues(method, path).Observe(duration)
		httpResponseSize.WithLabelValues(method, path).Observe(float64(len(c.Response().Body())))

		return err
	}
}

// Handler returns a Fiber handler serving Prometheus /metrics endpoint.
func Handler() fiber.Handler {
	handler := promhttp.Handler()
	return func(c *fiber.Ctx) error {
		fasthttpadaptor.NewFastHTTPHandler(handler)(c.Context())
		return nil
	}
}
