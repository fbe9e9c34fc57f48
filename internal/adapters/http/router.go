package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/middleware/timeout"
	"github.com/gofiber/websocket/v2"

	"github.com/ExploreAritra/google-maps-drawing-tools/internal/pkg/metrics"
)

const requestTimeout = 15 * time.Second

// SetupRoutes registers all REST, GraphQL, and WebSocket routes.
func SetupRoutes(app *fiber.App, deps *Dependencies) {
	app.Use(recover.New())

	// Prometheus metrics
	app.Use(metrics.Middleware())
	app.Get("/metrics", metrics.Handler())

	// Response compression (gzip)
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))

	// Request ID
	app.Use(requestid.New())

	// Propagate request ID into slog context
	app.Use(RequestIDLogMiddleware())

	// Access logs (structured HTTP request logging)
	app.Use(AccessLogMiddleware())

	// Rate limiting: drag gestures arrive in bursts, so the budget is wider
	// than a plain read API needs.
	app.Use(limiter.New(limiter.Config{
		Max:        600,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return newError(c, 429, "rate_limited", "too many requests, please try again later")
		},
	}))

	// Security headers + API version
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Set("X-API-Version", "1.0.0")
		return c.Next()
	})

	// ETag for conditional caching
	app.Use(ETagMiddleware())

	// Default Cache-Control headers
	app.Use(CachingMiddleware())

	// Health & readiness (no timeout, fast internal checks)
	app.Get("/v1/health", HealthHandler(deps))
	app.Get("/v1/ready", ReadyHandler(deps))

	v1 := app.Group("/v1")
	with := func(h fiber.Handler) fiber.Handler { return timeout.NewWithContext(h, requestTimeout) }

	// Mode and gestures
	v1.Get("/mode", with(GetModeHandler(deps)))
	v1.Put("/mode", with(SetModeHandler(deps)))
	v1.Post("/input", with(InputHandler(deps)))
	v1.Put("/color", with(SetColorHandler(deps)))

	// Reads
	v1.Get("/render", with(RenderHandler(deps)))
	v1.Get("/shapes/:kind", with(ListShapesHandler(deps)))

	// Selection and styling
	v1.Post("/shapes/:kind/:id/select", with(SelectShapeHandler(deps)))
	v1.Put("/shapes/:kind/:id/color", with(SetShapeColorHandler(deps)))
	v1.Delete("/selection/:kind", with(DeleteSelectedHandler(deps)))

	// Polygon editing
	v1.Post("/polygons/close", with(ClosePolygonHandler(deps)))
	v1.Put("/polygons/:id/points/:index", with(UpdateVertexHandler(deps)))
	v1.Post("/polygons/:id/points/:index", with(InsertVertexHandler(deps)))
	v1.Put("/polygons/:id/midpoints/:index", with(UpdateMidpointHandler(deps)))

	// Circle editing
	v1.Put("/circles/:id/center", with(UpdateCircleCenterHandler(deps)))
	v1.Put("/circles/:id/radius", with(UpdateCircleRadiusHandler(deps)))

	// Rectangle editing
	v1.Put("/rectangles/:id/corners/:corner", with(DragCornerHandler(deps)))

	// Interchange
	v1.Get("/export", with(ExportHandler(deps)))
	v1.Post("/import", with(ImportHandler(deps)))

	// GraphQL
	app.Post("/graphql", GraphQLHandler(deps))

	// API documentation (Swagger UI)
	SetupDocs(app)

	// WebSocket
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws", websocket.New(WebSocketHandler(deps.NATS)))
}
