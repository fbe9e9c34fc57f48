package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/ExploreAritra/google-maps-drawing-tools/internal/adapters/geojson"
	"github.com/ExploreAritra/google-maps-drawing-tools/internal/adapters/http"
	natsadapter "github.com/ExploreAritra/google-maps-drawing-tools/internal/adapters/nats"
	"github.com/ExploreAritra/google-maps-drawing-tools/internal/adapters/valkey"
	"github.com/ExploreAritra/google-maps-drawing-tools/internal/core/ports"
	"github.com/ExploreAritra/google-maps-drawing-tools/internal/core/usecases"
	"github.com/ExploreAritra/google-maps-drawing-tools/internal/pkg/config"
	"github.com/ExploreAritra/google-maps-drawing-tools/internal/pkg/logging"
	"github.com/ExploreAritra/google-maps-drawing-tools/internal/pkg/metrics"
	"github.com/ExploreAritra/google-maps-drawing-tools/internal/pkg/telemetry"
)

func main() {
	cfg, err := config.Load("geodraw-api")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := logging.Setup(cfg.Telemetry.ServiceName, cfg.Log.Level, cfg.Log.Format)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Telemetry
	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.InitTracer(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.TempoAddr)
		if err != nil {
			logger.Warn("telemetry init failed", "error", err)
		} else {
			defer shutdown(context.Background())
		}
	}

	// Cache
	var (
		cache     *valkey.Cache
		cachePort ports.CacheService
	)
	if cfg.Valkey.Enabled {
		cache, err = valkey.New(cfg.Valkey.Addr)
		if err != nil {
			logger.Warn("valkey unavailable", "error", err)
			cache = nil
		} else {
			cachePort = cache
			defer cache.Close()
		}
	}

	// NATS
	var publisher ports.EventPublisher
	var deps http.Dependencies
	if cfg.NATS.Enabled {
		pub, err := natsadapter.NewPublisher(cfg.NATS.URL)
		if err != nil {
			logger.Warn("nats unavailable", "error", err)
		} else {
			publisher = pub
			deps.NATS = pub.Conn()
			defer pub.Close()
		}
	}

	// Editing session
	editor := usecases.NewEditor(usecases.EditorConfig{
		DrawingColor:         cfg.Editor.Color(),
		CloseThresholdMeters: cfg.Editor.CloseThresholdMeters,
		StrokeWidth:          cfg.Editor.StrokeWidth,
		Icons:                cfg.Editor.Icons,
	}, usecases.WithLogger(logger.With("component", "editor")))

	session := usecases.NewSessionService(editor, publisher)
	session.AddEventHook(metrics.RecordShapeEvent)

	codec := geojson.NewCodec(logger.With("component", "geojson"))

	deps.Session = session
	deps.Interchange = usecases.NewInterchangeService(session, codec, cachePort)
	deps.Cache = cache

	// Fiber
	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		BodyLimit:    8 * 1024 * 1024, // imported documents can be large
		AppName:      "Geodraw API",
	})
	app.Use(cors.New(cors.Config{
		AllowOrigins: "http://localhost:3000, http://localhost:5173",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, If-None-Match",
		ExposeHeaders: "ETag, Link, X-Revision",
		MaxAge:        3600,
	}))

	http.SetupRoutes(app, &deps)

	// Graceful shutdown
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		logger.Info("API server starting", "addr", addr, "session", session.ID())
		if err := app.Listen(addr); err != nil {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("shutdown signal received, draining connections...", "signal", sig.String())

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("forced shutdown", "error", err)
	}

	logger.Info("server stopped")
}
