// Command auditor consumes shape events and change notices from NATS, logs
// them and exposes per-kind counters on /metrics.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.opentelemetry.io/otel/attribute"

	natsadapter "github.com/ExploreAritra/google-maps-drawing-tools/internal/adapters/nats"
	"github.com/ExploreAritra/google-maps-drawing-tools/internal/core/domain"
	"github.com/ExploreAritra/google-maps-drawing-tools/internal/pkg/config"
	"github.com/ExploreAritra/google-maps-drawing-tools/internal/pkg/logging"
	"github.com/ExploreAritra/google-maps-drawing-tools/internal/pkg/metrics"
	"github.com/ExploreAritra/google-maps-drawing-tools/internal/pkg/telemetry"
)

func main() {
	cfg, err := config.Load("geodraw-auditor")
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := logging.Setup(cfg.Telemetry.ServiceName, cfg.Log.Level, cfg.Log.Format)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.InitTracer(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.TempoAddr)
		if err != nil {
			logger.Warn("telemetry init failed", "error", err)
		} else {
			defer shutdown(context.Background())
		}
	}

	sub, err := natsadapter.NewSubscriber(cfg.NATS.URL, "geodraw-auditor")
	if err != nil {
		log.Fatalf("nats: %v", err)
	}
	defer sub.Close()

	a := newAuditor(logger)
	if err := sub.SubscribeShapeEvents(ctx, a.handleEvent); err != nil {
		log.Fatalf("subscribe events: %v", err)
	}
	if err := sub.SubscribeChanges(ctx, a.handleChange); err != nil {
		log.Fatalf("subscribe changes: %v", err)
	}

	app := fiber.New(fiber.Config{DisableStartupMessage: true, AppName: "Geodraw Auditor"})
	app.Get("/metrics", metrics.Handler())
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "last_revision": a.lastRevision()})
	})

	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		logger.Info("auditor listening", "addr", addr)
		if err := app.Listen(addr); err != nil {
			logger.Error("metrics listener stopped", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	logger.Info("received signal, shutting down auditor", "signal", sig.String())

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = app.ShutdownWithContext(shutdownCtx)
}

// auditor tracks the last change notice per session so skipped revisions
// show up in the log.
type auditor struct {
	logger *slog.Logger

	mu        sync.Mutex
	revisions map[string]uint64 // session -> last revision
	last      uint64
}

func newAuditor(logger *slog.Logger) *auditor {
	return &auditor{logger: logger, revisions: make(map[string]uint64)}
}

func (a *auditor) handleEvent(ctx context.Context, ev domain.ShapeEvent) error {
	_, span := telemetry.Tracer().Start(ctx, telemetry.SpanAuditEvent)
	defer span.End()
	span.SetAttributes(
		attribute.String(telemetry.AttrShapeKind, string(ev.Kind)),
		attribute.String(telemetry.AttrEventType, string(ev.Type)),
	)

	metrics.EventsAudited.WithLabelValues(string(ev.Kind), string(ev.Type)).Inc()

	attrs := []any{"kind", ev.Kind, "type", ev.Type, "at", ev.At}
	if ev.ID != "" {
		attrs = append(attrs, "id", ev.ID)
	}
	if len(ev.Collection) > 0 {
		attrs = append(attrs, "collection", len(ev.Collection))
	}
	a.logger.Info("shape event", attrs...)
	return nil
}

func (a *auditor) handleChange(ctx context.Context, notice domain.ChangeNotice) error {
	a.mu.Lock()
	prev, seen := a.revisions[notice.Session]
	if notice.Revision > prev {
		a.revisions[notice.Session] = notice.Revision
	}
	a.last = notice.Revision
	a.mu.Unlock()

	switch {
	case seen && notice.Revision <= prev:
		a.logger.Warn("stale change notice", "session", notice.Session, "revision", notice.Revision, "last", prev)
	case seen && notice.Revision > prev+1:
		a.logger.Warn("change notices skipped", "session", notice.Session, "from", prev, "to", notice.Revision)
	default:
		a.logger.Debug("change notice", "session", notice.Session, "revision", notice.Revision, "mode", notice.Mode)
	}
	return nil
}

func (a *auditor) lastRevision() uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.last
}
