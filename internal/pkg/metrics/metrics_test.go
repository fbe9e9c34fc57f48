package metrics_test

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/ExploreAritra/google-maps-drawing-tools/internal/core/domain"
	"github.com/ExploreAritra/google-maps-drawing-tools/internal/pkg/metrics"
)

func TestRecordShapeEvent(t *testing.T) {
	counter := metrics.ShapeEvents.WithLabelValues("circle", "drawn")
	before := testutil.ToFloat64(counter)

	metrics.RecordShapeEvent(domain.ShapeEvent{Kind: domain.KindCircle, Type: domain.EventDrawn})

	if got := testutil.ToFloat64(counter) - before; got != 1 {
		t.Errorf("expected counter to grow by 1, grew by %v", got)
	}
}

func TestHandler_ExposesRequestMetrics(t *testing.T) {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Use(metrics.Middleware())
	app.Get("/metrics", metrics.Handler())
	app.Get("/v1/mode", func(c *fiber.Ctx) error { return c.SendString("none") })

	if _, err := app.Test(httptest.NewRequest("GET", "/v1/mode", nil), -1); err != nil {
		t.Fatalf("request failed: %v", err)
	}

	resp, err := app.Test(httptest.NewRequest("GET", "/metrics", nil), -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), `geodraw_http_requests_total{method="GET",path="/v1/mode",status="200"}`) {
		t.Errorf("request counter missing from exposition:\n%s", body)
	}
}
