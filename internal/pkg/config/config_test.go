package config_test

import (
	"strings"
	"testing"

	"github.com/ExploreAritra/google-maps-drawing-tools/internal/core/domain"
	"github.com/ExploreAritra/google-maps-drawing-tools/internal/pkg/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := config.Load("geodraw-api")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("expected port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Telemetry.ServiceName != "geodraw-api" {
		t.Errorf("expected service name geodraw-api, got %s", cfg.Telemetry.ServiceName)
	}
	if cfg.Editor.CloseThresholdMeters != 30 {
		t.Errorf("expected 30 m close threshold, got %v", cfg.Editor.CloseThresholdMeters)
	}
	want := domain.Color{R: 0xE5, G: 0x39, B: 0x35, A: 0xFF}
	if cfg.Editor.Color() != want {
		t.Errorf("expected %v, got %v", want, cfg.Editor.Color())
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("GEODRAW_SERVER_PORT", "9090")
	t.Setenv("GEODRAW_EDITOR_DRAWING_COLOR", "#2196F3")
	t.Setenv("GEODRAW_EDITOR_ICONS_VERTEX", "pin.png")
	t.Setenv("GEODRAW_LOG_FORMAT", "text")

	cfg, err := config.Load("geodraw-api")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Server.Port)
	}
	if cfg.Editor.Color() != domain.HighlightBlue {
		t.Errorf("expected blue, got %v", cfg.Editor.Color())
	}
	if cfg.Editor.Icons.Vertex != "pin.png" {
		t.Errorf("expected vertex icon override, got %q", cfg.Editor.Icons.Vertex)
	}
	if cfg.Log.Format != "text" {
		t.Errorf("expected text log format, got %s", cfg.Log.Format)
	}
}

func TestLoad_InvalidColor(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("GEODRAW_EDITOR_DRAWING_COLOR", "crimson")

	if _, err := config.Load("geodraw-api"); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := config.Config{
		Server: config.ServerConfig{Port: 0},
		NATS:   config.NATSConfig{Enabled: true},
		Editor: config.EditorConfig{DrawingColor: "#zz0000"},
		Log:    config.LogConfig{Format: "xml"},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	for _, want := range []string{"server.port", "nats.url", "editor.drawing_color", "editor.stroke_width", "log.format"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected %q in error, got:\n%s", want, err)
		}
	}
}

func TestValidate_DisabledBackendsNeedNoAddress(t *testing.T) {
	cfg := config.Config{
		Server: config.ServerConfig{Port: 8080, ReadTimeout: 1, WriteTimeout: 1},
		Editor: config.EditorConfig{DrawingColor: "#000000", CloseThresholdMeters: 30, StrokeWidth: 2},
		Log:    config.LogConfig{Format: "json"},
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
