package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/ExploreAritra/google-maps-drawing-tools/internal/core/domain"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	NATS      NATSConfig      `mapstructure:"nats"`
	Valkey    ValkeyConfig    `mapstructure:"valkey"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
	Editor    EditorConfig    `mapstructure:"editor"`
	Log       LogConfig       `mapstructure:"log"`
}

type ServerConfig struct {
	Port         int `mapstructure:"port"`
	ReadTimeout  int `mapstructure:"read_timeout"`
	WriteTimeout int `mapstructure:"write_timeout"`
}

type NATSConfig struct {
	URL     string `mapstructure:"url"`
	Enabled bool   `mapstructure:"enabled"`
}

type ValkeyConfig struct {
	Addr    string `mapstructure:"addr"`
	Enabled bool   `mapstructure:"enabled"`
}

type TelemetryConfig struct {
	ServiceName string `mapstructure:"service_name"`
	TempoAddr   string `mapstructure:"tempo_addr"`
	Enabled     bool   `mapstructure:"enabled"`
}

// EditorConfig seeds a new editing session.
type EditorConfig struct {
	DrawingColor         string         `mapstructure:"drawing_color"`
	CloseThresholdMeters float64        `mapstructure:"close_threshold_meters"`
	StrokeWidth          float64        `mapstructure:"stroke_width"`
	Icons                domain.IconSet `mapstructure:"icons"`
}

// Color parses DrawingColor. Validate has already rejected bad values.
func (e EditorConfig) Color() domain.Color {
	c, _ := domain.ParseColor(e.DrawingColor)
	return c
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from file and environment variables.
func Load(service string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 10)
	v.SetDefault("nats.url", "nats://localhost:4222")
	v.SetDefault("nats.enabled", true)
	v.SetDefault("valkey.addr", "localhost:6379")
	v.SetDefault("valkey.enabled", true)
	v.SetDefault("telemetry.service_name", service)
	v.SetDefault("telemetry.tempo_addr", "tempo:4317")
	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("editor.drawing_color", "#E53935")
	v.SetDefault("editor.close_threshold_meters", 30)
	v.SetDefault("editor.stroke_width", 2)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	for _, key := range []string{
		"first_vertex", "vertex", "midpoint", "circle_center",
		"circle_radius", "rectangle_start", "rectangle_corner",
	} {
		// Registers the key so the env override below can find it.
		v.SetDefault("editor.icons."+key, "")
	}

	// Config file (optional)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	_ = v.ReadInConfig() // OK if missing

	// Environment variables: GEODRAW_EDITOR_DRAWING_COLOR → editor.drawing_color
	v.SetEnvPrefix("GEODRAW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that required configuration fields are present and sane.
func (c *Config) Validate() error {
	var errs []string

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("server.port must be 1-65535, got %d", c.Server.Port))
	}
	if c.Server.ReadTimeout <= 0 {
		errs = append(errs, "server.read_timeout must be positive")
	}
	if c.Server.WriteTimeout <= 0 {
		errs = append(errs, "server.write_timeout must be positive")
	}
	if c.NATS.Enabled && c.NATS.URL == "" {
		errs = append(errs, "nats.url is required")
	}
	if c.Valkey.Enabled && c.Valkey.Addr == "" {
		errs = append(errs, "valkey.addr is required")
	}
	if c.Telemetry.Enabled && c.Telemetry.TempoAddr == "" {
		errs = append(errs, "telemetry.tempo_addr is required when telemetry is enabled")
	}
	if _, err := domain.ParseColor(c.Editor.DrawingColor); err != nil {
		errs = append(errs, fmt.Sprintf("editor.drawing_color: %v", err))
	}
	if c.Editor.CloseThresholdMeters <= 0 {
		errs = append(errs, "editor.close_threshold_meters must be positive")
	}
	if c.Editor.StrokeWidth <= 0 {
		errs = append(errs, "editor.stroke_width must be positive")
	}
	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		errs = append(errs, fmt.Sprintf("log.format must be json or text, got %q", c.Log.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
