package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultEnvFile         = ".env"
	defaultPort            = "8080"
	defaultReadTimeout     = 15 * time.Second
	defaultWriteTimeout    = 15 * time.Second
	defaultIdleTimeout     = 60 * time.Second
	defaultLogLevel        = "info"
	defaultRatePerMinute   = 120
	defaultRateBurst       = 30
	defaultTraceSampling   = 0.1
	defaultMetricsEnabled  = true
	defaultShutdownTimeout = 10 * time.Second
)

// Config captures all runtime configuration organised by concern.
type Config struct {
	Server      ServerConfig
	Log         LogConfig
	RateLimit   RateLimitConfig
	Telemetry   TelemetryConfig
	Analytics   AnalyticsConfig
	Development bool
}

// ServerConfig configures HTTP server parameters.
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// Addr is the listen address for the configured port.
func (s ServerConfig) Addr() string {
	return ":" + s.Port
}

// LogConfig selects the zap level.
type LogConfig struct {
	Level string
}

// RateLimitConfig throttles the JSON API per client.
type RateLimitConfig struct {
	PerMinute int
	Burst     int
}

// TelemetryConfig controls tracing and metrics.
type TelemetryConfig struct {
	TraceSampleRatio float64
	MetricsEnabled   bool
}

// AnalyticsConfig holds client instrumentation IDs surfaced to templates.
type AnalyticsConfig struct {
	GA4MeasurementID string
	GTMContainerID   string
	SegmentWriteKey  string
	Debug            bool
}

// ValidationError is returned when configuration fields are invalid.
type ValidationError struct {
	fields []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed: missing or invalid fields [%s]", strings.Join(e.fields, ", "))
}

// Fields returns a copy of the invalid field list.
func (e *ValidationError) Fields() []string {
	out := make([]string, len(e.fields))
	copy(out, e.fields)
	return out
}

// Option customises Load behaviour.
type Option func(*loaderOptions)

type loaderOptions struct {
	envFile      string
	envMap       map[string]string
	useSystemEnv bool
}

// WithEnvFile overrides the .env file path. An empty path disables dotenv loading.
func WithEnvFile(path string) Option {
	return func(o *loaderOptions) {
		o.envFile = path
	}
}

// WithEnvMap injects explicit values that take precedence over the process environment.
func WithEnvMap(values map[string]string) Option {
	return func(o *loaderOptions) {
		o.envMap = values
	}
}

// WithoutSystemEnv disables reading from the process environment.
func WithoutSystemEnv() Option {
	return func(o *loaderOptions) {
		o.useSystemEnv = false
	}
}

// Load assembles the configuration from defaults, the .env file, the process
// environment and explicit overrides, in increasing precedence.
func Load(opts ...Option) (Config, error) {
	options := loaderOptions{
		envFile:      defaultEnvFile,
		useSystemEnv: true,
	}
	for _, opt := range opts {
		opt(&options)
	}

	dotEnvValues, err := loadDotEnv(options.envFile)
	if err != nil {
		return Config{}, err
	}

	lookup := func(key string) (string, bool) {
		if options.envMap != nil {
			if value, ok := options.envMap[key]; ok {
				return value, true
			}
		}
		if options.useSystemEnv {
			if value, ok := os.LookupEnv(key); ok {
				return value, true
			}
		}
		if value, ok := dotEnvValues[key]; ok {
			return value, true
		}
		return "", false
	}

	port := stringWithDefault(lookup, "VISNEX_WEB_PORT", "")
	if port == "" {
		port = stringWithDefault(lookup, "PORT", defaultPort)
	}

	var invalid []string
	cfg := Config{
		Server: ServerConfig{
			Port:            port,
			ReadTimeout:     durationWithDefault(lookup, "VISNEX_WEB_READ_TIMEOUT", defaultReadTimeout, &invalid),
			WriteTimeout:    durationWithDefault(lookup, "VISNEX_WEB_WRITE_TIMEOUT", defaultWriteTimeout, &invalid),
			IdleTimeout:     durationWithDefault(lookup, "VISNEX_WEB_IDLE_TIMEOUT", defaultIdleTimeout, &invalid),
			ShutdownTimeout: durationWithDefault(lookup, "VISNEX_WEB_SHUTDOWN_TIMEOUT", defaultShutdownTimeout, &invalid),
		},
		Log: LogConfig{
			Level: strings.ToLower(stringWithDefault(lookup, "VISNEX_LOG_LEVEL", defaultLogLevel)),
		},
		RateLimit: RateLimitConfig{
			PerMinute: intWithDefault(lookup, "VISNEX_API_RATE_PER_MIN", defaultRatePerMinute, &invalid),
			Burst:     intWithDefault(lookup, "VISNEX_API_RATE_BURST", defaultRateBurst, &invalid),
		},
		Telemetry: TelemetryConfig{
			TraceSampleRatio: floatWithDefault(lookup, "VISNEX_TRACE_SAMPLE_RATIO", defaultTraceSampling, &invalid),
			MetricsEnabled:   boolWithDefault(lookup, "VISNEX_METRICS_ENABLED", defaultMetricsEnabled),
		},
		Analytics: AnalyticsConfig{
			GA4MeasurementID: stringWithDefault(lookup, "VISNEX_WEB_GA_MEASUREMENT_ID", ""),
			GTMContainerID:   stringWithDefault(lookup, "VISNEX_WEB_GTM_CONTAINER_ID", ""),
			SegmentWriteKey:  stringWithDefault(lookup, "VISNEX_WEB_SEGMENT_WRITE_KEY", ""),
			Debug:            boolWithDefault(lookup, "VISNEX_WEB_ANALYTICS_DEBUG", false),
		},
		Development: boolWithDefault(lookup, "VISNEX_WEB_DEV", false),
	}

	if err := validateConfig(cfg, invalid); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func validateConfig(cfg Config, invalid []string) error {
	fields := append([]string(nil), invalid...)

	if _, err := strconv.Atoi(cfg.Server.Port); err != nil {
		fields = append(fields, "Server.Port")
	}
	if cfg.Server.ReadTimeout <= 0 {
		fields = append(fields, "Server.ReadTimeout")
	}
	if cfg.Server.WriteTimeout <= 0 {
		fields = append(fields, "Server.WriteTimeout")
	}
	switch cfg.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		fields = append(fields, "Log.Level")
	}
	if cfg.RateLimit.PerMinute <= 0 {
		fields = append(fields, "RateLimit.PerMinute")
	}
	if cfg.RateLimit.Burst <= 0 {
		fields = append(fields, "RateLimit.Burst")
	}
	if cfg.Telemetry.TraceSampleRatio < 0 || cfg.Telemetry.TraceSampleRatio > 1 {
		fields = append(fields, "Telemetry.TraceSampleRatio")
	}

	if len(fields) > 0 {
		return &ValidationError{fields: fields}
	}
	return nil
}

func loadDotEnv(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}
	values, err := godotenv.Read(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: unable to read %s: %w", path, err)
	}
	return values, nil
}

func stringWithDefault(lookup func(string) (string, bool), key, fallback string) string {
	if value, ok := lookup(key); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

func durationWithDefault(lookup func(string) (string, bool), key string, fallback time.Duration, invalid *[]string) time.Duration {
	value, ok := lookup(key)
	if !ok || strings.TrimSpace(value) == "" {
		return fallback
	}
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		*invalid = append(*invalid, key)
		return fallback
	}
	return d
}

func intWithDefault(lookup func(string) (string, bool), key string, fallback int, invalid *[]string) int {
	value, ok := lookup(key)
	if !ok || strings.TrimSpace(value) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		*invalid = append(*invalid, key)
		return fallback
	}
	return parsed
}

func floatWithDefault(lookup func(string) (string, bool), key string, fallback float64, invalid *[]string) float64 {
	value, ok := lookup(key)
	if !ok || strings.TrimSpace(value) == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		*invalid = append(*invalid, key)
		return fallback
	}
	return parsed
}

func boolWithDefault(lookup func(string) (string, bool), key string, fallback bool) bool {
	if value, ok := lookup(key); ok && value != "" {
		switch strings.ToLower(strings.TrimSpace(value)) {
		case "true", "1", "yes", "on":
			return true
		case "false", "0", "no", "off":
			return false
		}
	}
	return fallback
}
