package observability

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"

	"github.com/aretw0/sprig"
)

const (
	defaultServiceName = "sprig"
	defaultTimeout     = 5 * time.Second

	// envPrefix/envDelim define the env surface, e.g.
	// SPRIG_TRACING__ENABLED, SPRIG_TRACING__ENDPOINT,
	// SPRIG_TRACING__API_KEY, SPRIG_TRACING__PROJECT.
	envPrefix = "SPRIG_TRACING__"
	envDelim  = "__"
)

var (
	providerMu     sync.Mutex
	tracerProvider *sdktrace.TracerProvider
)

// Config holds the tracing export configuration. It is an explicit struct
// threaded into Initialize rather than ambient variables read from inside
// core logic, so the pipeline stays pure and independently testable. With
// Enabled false (the zero value) the whole subsystem is a no-op and never
// changes computed results.
type Config struct {
	Enabled     bool          `koanf:"enabled"`
	Endpoint    string        `koanf:"endpoint"`
	APIKey      string        `koanf:"api_key"`
	Project     string        `koanf:"project"`
	ServiceName string        `koanf:"service_name"`
	Timeout     time.Duration `koanf:"timeout"`
}

// LoadConfig merges an optional YAML file with SPRIG_TRACING__* env vars
// (env wins). An empty path skips the file; with no file and no variables
// set, the returned config is disabled.
func LoadConfig(path string) (Config, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil &&
			!errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("tracing config file: %w", err)
		}
	}

	// Normalize SPRIG_TRACING__API_KEY to "api_key" so keys line up with
	// the koanf struct tags; the provider keeps keys verbatim otherwise.
	normalize := func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}
	if err := k.Load(env.Provider(envPrefix, envDelim, normalize), nil); err != nil {
		return Config{}, fmt.Errorf("tracing config env: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("tracing config unmarshal: %w", err)
	}

	applyDefaults(&cfg)

	return cfg, nil
}

func applyDefaults(c *Config) {
	if c.ServiceName == "" {
		c.ServiceName = defaultServiceName
	}

	if c.Timeout == 0 {
		c.Timeout = defaultTimeout
	}
}

// Initialize sets up OpenTelemetry tracing with the given configuration.
// Disabled or endpoint-less configs return nil without touching the global
// tracer provider.
func Initialize(ctx context.Context, cfg Config, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	if !cfg.Enabled {
		logger.Debug("tracing is disabled")

		return nil
	}

	if cfg.Endpoint == "" {
		logger.Warn("tracing endpoint not configured, tracing will be disabled")

		return nil
	}

	attrs := []resource.Option{
		resource.WithAttributes(
			semconv.ServiceNameKey.String(cfg.ServiceName),
			semconv.ServiceVersionKey.String(sprig.Version),
		),
	}
	if cfg.Project != "" {
		attrs = append(attrs, resource.WithAttributes(
			semconv.ServiceNamespaceKey.String(cfg.Project),
		))
	}

	res, err := resource.New(ctx, attrs...)
	if err != nil {
		return fmt.Errorf("failed to create resource: %w", err)
	}

	exporterOpts := []otlptracehttp.Option{
		otlptracehttp.WithEndpointURL(cfg.Endpoint),
		otlptracehttp.WithTimeout(cfg.Timeout),
	}
	if cfg.APIKey != "" {
		exporterOpts = append(exporterOpts,
			otlptracehttp.WithHeaders(map[string]string{"x-api-key": cfg.APIKey}))
	}

	exporter, err := otlptracehttp.New(ctx, exporterOpts...)
	if err != nil {
		return fmt.Errorf("failed to create OTLP trace exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)

	providerMu.Lock()
	tracerProvider = tp
	providerMu.Unlock()

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	logger.Info("tracing initialized",
		"service", cfg.ServiceName,
		"project", cfg.Project,
		"endpoint", cfg.Endpoint,
	)

	return nil
}

// Shutdown gracefully flushes and stops the tracer provider. Safe to call
// when tracing was never initialized.
func Shutdown(ctx context.Context) error {
	providerMu.Lock()
	tp := tracerProvider
	tracerProvider = nil
	providerMu.Unlock()

	if tp == nil {
		return nil
	}

	return tp.Shutdown(ctx)
}
