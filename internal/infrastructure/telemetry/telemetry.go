// Package telemetry wires OpenTelemetry tracing: an OTLP tracer provider for
// the HTTP and database layers. Disabled, the global no-op provider stays in
// place and the instrumentation costs nothing.
package telemetry

import (
	"context"
	"fmt"
	"time"

	"github.com/billcraft/backend/internal/infrastructure/config"
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// TracerProvider wraps the OpenTelemetry tracer provider with lifecycle
// management
type TracerProvider struct {
	provider    *sdktrace.TracerProvider
	logger      *zap.Logger
	serviceName string
}

// NewTracerProvider creates a tracer provider exporting to the configured
// OTLP collector and installs it globally. When telemetry is disabled it
// returns a provider that leaves the global no-op in place.
func NewTracerProvider(ctx context.Context, cfg config.TelemetryConfig, serviceName string, logger *zap.Logger) (*TracerProvider, error) {
	tp := &TracerProvider{logger: logger, serviceName: serviceName}

	if !cfg.Enabled {
		logger.Info("Telemetry disabled, using no-op tracer provider")
		return tp, nil
	}

	exporterOpts := []otlptracegrpc.Option{
		otlptracegrpc.WithEndpoint(cfg.CollectorEndpoint),
	}
	if cfg.Insecure {
		exporterOpts = append(exporterOpts, otlptracegrpc.WithInsecure())
	}
	exporter, err := otlptracegrpc.New(ctx, exporterOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP exporter: %w", err)
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(serviceName),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	var sampler sdktrace.Sampler
	switch cfg.SamplingRatio {
	case 1.0:
		sampler = sdktrace.AlwaysSample()
	case 0.0:
		sampler = sdktrace.NeverSample()
	default:
		sampler = sdktrace.TraceIDRatioBased(cfg.SamplingRatio)
	}

	tp.provider = sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sampler),
	)

	otel.SetTracerProvider(tp.provider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	logger.Info("OpenTelemetry tracer provider initialized",
		zap.String("collector_endpoint", cfg.CollectorEndpoint),
		zap.Float64("sampling_ratio", cfg.SamplingRatio),
	)

	return tp, nil
}

// IsEnabled reports whether spans are actually exported
func (tp *TracerProvider) IsEnabled() bool {
	return tp.provider != nil
}

// Tracer returns a named tracer from the provider
func (tp *TracerProvider) Tracer(name string, opts ...trace.TracerOption) trace.Tracer {
	if tp.provider == nil {
		return otel.GetTracerProvider().Tracer(name, opts...)
	}
	return tp.provider.Tracer(name, opts...)
}

// Shutdown flushes pending spans and stops the provider
func (tp *TracerProvider) Shutdown(ctx context.Context) error {
	if tp.provider == nil {
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := tp.provider.Shutdown(shutdownCtx); err != nil {
		tp.logger.Error("Error shutting down tracer provider", zap.Error(err))
		return fmt.Errorf("failed to shutdown tracer provider: %w", err)
	}
	return nil
}

// RegisterGormTracing attaches the otelgorm plugin so every database
// operation emits a span under the active request trace. Query variables are
// excluded from spans.
func RegisterGormTracing(db *gorm.DB, dbName string) error {
	plugin := otelgorm.NewPlugin(
		otelgorm.WithDBName(dbName),
		otelgorm.WithoutQueryVariables(),
	)
	return db.Use(plugin)
}
