package telemetry

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/rios0rios0/sqlplayground/internal/domain/entities"
)

// ServiceName is reported as the OpenTelemetry service.name resource attribute.
const ServiceName = "sqlplayground"

// Setup installs a global OTLP/HTTP tracer provider when an endpoint is
// configured. Without one it leaves the no-op provider in place. The returned
// function flushes pending spans and should be deferred by the caller.
func Setup(ctx context.Context, settings entities.TelemetrySettings) (func(context.Context) error, error) {
	noop := func(context.Context) error { return nil }

	if settings.Endpoint == "" {
		logger.Debug("Tracing disabled: no telemetry endpoint configured")
		return noop, nil
	}

	exporter, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(settings.Endpoint))
	if err != nil {
		return noop, fmt.Errorf("failed to create trace exporter: %w", err)
	}

	res, err := resource.New(ctx, resource.WithAttributes(semconv.ServiceName(ServiceName)))
	if err != nil {
		return noop, fmt.Errorf("failed to build trace resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	logger.Infof("Exporting traces to %s", settings.Endpoint)
	return tp.Shutdown, nil
}
