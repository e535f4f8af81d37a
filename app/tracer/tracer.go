package tracer

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// InitTracingAndMetrics installs the global tracer and meter providers and
// serves the prometheus scrape endpoint on metricsPort. An empty port skips
// the scrape server.
func InitTracingAndMetrics(logger *slog.Logger, serviceName, metricsPort string) (*trace.TracerProvider, *metric.MeterProvider, error) {
	tp := trace.NewTracerProvider(
		trace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String(serviceName),
		)),
	)
	otel.SetTracerProvider(tp)

	exporter, err := prometheus.New()
	if err != nil {
		return nil, nil, err
	}
	mp := metric.NewMeterProvider(metric.WithReader(exporter))
	otel.SetMeterProvider(mp)

	if metricsPort == "" {
		return tp, mp, nil
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	go func() {
		logger.Info("Prometheus metrics server starting", slog.String("port", metricsPort))
		if err := http.ListenAndServe(":"+metricsPort, mux); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Prometheus metrics server failed", slog.Any("error", err))
		}
	}()
	return tp, mp, nil
}
