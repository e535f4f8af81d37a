package metrics

import (
	"log"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// AppMetrics holds the application's metric instruments.
// Fields are public so feature packages can record on them.
type AppMetrics struct {
	ImageStageRequestsTotal   metric.Int64Counter
	ImageStageDurationSeconds metric.Float64Histogram
	ImageCacheHitsTotal       metric.Int64Counter
	CandidatesExtractedTotal  metric.Int64Counter
	BackendErrorsTotal        metric.Int64Counter
}

var (
	appMetrics *AppMetrics
	once       sync.Once
)

// InitAppMetrics initializes the global metrics instruments ONLY ONCE.
// It gets the Meter from the globally configured MeterProvider.
func InitAppMetrics() {
	once.Do(func() {
		meter := otel.GetMeterProvider().Meter("Voyage")
		var err error
		m := &AppMetrics{}

		m.ImageStageRequestsTotal, err = meter.Int64Counter(
			"image_stage_requests_total",
			metric.WithDescription("Encyclopedia lookups per resolution stage and outcome"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create image_stage_requests_total: %v", err)
		}

		m.ImageStageDurationSeconds, err = meter.Float64Histogram(
			"image_stage_duration_seconds",
			metric.WithDescription("Duration of a single resolution stage in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create image_stage_duration_seconds: %v", err)
		}

		m.ImageCacheHitsTotal, err = meter.Int64Counter(
			"image_cache_hits_total",
			metric.WithDescription("Destinations served from the image cache"),
			metric.WithUnit("{hit}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create image_cache_hits_total: %v", err)
		}

		m.CandidatesExtractedTotal, err = meter.Int64Counter(
			"destination_candidates_extracted_total",
			metric.WithDescription("Destination candidates returned by the extractor"),
			metric.WithUnit("{candidate}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create destination_candidates_extracted_total: %v", err)
		}

		m.BackendErrorsTotal, err = meter.Int64Counter(
			"chat_backend_errors_total",
			metric.WithDescription("Failed calls to the chat backend"),
			metric.WithUnit("{error}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create chat_backend_errors_total: %v", err)
		}

		log.Println("Application metrics instruments initialized.")
		appMetrics = m
	})
}

// Get returns the globally initialized AppMetrics instance.
// Panics if InitAppMetrics was not called first.
func Get() *AppMetrics {
	if appMetrics == nil {
		panic("metrics instruments not initialized. Call metrics.InitAppMetrics() first.")
	}
	return appMetrics
}
