package services

import (
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "modelkit/services"

var (
	metricsOnce       sync.Once
	documentsCounter  metric.Int64Counter
	buildEntryCounter metric.Int64Counter
)

func tracer() trace.Tracer {
	return otel.Tracer(instrumentationName)
}

func initMetrics() {
	metricsOnce.Do(func() {
		meter := otel.Meter(instrumentationName)
		documentsCounter, _ = meter.Int64Counter("modelkit.validation.documents",
			metric.WithDescription("Validated documents by status and model type"))
		buildEntryCounter, _ = meter.Int64Counter("modelkit.manifest.entries",
			metric.WithDescription("Manifest entries extracted by builds"))
	})
}
