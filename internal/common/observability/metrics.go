// internal/common/observability/metrics.go
package observability

import (
	"context"
	"log"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
)

// Observability holds the otel meter provider exporting through the shared
// prometheus registry, plus the instruments the service records on.
type Observability struct {
	meterProvider *metric.MeterProvider
	meter         otelmetric.Meter
	decisionCount otelmetric.Int64Counter
	decisionTime  otelmetric.Float64Histogram
}

func New(serviceName string) *Observability {
	exporter, err := prometheus.New()
	if err != nil {
		log.Printf("Failed to create Prometheus exporter: %v", err)
		return &Observability{}
	}

	provider := metric.NewMeterProvider(metric.WithReader(exporter))
	otel.SetMeterProvider(provider)

	meter := provider.Meter(serviceName)

	decisionCount, _ := meter.Int64Counter(
		"triage.decisions",
		otelmetric.WithDescription("Number of triage decisions produced"),
	)

	decisionTime, _ := meter.Float64Histogram(
		"triage.decision.duration",
		otelmetric.WithDescription("Triage decision duration"),
		otelmetric.WithUnit("ms"),
	)

	return &Observability{
		meterProvider: provider,
		meter:         meter,
		decisionCount: decisionCount,
		decisionTime:  decisionTime,
	}
}

// RecordDecision counts one produced decision, labeled by risk level.
func (o *Observability) RecordDecision(ctx context.Context, riskLevel string) {
	if o.decisionCount != nil {
		o.decisionCount.Add(ctx, 1, otelmetric.WithAttributes(
			attribute.String("risk_level", riskLevel),
		))
	}
}

// RecordDecisionDuration records how long one evaluation took.
func (o *Observability) RecordDecisionDuration(ctx context.Context, duration time.Duration, riskLevel string) {
	if o.decisionTime != nil {
		o.decisionTime.Record(ctx, float64(duration.Milliseconds()), otelmetric.WithAttributes(
			attribute.String("risk_level", riskLevel),
		))
	}
}

func (o *Observability) Shutdown() {
	if o.meterProvider != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		o.meterProvider.Shutdown(ctx)
	}
}
