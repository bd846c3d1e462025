package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// latencyBuckets are in seconds, tuned for an interactive round trip.
var latencyBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}

// APIMetrics counts the console's REST calls and their latency.
type APIMetrics struct {
	requests metric.Int64Counter
	failures metric.Int64Counter
	latency  metric.Float64Histogram
}

// NewAPIMetrics registers the console.api.* instruments on meter.
func NewAPIMetrics(meter metric.Meter) (*APIMetrics, error) {
	requests, err := meter.Int64Counter("console.api.requests",
		metric.WithDescription("REST requests issued by the console"),
		metric.WithUnit("{request}"))
	if err != nil {
		return nil, fmt.Errorf("creating request counter: %w", err)
	}
	failures, err := meter.Int64Counter("console.api.failures",
		metric.WithDescription("REST requests that failed in transport or returned a non-2xx status"),
		metric.WithUnit("{request}"))
	if err != nil {
		return nil, fmt.Errorf("creating failure counter: %w", err)
	}
	latency, err := meter.Float64Histogram("console.api.duration",
		metric.WithDescription("REST request latency"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...))
	if err != nil {
		return nil, fmt.Errorf("creating latency histogram: %w", err)
	}
	return &APIMetrics{requests: requests, failures: failures, latency: latency}, nil
}

// Observe records one finished call. A status of 0 means the request never
// got a response.
func (m *APIMetrics) Observe(ctx context.Context, method, route string, status int, elapsed time.Duration) {
	set := metric.WithAttributeSet(attribute.NewSet(
		attribute.String("http.request.method", method),
		attribute.String("http.route", route),
		attribute.Int("http.response.status_code", status),
	))
	m.requests.Add(ctx, 1, set)
	m.latency.Record(ctx, elapsed.Seconds(), set)
	if status == 0 || status >= 300 {
		m.failures.Add(ctx, 1, set)
	}
}
