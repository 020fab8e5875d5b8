package merge

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Package-level tracer and meter for merge operations.
var (
	tracer = otel.Tracer("servicecatalog.merge")
	meter  = otel.Meter("servicecatalog.merge")
)

// Metrics for merge operations.
var (
	mergeLatency     metric.Float64Histogram
	mergeTotal       metric.Int64Counter
	sideEffectsTotal metric.Int64Counter

	metricsOnce sync.Once
	metricsErr  error
)

// initMetrics initializes the metrics. Safe to call multiple times.
func initMetrics() error {
	metricsOnce.Do(func() {
		var err error

		mergeLatency, err = meter.Float64Histogram(
			"merge_duration_seconds",
			metric.WithDescription("Duration of snapshot merges"),
			metric.WithUnit("s"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		mergeTotal, err = meter.Int64Counter(
			"merge_total",
			metric.WithDescription("Total number of snapshot merges by outcome"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		sideEffectsTotal, err = meter.Int64Counter(
			"merge_side_effects_total",
			metric.WithDescription("Total number of records touched by merge side effects"),
		)
		if err != nil {
			metricsErr = err
			return
		}
	})
	return metricsErr
}

// startMergeSpan creates a span for the merge of one snapshot.
func startMergeSpan(ctx context.Context, name, snapshotID string) (context.Context, trace.Span) {
	return tracer.Start(ctx, name,
		trace.WithAttributes(
			attribute.String("merge.snapshot", snapshotID),
		),
	)
}

// setMergeSpanResult sets the result attributes on a merge span.
func setMergeSpanResult(span trace.Span, outcome Outcome, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return
	}
	span.SetAttributes(attribute.String("merge.outcome", outcome.String()))
}

// recordMergeMetrics records metrics for the merge of one snapshot.
func recordMergeMetrics(ctx context.Context, kind string, duration time.Duration, outcome Outcome, success bool) {
	if err := initMetrics(); err != nil {
		return
	}

	attrs := metric.WithAttributes(
		attribute.String("kind", kind),
		attribute.String("outcome", outcome.String()),
		attribute.Bool("success", success),
	)

	mergeLatency.Record(ctx, duration.Seconds(), attrs)
	mergeTotal.Add(ctx, 1, attrs)
}

// recordSideEffects records how many records a side effect touched.
func recordSideEffects(ctx context.Context, effect string, count int) {
	if count == 0 {
		return
	}
	if err := initMetrics(); err != nil {
		return
	}
	sideEffectsTotal.Add(ctx, int64(count), metric.WithAttributes(
		attribute.String("effect", effect),
	))
}
