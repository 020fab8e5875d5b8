package batch

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// batchMetrics holds Prometheus metrics for batch runs.
type batchMetrics struct {
	snapshotsTotal *prometheus.CounterVec   // By source and result (processed/failed)
	attemptsTotal  *prometheus.CounterVec   // By source
	outcomesTotal  *prometheus.CounterVec   // By source and merge outcome
	mergeDuration  *prometheus.HistogramVec // By source
	pending        *prometheus.GaugeVec     // By source
}

// newBatchMetrics creates and registers batch metrics with registerer. A nil
// registerer disables metrics.
func newBatchMetrics(registerer prometheus.Registerer) (*batchMetrics, error) {
	if registerer == nil {
		return nil, nil
	}

	m := &batchMetrics{
		snapshotsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "servicecatalog",
			Subsystem: "batch",
			Name:      "snapshots_total",
			Help:      "Total number of snapshots moved to the processed or failed ledger",
		}, []string{"source", "result"}),

		attemptsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "servicecatalog",
			Subsystem: "batch",
			Name:      "merge_attempts_total",
			Help:      "Total number of merge attempts, retries included",
		}, []string{"source"}),

		outcomesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "servicecatalog",
			Subsystem: "batch",
			Name:      "merge_outcomes_total",
			Help:      "Total number of successful merges by outcome",
		}, []string{"source", "outcome"}),

		mergeDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "servicecatalog",
			Subsystem: "batch",
			Name:      "snapshot_duration_seconds",
			Help:      "Time spent on one snapshot, retries included",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30},
		}, []string{"source"}),

		pending: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "servicecatalog",
			Subsystem: "batch",
			Name:      "pending_snapshots",
			Help:      "Number of pending snapshots at the start of the last run",
		}, []string{"source"}),
	}

	var err error
	if m.snapshotsTotal, err = register(registerer, m.snapshotsTotal); err != nil {
		return nil, err
	}
	if m.attemptsTotal, err = register(registerer, m.attemptsTotal); err != nil {
		return nil, err
	}
	if m.outcomesTotal, err = register(registerer, m.outcomesTotal); err != nil {
		return nil, err
	}
	if m.mergeDuration, err = register(registerer, m.mergeDuration); err != nil {
		return nil, err
	}
	if m.pending, err = register(registerer, m.pending); err != nil {
		return nil, err
	}
	return m, nil
}

// register registers collector, reusing the collector already registered
// under the same descriptor so that processors can share one registry.
func register[C prometheus.Collector](registerer prometheus.Registerer, collector C) (C, error) {
	err := registerer.Register(collector)
	if err == nil {
		return collector, nil
	}
	var already prometheus.AlreadyRegisteredError
	if errors.As(err, &already) {
		if existing, ok := already.ExistingCollector.(C); ok {
			return existing, nil
		}
	}
	return collector, err
}

func (m *batchMetrics) recordPending(source string, count int) {
	if m == nil {
		return
	}
	m.pending.WithLabelValues(source).Set(float64(count))
}

func (m *batchMetrics) recordSnapshot(source, result string, attempts int, duration time.Duration) {
	if m == nil {
		return
	}
	m.snapshotsTotal.WithLabelValues(source, result).Inc()
	m.attemptsTotal.WithLabelValues(source).Add(float64(attempts))
	m.mergeDuration.WithLabelValues(source).Observe(duration.Seconds())
}

func (m *batchMetrics) recordOutcome(source, outcome string) {
	if m == nil {
		return
	}
	m.outcomesTotal.WithLabelValues(source, outcome).Inc()
}
