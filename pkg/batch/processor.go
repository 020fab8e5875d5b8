// Package batch drains the queue of pending snapshots through a merger. Each
// snapshot is retried a fixed number of times with a fixed delay, and a
// snapshot that keeps failing is moved to the failed ledger without stopping
// the run.
package batch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/c360studio/semstreams/pkg/retry"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/coolbeans/servicecatalog/pkg/domain"
	"github.com/coolbeans/servicecatalog/pkg/merge"
	"github.com/coolbeans/servicecatalog/pkg/repository"
)

// Merger merges one snapshot into its canonical record.
type Merger interface {
	Merge(ctx context.Context, reference repository.SnapshotReference) (merge.Outcome, error)
}

// Ledger is the queue of pending snapshots and the record of finished ones.
type Ledger interface {
	Pending(ctx context.Context, sourceGraph, class string) ([]repository.SnapshotReference, error)
	MarkProcessed(ctx context.Context, reference repository.SnapshotReference) error
	MarkFailed(ctx context.Context, reference repository.SnapshotReference) error
}

var _ Ledger = (*repository.Ledger)(nil)

// Source names the snapshots a processor drains.
type Source struct {
	// Name labels logs and metrics, e.g. "concepts".
	Name string
	// Graph is the graph the snapshots are published in.
	Graph string
	// Class is the rdf:type of the snapshots.
	Class string
}

// Config controls the retry of one snapshot.
type Config struct {
	// MaxAttempts is the number of merge attempts per snapshot.
	MaxAttempts int `yaml:"max_attempts" validate:"min=1"`
	// RetryDelay is the fixed pause between attempts.
	RetryDelay time.Duration `yaml:"retry_delay" validate:"gt=0"`
}

// DefaultConfig returns three attempts one second apart.
func DefaultConfig() Config {
	return Config{MaxAttempts: 3, RetryDelay: time.Second}
}

func (config Config) retry() retry.Config {
	return retry.Config{
		MaxAttempts:  config.MaxAttempts,
		InitialDelay: config.RetryDelay,
		MaxDelay:     config.RetryDelay,
		Multiplier:   1.0,
		AddJitter:    false,
	}
}

// Processor runs the merge of every pending snapshot of one source.
type Processor struct {
	source  Source
	merger  Merger
	ledger  Ledger
	config  Config
	metrics *batchMetrics
	logger  *slog.Logger
}

// NewProcessor creates a Processor. Metrics are registered on registerer when
// it is not nil. A nil logger uses slog.Default().
func NewProcessor(
	source Source,
	merger Merger,
	ledger Ledger,
	config Config,
	registerer prometheus.Registerer,
	logger *slog.Logger,
) (*Processor, error) {
	if logger == nil {
		logger = slog.Default()
	}
	metrics, err := newBatchMetrics(registerer)
	if err != nil {
		return nil, fmt.Errorf("failed to register batch metrics: %w", err)
	}
	return &Processor{
		source:  source,
		merger:  merger,
		ledger:  ledger,
		config:  config,
		metrics: metrics,
		logger:  logger.With("source", source.Name),
	}, nil
}

// Process merges the pending snapshots oldest first. A snapshot whose merge
// succeeds is marked processed; one that fails on every attempt, or fails
// with an invariant violation, is marked failed and the run continues with
// the next one.
//
// Process only returns an error when the queue cannot be read or ctx is
// done. The report then covers the snapshots handled so far.
func (processor *Processor) Process(ctx context.Context) (*Report, error) {
	startedAt := time.Now()
	report := &Report{Source: processor.source.Name, Outcomes: make(map[string]int)}

	pending, err := processor.ledger.Pending(ctx, processor.source.Graph, processor.source.Class)
	if err != nil {
		return report, fmt.Errorf("failed to read pending %s: %w", processor.source.Name, err)
	}
	report.Pending = len(pending)
	processor.metrics.recordPending(processor.source.Name, len(pending))
	processor.logger.Info("processing pending snapshots", "pending", len(pending))

	for _, reference := range pending {
		if err := ctx.Err(); err != nil {
			report.Duration = time.Since(startedAt)
			return report, err
		}
		processor.processOne(ctx, reference, report)
	}

	report.Duration = time.Since(startedAt)
	processor.logger.Info("processed pending snapshots",
		"processed", report.Processed,
		"failed", report.Failed,
		"duration", report.Duration)
	return report, nil
}

func (processor *Processor) processOne(ctx context.Context, reference repository.SnapshotReference, report *Report) {
	startedAt := time.Now()
	attempts := 0
	var outcome merge.Outcome

	err := retry.Do(ctx, processor.config.retry(), func() error {
		attempts++
		var mergeErr error
		outcome, mergeErr = processor.merger.Merge(ctx, reference)
		if mergeErr != nil && domain.IsInvariant(mergeErr) {
			return retry.NonRetryable(mergeErr)
		}
		if mergeErr != nil {
			processor.logger.Warn("merge attempt failed",
				"snapshot", reference.ID,
				"attempt", attempts,
				"error", mergeErr)
		}
		return mergeErr
	})

	if err != nil {
		processor.logger.Error("failed to process snapshot",
			"snapshot", reference.ID,
			"graph", reference.Graph,
			"attempts", attempts,
			"error", err)
		report.Failed++
		report.FailedSnapshots = append(report.FailedSnapshots, reference.ID)
		processor.metrics.recordSnapshot(processor.source.Name, "failed", attempts, time.Since(startedAt))
		processor.mark(ctx, reference, processor.ledger.MarkFailed, report)
		return
	}

	report.Processed++
	report.Outcomes[outcome.String()]++
	processor.metrics.recordSnapshot(processor.source.Name, "processed", attempts, time.Since(startedAt))
	processor.metrics.recordOutcome(processor.source.Name, outcome.String())
	processor.logger.Debug("processed snapshot",
		"snapshot", reference.ID,
		"outcome", outcome,
		"attempts", attempts)
	processor.mark(ctx, reference, processor.ledger.MarkProcessed, report)
}

// mark writes a ledger entry. A snapshot whose entry cannot be written stays
// pending and is picked up again by the next run.
func (processor *Processor) mark(
	ctx context.Context,
	reference repository.SnapshotReference,
	mark func(context.Context, repository.SnapshotReference) error,
	report *Report,
) {
	if err := mark(ctx, reference); err != nil {
		report.LedgerErrors++
		processor.logger.Error("failed to write ledger entry",
			"snapshot", reference.ID,
			"error", err)
	}
}
