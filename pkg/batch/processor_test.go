package batch

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coolbeans/servicecatalog/pkg/codec"
	"github.com/coolbeans/servicecatalog/pkg/domain"
	"github.com/coolbeans/servicecatalog/pkg/domain/domaintest"
	"github.com/coolbeans/servicecatalog/pkg/fetch"
	"github.com/coolbeans/servicecatalog/pkg/merge"
	"github.com/coolbeans/servicecatalog/pkg/rdf"
	"github.com/coolbeans/servicecatalog/pkg/repository"
	"github.com/coolbeans/servicecatalog/pkg/store"
	"github.com/coolbeans/servicecatalog/pkg/vocabulary"
)

// stubMerger fails the snapshots in failures, once per entry in the slice.
type stubMerger struct {
	failures map[domain.IRI][]error
	attempts map[domain.IRI]int
	order    []domain.IRI
}

func newStubMerger() *stubMerger {
	return &stubMerger{failures: make(map[domain.IRI][]error), attempts: make(map[domain.IRI]int)}
}

func (stub *stubMerger) failAlways(id domain.IRI, err error) {
	stub.failures[id] = []error{err, err, err, err, err}
}

func (stub *stubMerger) Merge(_ context.Context, reference repository.SnapshotReference) (merge.Outcome, error) {
	stub.attempts[reference.ID]++
	stub.order = append(stub.order, reference.ID)
	if failures := stub.failures[reference.ID]; len(failures) > 0 {
		stub.failures[reference.ID] = failures[1:]
		return 0, failures[0]
	}
	return merge.OutcomeUpdated, nil
}

var testSource = Source{
	Name:  "concepts",
	Graph: vocabulary.GraphConceptSnapshots,
	Class: vocabulary.ClassConceptSnapshot,
}

func testConfig() Config {
	return Config{MaxAttempts: 3, RetryDelay: time.Millisecond}
}

// newTestLedger publishes one snapshot per id, a day apart in the given order.
func newTestLedger(t *testing.T, ids ...domain.IRI) (*repository.Ledger, *store.QuadStore) {
	t.Helper()
	quadStore := store.NewQuadStore()
	graph := testSource.Graph
	for i, id := range ids {
		subject := rdf.IRI(id.String())
		generatedAt := domaintest.Date(2024, time.January, 1+i)
		require.NoError(t, quadStore.Insert(context.Background(), graph, []rdf.Quad{
			rdf.NewQuad(subject, rdf.Type, rdf.IRI(testSource.Class), graph),
			rdf.NewQuad(subject, vocabulary.GeneratedAtTime, codec.DateTimeLiteral(generatedAt), graph),
		}))
	}
	repositories := repository.New(quadStore, fetch.NewFetcher(quadStore, fetch.DefaultConfig(), nil),
		codec.New(), repository.DefaultGraphs(), domain.SequentialIdentities(), nil)
	return repositories.Ledger, quadStore
}

func ledgerEntries(t *testing.T, quadStore *store.QuadStore, predicate string) []domain.IRI {
	t.Helper()
	quads, err := quadStore.Find(context.Background(), rdf.Pattern{Graph: vocabulary.GraphLedger, Predicate: predicate})
	require.NoError(t, err)
	var ids []domain.IRI
	for _, quad := range quads {
		ids = append(ids, domain.IRI(quad.Subject.Value))
	}
	return domain.SortedSet(ids)
}

func TestProcessor_Process_PartialFailureIsolation(t *testing.T) {
	first := domaintest.ConceptSnapshotID("a-first")
	second := domaintest.ConceptSnapshotID("b-second")
	third := domaintest.ConceptSnapshotID("c-third")
	ledger, quadStore := newTestLedger(t, first, second, third)

	merger := newStubMerger()
	merger.failAlways(second, domain.NewSystemError(errors.New("store unavailable"), "failed to read snapshot"))

	processor, err := NewProcessor(testSource, merger, ledger, testConfig(), nil, nil)
	require.NoError(t, err)

	report, err := processor.Process(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, report.Pending)
	assert.Equal(t, 2, report.Processed)
	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, []domain.IRI{second}, report.FailedSnapshots)
	assert.Equal(t, map[string]int{"updated": 2}, report.Outcomes)

	assert.Equal(t, []domain.IRI{first, third}, ledgerEntries(t, quadStore, vocabulary.ProcessedIn))
	assert.Equal(t, []domain.IRI{second}, ledgerEntries(t, quadStore, vocabulary.FailedIn))
	assert.Equal(t, 3, merger.attempts[second])
	assert.Equal(t, []domain.IRI{first, second, second, second, third}, merger.order)

	// Nothing is left for the next run.
	again, err := processor.Process(context.Background())
	require.NoError(t, err)
	assert.Zero(t, again.Pending)
}

func TestProcessor_Process_Retry(t *testing.T) {
	tests := []struct {
		name          string
		failures      []error
		wantAttempts  int
		wantProcessed int
		wantFailed    int
	}{
		{
			name:          "transient failure",
			failures:      []error{domain.NewSystemError(errors.New("timeout"), "failed to query store")},
			wantAttempts:  2,
			wantProcessed: 1,
		},
		{
			name:         "invariant violation is not retried",
			failures:     []error{domain.NewInvariantError("order 0 is used twice in requirements")},
			wantAttempts: 1,
			wantFailed:   1,
		},
		{
			name: "concurrent update is retried",
			failures: []error{
				domain.NewConcurrentUpdateError("concept changed"),
				domain.NewConcurrentUpdateError("concept changed"),
			},
			wantAttempts:  3,
			wantProcessed: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := domaintest.ConceptSnapshotID("parking-1")
			ledger, _ := newTestLedger(t, id)
			merger := newStubMerger()
			merger.failures[id] = tt.failures

			processor, err := NewProcessor(testSource, merger, ledger, testConfig(), nil, nil)
			require.NoError(t, err)
			report, err := processor.Process(context.Background())
			require.NoError(t, err)

			assert.Equal(t, tt.wantAttempts, merger.attempts[id])
			assert.Equal(t, tt.wantProcessed, report.Processed)
			assert.Equal(t, tt.wantFailed, report.Failed)
		})
	}
}

type cancellingMerger struct {
	*stubMerger
	cancel context.CancelFunc
}

func (merger cancellingMerger) Merge(ctx context.Context, reference repository.SnapshotReference) (merge.Outcome, error) {
	defer merger.cancel()
	return merger.stubMerger.Merge(ctx, reference)
}

func TestProcessor_Process_Cancelled(t *testing.T) {
	first := domaintest.ConceptSnapshotID("parking-1")
	ledger, _ := newTestLedger(t, first, domaintest.ConceptSnapshotID("parking-2"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	merger := cancellingMerger{stubMerger: newStubMerger(), cancel: cancel}
	processor, err := NewProcessor(testSource, merger, ledger, testConfig(), nil, nil)
	require.NoError(t, err)

	report, err := processor.Process(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 2, report.Pending)
	assert.Equal(t, 1, report.Processed)
	assert.Equal(t, []domain.IRI{first}, merger.order)
}

type brokenLedger struct {
	*repository.Ledger
}

func (brokenLedger) MarkProcessed(context.Context, repository.SnapshotReference) error {
	return errors.New("ledger graph is read-only")
}

func TestProcessor_Process_LedgerErrorKeepsSnapshotPending(t *testing.T) {
	id := domaintest.ConceptSnapshotID("parking-1")
	ledger, _ := newTestLedger(t, id)
	processor, err := NewProcessor(testSource, newStubMerger(), brokenLedger{ledger}, testConfig(), nil, nil)
	require.NoError(t, err)

	report, err := processor.Process(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.Processed)
	assert.Equal(t, 1, report.LedgerErrors)

	pending, err := ledger.Pending(context.Background(), testSource.Graph, testSource.Class)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, id, pending[0].ID)
}

func TestProcessor_Metrics(t *testing.T) {
	first := domaintest.ConceptSnapshotID("parking-1")
	second := domaintest.ConceptSnapshotID("parking-2")
	ledger, _ := newTestLedger(t, first, second)
	merger := newStubMerger()
	merger.failAlways(second, errors.New("boom"))

	registry := prometheus.NewRegistry()
	processor, err := NewProcessor(testSource, merger, ledger, testConfig(), registry, nil)
	require.NoError(t, err)

	// A second processor shares the registered collectors.
	instances := Source{Name: "instances", Graph: vocabulary.GraphInstanceSnapshots, Class: vocabulary.ClassInstanceSnapshot}
	_, err = NewProcessor(instances, merger, ledger, testConfig(), registry, nil)
	require.NoError(t, err)

	_, err = processor.Process(context.Background())
	require.NoError(t, err)

	m := processor.metrics
	assert.Equal(t, 1.0, testutil.ToFloat64(m.snapshotsTotal.WithLabelValues("concepts", "processed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.snapshotsTotal.WithLabelValues("concepts", "failed")))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.attemptsTotal.WithLabelValues("concepts")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.outcomesTotal.WithLabelValues("concepts", "updated")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.pending.WithLabelValues("concepts")))
}

func TestReport_String(t *testing.T) {
	report := &Report{
		Source:          "concepts",
		Pending:         3,
		Processed:       2,
		Failed:          1,
		FailedSnapshots: []domain.IRI{domaintest.ConceptSnapshotID("b-second")},
		Outcomes:        map[string]int{"updated": 1, "created": 1},
		Duration:        1500 * time.Millisecond,
	}

	output := report.String()
	assert.Contains(t, output, "Batch Report (concepts):")
	assert.Contains(t, output, "Processed:     2")
	assert.Contains(t, output, "Duration:      1.5s")
	assert.Less(t, strings.Index(output, "created"), strings.Index(output, "updated"))
	assert.Contains(t, output, "  - https://ipdc.vlaanderen.be/id/conceptsnapshot/b-second")
	assert.NotContains(t, output, "Ledger errors")
}

func TestConfig_Retry(t *testing.T) {
	config := Config{MaxAttempts: 4, RetryDelay: 2 * time.Second}.retry()
	assert.Equal(t, 4, config.MaxAttempts)
	assert.Equal(t, 2*time.Second, config.InitialDelay)
	assert.Equal(t, 2*time.Second, config.MaxDelay)
	assert.Equal(t, 1.0, config.Multiplier)
	assert.False(t, config.AddJitter)
}
