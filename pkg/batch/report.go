package batch

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/coolbeans/servicecatalog/pkg/domain"
)

// Report summarizes one batch run.
type Report struct {
	// Source is the name of the drained source.
	Source string `json:"source"`

	// Pending is the queue length at the start of the run.
	Pending int `json:"pending"`

	// Processed is the number of snapshots merged successfully.
	Processed int `json:"processed"`

	// Failed is the number of snapshots moved to the failed ledger.
	Failed int `json:"failed"`

	// FailedSnapshots lists the failed snapshots in processing order.
	FailedSnapshots []domain.IRI `json:"failed_snapshots,omitempty"`

	// Outcomes counts successful merges by outcome.
	Outcomes map[string]int `json:"outcomes"`

	// LedgerErrors is the number of ledger entries that could not be written.
	LedgerErrors int `json:"ledger_errors"`

	// Duration is the wall time of the run.
	Duration time.Duration `json:"duration"`
}

// String returns a CLI-friendly summary of the batch report.
func (report *Report) String() string {
	var summaryBuilder strings.Builder

	summaryBuilder.WriteString(fmt.Sprintf("Batch Report (%s):\n", report.Source))
	summaryBuilder.WriteString(fmt.Sprintf("  Pending:       %d\n", report.Pending))
	summaryBuilder.WriteString(fmt.Sprintf("  Processed:     %d\n", report.Processed))
	summaryBuilder.WriteString(fmt.Sprintf("  Failed:        %d\n", report.Failed))
	if report.LedgerErrors > 0 {
		summaryBuilder.WriteString(fmt.Sprintf("  Ledger errors: %d\n", report.LedgerErrors))
	}
	summaryBuilder.WriteString(fmt.Sprintf("  Duration:      %s\n", report.Duration.Round(time.Millisecond)))

	if len(report.Outcomes) > 0 {
		summaryBuilder.WriteString("\nOutcomes:\n")
		for _, outcome := range slices.Sorted(maps.Keys(report.Outcomes)) {
			summaryBuilder.WriteString(fmt.Sprintf("  %-10s %d\n", outcome, report.Outcomes[outcome]))
		}
	}

	if len(report.FailedSnapshots) > 0 {
		summaryBuilder.WriteString("\nFailed snapshots:\n")
		for _, id := range report.FailedSnapshots {
			summaryBuilder.WriteString(fmt.Sprintf("  - %s\n", id))
		}
	}

	return summaryBuilder.String()
}
