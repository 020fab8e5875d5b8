package fetch

import (
	"fmt"
	"strings"
	"time"
)

// Report summarizes one fetch.
type Report struct {
	// Graph is the named graph the fetch was scoped to.
	Graph string `json:"graph"`

	// Roots is the number of distinct root identifiers.
	Roots int `json:"roots"`

	// Rounds is the number of breadth-first rounds executed.
	Rounds int `json:"rounds"`

	// QueriedIDs is the number of distinct identifiers queried. Each id is
	// queried at most once.
	QueriedIDs int `json:"queried_ids"`

	// Quads is the number of quads in the closure.
	Quads int `json:"quads"`

	// Duration is the wall time of the fetch.
	Duration time.Duration `json:"duration"`
}

// String returns a CLI-friendly summary of the fetch report.
func (report *Report) String() string {
	var summaryBuilder strings.Builder

	summaryBuilder.WriteString("Fetch Report:\n")
	summaryBuilder.WriteString(fmt.Sprintf("  Graph:        %s\n", report.Graph))
	summaryBuilder.WriteString(fmt.Sprintf("  Roots:        %d\n", report.Roots))
	summaryBuilder.WriteString(fmt.Sprintf("  Rounds:       %d\n", report.Rounds))
	summaryBuilder.WriteString(fmt.Sprintf("  Queried ids:  %d\n", report.QueriedIDs))
	summaryBuilder.WriteString(fmt.Sprintf("  Quads:        %d\n", report.Quads))
	summaryBuilder.WriteString(fmt.Sprintf("  Duration:     %s\n", report.Duration.Round(time.Millisecond)))

	return summaryBuilder.String()
}
