// pkg/model/validation.go
package model

import "time"

// Violation is a single rule violation for one row of one table.
type Violation struct {
	Table    string `json:"table"`
	RowIndex int    `json:"row_index"`
	RowID    string `json:"id"`
	Message  string `json:"error"`
}

// Finding aggregates every violation recorded against a single
// (table, row index) pair. A row with no violations has no finding.
type Finding struct {
	Table    string   `json:"table"`
	RowIndex int      `json:"row_index"`
	RowID    string   `json:"id"`
	Errors   []string `json:"errors"`
}

// TableSummary is the per-table valid/total tally.
type TableSummary struct {
	Table      string `json:"table"`
	ValidCount int    `json:"valid_count"`
	TotalCount int    `json:"total_count"`
}

// ValidationReport bundles the full outcome of a validation run.
type ValidationReport struct {
	GeneratedAt    time.Time      `json:"generated_at"`
	Totals         map[string]int `json:"totals"`
	ValidCounts    map[string]int `json:"valid_counts"`
	InvalidCount   int            `json:"invalid_count"`
	InvalidRecords []Finding      `json:"invalid_records"`
}

// Passed reports whether every row of every table came out clean.
func (r *ValidationReport) Passed() bool {
	return r.InvalidCount == 0
}
