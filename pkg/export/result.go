// pkg/export/result.go
package export

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// ExportResult represents the outcome of one export run. Errors and
// warnings may be recorded from concurrent child fetches; the mutex guards
// those appends.
type ExportResult struct {
	RunID       string
	Success     bool
	RowCounts   map[string]int
	RowsLoaded  int64 // rows loaded into Postgres, 0 when the load is disabled
	Errors      []ErrorRecord
	Warnings    []string
	StartTime   time.Time
	EndTime     time.Time
	Duration    time.Duration

	mu sync.Mutex
}

// NewExportResult initializes an export result with a fresh run id
func NewExportResult() *ExportResult {
	return &ExportResult{
		RunID:     uuid.New().String(),
		StartTime: time.Now(),
		RowCounts: make(map[string]int),
		Errors:    make([]ErrorRecord, 0),
		Warnings:  make([]string, 0),
	}
}

// Complete marks the run as complete and calculates duration
func (r *ExportResult) Complete(success bool) {
	r.EndTime = time.Now()
	r.Duration = r.EndTime.Sub(r.StartTime)
	r.Success = success
}

// AddError adds an error to the result
func (r *ExportResult) AddError(err ErrorRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Errors = append(r.Errors, err)
}

// AddWarning adds a warning to the result
func (r *ExportResult) AddWarning(warning string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Warnings = append(r.Warnings, warning)
}

// SetRowCount records the exported row count for one table
func (r *ExportResult) SetRowCount(table string, count int) {
	r.RowCounts[table] = count
}

// TotalRows returns the number of rows across all exported tables
func (r *ExportResult) TotalRows() int {
	total := 0
	for _, count := range r.RowCounts {
		total += count
	}
	return total
}

// HasErrors checks if any errors occurred
func (r *ExportResult) HasErrors() bool {
	return len(r.Errors) > 0
}
