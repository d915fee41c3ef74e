// pkg/sink/sink.go
package sink

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/plateful/recipe-egress/pkg/model"
	"github.com/plateful/recipe-egress/pkg/table"
)

// OutputWriter owns the output directory and serializes every pipeline
// artifact into it. Each artifact is written once per run, never appended.
type OutputWriter struct {
	dir    string
	logger *zap.Logger
}

// NewOutputWriter creates an OutputWriter rooted at dir
func NewOutputWriter(dir string, logger *zap.Logger) (*OutputWriter, error) {
	if dir == "" {
		return nil, errors.New("output directory cannot be empty")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	return &OutputWriter{
		dir:    dir,
		logger: logger,
	}, nil
}

// EnsureDir creates the output directory if it does not exist
func (w *OutputWriter) EnsureDir() error {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", w.dir, err)
	}
	return nil
}

// TablePath returns the CSV path for a table name
func (w *OutputWriter) TablePath(name string) string {
	return filepath.Join(w.dir, name+".csv")
}

// WriteTable serializes one table to <dir>/<name>.csv with a header row
func (w *OutputWriter) WriteTable(t *table.Table) error {
	path := w.TablePath(t.Name)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write(t.Columns); err != nil {
		return fmt.Errorf("failed to write header for %s: %w", t.Name, err)
	}
	for _, row := range t.Rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write row for %s: %w", t.Name, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", path, err)
	}

	w.logger.Info("Wrote table",
		zap.String("table", t.Name),
		zap.String("path", path),
		zap.Int("rows", t.Len()))

	return nil
}

// ReadTable loads <dir>/<name>.csv back into a table. A missing file is not
// an error: it yields an empty table with the canonical column layout.
func (w *OutputWriter) ReadTable(name string) (*table.Table, error) {
	path := w.TablePath(name)

	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		w.logger.Warn("Table file missing, treating as empty",
			zap.String("table", name),
			zap.String("path", path))
		return table.New(name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if len(records) == 0 {
		return table.New(name)
	}

	t := table.WithColumns(name, records[0])
	for _, record := range records[1:] {
		t.Append(record)
	}

	return t, nil
}

// WriteViolationsCSV writes the flat violation list artifact
func (w *OutputWriter) WriteViolationsCSV(violations []model.Violation) error {
	path := filepath.Join(w.dir, "validation_report.csv")

	records := make([][]string, 0, len(violations)+1)
	records = append(records, []string{"table", "row_index", "id", "error"})
	for _, v := range violations {
		records = append(records, []string{v.Table, fmt.Sprintf("%d", v.RowIndex), v.RowID, v.Message})
	}

	if err := w.writeCSV(path, records); err != nil {
		return err
	}

	w.logger.Info("Wrote validation report",
		zap.String("path", path),
		zap.Int("violations", len(violations)))

	return nil
}

// WriteSummaryCSV writes the per-table valid/total summary artifact
func (w *OutputWriter) WriteSummaryCSV(summaries []model.TableSummary) error {
	path := filepath.Join(w.dir, "validation_summary.csv")

	records := make([][]string, 0, len(summaries)+1)
	records = append(records, []string{"table", "valid_count", "total_count"})
	for _, s := range summaries {
		records = append(records, []string{s.Table, fmt.Sprintf("%d", s.ValidCount), fmt.Sprintf("%d", s.TotalCount)})
	}

	if err := w.writeCSV(path, records); err != nil {
		return err
	}

	w.logger.Info("Wrote validation summary", zap.String("path", path))
	return nil
}

// WriteValidationJSON writes the structured validation report artifact
func (w *OutputWriter) WriteValidationJSON(report *model.ValidationReport) error {
	path := filepath.Join(w.dir, "validation_report.json")

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal validation report: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	w.logger.Info("Wrote validation report JSON",
		zap.String("path", path),
		zap.Int("invalid_records", report.InvalidCount))

	return nil
}

// WriteAnalyticsSummary writes the formatted analytics text report
func (w *OutputWriter) WriteAnalyticsSummary(text string) error {
	path := filepath.Join(w.dir, "analytics_summary.txt")

	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	w.logger.Info("Wrote analytics summary", zap.String("path", path))
	return nil
}

// writeCSV writes records to path in one shot
func (w *OutputWriter) writeCSV(path string, records [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.WriteAll(records); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return cw.Error()
}
