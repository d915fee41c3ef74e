package sink

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/plateful/recipe-egress/pkg/model"
	"github.com/plateful/recipe-egress/pkg/table"
)

func newWriter(t *testing.T) (*OutputWriter, string) {
	t.Helper()
	dir := t.TempDir()
	w, err := NewOutputWriter(dir, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, w.EnsureDir())
	return w, dir
}

func TestNewOutputWriterValidation(t *testing.T) {
	_, err := NewOutputWriter("", zap.NewNop())
	assert.Error(t, err)

	_, err = NewOutputWriter(t.TempDir(), nil)
	assert.Error(t, err)
}

func TestWriteReadTableRoundTrip(t *testing.T) {
	w, _ := newWriter(t)

	original, err := table.New(model.TableSteps)
	require.NoError(t, err)
	original.Append(model.StepRow{RecipeID: "r1", StepID: "s1", Order: "1", Text: "Chop the onions"}.Record())
	original.Append(model.StepRow{RecipeID: "r1", StepID: "s2", Order: "2", Text: "Stir, then simmer"}.Record())

	require.NoError(t, w.WriteTable(original))

	loaded, err := w.ReadTable(model.TableSteps)
	require.NoError(t, err)

	assert.Equal(t, original.Columns, loaded.Columns)
	assert.Equal(t, original.Rows, loaded.Rows)
	// Embedded commas survive the round trip
	assert.Equal(t, "Stir, then simmer", loaded.Value(1, "text"))
}

func TestReadTableMissingFileIsEmpty(t *testing.T) {
	w, _ := newWriter(t)

	loaded, err := w.ReadTable(model.TableRecipes)
	require.NoError(t, err)

	assert.Equal(t, model.RecipeColumns, loaded.Columns)
	assert.Zero(t, loaded.Len())
}

func TestWriteViolationsCSV(t *testing.T) {
	w, dir := newWriter(t)

	violations := []model.Violation{
		{Table: "recipe", RowIndex: 3, RowID: "r4", Message: "missing name"},
		{Table: "steps", RowIndex: 0, RowID: "s1", Message: `order must be an integer >= 1 (got "2.5")`},
	}
	require.NoError(t, w.WriteViolationsCSV(violations))

	data, err := os.ReadFile(filepath.Join(dir, "validation_report.csv"))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "table,row_index,id,error", lines[0])
	assert.Equal(t, "recipe,3,r4,missing name", lines[1])
	assert.Contains(t, lines[2], "steps,0,s1,")
}

func TestWriteSummaryCSV(t *testing.T) {
	w, dir := newWriter(t)

	require.NoError(t, w.WriteSummaryCSV([]model.TableSummary{
		{Table: "recipe", ValidCount: 8, TotalCount: 10},
	}))

	data, err := os.ReadFile(filepath.Join(dir, "validation_summary.csv"))
	require.NoError(t, err)
	assert.Equal(t, "table,valid_count,total_count\nrecipe,8,10\n", string(data))
}

func TestWriteValidationJSON(t *testing.T) {
	w, dir := newWriter(t)

	report := &model.ValidationReport{
		GeneratedAt:  time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		Totals:       map[string]int{"recipe": 2},
		ValidCounts:  map[string]int{"recipe": 1},
		InvalidCount: 1,
		InvalidRecords: []model.Finding{
			{Table: "recipe", RowIndex: 1, RowID: "r2", Errors: []string{"missing name"}},
		},
	}
	require.NoError(t, w.WriteValidationJSON(report))

	data, err := os.ReadFile(filepath.Join(dir, "validation_report.json"))
	require.NoError(t, err)

	var decoded model.ValidationReport
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, report.InvalidCount, decoded.InvalidCount)
	require.Len(t, decoded.InvalidRecords, 1)
	assert.Equal(t, "r2", decoded.InvalidRecords[0].RowID)
}

func TestWriteAnalyticsSummary(t *testing.T) {
	w, dir := newWriter(t)

	require.NoError(t, w.WriteAnalyticsSummary("Recipe Analytics Summary\n"))

	data, err := os.ReadFile(filepath.Join(dir, "analytics_summary.txt"))
	require.NoError(t, err)
	assert.Equal(t, "Recipe Analytics Summary\n", string(data))
}

func TestEnsureDirCreatesNestedPath(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out", "nested")
	w, err := NewOutputWriter(dir, zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, w.EnsureDir())
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
