// pkg/table/table.go
package table

import (
	"fmt"

	"github.com/plateful/recipe-egress/pkg/model"
)

// Table is a flat, ordered collection of rows for one logical table. Rows
// keep the order they were appended in; nothing here re-sorts.
type Table struct {
	Name    string
	Columns []string
	Rows    [][]string

	colIndex map[string]int
}

// New creates an empty table with the canonical column layout for name
func New(name string) (*Table, error) {
	columns := model.Columns(name)
	if columns == nil {
		return nil, fmt.Errorf("unknown table name: %s", name)
	}
	return WithColumns(name, columns), nil
}

// WithColumns creates an empty table with an explicit column layout
func WithColumns(name string, columns []string) *Table {
	idx := make(map[string]int, len(columns))
	for i, col := range columns {
		idx[col] = i
	}
	return &Table{
		Name:     name,
		Columns:  columns,
		Rows:     make([][]string, 0),
		colIndex: idx,
	}
}

// Append adds one row. Short records are padded so every stored row has a
// value for every column.
func (t *Table) Append(record []string) {
	if len(record) < len(t.Columns) {
		padded := make([]string, len(t.Columns))
		copy(padded, record)
		record = padded
	}
	t.Rows = append(t.Rows, record)
}

// Len returns the number of rows
func (t *Table) Len() int {
	return len(t.Rows)
}

// Value returns the named column of a row, or "" when the column does not
// exist in this table
func (t *Table) Value(row int, column string) string {
	i, ok := t.colIndex[column]
	if !ok || row < 0 || row >= len(t.Rows) || i >= len(t.Rows[row]) {
		return ""
	}
	return t.Rows[row][i]
}

// RowID returns the best-effort natural key of a row
func (t *Table) RowID(row int) string {
	return t.Value(row, model.IDColumn(t.Name))
}

// Column returns every value of one column in row order
func (t *Table) Column(column string) []string {
	values := make([]string, 0, len(t.Rows))
	for i := range t.Rows {
		values = append(values, t.Value(i, column))
	}
	return values
}
