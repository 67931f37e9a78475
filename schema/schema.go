// Package schema defines the shared data model for polarize:
// the tabular input container, metric result envelope, store records,
// and the enumerations used across commands and stores.
package schema

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Row is a single observation keyed by column name.
// Cell values are float64 for numeric data and string for categorical data.
type Row map[string]any

// Table is an ordered tabular dataset. Columns keep their declared order;
// rows keep insertion order. Metrics treat tables as read-only.
type Table struct {
	cols []string
	rows []Row
}

// NewTable creates an empty table with the given column order.
func NewTable(cols ...string) *Table {
	return &Table{cols: append([]string{}, cols...)}
}

// Columns returns a copy of the column names in declared order.
func (t *Table) Columns() []string {
	return append([]string{}, t.cols...)
}

// HasColumn reports whether the table declares the given column.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.cols {
		if c == name {
			return true
		}
	}
	return false
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.rows)
}

// Row returns the i-th row. The returned map is shared, not copied.
func (t *Table) Row(i int) Row {
	return t.rows[i]
}

// AppendRow copies the declared columns of r into a new row.
// Keys outside the table's column set are ignored.
func (t *Table) AppendRow(r Row) {
	row := make(Row, len(t.cols))
	for _, c := range t.cols {
		if v, ok := r[c]; ok {
			row[c] = v
		}
	}
	t.rows = append(t.rows, row)
}

// AppendValues appends a row from positional values matching the column order.
func (t *Table) AppendValues(vals ...any) error {
	if len(vals) != len(t.cols) {
		return fmt.Errorf("expected %d values, got %d", len(t.cols), len(vals))
	}
	row := make(Row, len(t.cols))
	for i, c := range t.cols {
		row[c] = vals[i]
	}
	t.rows = append(t.rows, row)
	return nil
}

// Value returns the raw cell value at row i, column col.
func (t *Table) Value(i int, col string) (any, bool) {
	v, ok := t.rows[i][col]
	return v, ok
}

// Float returns the cell at row i, column col coerced to float64.
// The second result is false when the cell is absent or non-numeric.
func (t *Table) Float(i int, col string) (float64, bool) {
	v, ok := t.rows[i][col]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}

// Label returns the cell at row i, column col formatted as a string.
// Missing cells format as the empty string.
func (t *Table) Label(i int, col string) string {
	v, ok := t.rows[i][col]
	if !ok || v == nil {
		return ""
	}
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'g', -1, 64)
	default:
		return fmt.Sprintf("%v", s)
	}
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	if t == nil {
		return nil
	}
	out := NewTable(t.cols...)
	for _, r := range t.rows {
		row := make(Row, len(r))
		for k, v := range r {
			row[k] = v
		}
		out.rows = append(out.rows, row)
	}
	return out
}

// tableJSON is the wire shape for Table serialization.
type tableJSON struct {
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// MarshalJSON implements json.Marshaler.
func (t *Table) MarshalJSON() ([]byte, error) {
	return json.Marshal(tableJSON{Columns: t.cols, Rows: t.rows})
}

// UnmarshalJSON implements json.Unmarshaler. Numeric cells decode as
// float64, matching the Table cell convention.
func (t *Table) UnmarshalJSON(data []byte) error {
	var wire tableJSON
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	t.cols = wire.Columns
	t.rows = wire.Rows
	return nil
}
