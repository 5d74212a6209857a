// Package types contains common types used across the application
package types

import (
	"fmt"
	"strconv"
)

// Table is one KPI result: ordered columns and rows of scalar cells.
type Table struct {
	Name    string   `json:"name" yaml:"name"`
	Columns []string `json:"columns" yaml:"columns"`
	Rows    [][]any  `json:"rows" yaml:"rows"`
}

// Len returns the number of rows.
func (t Table) Len() int {
	return len(t.Rows)
}

// Header returns a copy of the column names.
func (t Table) Header() []string {
	out := make([]string, len(t.Columns))
	copy(out, t.Columns)
	return out
}

// Records renders every row as strings, in column order.
func (t Table) Records() [][]string {
	out := make([][]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		rec := make([]string, len(row))
		for i, cell := range row {
			rec[i] = FormatCell(cell)
		}
		out = append(out, rec)
	}
	return out
}

// Maps returns each row keyed by column name.
func (t Table) Maps() []map[string]any {
	out := make([]map[string]any, 0, len(t.Rows))
	for _, row := range t.Rows {
		m := make(map[string]any, len(t.Columns))
		for i, col := range t.Columns {
			if i < len(row) {
				m[col] = row[i]
			}
		}
		out = append(out, m)
	}
	return out
}

// FormatCell renders a scalar cell. Nil renders as the empty string.
func FormatCell(v any) string {
	switch c := v.(type) {
	case nil:
		return ""
	case string:
		return c
	case []byte:
		return string(c)
	case int64:
		return strconv.FormatInt(c, 10)
	case int:
		return strconv.Itoa(c)
	case float64:
		return strconv.FormatFloat(c, 'f', -1, 64)
	case bool:
		if c {
			return "1"
		}
		return "0"
	default:
		return fmt.Sprint(c)
	}
}
