// Package tabular gives row-oriented access to tables with named columns.
// Column names are matched after trimming, lower-casing and replacing
// spaces with underscores, so "Asset Code" and "asset_code" are the same
// column.
package tabular

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/gnames/gnlib"
)

// Table is a header and its data rows.
type Table struct {
	columns map[string]int
	header  []string
	rows    [][]string
}

// New creates a Table. When a column name repeats, the first occurrence
// is used.
func New(header []string, rows [][]string) *Table {
	res := &Table{
		columns: make(map[string]int, len(header)),
		header:  header,
		rows:    rows,
	}
	for i, v := range header {
		key := ColumnKey(v)
		if _, ok := res.columns[key]; !ok && key != "" {
			res.columns[key] = i
		}
	}
	return res
}

// ColumnKey normalizes a column name.
func ColumnKey(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.Join(strings.Fields(name), "_")
}

// Header returns column names as given.
func (t *Table) Header() []string {
	return t.header
}

// Len is the number of data rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Has reports whether a column is present.
func (t *Table) Has(column string) bool {
	_, ok := t.columns[ColumnKey(column)]
	return ok
}

// Missing returns the columns from the list that are absent.
func (t *Table) Missing(columns ...string) []string {
	var res []string
	for _, v := range columns {
		if !t.Has(v) {
			res = append(res, v)
		}
	}
	return res
}

// Row returns the i-th data row (0-based).
func (t *Table) Row(i int) Row {
	return Row{table: t, cells: t.rows[i]}
}

// Row is a view on one data row.
type Row struct {
	table *Table
	cells []string
}

// Text returns the trimmed cell value and whether the cell holds a
// non-blank value. Invalid UTF-8 sequences are repaired, so the value
// is always safe to store.
func (r Row) Text(column string) (string, bool) {
	idx, ok := r.table.columns[ColumnKey(column)]
	if !ok || idx >= len(r.cells) {
		return "", false
	}
	res := strings.TrimSpace(gnlib.FixUtf8(r.cells[idx]))
	return res, res != ""
}

// Float parses the cell as a number. A missing or blank cell gives
// ok == false and no error.
func (r Row) Float(column string) (val float64, ok bool, err error) {
	s, ok := r.Text(column)
	if !ok {
		return 0, false, nil
	}
	val, err = strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return 0, true, fmt.Errorf("%q is not a number", s)
	}
	if math.IsInf(val, 0) || math.IsNaN(val) {
		return 0, true, fmt.Errorf("%q is not a finite number", s)
	}
	return val, true, nil
}
