package report

import (
	"db-compare/internal/engine"
)

// ComparisonSuffix names the verdict column of every compared column.
const ComparisonSuffix = "Comparison"

// Labels are the column-label prefixes of the two sources.
type Labels struct {
	Left  string
	Right string
}

// Table is a header plus rows, ready to be written to a sheet.
type Table struct {
	Header []string
	Rows   [][]interface{}
}

// ColumnName returns the report header for column col labelled with label.
func ColumnName(col, label string) string {
	return col + "_" + label
}

// Build lays out merged records and the trailing summary: the key column first, then
// for every compared column its left value, right value and verdict.
func Build(key string, columns []string, labels Labels, merged []engine.MergedRecord, summary engine.MergedRecord) *Table {
	t := &Table{Header: []string{key}}
	for _, c := range columns {
		t.Header = append(t.Header,
			ColumnName(c, labels.Left),
			ColumnName(c, labels.Right),
			ColumnName(c, ComparisonSuffix),
		)
	}

	t.Rows = make([][]interface{}, 0, len(merged)+1)
	for _, m := range merged {
		t.Rows = append(t.Rows, row(m))
	}
	t.Rows = append(t.Rows, row(summary))
	return t
}

func row(m engine.MergedRecord) []interface{} {
	r := make([]interface{}, 0, 1+3*len(m.Cells))
	r = append(r, m.Key)
	for _, c := range m.Cells {
		r = append(r, c.Left, c.Right, c.Verdict)
	}
	return r
}
