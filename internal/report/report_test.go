package report_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"db-compare/internal/engine"
	"db-compare/internal/report"
	"db-compare/internal/schema"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var labels = report.Labels{Left: "db1", Right: "db2"}

// sample compares two 2x2 tables: one match and one mismatch per column.
func sample(t *testing.T) *report.Table {
	t.Helper()
	left := &schema.Snapshot{Columns: []string{"ts", "a", "b"}, Records: []schema.Record{
		{"ts": "t1", "a": "x", "b": int64(1)},
		{"ts": "t2", "a": "y", "b": int64(2)},
	}}
	right := &schema.Snapshot{Columns: []string{"ts", "a", "b"}, Records: []schema.Record{
		{"ts": "t1", "a": "x", "b": int64(9)},
		{"ts": "t2", "a": "z", "b": int64(2)},
	}}
	res, err := engine.Compare(left, right, nil)
	require.NoError(t, err)
	return report.Build(res.Key, res.Columns(), labels, res.Records(), res.Summary())
}

func TestBuild(t *testing.T) {
	tbl := sample(t)

	assert.Equal(t, []string{"ts", "a_db1", "a_db2", "a_Comparison", "b_db1", "b_db2", "b_Comparison"}, tbl.Header)
	require.Len(t, tbl.Rows, 3)
	assert.Equal(t, []interface{}{"t1", "x", "x", "Correct", int64(1), int64(9), "FALSCH"}, tbl.Rows[0])
	assert.Equal(t, []interface{}{"t2", "y", "z", "FALSCH", int64(2), int64(2), "Correct"}, tbl.Rows[1])
	assert.Equal(t, []interface{}{"Matching Percentage", "", "", "50.00%", "", "", "50.00%"}, tbl.Rows[2])
}

func fillColor(t *testing.T, f *excelize.File, cell string) string {
	t.Helper()
	id, err := f.GetCellStyle(report.SheetName, cell)
	require.NoError(t, err)
	if id == 0 {
		return ""
	}
	style, err := f.GetStyle(id)
	require.NoError(t, err)
	if len(style.Fill.Color) == 0 {
		return ""
	}
	return strings.ToUpper(style.Fill.Color[0])
}

func TestWriteAndStyle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "report.xlsx")

	require.NoError(t, report.Write(sample(t), path))
	stats, err := report.Style(path)
	require.NoError(t, err)
	assert.Equal(t, report.StyleStats{Matched: 2, Mismatched: 2}, stats)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(report.SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "a_Comparison", rows[0][3])
	assert.Equal(t, "Matching Percentage", rows[3][0])

	// verdict cells
	assert.True(t, strings.HasSuffix(fillColor(t, f, "D2"), report.MatchColor))
	assert.True(t, strings.HasSuffix(fillColor(t, f, "G2"), report.MismatchColor))
	assert.True(t, strings.HasSuffix(fillColor(t, f, "D3"), report.MismatchColor))
	assert.True(t, strings.HasSuffix(fillColor(t, f, "G3"), report.MatchColor))
	// header, values and summary stay unfilled
	for _, cell := range []string{"D1", "A2", "B2", "D4", "G4"} {
		assert.Empty(t, fillColor(t, f, cell), cell)
	}
}

func TestWrite_OverwritesExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0o644))

	require.NoError(t, report.Write(&report.Table{Header: []string{"ts"}, Rows: [][]interface{}{{"Matching Percentage"}}}, path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(report.SheetName)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"ts"}, {"Matching Percentage"}}, rows)
}

func TestStyle_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.xlsx")

	_, err := report.Style(path)

	var styleErr *report.StyleError
	require.True(t, errors.As(err, &styleErr))
	assert.Equal(t, path, styleErr.Path)
}
