package engine

import (
	"errors"
	"fmt"

	"db-compare/internal/schema"
)

// Verdict tokens written to every comparison cell.
const (
	VerdictMatch    = "Correct"
	VerdictMismatch = "FALSCH"
)

// SummaryLabel is the key value of the trailing summary record.
const SummaryLabel = "Matching Percentage"

// ErrEmptyMatchSet is returned when no cell was compared, either because no keys
// overlap or because the table has no column besides the key.
var ErrEmptyMatchSet = errors.New("no cells were compared (empty match set)")

// Cell is the comparison of one column of one matched pair.
type Cell struct {
	Column  string
	Left    interface{}
	Right   interface{}
	Verdict string
}

// MergedRecord is the report row for one matched pair.
type MergedRecord struct {
	Key   interface{}
	Cells []Cell
}

// ColumnStat is the agreement of one column across the run.
type ColumnStat struct {
	Column  string
	Matched int
	Total   int // left row count, not matched pairs
	Percent float64
}

// Aggregator compares matched pairs and owns the running counters of a single run.
type Aggregator struct {
	key      string
	columns  []string
	leftRows int

	totalCells    int
	matchingCells int
	columnMatches map[string]int
	records       []MergedRecord
}

// NewAggregator returns an Aggregator for the given non-key columns. leftRows is the
// row count of the left snapshot and is the denominator of every column percentage.
func NewAggregator(key string, columns []string, leftRows int) *Aggregator {
	counts := make(map[string]int, len(columns))
	for _, c := range columns {
		counts[c] = 0
	}
	return &Aggregator{
		key:           key,
		columns:       columns,
		leftRows:      leftRows,
		columnMatches: counts,
	}
}

// Add compares one pair column by column and appends the resulting merged record.
func (a *Aggregator) Add(p Pair) MergedRecord {
	rec := MergedRecord{
		Key:   p.Left[a.key],
		Cells: make([]Cell, 0, len(a.columns)),
	}
	for _, col := range a.columns {
		l, r := p.Left[col], p.Right[col]
		a.totalCells++
		verdict := VerdictMismatch
		if Equal(l, r) {
			a.matchingCells++
			a.columnMatches[col]++
			verdict = VerdictMatch
		}
		rec.Cells = append(rec.Cells, Cell{Column: col, Left: l, Right: r, Verdict: verdict})
	}
	a.records = append(a.records, rec)
	return rec
}

func (a *Aggregator) Columns() []string {
	return a.columns
}

func (a *Aggregator) Records() []MergedRecord {
	return a.records
}

func (a *Aggregator) TotalCells() int {
	return a.totalCells
}

func (a *Aggregator) MatchingCells() int {
	return a.matchingCells
}

// Overall returns the share of matching cells in percent. With no compared cells it
// returns 0 and ErrEmptyMatchSet.
func (a *Aggregator) Overall() (float64, error) {
	if a.totalCells == 0 {
		return 0, ErrEmptyMatchSet
	}
	return float64(a.matchingCells) / float64(a.totalCells) * 100, nil
}

// ColumnStats returns one entry per non-key column in column order.
func (a *Aggregator) ColumnStats() []ColumnStat {
	stats := make([]ColumnStat, 0, len(a.columns))
	for _, col := range a.columns {
		s := ColumnStat{Column: col, Matched: a.columnMatches[col], Total: a.leftRows}
		if a.leftRows > 0 {
			s.Percent = float64(s.Matched) / float64(a.leftRows) * 100
		}
		stats = append(stats, s)
	}
	return stats
}

// Summary returns the trailing report record: the summary label as key and the
// formatted column percentage in place of each verdict.
func (a *Aggregator) Summary() MergedRecord {
	rec := MergedRecord{Key: SummaryLabel}
	for _, s := range a.ColumnStats() {
		rec.Cells = append(rec.Cells, Cell{
			Column:  s.Column,
			Left:    "",
			Right:   "",
			Verdict: fmt.Sprintf("%.2f%%", s.Percent),
		})
	}
	return rec
}

// Result is the outcome of comparing two snapshots of one table.
type Result struct {
	Table     string
	Key       string
	LeftRows  int
	RightRows int
	Pairs     int
	*Aggregator
}

// Compare checks that left and right have the same columns, matches their records on
// schema.KeyField and aggregates every matched pair. onProgress, if set, is called once
// per left record.
func Compare(left, right *schema.Snapshot, onProgress func()) (*Result, error) {
	if err := schema.CheckColumns(left, right, schema.KeyField); err != nil {
		return nil, err
	}

	pairs := Match(left.Records, right.Records, schema.KeyField, onProgress)

	agg := NewAggregator(schema.KeyField, left.ValueColumns(schema.KeyField), left.Len())
	for _, p := range pairs {
		agg.Add(p)
	}

	return &Result{
		Table:      left.Table,
		Key:        schema.KeyField,
		LeftRows:   left.Len(),
		RightRows:  right.Len(),
		Pairs:      len(pairs),
		Aggregator: agg,
	}, nil
}
