package engine

import (
	"database/sql"
	"fmt"
	"time"

	"db-compare/internal/dialect"
	"db-compare/internal/schema"

	"github.com/brianvoe/gofakeit/v6"
)

// FixtureColumns is the layout of tables created by Seed.
var FixtureColumns = []dialect.ColumnDef{
	{Name: schema.KeyField, Kind: dialect.KindTimestamp},
	{Name: "sensor", Kind: dialect.KindString},
	{Name: "city", Kind: dialect.KindString},
	{Name: "reading", Kind: dialect.KindFloat},
	{Name: "quantity", Kind: dialect.KindInteger},
	{Name: "status", Kind: dialect.KindString},
}

// SeedTarget is one database to be filled.
type SeedTarget struct {
	Name    string
	DB      *sql.DB
	Dialect dialect.Dialect
}

// SeedOptions controls Seed.
type SeedOptions struct {
	Table string
	Count int
	Drift float64 // share of non-key cells altered in the second target
	Clean bool
	Seed  int64 // 0 picks a time based seed
}

// SeedResult is the report line of one seeded target.
type SeedResult struct {
	Database string
	Created  bool
	Target   int
	Actual   int
	Drifted  int
	Status   string
	ErrorMsg string
}

// Seed writes the same Count generated rows to both targets, creating the table where
// it is missing. In the second target a Drift share of non-key cells is replaced by a
// different value so the two copies disagree in a controlled way.
func Seed(left, right SeedTarget, opts SeedOptions, onProgress func()) ([]SeedResult, error) {
	if !dialect.IsValidIdentifier(opts.Table) {
		return nil, fmt.Errorf("invalid table name %q", opts.Table)
	}
	if opts.Count < 0 {
		return nil, fmt.Errorf("count must be >= 0, got %d", opts.Count)
	}
	if opts.Drift < 0 || opts.Drift > 1 {
		return nil, fmt.Errorf("drift must be between 0 and 1, got %v", opts.Drift)
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	f := gofakeit.New(seed)

	leftRows, rightRows, drifted := generateRows(f, opts.Count, opts.Drift)

	var results []SeedResult
	for _, job := range []struct {
		target  SeedTarget
		rows    [][]interface{}
		drifted int
	}{
		{left, leftRows, 0},
		{right, rightRows, drifted},
	} {
		res, err := fillTarget(job.target, opts, job.rows, onProgress)
		if err != nil {
			return results, err
		}
		res.Drifted = job.drifted
		results = append(results, res)
	}
	return results, nil
}

// generateRows builds the rows of both targets. Keys are strictly increasing so every
// row has a partner on the other side.
func generateRows(f *gofakeit.Faker, count int, drift float64) (left, right [][]interface{}, drifted int) {
	for i := 0; i < count; i++ {
		l := make([]interface{}, len(FixtureColumns))
		r := make([]interface{}, len(FixtureColumns))
		for c, col := range FixtureColumns {
			if col.Name == schema.KeyField {
				l[c] = seedEpoch.Add(time.Duration(i) * time.Minute)
				r[c] = l[c]
				continue
			}
			l[c] = GenerateValue(f, col)
			r[c] = l[c]
			if drift > 0 && f.Float64() < drift {
				r[c] = Perturb(f, col, l[c])
				drifted++
			}
		}
		left = append(left, l)
		right = append(right, r)
	}
	return left, right, drifted
}

func fillTarget(t SeedTarget, opts SeedOptions, rows [][]interface{}, onProgress func()) (SeedResult, error) {
	res := SeedResult{Database: t.Name, Target: len(rows)}

	created, err := ensureTable(t, opts.Table)
	if err != nil {
		return res, err
	}
	res.Created = created

	tx, err := t.DB.Begin()
	if err != nil {
		return res, fmt.Errorf("failed to begin transaction on %s: %w", t.Name, err)
	}
	defer func() {
		if tx != nil {
			tx.Rollback()
		}
	}()

	if opts.Clean && !created {
		if _, err := tx.Exec(t.Dialect.TruncateQuery(opts.Table)); err != nil {
			return res, fmt.Errorf("failed to clean %s on %s: %w", opts.Table, t.Name, err)
		}
	}

	var initialCount int
	if err := tx.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", t.Dialect.QuoteIdent(opts.Table))).Scan(&initialCount); err != nil {
		return res, fmt.Errorf("failed to count %s on %s: %w", opts.Table, t.Name, err)
	}

	colNames := make([]string, len(FixtureColumns))
	for i, c := range FixtureColumns {
		colNames[i] = c.Name
	}
	query := t.Dialect.InsertQuery(opts.Table, colNames)

	for i, values := range rows {
		if _, err := tx.Exec(query, values...); err != nil {
			return res, fmt.Errorf("failed to insert row %d into %s on %s: %w", i+1, opts.Table, t.Name, err)
		}
		if onProgress != nil {
			onProgress()
		}
	}

	// 실제 들어간 개수 확인 (Verification)
	var finalCount int
	if err := tx.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", t.Dialect.QuoteIdent(opts.Table))).Scan(&finalCount); err != nil {
		return res, fmt.Errorf("failed to verify %s on %s: %w", opts.Table, t.Name, err)
	}

	if err := tx.Commit(); err != nil {
		return res, fmt.Errorf("failed to commit seed transaction on %s: %w", t.Name, err)
	}
	tx = nil

	res.Actual = finalCount - initialCount
	res.Status = "OK"
	if res.Actual < len(rows) {
		res.Status = "MISSING DATA"
		res.ErrorMsg = fmt.Sprintf("Only inserted %d out of %d.", res.Actual, len(rows))
	}
	return res, nil
}

// ensureTable creates the fixture table when it does not exist yet.
func ensureTable(t SeedTarget, table string) (bool, error) {
	var n int
	if err := t.DB.QueryRow(t.Dialect.GetTableExistsQuery(), t.Dialect.NormalizeTableName(table)).Scan(&n); err != nil {
		return false, fmt.Errorf("failed to check table %s on %s: %w", table, t.Name, err)
	}
	if n > 0 {
		return false, nil
	}
	if _, err := t.DB.Exec(t.Dialect.CreateTableQuery(table, FixtureColumns)); err != nil {
		return false, fmt.Errorf("failed to create table %s on %s: %w", table, t.Name, err)
	}
	return true, nil
}
