package source

import (
	"database/sql"
	"fmt"
	"strings"

	"db-compare/internal/dialect"
	"db-compare/internal/schema"

	"github.com/go-logr/logr"
)

// TableNotFoundError is returned when the requested table is absent from a database.
type TableNotFoundError struct {
	Table    string
	Location string
}

func (e *TableNotFoundError) Error() string {
	return fmt.Sprintf("table '%s' does not exist in the database '%s'", e.Table, e.Location)
}

// Accessor reads whole tables from one database. Every call opens its own
// connection and closes it before returning.
type Accessor struct {
	Location Location
	Dialect  dialect.Dialect
	Logger   logr.Logger

	// open is sql.Open unless replaced in tests.
	open func(driver, dsn string) (*sql.DB, error)
}

// New returns an Accessor for loc using the dialect matching its driver.
func New(loc Location, logger logr.Logger) *Accessor {
	return &Accessor{
		Location: loc,
		Dialect:  dialect.GetDialect(loc.Driver),
		Logger:   logger,
		open:     sql.Open,
	}
}

func (a *Accessor) connect() (*sql.DB, error) {
	open := a.open
	if open == nil {
		open = sql.Open
	}
	db, err := open(a.Location.Driver, a.Location.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open db %s: %w", a.Location, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to db %s: %w", a.Location, err)
	}
	return db, nil
}

// ListTables returns the base tables visible in the database.
func (a *Accessor) ListTables() ([]string, error) {
	db, err := a.connect()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	query := a.Dialect.GetTablesQuery()
	a.Logger.V(1).Info("listing tables", "query", query, "location", a.Location.String())
	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query tables: %w", err)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan table name: %w", err)
		}
		tables = append(tables, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tables: %w", err)
	}
	return tables, nil
}

// Exists reports whether table is present in the database.
func (a *Accessor) Exists(table string) (bool, error) {
	if !dialect.IsValidIdentifier(table) {
		return false, fmt.Errorf("invalid table name %q", table)
	}
	db, err := a.connect()
	if err != nil {
		return false, err
	}
	defer db.Close()

	query := a.Dialect.GetTableExistsQuery()
	a.Logger.V(1).Info("checking table", "query", query, "table", table)
	var n int
	if err := db.QueryRow(query, a.Dialect.NormalizeTableName(table)).Scan(&n); err != nil {
		return false, fmt.Errorf("failed to check table %s: %w", table, err)
	}
	return n > 0, nil
}

// ReadAll materialises every row of table as a Snapshot.
// It returns *TableNotFoundError when the table does not exist.
func (a *Accessor) ReadAll(table string) (*schema.Snapshot, error) {
	ok, err := a.Exists(table)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &TableNotFoundError{Table: table, Location: a.Location.String()}
	}

	db, err := a.connect()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	query := a.Dialect.SelectAllQuery(table)
	a.Logger.V(1).Info("reading table", "query", query)
	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query table %s: %w", table, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns of %s: %w", table, err)
	}

	if a.Location.Driver == "oracle" {
		// unquoted Oracle identifiers come back upper-cased
		for i, c := range cols {
			cols[i] = strings.ToLower(c)
		}
	}

	snap := &schema.Snapshot{
		Table:    table,
		Location: a.Location.String(),
		Columns:  cols,
	}
	for rows.Next() {
		values := make([]interface{}, len(cols))
		ptrs := make([]interface{}, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row %d of %s: %w", len(snap.Records)+1, table, err)
		}
		rec := make(schema.Record, len(cols))
		for i, c := range cols {
			rec[c] = normalizeValue(values[i])
		}
		snap.Records = append(snap.Records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows of %s: %w", table, err)
	}

	a.Logger.Info("table read", "table", table, "rows", snap.Len(), "location", snap.Location)
	return snap, nil
}

// normalizeValue turns driver-owned byte slices into strings and widens small
// integer and float types so that equal values from different drivers compare equal.
func normalizeValue(v interface{}) interface{} {
	switch t := v.(type) {
	case []byte:
		return string(t)
	case int:
		return int64(t)
	case int32:
		return int64(t)
	case int16:
		return int64(t)
	case int8:
		return int64(t)
	case float32:
		return float64(t)
	default:
		return v
	}
}
