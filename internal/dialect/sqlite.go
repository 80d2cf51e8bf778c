package dialect

import (
	"fmt"
	"strings"
)

type SqliteDialect struct{}

func (d *SqliteDialect) GetTablesQuery() string {
	return `SELECT name FROM sqlite_master WHERE type='table' ORDER BY name`
}

func (d *SqliteDialect) GetTableExistsQuery() string {
	return `SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name = ?`
}

func (d *SqliteDialect) SelectAllQuery(table string) string {
	return fmt.Sprintf("SELECT * FROM %s", d.QuoteIdent(table))
}

func (d *SqliteDialect) InsertQuery(table string, cols []string) string {
	return buildInsert(d, table, cols)
}

// SQLite has no TRUNCATE; an unqualified DELETE takes the truncate fast path.
func (d *SqliteDialect) TruncateQuery(table string) string {
	return fmt.Sprintf("DELETE FROM %s", d.QuoteIdent(table))
}

func (d *SqliteDialect) CreateTableQuery(table string, cols []ColumnDef) string {
	return buildCreateTable(d, table, cols)
}

func (d *SqliteDialect) Placeholder(index int) string {
	return "?"
}

func (d *SqliteDialect) QuoteIdent(name string) string {
	return DefaultQuoteIdent(name)
}

func (d *SqliteDialect) NormalizeType(kind string) string {
	switch kind {
	case KindTimestamp, KindString:
		return "TEXT"
	case KindInteger:
		return "INTEGER"
	case KindFloat:
		return "REAL"
	default:
		return strings.ToUpper(kind)
	}
}

func (d *SqliteDialect) NormalizeTableName(name string) string {
	return DefaultNormalizeTableName(name)
}
