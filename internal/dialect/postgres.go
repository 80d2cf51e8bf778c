package dialect

import (
	"fmt"
	"strings"
)

type PostgresDialect struct{}

func (d *PostgresDialect) GetTablesQuery() string {
	return `SELECT table_name FROM information_schema.tables WHERE table_schema = current_schema() AND table_type = 'BASE TABLE' ORDER BY table_name`
}

func (d *PostgresDialect) GetTableExistsQuery() string {
	// use $1 placeholder
	return `SELECT COUNT(*) FROM information_schema.tables WHERE table_schema = current_schema() AND table_name = $1`
}

func (d *PostgresDialect) SelectAllQuery(table string) string {
	return fmt.Sprintf("SELECT * FROM %s", d.QuoteIdent(table))
}

func (d *PostgresDialect) InsertQuery(table string, cols []string) string {
	return buildInsert(d, table, cols)
}

func (d *PostgresDialect) TruncateQuery(table string) string {
	return fmt.Sprintf("TRUNCATE TABLE %s CASCADE", d.QuoteIdent(table))
}

func (d *PostgresDialect) CreateTableQuery(table string, cols []ColumnDef) string {
	return buildCreateTable(d, table, cols)
}

func (d *PostgresDialect) Placeholder(index int) string {
	return fmt.Sprintf("$%d", index+1)
}

func (d *PostgresDialect) QuoteIdent(name string) string {
	return DefaultQuoteIdent(name)
}

func (d *PostgresDialect) NormalizeType(kind string) string {
	switch kind {
	case KindTimestamp:
		return "TIMESTAMP"
	case KindString:
		return "VARCHAR(255)"
	case KindInteger:
		return "BIGINT"
	case KindFloat:
		return "DOUBLE PRECISION"
	default:
		return strings.ToUpper(kind)
	}
}

func (d *PostgresDialect) NormalizeTableName(name string) string {
	return DefaultNormalizeTableName(name)
}
