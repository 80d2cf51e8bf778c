package dialect

import (
	"fmt"
	"strings"

	_ "github.com/denisenkom/go-mssqldb" // SQL Server Driver
)

type MSSQLDialect struct{}

// Helper: MSSQL Driver (go-mssqldb) often prefers @p1, @p2 named parameters over ?
// especially when prepared statements are involved or simple Exec.

func (d *MSSQLDialect) GetTablesQuery() string {
	return `SELECT TABLE_NAME FROM INFORMATION_SCHEMA.TABLES WHERE TABLE_SCHEMA = SCHEMA_NAME() AND TABLE_TYPE = 'BASE TABLE' ORDER BY TABLE_NAME`
}

func (d *MSSQLDialect) GetTableExistsQuery() string {
	// Use @p1 for table binding
	return `SELECT COUNT(*) FROM INFORMATION_SCHEMA.TABLES WHERE TABLE_SCHEMA = SCHEMA_NAME() AND TABLE_TYPE = 'BASE TABLE' AND TABLE_NAME = @p1`
}

func (d *MSSQLDialect) SelectAllQuery(table string) string {
	return fmt.Sprintf("SELECT * FROM %s", d.QuoteIdent(table))
}

func (d *MSSQLDialect) InsertQuery(table string, cols []string) string {
	return buildInsert(d, table, cols)
}

func (d *MSSQLDialect) TruncateQuery(table string) string {
	return fmt.Sprintf("TRUNCATE TABLE %s", d.QuoteIdent(table))
}

func (d *MSSQLDialect) CreateTableQuery(table string, cols []ColumnDef) string {
	return buildCreateTable(d, table, cols)
}

func (d *MSSQLDialect) Placeholder(index int) string {
	return fmt.Sprintf("@p%d", index+1)
}

func (d *MSSQLDialect) QuoteIdent(name string) string {
	return "[" + strings.ReplaceAll(name, "]", "]]") + "]"
}

func (d *MSSQLDialect) NormalizeType(kind string) string {
	switch kind {
	case KindTimestamp:
		return "DATETIME2"
	case KindString:
		return "NVARCHAR(255)"
	case KindInteger:
		return "BIGINT"
	case KindFloat:
		return "FLOAT"
	default:
		return strings.ToUpper(kind)
	}
}

func (d *MSSQLDialect) NormalizeTableName(name string) string {
	return DefaultNormalizeTableName(name)
}
