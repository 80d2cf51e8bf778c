package dialect

import (
	"fmt"
	"strings"
)

type OracleDialect struct{}

func (d *OracleDialect) GetTablesQuery() string {
	// USER_TABLES lists tables owned by the current user.
	return `SELECT TABLE_NAME FROM USER_TABLES ORDER BY TABLE_NAME`
}

func (d *OracleDialect) GetTableExistsQuery() string {
	return `SELECT COUNT(*) FROM USER_TABLES WHERE TABLE_NAME = :1`
}

func (d *OracleDialect) SelectAllQuery(table string) string {
	return fmt.Sprintf("SELECT * FROM %s", d.QuoteIdent(table))
}

func (d *OracleDialect) InsertQuery(table string, cols []string) string {
	return buildInsert(d, table, cols)
}

func (d *OracleDialect) TruncateQuery(table string) string {
	return fmt.Sprintf("TRUNCATE TABLE %s", d.QuoteIdent(table))
}

func (d *OracleDialect) CreateTableQuery(table string, cols []ColumnDef) string {
	return buildCreateTable(d, table, cols)
}

func (d *OracleDialect) Placeholder(index int) string {
	// Oracle uses :1, :2, etc. (1-based index)
	return fmt.Sprintf(":%d", index+1)
}

// QuoteIdent upper-cases the name first. Unquoted Oracle identifiers are stored
// upper case, so "readings" and READINGS must resolve to the same table.
func (d *OracleDialect) QuoteIdent(name string) string {
	return DefaultQuoteIdent(d.NormalizeTableName(name))
}

func (d *OracleDialect) NormalizeType(kind string) string {
	switch kind {
	case KindTimestamp:
		return "TIMESTAMP"
	case KindString:
		return "VARCHAR2(255)"
	case KindInteger:
		return "NUMBER(19)"
	case KindFloat:
		return "BINARY_DOUBLE"
	default:
		return strings.ToUpper(kind)
	}
}

func (d *OracleDialect) NormalizeTableName(name string) string {
	return strings.ToUpper(name)
}
