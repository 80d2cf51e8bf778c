package dialect

import (
	"fmt"
	"strings"
)

type MysqlDialect struct{}

func (d *MysqlDialect) GetTablesQuery() string {
	return `SELECT TABLE_NAME FROM information_schema.TABLES WHERE TABLE_SCHEMA = DATABASE() AND TABLE_TYPE = 'BASE TABLE' ORDER BY TABLE_NAME`
}

func (d *MysqlDialect) GetTableExistsQuery() string {
	return `SELECT COUNT(*) FROM information_schema.TABLES WHERE TABLE_SCHEMA = DATABASE() AND TABLE_NAME = ?`
}

func (d *MysqlDialect) SelectAllQuery(table string) string {
	return fmt.Sprintf("SELECT * FROM %s", d.QuoteIdent(table))
}

func (d *MysqlDialect) InsertQuery(table string, cols []string) string {
	return buildInsert(d, table, cols)
}

func (d *MysqlDialect) TruncateQuery(table string) string {
	return fmt.Sprintf("TRUNCATE TABLE %s", d.QuoteIdent(table))
}

func (d *MysqlDialect) CreateTableQuery(table string, cols []ColumnDef) string {
	return buildCreateTable(d, table, cols)
}

func (d *MysqlDialect) Placeholder(index int) string {
	return "?"
}

func (d *MysqlDialect) QuoteIdent(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

func (d *MysqlDialect) NormalizeType(kind string) string {
	switch kind {
	case KindTimestamp:
		return "DATETIME(6)"
	case KindString:
		return "VARCHAR(255)"
	case KindInteger:
		return "BIGINT"
	case KindFloat:
		return "DOUBLE"
	default:
		return strings.ToUpper(kind)
	}
}

func (d *MysqlDialect) NormalizeTableName(name string) string {
	return DefaultNormalizeTableName(name)
}
