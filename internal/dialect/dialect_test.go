package dialect

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var readingCols = []ColumnDef{
	{Name: "ts", Kind: KindTimestamp},
	{Name: "sensor", Kind: KindString},
	{Name: "quantity", Kind: KindInteger},
	{Name: "reading", Kind: KindFloat},
}

func TestGetDialect(t *testing.T) {
	assert.IsType(t, &PostgresDialect{}, GetDialect("postgres"))
	assert.IsType(t, &MSSQLDialect{}, GetDialect("sqlserver"))
	assert.IsType(t, &MSSQLDialect{}, GetDialect("mssql"))
	assert.IsType(t, &OracleDialect{}, GetDialect("oracle"))
	assert.IsType(t, &SqliteDialect{}, GetDialect("sqlite"))
	assert.IsType(t, &MysqlDialect{}, GetDialect("mysql"))
	assert.IsType(t, &MysqlDialect{}, GetDialect(""))
}

func TestDialects(t *testing.T) {
	tests := []struct {
		name   string
		d      Dialect
		insert string
		create string
		trunc  string
	}{
		{
			name:   "mysql",
			d:      &MysqlDialect{},
			insert: "INSERT INTO `readings` (`ts`, `sensor`) VALUES (?, ?)",
			create: "CREATE TABLE `readings` (`ts` DATETIME(6), `sensor` VARCHAR(255), `quantity` BIGINT, `reading` DOUBLE)",
			trunc:  "TRUNCATE TABLE `readings`",
		},
		{
			name:   "postgres",
			d:      &PostgresDialect{},
			insert: `INSERT INTO "readings" ("ts", "sensor") VALUES ($1, $2)`,
			create: `CREATE TABLE "readings" ("ts" TIMESTAMP, "sensor" VARCHAR(255), "quantity" BIGINT, "reading" DOUBLE PRECISION)`,
			trunc:  `TRUNCATE TABLE "readings" CASCADE`,
		},
		{
			name:   "sqlserver",
			d:      &MSSQLDialect{},
			insert: `INSERT INTO [readings] ([ts], [sensor]) VALUES (@p1, @p2)`,
			create: `CREATE TABLE [readings] ([ts] DATETIME2, [sensor] NVARCHAR(255), [quantity] BIGINT, [reading] FLOAT)`,
			trunc:  `TRUNCATE TABLE [readings]`,
		},
		{
			name:   "oracle",
			d:      &OracleDialect{},
			insert: `INSERT INTO "READINGS" ("TS", "SENSOR") VALUES (:1, :2)`,
			create: `CREATE TABLE "READINGS" ("TS" TIMESTAMP, "SENSOR" VARCHAR2(255), "QUANTITY" NUMBER(19), "READING" BINARY_DOUBLE)`,
			trunc:  `TRUNCATE TABLE "READINGS"`,
		},
		{
			name:   "sqlite",
			d:      &SqliteDialect{},
			insert: `INSERT INTO "readings" ("ts", "sensor") VALUES (?, ?)`,
			create: `CREATE TABLE "readings" ("ts" TEXT, "sensor" TEXT, "quantity" INTEGER, "reading" REAL)`,
			trunc:  `DELETE FROM "readings"`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.insert, tt.d.InsertQuery("readings", []string{"ts", "sensor"}))
			assert.Equal(t, tt.create, tt.d.CreateTableQuery("readings", readingCols))
			assert.Equal(t, tt.trunc, tt.d.TruncateQuery("readings"))
			assert.Equal(t, "SELECT * FROM "+tt.d.QuoteIdent("readings"), tt.d.SelectAllQuery("readings"))
			assert.NotEmpty(t, tt.d.GetTablesQuery())
			assert.NotEmpty(t, tt.d.GetTableExistsQuery())
		})
	}
}

func TestQuoteIdentEscapes(t *testing.T) {
	assert.Equal(t, `"a""b"`, DefaultQuoteIdent(`a"b`))
	assert.Equal(t, "`a``b`", (&MysqlDialect{}).QuoteIdent("a`b"))
	assert.Equal(t, "[a]]b]", (&MSSQLDialect{}).QuoteIdent("a]b"))
}

func TestIsValidIdentifier(t *testing.T) {
	for _, ok := range []string{"readings", "_tmp", "t1", "Sales$2024"} {
		assert.True(t, IsValidIdentifier(ok), ok)
	}
	for _, bad := range []string{"", "1t", "a b", "a;drop", "schema.table", `a"b`} {
		assert.False(t, IsValidIdentifier(bad), bad)
	}
}
