package dialect

// Dialect abstracts database-specific operations.
type Dialect interface {
	// Metadata Queries (Table Introspection)
	GetTablesQuery() string
	GetTableExistsQuery() string // binds the table name as the only argument

	// Query Generation
	SelectAllQuery(table string) string
	InsertQuery(table string, cols []string) string
	TruncateQuery(table string) string
	CreateTableQuery(table string, cols []ColumnDef) string
	Placeholder(index int) string // Returns ?, $1, @p1, etc.

	// Helpers
	QuoteIdent(name string) string
	NormalizeType(kind string) string // generic kind -> native column type
	NormalizeTableName(name string) string
}

// Generic column kinds understood by NormalizeType.
const (
	KindTimestamp = "timestamp"
	KindString    = "string"
	KindInteger   = "integer"
	KindFloat     = "float"
)

// ColumnDef describes a column for CreateTableQuery.
type ColumnDef struct {
	Name string
	Kind string
}
