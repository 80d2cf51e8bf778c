package dialect

import (
	"fmt"
	"regexp"
	"strings"
)

// validIdentifier matches plain, unqualified SQL identifiers.
var validIdentifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_$]*$`)

// IsValidIdentifier reports whether name is safe to interpolate into generated SQL.
func IsValidIdentifier(name string) bool {
	return name != "" && len(name) <= 128 && validIdentifier.MatchString(name)
}

// GeneratePlaceholders is a helper function to create a slice of placeholder strings.
// It takes the number of placeholders needed and a function that returns the placeholder for a given index.
// It returns a comma-separated string of the generated placeholders.
func GeneratePlaceholders(count int, placeholderFunc func(int) string) string {
	placeholders := make([]string, count)
	for i := 0; i < count; i++ {
		placeholders[i] = placeholderFunc(i)
	}
	return strings.Join(placeholders, ", ")
}

// QuoteAll quotes every name with quoteFunc.
func QuoteAll(names []string, quoteFunc func(string) string) []string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = quoteFunc(n)
	}
	return quoted
}

// DefaultQuoteIdent wraps name in ANSI double quotes.
func DefaultQuoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// DefaultNormalizeTableName is a default implementation for table name lookups (identity).
func DefaultNormalizeTableName(name string) string {
	return name
}

func buildInsert(d Dialect, table string, cols []string) string {
	vals := GeneratePlaceholders(len(cols), d.Placeholder)
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		d.QuoteIdent(table), strings.Join(QuoteAll(cols, d.QuoteIdent), ", "), vals)
}

func buildCreateTable(d Dialect, table string, cols []ColumnDef) string {
	defs := make([]string, len(cols))
	for i, c := range cols {
		defs[i] = fmt.Sprintf("%s %s", d.QuoteIdent(c.Name), d.NormalizeType(c.Kind))
	}
	return fmt.Sprintf("CREATE TABLE %s (%s)", d.QuoteIdent(table), strings.Join(defs, ", "))
}
