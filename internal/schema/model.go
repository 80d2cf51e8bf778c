package schema

// KeyField is the column that correlates records across two snapshots.
const KeyField = "ts"

// Record is one row, keyed by column name. Column order lives on the owning Snapshot.
type Record map[string]interface{}

// Snapshot is the full content of one table in one database, read at a single point in time.
type Snapshot struct {
	Table    string
	Location string
	Columns  []string // 원본 컬럼 순서
	Records  []Record
}

// Len returns the number of records in the snapshot.
func (s *Snapshot) Len() int {
	return len(s.Records)
}

// HasColumn reports whether the snapshot carries the named column.
func (s *Snapshot) HasColumn(name string) bool {
	for _, c := range s.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// ValueColumns returns every column except key, in snapshot order.
func (s *Snapshot) ValueColumns(key string) []string {
	cols := make([]string, 0, len(s.Columns))
	for _, c := range s.Columns {
		if c != key {
			cols = append(cols, c)
		}
	}
	return cols
}
