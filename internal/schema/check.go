package schema

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var ErrKeyColumnMissing = errors.New("key column missing")

// SchemaMismatchError is returned when two snapshots of the same table do not carry
// the same set of column names.
type SchemaMismatchError struct {
	Table     string
	OnlyLeft  []string
	OnlyRight []string
}

func (e *SchemaMismatchError) Error() string {
	var parts []string
	if len(e.OnlyLeft) > 0 {
		parts = append(parts, "only in source 1: "+strings.Join(e.OnlyLeft, ", "))
	}
	if len(e.OnlyRight) > 0 {
		parts = append(parts, "only in source 2: "+strings.Join(e.OnlyRight, ", "))
	}
	return fmt.Sprintf("table %q does not have the same columns in both databases (%s)",
		e.Table, strings.Join(parts, "; "))
}

// CheckColumns compares the column sets of left and right, ignoring order, and verifies
// that key is present. It reads no records.
func CheckColumns(left, right *Snapshot, key string) error {
	onlyLeft := difference(left.Columns, right.Columns)
	onlyRight := difference(right.Columns, left.Columns)
	if len(onlyLeft) > 0 || len(onlyRight) > 0 {
		return &SchemaMismatchError{
			Table:     left.Table,
			OnlyLeft:  onlyLeft,
			OnlyRight: onlyRight,
		}
	}
	if !left.HasColumn(key) {
		return fmt.Errorf("%w: table %q has no %q column", ErrKeyColumnMissing, left.Table, key)
	}
	return nil
}

// difference returns the sorted names in a that are not in b.
func difference(a, b []string) []string {
	seen := make(map[string]bool, len(b))
	for _, n := range b {
		seen[n] = true
	}
	var out []string
	for _, n := range a {
		if !seen[n] {
			out = append(out, n)
		}
	}
	sort.Strings(out)
	return out
}
