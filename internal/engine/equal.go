package engine

import (
	"reflect"
	"time"
)

// Equal reports whether two cell values are identical: same dynamic type and same
// value. There is no numeric widening, tolerance or case folding. Two NULLs are equal.
func Equal(a, b interface{}) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if ta, ok := a.(time.Time); ok {
		tb, ok := b.(time.Time)
		return ok && ta.Equal(tb)
	}
	if reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false
	}
	return reflect.DeepEqual(a, b)
}
