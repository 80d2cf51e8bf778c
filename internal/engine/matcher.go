package engine

import "db-compare/internal/schema"

// Pair is a left record and the right record that shares its key value.
type Pair struct {
	Left  schema.Record
	Right schema.Record
}

// Match pairs every left record with the first right record whose key value is equal.
// Left records without a partner are dropped. Later right records with the same key are
// never considered for that left record. onRow, if set, is called once per left record.
func Match(left, right []schema.Record, key string, onRow func()) []Pair {
	var pairs []Pair
	for _, l := range left {
		for _, r := range right {
			if Equal(l[key], r[key]) {
				pairs = append(pairs, Pair{Left: l, Right: r})
				break
			}
		}
		if onRow != nil {
			onRow()
		}
	}
	return pairs
}
