package engine

import (
	"math"
	"strings"
	"time"

	"db-compare/internal/dialect"

	"github.com/brianvoe/gofakeit/v6"
)

// seedEpoch is the first key written by Seed. Keys advance one minute per row.
var seedEpoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

var statuses = []string{"OK", "WARN", "FAIL", "MAINTENANCE"}

// GenerateValue generates a random value based on column definition
func GenerateValue(f *gofakeit.Faker, col dialect.ColumnDef) interface{} {
	colName := strings.ToLower(col.Name)

	switch col.Kind {
	case dialect.KindString:
		switch {
		case strings.Contains(colName, "city"):
			return f.City()
		case strings.Contains(colName, "status"):
			return f.RandomString(statuses)
		case strings.Contains(colName, "email"):
			return f.Email()
		case strings.Contains(colName, "name"):
			return f.Name()
		default:
			// sensor-like identifiers: ABC-1234
			return strings.ToUpper(f.LetterN(3)) + "-" + f.DigitN(4)
		}

	case dialect.KindInteger:
		return int64(f.Number(1, 50000))

	case dialect.KindFloat:
		// 두 자리 소수로 고정 (드라이버 간 왕복 시 오차 방지)
		return math.Round(f.Float64Range(0, 1000)*100) / 100

	case dialect.KindTimestamp:
		return f.DateRange(seedEpoch.AddDate(-1, 0, 0), seedEpoch).UTC().Truncate(time.Second)
	}
	return nil
}

// Perturb returns a value of the same kind as v that is guaranteed to differ from it.
func Perturb(f *gofakeit.Faker, col dialect.ColumnDef, v interface{}) interface{} {
	for attempt := 0; attempt < 10; attempt++ {
		if nv := GenerateValue(f, col); !Equal(nv, v) {
			return nv
		}
	}
	switch t := v.(type) {
	case string:
		return t + "*"
	case int64:
		return t + 1
	case float64:
		return t + 1
	case time.Time:
		return t.Add(time.Second)
	}
	return nil
}
