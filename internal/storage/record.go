package storage

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Record is a single persisted entity. Records are decoded JSON
// objects; numeric fields are json.Number so that untouched fields
// survive a read-modify-write cycle without reformatting.
type Record map[string]any

// Clone returns a shallow copy of the record.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// String returns the field as a string, or "" when absent or not a
// string.
func (r Record) String(key string) string {
	s, _ := r[key].(string)
	return s
}

// Int returns the field as an int, or fallback when absent or not
// numeric.
func (r Record) Int(key string, fallback int) int {
	switch v := r[key].(type) {
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return int(n)
		}
	case float64:
		return int(v)
	case int:
		return v
	}
	return fallback
}

// Amount returns the field as a decimal amount. Missing or unparseable
// values decode to zero rather than failing; the UI flows stay
// non-blocking and reports count bad amounts as 0.
func (r Record) Amount(key string) decimal.Decimal {
	return CoerceAmount(r[key])
}

// CoerceAmount converts an arbitrary decoded JSON value to a decimal
// amount, with zero as the fallback for anything unparseable.
func CoerceAmount(v any) decimal.Decimal {
	switch n := v.(type) {
	case json.Number:
		if d, err := decimal.NewFromString(n.String()); err == nil {
			return d
		}
	case float64:
		return decimal.NewFromFloat(n)
	case int:
		return decimal.NewFromInt(int64(n))
	case int64:
		return decimal.NewFromInt(n)
	case decimal.Decimal:
		return n
	case string:
		if d, err := decimal.NewFromString(n); err == nil {
			return d
		}
	}
	return decimal.Zero
}
