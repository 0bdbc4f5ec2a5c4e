package domain

import (
	"encoding/json"
	"math"
)

// FieldID is the identifier key shared by every collection.
const FieldID = "id"

// Record is one JSON object from a collection. Fields the service does not know
// about are carried through reads and writes untouched.
type Record map[string]any

// ID returns the record identifier when it is an integral number.
func (r Record) ID() (int64, bool) {
	if r == nil {
		return 0, false
	}
	return IntValue(r[FieldID])
}

// HasID reports whether the record's identifier equals id.
func (r Record) HasID(id int64) bool {
	got, ok := r.ID()
	return ok && got == id
}

// Clone returns a shallow copy; nested values are shared.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	out := make(Record, len(r)+2)
	for k, v := range r {
		out[k] = v
	}
	return out
}

// IntValue converts a decoded JSON value to an integer. Strings never match,
// so "1" and 1 are different identifiers.
func IntValue(v any) (int64, bool) {
	switch n := v.(type) {
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, true
		}
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return integral(f)
	case float64:
		return integral(n)
	case int:
		return int64(n), true
	case int64:
		return n, true
	case int32:
		return int64(n), true
	default:
		return 0, false
	}
}

func integral(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	return int64(f), true
}
