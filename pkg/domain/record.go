package domain

import (
	"encoding/json"
	"math"
	"reflect"
	"sort"
	"strconv"
	"time"
)

// Record is a single entity row: a mapping of field name to value. Values are
// the JSON scalar and container types (string, float64, bool, map, slice).
// A committed record always carries its own identifier field.
type Record map[string]any

// Clone returns a deep copy of the record. Mutating the copy never affects
// the original, which keeps query results and deltas free of aliasing into
// shared store state.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = cloneValue(item)
		}
		return out
	case Record:
		return map[string]any(val.Clone())
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return v
	}
}

// String returns the named field as a string, or "" when absent or not a string.
func (r Record) String(field string) string {
	s, _ := r[field].(string)
	return s
}

// Number returns the named field coerced to float64. JSON decoding yields
// float64 for every numeric literal, but seeded fixtures and callers may
// supply Go ints, so both are accepted.
func (r Record) Number(field string) (float64, bool) {
	return asNumber(r[field])
}

func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

// ValueEqual reports whether two record field values are exactly equal under
// the query engine's matching semantics. Numbers compare by value regardless
// of their Go representation; everything else compares structurally.
func ValueEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	an, aok := asNumber(a)
	bn, bok := asNumber(b)
	if aok && bok {
		return an == bn || (math.IsNaN(an) && math.IsNaN(bn))
	}
	if aok != bok {
		return false
	}
	return reflect.DeepEqual(a, b)
}

// Timestamp layouts accepted for created_at / updated_at values. Seed
// fixtures use ISO-8601 without a zone; the commit engine writes RFC3339.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseTimestamp parses a timestamp field value. The boolean is false when
// the value is absent or does not match any accepted layout.
func ParseTimestamp(v any) (time.Time, bool) {
	s, ok := v.(string)
	if !ok || s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatTimestamp renders a commit timestamp in the canonical stored form.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// ParseID parses a decimal-digit identifier string. Non-numeric keys are
// tolerated on read (they simply never participate in allocation).
func ParseID(id string) (int64, bool) {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// FormatID renders an integer identifier in its canonical string form.
func FormatID(n int64) string {
	return strconv.FormatInt(n, 10)
}

// SortIDs orders identifiers numerically, falling back to lexical order
// for any non-numeric stragglers.
func SortIDs(ids []string) {
	sort.Slice(ids, func(i, j int) bool {
		a, aok := ParseID(ids[i])
		b, bok := ParseID(ids[j])
		if aok && bok {
			return a < b
		}
		if aok != bok {
			return aok
		}
		return ids[i] < ids[j]
	})
}
