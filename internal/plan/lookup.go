package plan

import (
	"strconv"
	"strings"
)

// Lookup finds the first candidate key present in the record, matching
// key names case-insensitively, and returns its value. The backend does
// not guarantee consistent key casing between calls ("Calories" one call,
// "calories" the next), so every field extraction goes through here.
// A nil record yields absent; Lookup never panics.
func Lookup(rec *Record, candidates ...string) (any, bool) {
	_, v, ok := lookupKey(rec, candidates...)
	return v, ok
}

// lookupKey is Lookup plus the actual key the value was found under.
func lookupKey(rec *Record, candidates ...string) (string, any, bool) {
	if rec == nil {
		return "", nil, false
	}
	for _, want := range candidates {
		for _, key := range rec.keys {
			if strings.EqualFold(key, want) {
				return key, rec.values[key], true
			}
		}
	}
	return "", nil, false
}

// Body returns the first candidate key's value when it is itself a record,
// falling back to the record as a whole. The backend sometimes nests the
// plan under a wrapper key and sometimes returns it flat; this fallback
// tolerates both.
func Body(rec *Record, candidates ...string) *Record {
	if v, ok := Lookup(rec, candidates...); ok {
		if nested, ok := v.(*Record); ok {
			return nested
		}
	}
	return rec
}

// Number coerces a looked-up value to a float64.
func Number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	}
	return 0, false
}

// Text coerces a looked-up value to display text. Numbers are formatted
// without a trailing fraction when whole; arrays of strings are joined
// with ", ". Records and mixed arrays don't coerce.
func Text(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return sanitize(t), true
	case float64:
		return formatNumber(t), true
	case bool:
		return strconv.FormatBool(t), true
	case []any:
		return joinStrings(t)
	}
	return "", false
}

// mealText accepts only the value shapes that render as a meal:
// a string, or a sequence of strings joined with ", ".
func mealText(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return sanitize(t), true
	case []any:
		return joinStrings(t)
	}
	return "", false
}

func joinStrings(items []any) (string, bool) {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return "", false
		}
		parts = append(parts, sanitize(s))
	}
	return strings.Join(parts, ", "), true
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func equalFoldAny(key string, candidates ...string) bool {
	for _, c := range candidates {
		if strings.EqualFold(key, c) {
			return true
		}
	}
	return false
}

// sanitize strips control characters from free text before display.
// Plan content is model output and goes straight to the terminal.
func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return ' '
		}
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, s)
}
