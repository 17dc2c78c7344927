package core

import (
	"encoding/json"
	"reflect"
	"slices"
)

// Equal performs a deep equality check between two snapshot values. Numbers
// of different Go types compare equal when they hold the same value, so a
// document decoded from YAML (ints) matches one decoded from JSON (float64s).
func Equal(a, b any) bool {
	_, differ := Mismatch(a, b)
	return !differ
}

// Mismatch returns the path of the first difference between a and b. Map keys
// are visited in sorted order so the reported path is stable.
func Mismatch(a, b any) (Path, bool) {
	return mismatch(a, b, nil)
}

func mismatch(a, b any, path Path) (Path, bool) {
	switch x := a.(type) {
	case map[string]any:
		y, ok := b.(map[string]any)
		if !ok || len(x) != len(y) {
			return path, true
		}
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			yv, ok := y[k]
			if !ok {
				return path.Append(Key(k)), true
			}
			if p, differ := mismatch(x[k], yv, path.Append(Key(k))); differ {
				return p, true
			}
		}
		return nil, false
	case []any:
		y, ok := b.([]any)
		if !ok {
			return path, true
		}
		for i := range x {
			if i >= len(y) {
				return path.Append(Index(i)), true
			}
			if p, differ := mismatch(x[i], y[i], path.Append(Index(i))); differ {
				return p, true
			}
		}
		if len(y) > len(x) {
			return path.Append(Index(len(x))), true
		}
		return nil, false
	}

	if fa, ok := number(a); ok {
		if fb, ok := number(b); ok && fa == fb {
			return nil, false
		}
		return path, true
	}
	if a == nil || b == nil {
		if a == nil && b == nil {
			return nil, false
		}
		return path, true
	}
	if !reflect.DeepEqual(a, b) {
		return path, true
	}
	return nil, false
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}
