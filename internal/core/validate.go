package core

import (
	"encoding/json"
	"math"
)

// FindNonRepresentable walks v and returns the path (relative to v) and value
// of the first element that cannot be stored in a live document. Representable
// values are nil, bool, string, finite numbers, json.Number, []any and
// map[string]any of representable values.
//
// Map keys are visited in no particular order, so when several values are
// non-representable any of them may be reported.
func FindNonRepresentable(v any) (Path, any, bool) {
	return findNonRepresentable(v, nil)
}

func findNonRepresentable(v any, path Path) (Path, any, bool) {
	switch x := v.(type) {
	case nil, bool, string, json.Number,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return nil, nil, false
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return path, v, true
		}
		return nil, nil, false
	case float32:
		f := float64(x)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return path, v, true
		}
		return nil, nil, false
	case []any:
		for i, elem := range x {
			if p, bad, found := findNonRepresentable(elem, path.Append(Index(i))); found {
				return p, bad, true
			}
		}
		return nil, nil, false
	case map[string]any:
		for k, elem := range x {
			if p, bad, found := findNonRepresentable(elem, path.Append(Key(k))); found {
				return p, bad, true
			}
		}
		return nil, nil, false
	default:
		return path, v, true
	}
}
