package core

import (
	"encoding/json"
	"math"
	"testing"
)

func TestFindNonRepresentable(t *testing.T) {
	fn := func() {}

	tests := []struct {
		name     string
		value    any
		found    bool
		wantPath string
	}{
		{"scalar", "x", false, ""},
		{"null", nil, false, ""},
		{"number", json.Number("12"), false, ""},
		{"nested ok", map[string]any{"a": []any{1, true, map[string]any{"b": nil}}}, false, ""},
		{"func at root", fn, true, "/"},
		{"nan", map[string]any{"a": math.NaN()}, true, "/a"},
		{"inf in list", []any{1, math.Inf(1)}, true, "/1"},
		{"typed slice", map[string]any{"a": []string{"x"}}, true, "/a"},
		{"struct", map[string]any{"a": []any{0, struct{}{}}}, true, "/a/1"},
		{"channel", map[string]any{"c": make(chan int)}, true, "/c"},
	}

	for _, tt := range tests {
		path, _, found := FindNonRepresentable(tt.value)
		if found != tt.found {
			t.Errorf("%s: found = %v, want %v", tt.name, found, tt.found)
			continue
		}
		if found && path.String() != tt.wantPath {
			t.Errorf("%s: path = %s, want %s", tt.name, path, tt.wantPath)
		}
	}
}
