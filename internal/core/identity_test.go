package core

import "testing"

func TestSame(t *testing.T) {
	m := map[string]any{"a": 1}
	s := []any{1, 2}

	tests := []struct {
		name string
		a, b any
		want bool
	}{
		{"same map", m, m, true},
		{"equal maps", map[string]any{"a": 1}, map[string]any{"a": 1}, false},
		{"same slice", s, s, true},
		{"equal slices", []any{1, 2}, []any{1, 2}, false},
		{"resliced", s, s[:1], false},
		{"scalars", 1.5, 1.5, true},
		{"different scalars", "a", "b", false},
		{"different types", 1, 1.0, false},
		{"nils", nil, nil, true},
		{"nil and value", nil, 0, false},
		{"map and slice", m, s, false},
	}

	for _, tt := range tests {
		if got := Same(tt.a, tt.b); got != tt.want {
			t.Errorf("%s: Same() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestSame_NonComparable(t *testing.T) {
	type wrapper struct{ v any }
	a := wrapper{v: []int{1}}
	if Same(a, a) {
		t.Error("values holding slices are never the same by value")
	}
}
