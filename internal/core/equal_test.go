package core

import "testing"

func TestEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b any
		want bool
	}{
		{"scalars", "a", "a", true},
		{"numbers across types", 1, 1.0, true},
		{"different numbers", 1, 2, false},
		{"nested", map[string]any{"a": []any{1, "x"}}, map[string]any{"a": []any{1.0, "x"}}, true},
		{"missing key", map[string]any{"a": 1}, map[string]any{"b": 1}, false},
		{"longer list", []any{1}, []any{1, 2}, false},
		{"null vs value", nil, 0, false},
		{"list vs map", []any{}, map[string]any{}, false},
	}

	for _, tt := range tests {
		if got := Equal(tt.a, tt.b); got != tt.want {
			t.Errorf("%s: Equal() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestMismatch_Path(t *testing.T) {
	a := map[string]any{"todos": []any{map[string]any{"done": false}}}
	b := map[string]any{"todos": []any{map[string]any{"done": true}}}

	path, differ := Mismatch(a, b)
	if !differ {
		t.Fatal("expected a difference")
	}
	if path.String() != "/todos/0/done" {
		t.Errorf("path = %s, want /todos/0/done", path)
	}
}
