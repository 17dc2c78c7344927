package core

import "testing"

func TestPath_String(t *testing.T) {
	tests := []struct {
		path Path
		want string
	}{
		{nil, "/"},
		{Path{Key("a")}, "/a"},
		{Path{Key("todos"), Index(2), Key("done")}, "/todos/2/done"},
		{Path{Key("a/b"), Key("~c")}, "/a~1b/~0c"},
	}

	for _, tt := range tests {
		if got := tt.path.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestParsePath(t *testing.T) {
	tests := []struct {
		path    string
		want    []string
		indexes []bool
	}{
		{"", nil, nil},
		{"/", nil, nil},
		{"/a/0/b", []string{"a", "0", "b"}, []bool{false, true, false}},
		{"/a~1b/~0c", []string{"a/b", "~c"}, []bool{false, false}},
		{"a/b", []string{"a", "b"}, []bool{false, false}},
	}

	for _, tt := range tests {
		parts := ParsePath(tt.path)
		if len(parts) != len(tt.want) {
			t.Errorf("ParsePath(%q) returned %d parts, want %d", tt.path, len(parts), len(tt.want))
			continue
		}
		for i, part := range parts {
			if part.String() != tt.want[i] {
				t.Errorf("ParsePath(%q)[%d] = %q, want %q", tt.path, i, part.String(), tt.want[i])
			}
			if part.IsIndex != tt.indexes[i] {
				t.Errorf("ParsePath(%q)[%d].IsIndex = %v, want %v", tt.path, i, part.IsIndex, tt.indexes[i])
			}
		}
	}
}

func TestPath_AppendDoesNotAlias(t *testing.T) {
	base := make(Path, 1, 4)
	base[0] = Key("root")

	a := base.Append(Key("a"))
	b := base.Append(Key("b"))

	if a.String() != "/root/a" {
		t.Errorf("a = %s", a)
	}
	if b.String() != "/root/b" {
		t.Errorf("b = %s", b)
	}
}
