package core

import (
	"strconv"
	"strings"
)

// PathPart is a single step in a document path: either a key into an
// object/map or an index into a list.
type PathPart struct {
	Key     string
	Index   int
	IsIndex bool
}

// Key returns a PathPart addressing an object or map key.
func Key(k string) PathPart {
	return PathPart{Key: k}
}

// Index returns a PathPart addressing a list position.
func Index(i int) PathPart {
	return PathPart{Index: i, IsIndex: true}
}

func (p PathPart) String() string {
	if p.IsIndex {
		return strconv.Itoa(p.Index)
	}
	return p.Key
}

// Path is a root-to-node sequence of parts.
type Path []PathPart

// Append returns a new path with part added at the end. The receiver is never
// modified, so sibling paths built from the same parent do not alias.
func (p Path) Append(part PathPart) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, part)
}

// Join returns a new path made of p followed by other.
func (p Path) Join(other Path) Path {
	out := make(Path, 0, len(p)+len(other))
	out = append(out, p...)
	return append(out, other...)
}

// String renders the path as a JSON Pointer (RFC 6901). The empty path is "/".
func (p Path) String() string {
	if len(p) == 0 {
		return "/"
	}
	var b strings.Builder
	for _, part := range p {
		b.WriteByte('/')
		if part.IsIndex {
			b.WriteString(strconv.Itoa(part.Index))
		} else {
			b.WriteString(EscapeKey(part.Key))
		}
	}
	return b.String()
}

// ParsePath parses a JSON Pointer. Tokens made only of digits become index
// parts; whether they address a list or a key is decided by the caller when
// it walks the tree.
func ParsePath(path string) Path {
	if path == "" || path == "/" {
		return nil
	}

	var tokens []string
	if strings.HasPrefix(path, "/") {
		tokens = strings.Split(path, "/")[1:]
	} else {
		tokens = strings.Split(path, "/")
	}

	parts := make(Path, len(tokens))
	for i, token := range tokens {
		token = UnescapeKey(token)
		if idx, err := strconv.Atoi(token); err == nil && idx >= 0 {
			parts[i] = PathPart{Key: token, Index: idx, IsIndex: true}
		} else {
			parts[i] = PathPart{Key: token}
		}
	}
	return parts
}

func EscapeKey(key string) string {
	key = strings.ReplaceAll(key, "~", "~0")
	key = strings.ReplaceAll(key, "/", "~1")
	return key
}

func UnescapeKey(token string) string {
	token = strings.ReplaceAll(token, "~1", "/")
	token = strings.ReplaceAll(token, "~0", "~")
	return token
}
