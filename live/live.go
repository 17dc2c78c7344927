// Package live defines the contract a collaborative live document has to
// satisfy to be reconciled with immutable snapshots.
//
// A live document is a tree of nodes. Containers are Objects, Lists and Maps;
// Registers are opaque leaves whose payload is never decomposed. Anything else
// stored in a container is a plain value (a scalar, or a []any /
// map[string]any that was never promoted to a live node).
package live

// Kind classifies a value found in either a live or a snapshot tree.
type Kind uint8

const (
	KindScalar Kind = iota
	KindObject
	KindList
	KindMap
	KindRegister
	KindPlainList
	KindPlainObject
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "Scalar"
	case KindObject:
		return "Object"
	case KindList:
		return "List"
	case KindMap:
		return "Map"
	case KindRegister:
		return "Register"
	case KindPlainList:
		return "PlainList"
	case KindPlainObject:
		return "PlainObject"
	default:
		return "Unknown"
	}
}

// KindOf classifies v. A type implementing more than one node interface is
// classified by the first match in the order Object, Map, List, Register.
func KindOf(v any) Kind {
	switch v.(type) {
	case Object:
		return KindObject
	case Map:
		return KindMap
	case List:
		return KindList
	case Register:
		return KindRegister
	case []any:
		return KindPlainList
	case map[string]any:
		return KindPlainObject
	default:
		return KindScalar
	}
}

// Node is implemented by every live node.
type Node interface {
	// Parent returns the node's current link to its container.
	Parent() Parent
}

// Object is a live record with string keys.
type Object interface {
	Node
	Get(key string) (any, bool)
	Set(key string, value any)
	Delete(key string)
	// Keys returns the defined keys.
	Keys() []string
}

// Map is a live dictionary with string keys.
type Map interface {
	Node
	Get(key string) (any, bool)
	Set(key string, value any)
	Delete(key string)
	Entries() []Entry
}

// Entry is a single key/value pair of a Map.
type Entry struct {
	Key   string
	Value any
}

// List is a live ordered sequence. Every element has a stable slot that
// survives insertions and deletions around it; IndexOf translates a slot into
// the element's current position.
type List interface {
	Node
	Len() int
	Get(index int) any
	Set(index int, value any)
	// Insert places value at index. An index equal to Len appends.
	Insert(value any, index int)
	Delete(index int)
	Move(from, to int)
	IndexOf(slot string) (int, bool)
}

// Register is an opaque collaborative leaf.
type Register interface {
	Node
	Payload() any
}

// Factory builds new, unattached live nodes pre-populated from plain values.
// The values handed to a Factory are already live-ready: nested containers
// have been converted by the caller.
type Factory interface {
	NewObject(init map[string]any) Object
	NewList(items []any) List
	NewMap(init map[string]any) Map
}
