package live

import (
	"fmt"
	"slices"
	"strings"
)

// Update describes the changes made to a single live node. The set of
// implementations is closed: *ObjectUpdate, *MapUpdate and *ListUpdate.
type Update interface {
	fmt.Stringer
	// Node returns the node the changes happened on.
	Node() Node
	isUpdate()
}

// ChangeKind is the kind of change made to an object or map key.
type ChangeKind uint8

const (
	ChangeUpdate ChangeKind = iota + 1
	ChangeDelete
)

func (c ChangeKind) String() string {
	switch c {
	case ChangeUpdate:
		return "update"
	case ChangeDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// ObjectUpdate lists the keys of an Object that changed. The new values are
// read from Target when the update is applied.
type ObjectUpdate struct {
	Target  Object
	Changes map[string]ChangeKind
}

func (u *ObjectUpdate) Node() Node { return u.Target }
func (u *ObjectUpdate) isUpdate()  {}

func (u *ObjectUpdate) String() string {
	return "Object" + formatChanges(u.Changes)
}

// MapUpdate lists the keys of a Map that changed.
type MapUpdate struct {
	Target  Map
	Changes map[string]ChangeKind
}

func (u *MapUpdate) Node() Node { return u.Target }
func (u *MapUpdate) isUpdate()  {}

func (u *MapUpdate) String() string {
	return "Map" + formatChanges(u.Changes)
}

// formatChanges renders key changes as {a:update b:delete}, sorted by key.
func formatChanges(changes map[string]ChangeKind) string {
	keys := make([]string, 0, len(changes))
	for k := range changes {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	var b strings.Builder
	b.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%s:%s", k, changes[k])
	}
	b.WriteByte('}')
	return b.String()
}

// ListOp is the kind of a single list change.
type ListOp uint8

const (
	ListSet ListOp = iota + 1
	ListInsert
	ListDelete
	ListMove
)

func (o ListOp) String() string {
	switch o {
	case ListSet:
		return "set"
	case ListInsert:
		return "insert"
	case ListDelete:
		return "delete"
	case ListMove:
		return "move"
	default:
		return "unknown"
	}
}

// ListChange is one positional change of a List. Item is the value now at
// Index (unused for ListDelete); PreviousIndex is only used by ListMove.
type ListChange struct {
	Op            ListOp
	Index         int
	PreviousIndex int
	Item          any
}

func (c ListChange) String() string {
	switch c.Op {
	case ListDelete:
		return fmt.Sprintf("delete(%d)", c.Index)
	case ListMove:
		return fmt.Sprintf("move(%d->%d)", c.PreviousIndex, c.Index)
	default:
		return fmt.Sprintf("%s(%d)", c.Op, c.Index)
	}
}

// ListUpdate lists the changes of a List in the order they happened.
type ListUpdate struct {
	Target  List
	Changes []ListChange
}

func (u *ListUpdate) Node() Node { return u.Target }
func (u *ListUpdate) isUpdate()  {}

func (u *ListUpdate) String() string {
	return fmt.Sprintf("List%v", u.Changes)
}
