package live

// ParentState describes how a node is attached to the document.
type ParentState uint8

const (
	// NoParentState is the document root, or a node not yet attached.
	NoParentState ParentState = iota
	// HasParentState is a node stored in a container.
	HasParentState
	// OrphanedState is a node that was removed from its container.
	OrphanedState
)

// Parent is a non-owning link from a node to its container. For List
// containers Key is the element's slot, not its index.
type Parent struct {
	State ParentState
	Node  Node
	Key   string
}

func NoParent() Parent {
	return Parent{State: NoParentState}
}

func HasParent(node Node, key string) Parent {
	return Parent{State: HasParentState, Node: node, Key: key}
}

func Orphaned() Parent {
	return Parent{State: OrphanedState}
}
