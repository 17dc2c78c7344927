package livesync

import (
	"fmt"
	"slices"

	"github.com/brunoga/livesync/internal/core"
	"github.com/brunoga/livesync/live"
)

// Path locates a value inside a snapshot, from the root down. It renders as a
// JSON Pointer.
type Path = core.Path

// ResolvePath returns the path from the document root to n. List positions
// are looked up through the parent list when ResolvePath is called, so the
// result reflects the current order of the list.
//
// It returns ErrDetached if n, or one of its ancestors, has been removed from
// the document.
func ResolvePath(n live.Node) (Path, error) {
	var path Path
	for {
		p := n.Parent()
		switch p.State {
		case live.NoParentState:
			slices.Reverse(path)
			return path, nil
		case live.HasParentState:
		default:
			return nil, ErrDetached
		}

		if p.Node == nil {
			return nil, fmt.Errorf("%w: parent link %q has no node", ErrDetached, p.Key)
		}
		if list, ok := p.Node.(live.List); ok {
			idx, ok := list.IndexOf(p.Key)
			if !ok {
				return nil, ErrDetached
			}
			path = append(path, core.Index(idx))
		} else {
			path = append(path, core.Key(p.Key))
		}
		n = p.Node
	}
}
