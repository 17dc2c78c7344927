package livesync

import (
	"log/slog"

	"github.com/brunoga/livesync/internal/core"
	"github.com/brunoga/livesync/live"
)

// diffList edits list so that it goes from prev to next.
//
// Common prefix and suffix are trimmed by reference equality, then the
// remaining window is handled as a pure insertion, a pure deletion, or a
// position by position overwrite followed by trailing inserts or deletes.
// This is not a minimal edit script: an element moved across the window is
// rewritten instead of being moved.
func (d *differ) diffList(list live.List, prev, next []any, path core.Path) {
	i := 0
	prevEnd := len(prev) - 1
	nextEnd := len(next) - 1

	for i <= prevEnd && i <= nextEnd && core.Same(prev[i], next[i]) {
		i++
	}
	for i <= prevEnd && i <= nextEnd && core.Same(prev[prevEnd], next[nextEnd]) {
		prevEnd--
		nextEnd--
	}

	switch {
	case i > prevEnd:
		for ; i <= nextEnd; i++ {
			d.insert(list, i, next[i], path)
		}
	case i > nextEnd:
		for k := i; k <= prevEnd; k++ {
			d.deleteAt(list, i, path)
		}
	default:
		for ; i <= prevEnd && i <= nextEnd; i++ {
			d.diffElement(list, i, prev[i], next[i], path.Append(core.Index(i)))
		}
		for ; i <= nextEnd; i++ {
			d.insert(list, i, next[i], path)
		}
		for k := i; k <= prevEnd; k++ {
			d.deleteAt(list, i, path)
		}
	}
}

// diffElement patches the element at index in place when it is a live object
// and both snapshot values are objects. Lists and maps stored as list
// elements are always replaced.
func (d *differ) diffElement(list live.List, index int, prev, next any, path core.Path) {
	if obj, ok := list.Get(index).(live.Object); ok {
		prevObj, ok1 := prev.(map[string]any)
		nextObj, ok2 := next.(map[string]any)
		if ok1 && ok2 {
			d.diffObject(obj, prevObj, nextObj, path)
			return
		}
	}

	d.config.logger.Debug("livesync: set", slog.String("path", path.String()))
	list.Set(index, Liveify(d.factory, next))
	d.mutations++
}

func (d *differ) insert(list live.List, index int, value any, path core.Path) {
	d.config.logger.Debug("livesync: insert", slog.String("path", path.Append(core.Index(index)).String()))
	list.Insert(Liveify(d.factory, value), index)
	d.mutations++
}

func (d *differ) deleteAt(list live.List, index int, path core.Path) {
	d.config.logger.Debug("livesync: delete", slog.String("path", path.Append(core.Index(index)).String()))
	list.Delete(index)
	d.mutations++
}
