package memory

import (
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/brunoga/livesync/live"
)

// List is a live sequence. Each element gets a random slot when it is stored
// so its position can be looked up after siblings move around it.
type List struct {
	node
	items []item
}

type item struct {
	slot  string
	value any
}

var _ live.List = (*List)(nil)

func newSlot() string {
	return uuid.NewString()
}

func (l *List) Len() int {
	return len(l.items)
}

func (l *List) Get(index int) any {
	l.check(index, len(l.items))
	return l.items[index].value
}

func (l *List) Set(index int, value any) {
	l.check(index, len(l.items))
	detach(l.items[index].value)
	it := item{slot: newSlot(), value: value}
	l.doc.attach(value, l, it.slot)
	l.items[index] = it
	l.doc.emit(&live.ListUpdate{
		Target:  l,
		Changes: []live.ListChange{{Op: live.ListSet, Index: index, Item: value}},
	})
}

func (l *List) Insert(value any, index int) {
	l.check(index, len(l.items)+1)
	it := item{slot: newSlot(), value: value}
	l.doc.attach(value, l, it.slot)
	if index == len(l.items) {
		l.items = append(l.items, it)
	} else {
		l.items = slices.Insert(l.items, index, it)
	}
	l.doc.emit(&live.ListUpdate{
		Target:  l,
		Changes: []live.ListChange{{Op: live.ListInsert, Index: index, Item: value}},
	})
}

func (l *List) Delete(index int) {
	l.check(index, len(l.items))
	detach(l.items[index].value)
	l.items = slices.Delete(l.items, index, index+1)
	l.doc.emit(&live.ListUpdate{
		Target:  l,
		Changes: []live.ListChange{{Op: live.ListDelete, Index: index}},
	})
}

// Move relocates the element at from so that it ends up at to. The element
// keeps its slot.
func (l *List) Move(from, to int) {
	l.check(from, len(l.items))
	l.check(to, len(l.items))
	if from == to {
		return
	}
	it := l.items[from]
	l.items = slices.Delete(l.items, from, from+1)
	l.items = slices.Insert(l.items, to, it)
	l.doc.markPlaced(it.value)
	l.doc.emit(&live.ListUpdate{
		Target:  l,
		Changes: []live.ListChange{{Op: live.ListMove, Index: to, PreviousIndex: from, Item: it.value}},
	})
}

func (l *List) IndexOf(slot string) (int, bool) {
	for i, it := range l.items {
		if it.slot == slot {
			return i, true
		}
	}
	return -1, false
}

func (l *List) check(index, limit int) {
	if index < 0 || index >= limit {
		panic(fmt.Sprintf("memory: list index %d out of range [0,%d)", index, limit))
	}
}
