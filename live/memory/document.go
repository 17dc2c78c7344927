// Package memory is an in-process live document. It keeps parent links and
// stable list slots, and reports every mutation as a live.Update.
//
// A Document is not safe for concurrent use.
package memory

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/brunoga/livesync/live"
)

// Document owns a tree of live nodes rooted at an Object.
type Document struct {
	root *Object

	batching int
	pending  []live.Update
	byNode   map[live.Node]live.Update
	// placed holds the nodes stored or moved during the current batch.
	placed map[live.Node]bool

	subs    []subscription
	nextSub int
}

type subscription struct {
	id int
	fn func([]live.Update)
}

var _ live.Factory = (*Document)(nil)

// New returns a document whose root holds init. Nested []any and
// map[string]any values are promoted to Lists and Objects.
func New(init map[string]any) *Document {
	d := &Document{}
	d.root = d.newObject()
	for k, v := range init {
		d.root.values[k] = d.promote(v)
		d.attach(d.root.values[k], d.root, k)
	}
	return d
}

// Root returns the document's root object.
func (d *Document) Root() *Object {
	return d.root
}

// Subscribe registers fn to receive every batch of updates. The returned
// function removes the subscription.
//
// Updates refer to live nodes and are meant to be folded into a snapshot as
// they are delivered: inserted and moved values are read from the document at
// that point.
func (d *Document) Subscribe(fn func([]live.Update)) func() {
	id := d.nextSub
	d.nextSub++
	d.subs = append(d.subs, subscription{id: id, fn: fn})
	return func() {
		for i, s := range d.subs {
			if s.id == id {
				d.subs = append(d.subs[:i:i], d.subs[i+1:]...)
				return
			}
		}
	}
}

// Batch runs fn and delivers all updates it produces as a single batch.
// Updates to the same node are merged into one. Nested calls join the
// outermost batch.
//
// The batch is ordered from the root down, so a container's changes come
// before the changes of the nodes it holds. Changes inside a value that was
// stored or moved during the batch are not delivered on their own: the update
// that placed the value already carries its final content.
func (d *Document) Batch(fn func()) {
	d.batching++
	defer func() {
		d.batching--
		if d.batching == 0 {
			d.flush()
		}
	}()
	fn()
}

// emit reports u to subscribers. Changes to nodes that are not reachable from
// the root are not part of the document and are dropped.
func (d *Document) emit(u live.Update) {
	if !d.reachable(u.Node()) {
		return
	}
	if d.batching == 0 {
		d.deliver([]live.Update{u})
		return
	}

	if d.byNode == nil {
		d.byNode = make(map[live.Node]live.Update)
	}
	prev, ok := d.byNode[u.Node()]
	if !ok {
		d.byNode[u.Node()] = u
		d.pending = append(d.pending, u)
		return
	}

	switch p := prev.(type) {
	case *live.ObjectUpdate:
		for k, c := range u.(*live.ObjectUpdate).Changes {
			p.Changes[k] = c
		}
	case *live.MapUpdate:
		for k, c := range u.(*live.MapUpdate).Changes {
			p.Changes[k] = c
		}
	case *live.ListUpdate:
		p.Changes = append(p.Changes, u.(*live.ListUpdate).Changes...)
	}
}

func (d *Document) reachable(n live.Node) bool {
	for {
		if n == live.Node(d.root) {
			return true
		}
		p := n.Parent()
		if p.State != live.HasParentState {
			return false
		}
		n = p.Node
	}
}

func (d *Document) flush() {
	updates := d.pending
	placed := d.placed
	d.pending = nil
	d.byNode = nil
	d.placed = nil

	updates = slices.DeleteFunc(updates, func(u live.Update) bool {
		return covered(u.Node(), placed)
	})
	depths := make(map[live.Node]int, len(updates))
	for _, u := range updates {
		depths[u.Node()] = depth(u.Node())
	}
	slices.SortStableFunc(updates, func(a, b live.Update) int {
		return cmp.Compare(depths[a.Node()], depths[b.Node()])
	})

	if len(updates) > 0 {
		d.deliver(updates)
	}
}

// covered reports whether n, or one of its ancestors, was placed in the
// current batch.
func covered(n live.Node, placed map[live.Node]bool) bool {
	for {
		if placed[n] {
			return true
		}
		p := n.Parent()
		if p.State != live.HasParentState {
			return false
		}
		n = p.Node
	}
}

func depth(n live.Node) int {
	hops := 0
	for p := n.Parent(); p.State == live.HasParentState; p = p.Node.Parent() {
		hops++
	}
	return hops
}

// markPlaced records that v was stored or moved during the current batch.
func (d *Document) markPlaced(v any) {
	n, ok := v.(live.Node)
	if !ok || d.batching == 0 {
		return
	}
	if d.placed == nil {
		d.placed = make(map[live.Node]bool)
	}
	d.placed[n] = true
}

func (d *Document) deliver(updates []live.Update) {
	for _, s := range d.subs {
		s.fn(updates)
	}
}

// NewObject returns an unattached Object holding init.
func (d *Document) NewObject(init map[string]any) live.Object {
	o := d.newObject()
	for k, v := range init {
		d.attach(v, o, k)
		o.values[k] = v
	}
	return o
}

// NewList returns an unattached List holding items.
func (d *Document) NewList(items []any) live.List {
	l := d.newList()
	for _, v := range items {
		it := item{slot: newSlot(), value: v}
		d.attach(v, l, it.slot)
		l.items = append(l.items, it)
	}
	return l
}

// NewMap returns an unattached Map holding init.
func (d *Document) NewMap(init map[string]any) live.Map {
	m := d.newMap()
	for k, v := range init {
		d.attach(v, m, k)
		m.values[k] = v
	}
	return m
}

func (d *Document) newObject() *Object {
	return &Object{node: node{doc: d}, values: make(map[string]any)}
}

func (d *Document) newList() *List {
	return &List{node: node{doc: d}}
}

func (d *Document) newMap() *Map {
	return &Map{node: node{doc: d}, values: make(map[string]any)}
}

func (d *Document) promote(v any) any {
	switch x := v.(type) {
	case []any:
		items := make([]any, len(x))
		for i, elem := range x {
			items[i] = d.promote(elem)
		}
		return d.NewList(items)
	case map[string]any:
		init := make(map[string]any, len(x))
		for k, elem := range x {
			init[k] = d.promote(elem)
		}
		return d.NewObject(init)
	default:
		return v
	}
}

// attach links v to its new container. Storing a node that already lives
// somewhere else would give it two parents, so it panics instead.
func (d *Document) attach(v any, parent live.Node, key string) {
	n, ok := v.(attachable)
	if !ok {
		return
	}
	b := n.base()
	if b.doc != d {
		panic("memory: node belongs to another document")
	}
	if b.parent.State == live.HasParentState {
		panic(fmt.Sprintf("memory: node is already attached under %q", b.parent.Key))
	}
	b.parent = live.HasParent(parent, key)
	d.markPlaced(v)
}

func detach(v any) {
	if n, ok := v.(attachable); ok {
		n.base().parent = live.Orphaned()
	}
}

type attachable interface {
	base() *node
}

type node struct {
	doc    *Document
	parent live.Parent
}

func (n *node) Parent() live.Parent { return n.parent }
func (n *node) base() *node         { return n }
