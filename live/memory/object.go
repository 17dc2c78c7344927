package memory

import (
	"slices"

	"github.com/brunoga/livesync/live"
)

// Object is a live record.
type Object struct {
	node
	values map[string]any
}

var _ live.Object = (*Object)(nil)

func (o *Object) Get(key string) (any, bool) {
	v, ok := o.values[key]
	return v, ok
}

func (o *Object) Set(key string, value any) {
	if old, ok := o.values[key]; ok {
		detach(old)
	}
	o.doc.attach(value, o, key)
	o.values[key] = value
	o.doc.emit(&live.ObjectUpdate{
		Target:  o,
		Changes: map[string]live.ChangeKind{key: live.ChangeUpdate},
	})
}

func (o *Object) Delete(key string) {
	old, ok := o.values[key]
	if !ok {
		return
	}
	detach(old)
	delete(o.values, key)
	o.doc.emit(&live.ObjectUpdate{
		Target:  o,
		Changes: map[string]live.ChangeKind{key: live.ChangeDelete},
	})
}

// Keys returns the defined keys in sorted order.
func (o *Object) Keys() []string {
	keys := make([]string, 0, len(o.values))
	for k := range o.values {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
