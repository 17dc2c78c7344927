package memory

import (
	"slices"

	"github.com/brunoga/livesync/live"
)

// Map is a live dictionary.
type Map struct {
	node
	values map[string]any
}

var _ live.Map = (*Map)(nil)

func (m *Map) Get(key string) (any, bool) {
	v, ok := m.values[key]
	return v, ok
}

func (m *Map) Set(key string, value any) {
	if old, ok := m.values[key]; ok {
		detach(old)
	}
	m.doc.attach(value, m, key)
	m.values[key] = value
	m.doc.emit(&live.MapUpdate{
		Target:  m,
		Changes: map[string]live.ChangeKind{key: live.ChangeUpdate},
	})
}

func (m *Map) Delete(key string) {
	old, ok := m.values[key]
	if !ok {
		return
	}
	detach(old)
	delete(m.values, key)
	m.doc.emit(&live.MapUpdate{
		Target:  m,
		Changes: map[string]live.ChangeKind{key: live.ChangeDelete},
	})
}

// Entries returns the entries sorted by key.
func (m *Map) Entries() []live.Entry {
	entries := make([]live.Entry, 0, len(m.values))
	for k, v := range m.values {
		entries = append(entries, live.Entry{Key: k, Value: v})
	}
	slices.SortFunc(entries, func(a, b live.Entry) int {
		switch {
		case a.Key < b.Key:
			return -1
		case a.Key > b.Key:
			return 1
		}
		return 0
	})
	return entries
}
