package livesync

import (
	"github.com/brunoga/livesync/live"
	"github.com/brunoga/livesync/live/memory"
)

// record collects every update emitted by d, flattened across batches.
func record(d *memory.Document) *[]live.Update {
	var updates []live.Update
	d.Subscribe(func(batch []live.Update) {
		updates = append(updates, batch...)
	})
	return &updates
}

func snapshotOf(d *memory.Document) map[string]any {
	return Materialize(d.Root()).(map[string]any)
}

func with(m map[string]any, key string, value any) map[string]any {
	out := make(map[string]any, len(m)+1)
	for k, v := range m {
		out[k] = v
	}
	out[key] = value
	return out
}

func without(m map[string]any, key string) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		if k != key {
			out[k] = v
		}
	}
	return out
}
