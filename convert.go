package livesync

import "github.com/brunoga/livesync/live"

// Materialize converts a live value into a snapshot value. Containers are
// converted recursively into fresh map[string]any and []any values; register
// payloads and scalars are returned as they are.
func Materialize(v any) any {
	switch live.KindOf(v) {
	case live.KindObject:
		obj := v.(live.Object)
		keys := obj.Keys()
		out := make(map[string]any, len(keys))
		for _, k := range keys {
			if val, ok := obj.Get(k); ok {
				out[k] = Materialize(val)
			}
		}
		return out
	case live.KindMap:
		entries := v.(live.Map).Entries()
		out := make(map[string]any, len(entries))
		for _, e := range entries {
			out[e.Key] = Materialize(e.Value)
		}
		return out
	case live.KindList:
		list := v.(live.List)
		out := make([]any, list.Len())
		for i := range out {
			out[i] = Materialize(list.Get(i))
		}
		return out
	case live.KindRegister:
		return v.(live.Register).Payload()
	case live.KindPlainList:
		plain := v.([]any)
		out := make([]any, len(plain))
		for i, elem := range plain {
			out[i] = Materialize(elem)
		}
		return out
	case live.KindPlainObject:
		plain := v.(map[string]any)
		out := make(map[string]any, len(plain))
		for k, elem := range plain {
			out[k] = Materialize(elem)
		}
		return out
	default:
		return v
	}
}

// Liveify builds the live form of a snapshot value: []any becomes a List and
// map[string]any an Object, recursively. Other values, live nodes included,
// are returned unchanged. It must only be used for values that have no live
// counterpart yet.
func Liveify(f live.Factory, v any) any {
	switch live.KindOf(v) {
	case live.KindPlainList:
		plain := v.([]any)
		items := make([]any, len(plain))
		for i, elem := range plain {
			items[i] = Liveify(f, elem)
		}
		return f.NewList(items)
	case live.KindPlainObject:
		plain := v.(map[string]any)
		init := make(map[string]any, len(plain))
		for k, elem := range plain {
			init[k] = Liveify(f, elem)
		}
		return f.NewObject(init)
	default:
		return v
	}
}
