package livesync

import (
	"context"
	"errors"
	"log/slog"
	"maps"
	"slices"
	"time"

	"github.com/brunoga/livesync/live"
)

// Patch folds updates, in order, into snapshot and returns the resulting
// snapshot. snapshot is never modified: only the containers on the path from
// the root to each updated node are copied, every other subtree is shared
// with the input.
//
// Updates coming from nodes that have since been removed from the document
// are skipped. If an update does not fit the snapshot an *InconsistencyError
// is returned together with the unmodified input snapshot.
func Patch(ctx context.Context, snapshot map[string]any, updates []live.Update, opts ...Option) (map[string]any, error) {
	c := newConfig(opts)
	tel := newTelemetry(c)

	ctx, span := tel.startPatch(ctx, len(updates))
	start := time.Now()

	var state any = snapshot
	for _, u := range updates {
		next, err := patchOne(state, u, c.logger)
		if err != nil {
			tel.endPatch(ctx, span, time.Since(start), err)
			return snapshot, err
		}
		state = next
		tel.recordApplied(ctx, updateKind(u))
	}

	tel.endPatch(ctx, span, time.Since(start), nil)
	return state.(map[string]any), nil
}

func patchOne(state any, u live.Update, logger *slog.Logger) (any, error) {
	path, err := ResolvePath(u.Node())
	if errors.Is(err, ErrDetached) {
		logger.Debug("livesync: skipping update from detached node", slog.String("update", u.String()))
		return state, nil
	}
	if err != nil {
		return nil, err
	}
	return patchNode(state, path, 0, u)
}

// patchNode copies the container at path[:depth] and replaces the child on
// the path with its patched version.
func patchNode(state any, path Path, depth int, u live.Update) (any, error) {
	if depth == len(path) {
		return applyUpdate(state, path, u)
	}

	part := path[depth]
	if part.IsIndex {
		list, ok := state.([]any)
		if !ok {
			return nil, inconsistent(path[:depth], u, "expected a list, found %T", state)
		}
		if part.Index < 0 || part.Index >= len(list) {
			return nil, inconsistent(path[:depth+1], u, "index out of range [0,%d)", len(list))
		}
		child, err := patchNode(list[part.Index], path, depth+1, u)
		if err != nil {
			return nil, err
		}
		out := slices.Clone(list)
		out[part.Index] = child
		return out, nil
	}

	obj, ok := state.(map[string]any)
	if !ok {
		return nil, inconsistent(path[:depth], u, "expected an object, found %T", state)
	}
	old, ok := obj[part.Key]
	if !ok {
		return nil, inconsistent(path[:depth+1], u, "missing key")
	}
	child, err := patchNode(old, path, depth+1, u)
	if err != nil {
		return nil, err
	}
	out := maps.Clone(obj)
	out[part.Key] = child
	return out, nil
}

func applyUpdate(state any, path Path, u live.Update) (any, error) {
	switch u := u.(type) {
	case *live.ObjectUpdate:
		return applyKeyChanges(state, path, u, u.Target.Get, u.Changes)
	case *live.MapUpdate:
		return applyKeyChanges(state, path, u, u.Target.Get, u.Changes)
	case *live.ListUpdate:
		return applyListChanges(state, path, u)
	default:
		return nil, inconsistent(path, u, "unknown update type %T", u)
	}
}

func applyKeyChanges(state any, path Path, u live.Update, get func(string) (any, bool), changes map[string]live.ChangeKind) (any, error) {
	obj, ok := state.(map[string]any)
	if !ok {
		return nil, inconsistent(path, u, "expected an object, found %T", state)
	}

	out := make(map[string]any, len(obj)+len(changes))
	maps.Copy(out, obj)
	for key, change := range changes {
		switch change {
		case live.ChangeUpdate:
			if v, ok := get(key); ok {
				out[key] = Materialize(v)
			}
		case live.ChangeDelete:
			delete(out, key)
		default:
			return nil, inconsistent(path, u, "unknown change %v for key %q", change, key)
		}
	}
	return out, nil
}

func applyListChanges(state any, path Path, u *live.ListUpdate) (any, error) {
	list, ok := state.([]any)
	if !ok {
		return nil, inconsistent(path, u, "expected a list, found %T", state)
	}

	out := slices.Clone(list)
	for _, c := range u.Changes {
		switch c.Op {
		case live.ListSet:
			if c.Index < 0 || c.Index >= len(out) {
				return nil, inconsistent(path, u, "%s: index out of range [0,%d)", c, len(out))
			}
			out[c.Index] = Materialize(c.Item)
		case live.ListInsert:
			if c.Index < 0 || c.Index > len(out) {
				return nil, inconsistent(path, u, "%s: index out of range [0,%d]", c, len(out))
			}
			if c.Index == len(out) {
				out = append(out, Materialize(c.Item))
			} else {
				out = slices.Insert(out, c.Index, Materialize(c.Item))
			}
		case live.ListDelete:
			if c.Index < 0 || c.Index >= len(out) {
				return nil, inconsistent(path, u, "%s: index out of range [0,%d)", c, len(out))
			}
			out = slices.Delete(out, c.Index, c.Index+1)
		case live.ListMove:
			if c.PreviousIndex < 0 || c.PreviousIndex >= len(out) || c.Index < 0 || c.Index >= len(out) {
				return nil, inconsistent(path, u, "%s: index out of range [0,%d)", c, len(out))
			}
			// The moved slot takes the carried value, not the one previously
			// stored at PreviousIndex.
			out = slices.Delete(out, c.PreviousIndex, c.PreviousIndex+1)
			out = slices.Insert(out, c.Index, Materialize(c.Item))
		default:
			return nil, inconsistent(path, u, "unknown list operation %v", c.Op)
		}
	}
	return out, nil
}

func updateKind(u live.Update) string {
	switch u.(type) {
	case *live.ObjectUpdate:
		return "object"
	case *live.MapUpdate:
		return "map"
	case *live.ListUpdate:
		return "list"
	default:
		return "unknown"
	}
}
