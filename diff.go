package livesync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/brunoga/livesync/internal/core"
	"github.com/brunoga/livesync/live"
)

// Diff mutates root so that its content goes from prev to next. Unchanged
// subtrees are detected by reference: values shared between prev and next are
// not visited. Nested objects and lists are patched in place rather than
// replaced when their live counterpart has the same shape.
//
// Every top-level key whose next value is not representable is left untouched
// and reported; the other keys are still applied. The returned error joins a
// *NonRepresentableError for each refused key and is nil otherwise.
func Diff(ctx context.Context, f live.Factory, root live.Object, prev, next map[string]any, opts ...Option) error {
	c := newConfig(opts)
	tel := newTelemetry(c)

	ctx, span := tel.startDiff(ctx, len(next))
	start := time.Now()

	d := &differ{factory: f, config: c}
	d.diffObject(root, prev, next, nil)

	tel.endDiff(ctx, span, time.Since(start), d.mutations, len(d.rejected))
	return errors.Join(d.rejected...)
}

// keyed is the part of live.Object and live.Map the differ writes through.
type keyed interface {
	Get(key string) (any, bool)
	Set(key string, value any)
	Delete(key string)
}

type differ struct {
	factory   live.Factory
	config    *config
	mutations int
	rejected  []error
}

// diffObject applies next's keys first and removes prev-only keys afterwards.
// A key present in both prev and next is never deleted.
func (d *differ) diffObject(target keyed, prev, next map[string]any, path core.Path) {
	for _, key := range sortedKeys(next) {
		p, hasPrev := prev[key]
		d.diffKey(target, key, p, hasPrev, next[key], true, path)
	}
	for _, key := range sortedKeys(prev) {
		if _, ok := next[key]; !ok {
			d.delete(target, key, path.Append(core.Key(key)))
		}
	}
}

func (d *differ) diffKey(target keyed, key string, prev any, hasPrev bool, next any, hasNext bool, path core.Path) {
	keyPath := path.Append(core.Key(key))

	if !hasNext {
		d.delete(target, key, keyPath)
		return
	}

	current, hasCurrent := target.Get(key)
	if hasPrev && hasCurrent && core.Same(prev, next) {
		return
	}

	// Nested keys are covered by the check of their top-level ancestor.
	if len(path) == 0 && !d.config.skipValidation {
		if bad, value, found := core.FindNonRepresentable(next); found {
			d.reject(keyPath.Join(bad), value)
			return
		}
	}

	if !hasPrev || !hasCurrent {
		d.set(target, key, next, keyPath)
		return
	}

	switch cur := current.(type) {
	case live.List:
		prevList, ok1 := prev.([]any)
		nextList, ok2 := next.([]any)
		if ok1 && ok2 {
			d.diffList(cur, prevList, nextList, keyPath)
			return
		}
	case live.Object, live.Map:
		prevObj, ok1 := prev.(map[string]any)
		nextObj, ok2 := next.(map[string]any)
		if ok1 && ok2 {
			d.diffObject(cur.(keyed), prevObj, nextObj, keyPath)
			return
		}
	}

	d.set(target, key, next, keyPath)
}

func (d *differ) set(target keyed, key string, next any, path core.Path) {
	d.config.logger.Debug("livesync: set", slog.String("path", path.String()))
	target.Set(key, Liveify(d.factory, next))
	d.mutations++
}

func (d *differ) delete(target keyed, key string, path core.Path) {
	d.config.logger.Debug("livesync: delete", slog.String("path", path.String()))
	target.Delete(key)
	d.mutations++
}

func (d *differ) reject(path core.Path, value any) {
	err := &NonRepresentableError{Path: path, Value: value}
	d.rejected = append(d.rejected, err)

	d.config.logger.Error("livesync: value cannot be synced with the live document",
		slog.String("path", path.String()),
		slog.String("type", fmt.Sprintf("%T", value)),
		slog.String("value", fmt.Sprint(value)),
	)
	if d.config.onReject != nil {
		d.config.onReject(err)
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
