package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/huandu/go-clone"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/brunoga/livesync"
	"github.com/brunoga/livesync/internal/core"
	"github.com/brunoga/livesync/live"
	"github.com/brunoga/livesync/live/memory"
)

var errDiverged = errors.New("patched snapshot diverged from the live document")

// step is one mutation of a replay script. Path is a JSON Pointer to the
// value being changed; for insert it is the position the value ends up at.
type step struct {
	Op    string `yaml:"op"`
	Path  string `yaml:"path"`
	Value any    `yaml:"value"`
	To    int    `yaml:"to"`
}

func newReplayCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "replay DOC SCRIPT",
		Short: "Mutate a live document and follow it with immutable snapshots",
		Long: `replay loads DOC into a live document and runs the mutations of SCRIPT on
it. Every batch of updates is folded into a snapshot, which must match the live
document once the script is done.

SCRIPT is a YAML list of steps:

  - {op: set, path: /todos/0/done, value: true}
  - {op: delete, path: /draft}
  - {op: insert, path: /todos/1, value: {text: new}}
  - {op: move, path: /todos/0, to: 2}`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := loadDocument(args[0])
			if err != nil {
				return err
			}
			data, err := os.ReadFile(args[1])
			if err != nil {
				return err
			}
			var steps []step
			if err := yaml.Unmarshal(data, &steps); err != nil {
				return fmt.Errorf("parsing script: %w", err)
			}
			return runReplay(cmd, opts, doc, steps)
		},
	}
}

func runReplay(cmd *cobra.Command, opts *options, doc map[string]any, steps []step) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	d := memory.New(doc)
	initial := livesync.Materialize(d.Root()).(map[string]any)
	pristine := clone.Clone(initial).(map[string]any)

	snapshot := initial
	applied := 0
	var patchErr error
	d.Subscribe(func(updates []live.Update) {
		printUpdates(out, updates)
		if patchErr != nil {
			return
		}
		snapshot, patchErr = livesync.Patch(ctx, snapshot, updates, livesync.WithLogger(opts.logger))
		applied += len(updates)
	})

	var stepErr error
	run := func() {
		for i, s := range steps {
			if stepErr = apply(d, s); stepErr != nil {
				stepErr = fmt.Errorf("step %d (%s %s): %w", i, s.Op, s.Path, stepErr)
				return
			}
		}
	}
	if opts.batch {
		d.Batch(run)
	} else {
		run()
	}
	if stepErr != nil {
		return stepErr
	}
	if patchErr != nil {
		return patchErr
	}

	if path, differ := core.Mismatch(snapshot, livesync.Materialize(d.Root())); differ {
		return fmt.Errorf("%w at %s", errDiverged, path)
	}
	if !core.Equal(initial, pristine) {
		return errors.New("the initial snapshot was modified while patching")
	}

	fmt.Fprintf(out, "ok: %d updates applied\n", applied)
	return printJSON(out, snapshot)
}

func apply(d *memory.Document, s step) error {
	path := core.ParsePath(s.Path)
	if len(path) == 0 {
		return errors.New("the document root cannot be changed")
	}
	parent, err := lookup(d.Root(), path[:len(path)-1])
	if err != nil {
		return err
	}
	last := path[len(path)-1]
	value := livesync.Liveify(d, normalize(s.Value))

	switch p := parent.(type) {
	case live.List:
		if !last.IsIndex {
			return fmt.Errorf("%q is not a list index", last.Key)
		}
		limit := p.Len()
		if s.Op == "insert" {
			limit++
		}
		if last.Index >= limit {
			return fmt.Errorf("index %d out of range [0,%d)", last.Index, limit)
		}
		switch s.Op {
		case "set":
			p.Set(last.Index, value)
		case "insert":
			p.Insert(value, last.Index)
		case "delete":
			p.Delete(last.Index)
		case "move":
			if s.To < 0 || s.To >= p.Len() {
				return fmt.Errorf("target index %d out of range [0,%d)", s.To, p.Len())
			}
			p.Move(last.Index, s.To)
		default:
			return fmt.Errorf("unknown list operation %q", s.Op)
		}
	case live.Object:
		return applyKeyed(p, last.Key, s.Op, value)
	case live.Map:
		return applyKeyed(p, last.Key, s.Op, value)
	default:
		return fmt.Errorf("%s is not a container", path[:len(path)-1])
	}
	return nil
}

type keyed interface {
	Set(key string, value any)
	Delete(key string)
}

func applyKeyed(k keyed, key, op string, value any) error {
	switch op {
	case "set":
		k.Set(key, value)
	case "delete":
		k.Delete(key)
	default:
		return fmt.Errorf("unknown key operation %q", op)
	}
	return nil
}

// lookup walks path from the root of the live document.
func lookup(root live.Object, path livesync.Path) (any, error) {
	var cur any = root
	for i, part := range path {
		var ok bool
		switch c := cur.(type) {
		case live.Object:
			cur, ok = c.Get(part.Key)
		case live.Map:
			cur, ok = c.Get(part.Key)
		case live.List:
			ok = part.IsIndex && part.Index < c.Len()
			if ok {
				cur = c.Get(part.Index)
			}
		}
		if !ok {
			return nil, fmt.Errorf("no value at %s", path[:i+1])
		}
	}
	return cur, nil
}
