package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/brunoga/livesync"
	"github.com/brunoga/livesync/live"
	"github.com/brunoga/livesync/live/memory"
)

func newDiffCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "diff PREV NEXT",
		Short: "Apply the difference between two documents to a live document",
		Long: `diff loads PREV into a live document, reconciles it with NEXT and prints
one line per update followed by the resulting document as JSON.

The command fails if a value of NEXT cannot be stored in the live document.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			prev, err := loadDocument(args[0])
			if err != nil {
				return err
			}
			next, err := loadDocument(args[1])
			if err != nil {
				return err
			}
			return runDiff(cmd, opts, prev, next)
		},
	}
}

func runDiff(cmd *cobra.Command, opts *options, prev, next map[string]any) error {
	out := cmd.OutOrStdout()

	d := memory.New(prev)
	d.Subscribe(func(updates []live.Update) {
		printUpdates(out, updates)
	})

	snapshot := livesync.Materialize(d.Root()).(map[string]any)
	var diffErr error
	run := func() {
		diffErr = livesync.Diff(cmd.Context(), d, d.Root(), snapshot, next, livesync.WithLogger(opts.logger))
	}
	if opts.batch {
		d.Batch(run)
	} else {
		run()
	}

	if err := printJSON(out, livesync.Materialize(d.Root())); err != nil {
		return err
	}
	return diffErr
}

func printUpdates(w io.Writer, updates []live.Update) {
	for _, u := range updates {
		path, err := livesync.ResolvePath(u.Node())
		if err != nil {
			fmt.Fprintf(w, "(detached) %s\n", u)
			continue
		}
		fmt.Fprintf(w, "%s %s\n", path, u)
	}
}

func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}
