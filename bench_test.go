package livesync

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	deepcopy "github.com/barkimedes/go-deepcopy"
	"github.com/huandu/go-clone"
	"github.com/mitchellh/copystructure"

	"github.com/brunoga/livesync/live/memory"
)

func benchSnapshot(size int) map[string]any {
	items := make([]any, size)
	for i := range items {
		items[i] = map[string]any{
			"id":    fmt.Sprintf("item-%d", i),
			"done":  i%2 == 0,
			"score": float64(i),
			"tags":  []any{"a", "b"},
		}
	}
	return map[string]any{"title": "bench", "items": items}
}

var benchSizes = []int{10, 100, 1000}

func BenchmarkMaterialize(b *testing.B) {
	for _, size := range benchSizes {
		b.Run(fmt.Sprintf("Size%d", size), func(b *testing.B) {
			d := memory.New(benchSnapshot(size))
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				Materialize(d.Root())
			}
		})
	}
}

// The copy benchmarks give a baseline for Materialize: they copy the same
// data held as plain values.

func BenchmarkCopy_CopyStructure(b *testing.B) {
	src := benchSnapshot(100)
	for i := 0; i < b.N; i++ {
		copystructure.Copy(src)
	}
}

func BenchmarkCopy_DeepCopy(b *testing.B) {
	src := benchSnapshot(100)
	for i := 0; i < b.N; i++ {
		deepcopy.MustAnything(src)
	}
}

func BenchmarkCopy_Clone(b *testing.B) {
	src := benchSnapshot(100)
	for i := 0; i < b.N; i++ {
		clone.Clone(src)
	}
}

func BenchmarkCopy_Materialize(b *testing.B) {
	src := benchSnapshot(100)
	for i := 0; i < b.N; i++ {
		Materialize(src)
	}
}

func BenchmarkDiff_OneChange(b *testing.B) {
	quiet := WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	for _, size := range benchSizes {
		b.Run(fmt.Sprintf("Size%d", size), func(b *testing.B) {
			d := memory.New(benchSnapshot(size))
			a := snapshotOf(d)
			items := a["items"].([]any)

			// Alternate between two snapshots that differ in one element.
			changed := make([]any, len(items))
			copy(changed, items)
			changed[size/2] = with(items[size/2].(map[string]any), "done", "changed")
			c := with(a, "items", changed)

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if i%2 == 0 {
					Diff(context.Background(), d, d.Root(), a, c, quiet)
				} else {
					Diff(context.Background(), d, d.Root(), c, a, quiet)
				}
			}
		})
	}
}

func BenchmarkPatch_OneChange(b *testing.B) {
	for _, size := range benchSizes {
		b.Run(fmt.Sprintf("Size%d", size), func(b *testing.B) {
			d := memory.New(benchSnapshot(size))
			updates := record(d)
			snapshot := snapshotOf(d)
			d.Root().Set("title", "changed")

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				Patch(context.Background(), snapshot, *updates)
			}
		})
	}
}
