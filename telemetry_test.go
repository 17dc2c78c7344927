package livesync

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/brunoga/livesync/live"
	"github.com/brunoga/livesync/live/memory"
)

func newTestProviders(t *testing.T) (*tracetest.SpanRecorder, *sdkmetric.ManualReader, []Option) {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() {
		tp.Shutdown(context.Background())
		mp.Shutdown(context.Background())
	})
	return recorder, reader, []Option{WithTracerProvider(tp), WithMeterProvider(mp)}
}

func counterValue(t *testing.T, reader *sdkmetric.ManualReader, name string) int64 {
	t.Helper()
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	var total int64
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				t.Fatalf("%s has data %T", name, m.Data)
			}
			for _, dp := range sum.DataPoints {
				total += dp.Value
			}
		}
	}
	return total
}

func spanAttr(span sdktrace.ReadOnlySpan, key attribute.Key) (attribute.Value, bool) {
	for _, kv := range span.Attributes() {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestTelemetry_Diff(t *testing.T) {
	recorder, reader, opts := newTestProviders(t)

	d := memory.New(map[string]any{"a": 1})
	prev := snapshotOf(d)
	next := map[string]any{"a": 2, "b": func() {}}

	err := Diff(context.Background(), d, d.Root(), prev, next, opts...)
	if err == nil {
		t.Fatal("expected a rejection error")
	}

	spans := recorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("got %d spans, want 1", len(spans))
	}
	span := spans[0]
	if span.Name() != "livesync.Diff" {
		t.Errorf("span name = %s", span.Name())
	}
	if v, ok := spanAttr(span, "livesync.mutations"); !ok || v.AsInt64() != 1 {
		t.Errorf("livesync.mutations = %v", v.Emit())
	}
	if v, ok := spanAttr(span, "livesync.rejected"); !ok || v.AsInt64() != 1 {
		t.Errorf("livesync.rejected = %v", v.Emit())
	}
	if span.Status().Code != codes.Error {
		t.Errorf("status = %v, want Error", span.Status().Code)
	}

	if got := counterValue(t, reader, "livesync_rejected_values_total"); got != 1 {
		t.Errorf("rejected counter = %d, want 1", got)
	}
}

func TestTelemetry_Patch(t *testing.T) {
	recorder, reader, opts := newTestProviders(t)

	d := memory.New(map[string]any{"list": []any{}})
	updates := record(d)
	snapshot := snapshotOf(d)

	list, _ := d.Root().Get("list")
	list.(live.List).Insert(1, 0)
	list.(live.List).Insert(2, 1)
	d.Root().Set("x", true)

	if _, err := Patch(context.Background(), snapshot, *updates, opts...); err != nil {
		t.Fatal(err)
	}

	spans := recorder.Ended()
	if len(spans) != 1 || spans[0].Name() != "livesync.Patch" {
		t.Fatalf("unexpected spans %v", spans)
	}
	if v, _ := spanAttr(spans[0], "livesync.updates"); v.AsInt64() != 3 {
		t.Errorf("livesync.updates = %v", v.Emit())
	}
	if spans[0].Status().Code == codes.Error {
		t.Error("successful patch marked as error")
	}
	if got := counterValue(t, reader, "livesync_updates_applied_total"); got != 3 {
		t.Errorf("applied counter = %d, want 3", got)
	}
}

func TestTelemetry_PatchError(t *testing.T) {
	recorder, _, opts := newTestProviders(t)

	d := memory.New(map[string]any{"list": []any{}})
	updates := record(d)
	list, _ := d.Root().Get("list")
	list.(live.List).Insert("x", 0)

	if _, err := Patch(context.Background(), map[string]any{"list": []any{}}, *updates, opts...); err != nil {
		t.Fatal(err)
	}
	if _, err := Patch(context.Background(), map[string]any{}, *updates, opts...); err == nil {
		t.Fatal("expected an error for a snapshot without the list")
	}

	spans := recorder.Ended()
	if len(spans) != 2 {
		t.Fatalf("got %d spans, want 2", len(spans))
	}
	if spans[1].Status().Code != codes.Error {
		t.Errorf("status = %v, want Error", spans[1].Status().Code)
	}
	if len(spans[1].Events()) == 0 {
		t.Error("error was not recorded on the span")
	}
}
