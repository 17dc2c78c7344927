package livesync

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/brunoga/livesync"

type telemetry struct {
	tracer   trace.Tracer
	duration metric.Float64Histogram
	rejected metric.Int64Counter
	applied  metric.Int64Counter
}

func newTelemetry(c *config) *telemetry {
	meter := c.meterProvider.Meter(instrumentationName)
	t := &telemetry{
		tracer: c.tracerProvider.Tracer(instrumentationName),
	}

	var err error
	t.duration, err = meter.Float64Histogram(
		"livesync_operation_duration_seconds",
		metric.WithDescription("Duration of Diff and Patch calls"),
		metric.WithUnit("s"),
	)
	if err != nil {
		c.logger.Warn("creating duration histogram", "error", err)
		t.duration = metricnoop.Float64Histogram{}
	}

	t.rejected, err = meter.Int64Counter(
		"livesync_rejected_values_total",
		metric.WithDescription("Key updates refused because the value is not representable"),
	)
	if err != nil {
		c.logger.Warn("creating rejected counter", "error", err)
		t.rejected = metricnoop.Int64Counter{}
	}

	t.applied, err = meter.Int64Counter(
		"livesync_updates_applied_total",
		metric.WithDescription("Live updates folded into snapshots"),
	)
	if err != nil {
		c.logger.Warn("creating applied counter", "error", err)
		t.applied = metricnoop.Int64Counter{}
	}

	return t
}

func (t *telemetry) startDiff(ctx context.Context, keys int) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, "livesync.Diff",
		trace.WithAttributes(
			attribute.Int("livesync.keys", keys),
		),
	)
}

func (t *telemetry) endDiff(ctx context.Context, span trace.Span, elapsed time.Duration, mutations, rejected int) {
	span.SetAttributes(
		attribute.Int("livesync.mutations", mutations),
		attribute.Int("livesync.rejected", rejected),
	)
	if rejected > 0 {
		span.SetStatus(codes.Error, "non-representable values rejected")
		t.rejected.Add(ctx, int64(rejected))
	}
	t.duration.Record(ctx, elapsed.Seconds(), metric.WithAttributes(
		attribute.String("operation", "diff"),
	))
	span.End()
}

func (t *telemetry) startPatch(ctx context.Context, updates int) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, "livesync.Patch",
		trace.WithAttributes(
			attribute.Int("livesync.updates", updates),
		),
	)
}

func (t *telemetry) recordApplied(ctx context.Context, kind string) {
	t.applied.Add(ctx, 1, metric.WithAttributes(
		attribute.String("kind", kind),
	))
}

func (t *telemetry) endPatch(ctx context.Context, span trace.Span, elapsed time.Duration, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	t.duration.Record(ctx, elapsed.Seconds(), metric.WithAttributes(
		attribute.String("operation", "patch"),
		attribute.Bool("success", err == nil),
	))
	span.End()
}
