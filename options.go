package livesync

import (
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Option configures Diff and Patch.
type Option interface {
	apply(*config)
}

type optionFunc func(*config)

func (f optionFunc) apply(c *config) {
	f(c)
}

type config struct {
	logger         *slog.Logger
	tracerProvider trace.TracerProvider
	meterProvider  metric.MeterProvider
	onReject       func(*NonRepresentableError)
	skipValidation bool
}

func newConfig(opts []Option) *config {
	c := &config{}
	for _, opt := range opts {
		opt.apply(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	if c.tracerProvider == nil {
		c.tracerProvider = otel.GetTracerProvider()
	}
	if c.meterProvider == nil {
		c.meterProvider = otel.GetMeterProvider()
	}
	return c
}

// WithLogger sets the logger used for diagnostics. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return optionFunc(func(c *config) {
		c.logger = logger
	})
}

// WithTracerProvider sets the provider spans are created from. Defaults to
// the global provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return optionFunc(func(c *config) {
		c.tracerProvider = tp
	})
}

// WithMeterProvider sets the provider metrics are recorded with. Defaults to
// the global provider.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return optionFunc(func(c *config) {
		c.meterProvider = mp
	})
}

// WithRejectHandler registers fn to be called for every key update Diff
// refuses because the new value is not representable.
func WithRejectHandler(fn func(*NonRepresentableError)) Option {
	return optionFunc(func(c *config) {
		c.onReject = fn
	})
}

// SkipValidation disables the representability check in Diff. Only use it
// when snapshots are known to hold plain data.
func SkipValidation() Option {
	return optionFunc(func(c *config) {
		c.skipValidation = true
	})
}
