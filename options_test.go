package livesync

import (
	"io"
	"log/slog"
	"testing"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestNewConfig_Defaults(t *testing.T) {
	c := newConfig(nil)
	if c.logger != slog.Default() {
		t.Error("default logger is not slog.Default()")
	}
	if c.tracerProvider != otel.GetTracerProvider() {
		t.Error("default tracer provider is not the global one")
	}
	if c.skipValidation || c.onReject != nil {
		t.Errorf("unexpected defaults %+v", c)
	}
}

func TestNewConfig_Options(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tp := sdktrace.NewTracerProvider()
	called := false

	c := newConfig([]Option{
		WithLogger(logger),
		WithTracerProvider(tp),
		WithRejectHandler(func(*NonRepresentableError) { called = true }),
		SkipValidation(),
	})

	if c.logger != logger {
		t.Error("WithLogger not applied")
	}
	if c.tracerProvider != tp {
		t.Error("WithTracerProvider not applied")
	}
	if !c.skipValidation {
		t.Error("SkipValidation not applied")
	}
	c.onReject(nil)
	if !called {
		t.Error("WithRejectHandler not applied")
	}
}
