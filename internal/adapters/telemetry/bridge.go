package telemetry

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/spin/internal/core/ports"
)

// Bridge implements sdktrace.SpanProcessor to bridge OTel spans to the debug log.
type Bridge struct {
	logger ports.Logger
}

// NewBridge returns a new Bridge.
func NewBridge(logger ports.Logger) *Bridge {
	return &Bridge{
		logger: logger,
	}
}

// OnStart is called when a span starts.
func (b *Bridge) OnStart(_ context.Context, s sdktrace.ReadWriteSpan) {
	if b.logger == nil || !s.SpanContext().IsValid() {
		return
	}
	b.logger.Debug("span " + s.Name() + " started")
}

// OnEnd is called when a span ends.
func (b *Bridge) OnEnd(s sdktrace.ReadOnlySpan) {
	if b.logger == nil || !s.SpanContext().IsValid() {
		return
	}
	b.logger.Debug(Summary(s))
}

// ForceFlush does nothing.
func (b *Bridge) ForceFlush(_ context.Context) error {
	return nil
}

// Shutdown does nothing.
func (b *Bridge) Shutdown(_ context.Context) error {
	return nil
}

// Summary renders a finished span as a single log line:
// name, duration, attributes in recording order, then the error status.
func Summary(s sdktrace.ReadOnlySpan) string {
	var sb strings.Builder

	duration := s.EndTime().Sub(s.StartTime()).Round(time.Millisecond)
	_, _ = fmt.Fprintf(&sb, "span %s finished in %s", s.Name(), duration)

	for _, kv := range s.Attributes() {
		_, _ = fmt.Fprintf(&sb, " %s=%s", kv.Key, kv.Value.Emit())
	}

	if s.Status().Code == codes.Error {
		desc := s.Status().Description
		if desc == "" {
			desc = "unknown error"
		}
		_, _ = fmt.Fprintf(&sb, " error=%q", desc)
	}

	return sb.String()
}
