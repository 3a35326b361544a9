package telemetry

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/datagen/internal/core/ports"
)

var _ sdktrace.SpanProcessor = (*SpanLogger)(nil)

// SpanLogger implements sdktrace.SpanProcessor by logging every finished span at
// debug level, with its duration and attributes.
type SpanLogger struct {
	log ports.Logger
}

// NewSpanLogger returns a new SpanLogger.
func NewSpanLogger(log ports.Logger) *SpanLogger {
	return &SpanLogger{log: log}
}

// OnStart does nothing.
func (l *SpanLogger) OnStart(_ context.Context, _ sdktrace.ReadWriteSpan) {}

// OnEnd logs the finished span.
func (l *SpanLogger) OnEnd(s sdktrace.ReadOnlySpan) {
	if l.log == nil {
		return
	}

	ms := s.EndTime().Sub(s.StartTime()).Milliseconds()
	var msg string
	if s.Status().Code == codes.Error {
		msg = fmt.Sprintf("span %s failed after %d ms", s.Name(), ms)
		if desc := s.Status().Description; desc != "" {
			msg += ": " + desc
		}
	} else {
		msg = fmt.Sprintf("span %s took %d ms", s.Name(), ms)
	}

	if attrs := formatAttributes(s.Attributes()); attrs != "" {
		msg += " (" + attrs + ")"
	}
	l.log.Debug(msg)
}

// ForceFlush does nothing.
func (l *SpanLogger) ForceFlush(_ context.Context) error {
	return nil
}

// Shutdown does nothing.
func (l *SpanLogger) Shutdown(_ context.Context) error {
	return nil
}

func formatAttributes(attrs []attribute.KeyValue) string {
	parts := make([]string, 0, len(attrs))
	for _, kv := range attrs {
		parts = append(parts, string(kv.Key)+"="+kv.Value.Emit())
	}
	slices.Sort(parts)
	return strings.Join(parts, " ")
}
