package ports

import "context"

// Tracer starts spans around pipeline work.
type Tracer interface {
	// Start begins a span named name as a child of any span in ctx.
	Start(ctx context.Context, name string) (context.Context, Span)
}

// Span is a single traced unit of work.
type Span interface {
	End()
	RecordError(err error)
	SetAttribute(key string, value any)
}
