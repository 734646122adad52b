package ports

import (
	"context"
	"io"
)

//go:generate go run go.uber.org/mock/mockgen -source=telemetry.go -destination=mocks/mock_telemetry.go -package=mocks

// Tracer records the long-running background tasks (registry rebuilds, large
// category builds) as vertices in a progress stream.
type Tracer interface {
	// Start begins recording a task.
	Start(ctx context.Context, name string) (context.Context, Span)
}

// Span is one recorded task.
type Span interface {
	// Writer receives free-form task output.
	io.Writer
	// RecordError attaches a failure to the span.
	RecordError(err error)
	// End completes the span, reporting any recorded error.
	End()
}

type spanContextKey struct{}

// ContextWithSpan returns a context carrying the span.
func ContextWithSpan(ctx context.Context, s Span) context.Context {
	return context.WithValue(ctx, spanContextKey{}, s)
}

// SpanFromContext returns the span stored in the context, nil when absent.
func SpanFromContext(ctx context.Context) Span {
	s, _ := ctx.Value(spanContextKey{}).(Span)
	return s
}
