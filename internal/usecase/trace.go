package usecase

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("league-draft/internal/usecase")

// startSpan only opens a child when the caller is already traced, so timer
// callbacks and tests stay span free.
func startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if !trace.SpanContextFromContext(ctx).IsValid() {
		return ctx, trace.SpanFromContext(ctx)
	}
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func sessionAttr(sessionID string) attribute.KeyValue {
	return attribute.String("draft.session_id", sessionID)
}
