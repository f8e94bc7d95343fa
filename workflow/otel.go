package workflow

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "workflow"

// startApplySpan creates a span around a single Apply call.
// The caller is responsible for calling finishApplySpan.
//
//nolint:spancheck // Span lifecycle managed by caller
func startApplySpan(ctx context.Context, workflow, transition string) (context.Context, trace.Span) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "workflow.apply")
	span.SetAttributes(
		attribute.String("workflow", workflow),
		attribute.String("transition", transition),
	)

	return ctx, span
}

// finishApplySpan records the outcome of an Apply call and ends the span.
func finishApplySpan(span trace.Span, from, to string, err error) {
	span.SetAttributes(attribute.String("from_state", from))

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetAttributes(attribute.String("to_state", to))
		span.SetStatus(codes.Ok, "applied")
	}

	span.End()
}

// addCanEvent annotates the span already in ctx with a query result.
// Queries are too cheap to deserve their own span.
func addCanEvent(ctx context.Context, workflow, transition, state, outcome string) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	span.AddEvent("workflow.can", trace.WithAttributes(
		attribute.String("workflow", workflow),
		attribute.String("transition", transition),
		attribute.String("state", state),
		attribute.String("outcome", outcome),
	))
}

// extractTraceContext extracts trace ID and span ID from context for logging.
func extractTraceContext(ctx context.Context) (traceID, spanID string) {
	span := trace.SpanFromContext(ctx)
	if span.SpanContext().IsValid() {
		spanCtx := span.SpanContext()

		return spanCtx.TraceID().String(), spanCtx.SpanID().String()
	}

	return "", ""
}
