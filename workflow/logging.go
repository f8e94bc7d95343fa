package workflow

import (
	"context"
	"log/slog"
)

// Logger provides logging hooks for workflow queries and mutations.
// States are passed already rendered with fmt.Sprint.
type Logger interface {
	TransitionAllowed(ctx context.Context, workflow, transition, from, to string)
	TransitionDenied(ctx context.Context, workflow, transition, state string)
	TransitionApplied(ctx context.Context, workflow, transition, from, to string)
	TransitionRejected(ctx context.Context, workflow, transition, state string)
	TransitionNotFound(ctx context.Context, workflow, transition string)
	UnexpectedState(ctx context.Context, workflow, transition, state string)
}

// DefaultLogger implements Logger using slog.
type DefaultLogger struct {
	logger *slog.Logger
}

// NewDefaultLogger creates a new default logger backed by slog.Default().
func NewDefaultLogger() *DefaultLogger {
	return &DefaultLogger{
		logger: slog.Default(),
	}
}

// NewSlogLogger creates a logger that writes to the given slog logger.
// A nil logger falls back to slog.Default().
func NewSlogLogger(logger *slog.Logger) *DefaultLogger {
	if logger == nil {
		logger = slog.Default()
	}

	return &DefaultLogger{
		logger: logger,
	}
}

func (l *DefaultLogger) TransitionAllowed(ctx context.Context, workflow, transition, from, to string) {
	l.logger.DebugContext(ctx, "Transition allowed",
		"workflow", workflow,
		"transition", transition,
		"from", from,
		"to", to,
	)
}

func (l *DefaultLogger) TransitionDenied(ctx context.Context, workflow, transition, state string) {
	l.logger.DebugContext(ctx, "Transition denied",
		"workflow", workflow,
		"transition", transition,
		"state", state,
	)
}

func (l *DefaultLogger) TransitionApplied(ctx context.Context, workflow, transition, from, to string) {
	fields := []any{
		"workflow", workflow,
		"transition", transition,
		"from", from,
		"to", to,
	}

	if traceID, spanID := extractTraceContext(ctx); traceID != "" {
		fields = append(fields, "trace_id", traceID, "span_id", spanID)
	}

	l.logger.InfoContext(ctx, "Transition applied", fields...)
}

func (l *DefaultLogger) TransitionRejected(ctx context.Context, workflow, transition, state string) {
	fields := []any{
		"workflow", workflow,
		"transition", transition,
		"state", state,
	}

	if traceID, spanID := extractTraceContext(ctx); traceID != "" {
		fields = append(fields, "trace_id", traceID, "span_id", spanID)
	}

	l.logger.WarnContext(ctx, "Transition rejected", fields...)
}

func (l *DefaultLogger) TransitionNotFound(ctx context.Context, workflow, transition string) {
	l.logger.WarnContext(ctx, "Transition not found",
		"workflow", workflow,
		"transition", transition,
	)
}

func (l *DefaultLogger) UnexpectedState(ctx context.Context, workflow, transition, state string) {
	l.logger.WarnContext(ctx, "Unexpected state",
		"workflow", workflow,
		"transition", transition,
		"state", state,
	)
}
