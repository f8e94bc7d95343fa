package workflow

import (
	"context"
	"fmt"
)

// ClassOptions configures an entity-based workflow. Exactly one way of
// reaching the state is used: Accessor when set, StateProperty otherwise.
type ClassOptions[T any, S comparable] struct {
	Options[S]

	// StateProperty names the exported field of T holding the state.
	StateProperty string

	// Accessor reads and writes the state. Takes precedence over StateProperty.
	Accessor Accessor[T, S]
}

// ClassWorkflow is an entity-based engine: Can and Apply take an entity and
// go through its bound state field.
type ClassWorkflow[T any, S comparable] struct {
	engine[S]
	accessor Accessor[T, S]
}

// NewClassWorkflow creates a new entity-based workflow. The state binding is
// validated immediately; an unknown or incompatible property is returned as
// ErrInvalidConfig.
func NewClassWorkflow[T any, S comparable](opts ClassOptions[T, S]) (*ClassWorkflow[T, S], error) {
	accessor := opts.Accessor

	if accessor == nil {
		var err error

		accessor, err = PropertyAccessor[T, S](opts.StateProperty)
		if err != nil {
			return nil, err
		}
	}

	if fa, ok := accessor.(*funcAccessor[T, S]); ok {
		err := fa.validate()
		if err != nil {
			return nil, err
		}
	}

	return &ClassWorkflow[T, S]{
		engine:   newEngine(opts.Options),
		accessor: accessor,
	}, nil
}

// State returns the current state of entity.
func (w *ClassWorkflow[T, S]) State(entity *T) (S, error) {
	if entity == nil {
		var zero S

		return zero, fmt.Errorf("%w: entity is nil", ErrInvalidEntity)
	}

	return w.accessor.Get(entity), nil
}

// Can reports whether the named transition may fire from the entity's current
// state, returning the destination state with true when it can.
func (w *ClassWorkflow[T, S]) Can(name string, entity *T) (S, bool, error) {
	return w.CanContext(context.Background(), name, entity)
}

// CanContext is Can with a context used for logging and tracing.
func (w *ClassWorkflow[T, S]) CanContext(ctx context.Context, name string, entity *T) (S, bool, error) {
	current, err := w.State(entity)
	if err != nil {
		return current, false, err
	}

	return w.can(ctx, name, current)
}

// Apply fires the named transition and writes the destination into the
// entity. On failure the entity is left untouched.
func (w *ClassWorkflow[T, S]) Apply(name string, entity *T) error {
	return w.ApplyContext(context.Background(), name, entity)
}

// ApplyContext is Apply with a context used for logging and tracing.
func (w *ClassWorkflow[T, S]) ApplyContext(ctx context.Context, name string, entity *T) (err error) {
	var current, next S

	ctx, span := startApplySpan(ctx, w.name, name)
	defer func() {
		finishApplySpan(span, stateString(current), stateString(next), err)
	}()

	current, err = w.State(entity)
	if err != nil {
		applyTotal.WithLabelValues(sanitizeWorkflow(w.name), name, outcomeInvalidEntity).Inc()

		return err
	}

	next, err = w.resolve(ctx, name, current)
	if err != nil {
		return err
	}

	w.accessor.Set(entity, next)

	return nil
}
