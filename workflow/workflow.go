// Package workflow implements a finite-state-transition engine: a registry of
// named transitions, each firing from one or more origin states to a single
// destination state.
//
// Two engines share the same registry and resolution rules. Workflow works on
// bare state values; ClassWorkflow reads and writes a state field held by an
// entity. In both, Can reports the pending next state without side effects and
// Apply performs the transition or fails with ErrTransitionRejected.
package workflow

import "context"

// Workflow is a token-based engine: callers pass the current state directly
// and receive the next state back.
type Workflow[S comparable] struct {
	engine[S]
}

// New creates a new token-based workflow.
func New[S comparable](opts Options[S]) *Workflow[S] {
	return &Workflow[S]{
		engine: newEngine(opts),
	}
}

// Can reports whether the named transition may fire from current. When it
// can, the destination state is returned with true. When it cannot, the zero
// state and false are returned, unless the unexpected-state guard trips.
func (w *Workflow[S]) Can(name string, current S) (S, bool, error) {
	return w.CanContext(context.Background(), name, current)
}

// CanContext is Can with a context used for logging and tracing.
func (w *Workflow[S]) CanContext(ctx context.Context, name string, current S) (S, bool, error) {
	return w.can(ctx, name, current)
}

// Apply returns the state reached by firing the named transition from current,
// or a *TransitionError wrapping ErrTransitionRejected.
func (w *Workflow[S]) Apply(name string, current S) (S, error) {
	return w.ApplyContext(context.Background(), name, current)
}

// ApplyContext is Apply with a context used for logging and tracing.
func (w *Workflow[S]) ApplyContext(ctx context.Context, name string, current S) (next S, err error) {
	ctx, span := startApplySpan(ctx, w.name, name)
	defer func() {
		finishApplySpan(span, stateString(current), stateString(next), err)
	}()

	return w.resolve(ctx, name, current)
}
