package workflow

import (
	"context"
	"maps"
	"slices"

	"facette.io/natsort"
)

// Options configures a workflow. The zero value is valid: an unnamed
// workflow with the unexpected-state guard off, no known states and no logging.
type Options[S comparable] struct {
	// Name labels the workflow in logs, metrics and spans.
	Name string

	// DetectUnexpectedState makes Can fail with ErrUnexpectedState when a
	// transition does not resolve and the current state is not one of the
	// known states. With no known states every failed resolution trips it.
	DetectUnexpectedState bool

	// KnownStates seeds the known-states set. See AddKnownStates.
	KnownStates []S

	// Logger receives query and mutation events. Nil disables logging.
	Logger Logger
}

// engine is the transition registry shared by Workflow and ClassWorkflow.
// It is not synchronized: register everything before sharing it across goroutines.
type engine[S comparable] struct {
	name                  string
	transitions           map[string]Rule[S]
	order                 []string
	states                map[S]struct{}
	detectUnexpectedState bool
	logger                Logger
}

func newEngine[S comparable](opts Options[S]) engine[S] {
	e := engine[S]{
		name:                  opts.Name,
		transitions:           make(map[string]Rule[S]),
		order:                 []string{},
		states:                make(map[S]struct{}),
		detectUnexpectedState: opts.DetectUnexpectedState,
		logger:                opts.Logger,
	}

	e.AddKnownStates(opts.KnownStates...)

	return e
}

// Name returns the workflow name given in Options.
func (e *engine[S]) Name() string {
	return e.name
}

// DetectsUnexpectedState reports whether the unexpected-state guard is on.
func (e *engine[S]) DetectsUnexpectedState() bool {
	return e.detectUnexpectedState
}

// AddTransition registers a rule under name. The first registration wins:
// registering a name that is already taken, or a nil rule, does nothing.
func (e *engine[S]) AddTransition(name string, rule Rule[S]) {
	if rule == nil {
		return
	}

	if _, exists := e.transitions[name]; exists {
		return
	}

	e.transitions[name] = rule
	e.order = append(e.order, name)

	transitionsRegisteredTotal.WithLabelValues(sanitizeWorkflow(e.name)).Inc()
}

// Transition returns the rule registered under name, or a *TransitionError
// wrapping ErrTransitionNotFound.
func (e *engine[S]) Transition(name string) (Rule[S], error) {
	rule, exists := e.transitions[name]
	if !exists {
		return nil, newTransitionNotFoundError(name)
	}

	return rule, nil
}

// Transitions returns the registered transition names in registration order.
func (e *engine[S]) Transitions() []string {
	return slices.Clone(e.order)
}

// AddKnownStates adds states to the set consulted by the unexpected-state guard.
func (e *engine[S]) AddKnownStates(states ...S) {
	for _, state := range states {
		e.states[state] = struct{}{}
	}
}

// KnownStates returns the known states in natural order of their string form.
func (e *engine[S]) KnownStates() []S {
	states := slices.Collect(maps.Keys(e.states))

	slices.SortStableFunc(states, func(a, b S) int {
		as, bs := stateString(a), stateString(b)

		switch {
		case natsort.Compare(as, bs):
			return -1
		case natsort.Compare(bs, as):
			return 1
		default:
			return 0
		}
	})

	return states
}

func (e *engine[S]) isKnownState(state S) bool {
	_, ok := e.states[state]

	return ok
}

// can resolves the named transition against current. On a failed resolution
// it runs the unexpected-state guard before reporting the negative result.
func (e *engine[S]) can(ctx context.Context, name string, current S) (S, bool, error) {
	var zero S

	rule, err := e.Transition(name)
	if err != nil {
		e.observeCan(ctx, name, current, zero, outcomeNotFound)

		return zero, false, err
	}

	next, ok := rule.Resolve(current)
	if ok {
		e.observeCan(ctx, name, current, next, outcomeAllowed)

		return next, true, nil
	}

	if e.detectUnexpectedState && !e.isKnownState(current) {
		e.observeCan(ctx, name, current, zero, outcomeUnexpectedState)

		return zero, false, newUnexpectedStateError(stateString(current))
	}

	e.observeCan(ctx, name, current, zero, outcomeDenied)

	return zero, false, nil
}

// resolve is the Apply half of can: a failed resolution is a rejection and
// the unexpected-state guard is not consulted.
func (e *engine[S]) resolve(ctx context.Context, name string, current S) (S, error) {
	var zero S

	rule, err := e.Transition(name)
	if err != nil {
		e.observeApply(ctx, name, current, zero, outcomeNotFound)

		return zero, err
	}

	next, ok := rule.Resolve(current)
	if !ok {
		e.observeApply(ctx, name, current, zero, outcomeRejected)

		return zero, newTransitionRejectedError(name, stateString(current))
	}

	e.observeApply(ctx, name, current, next, outcomeApplied)

	return next, nil
}

func (e *engine[S]) observeCan(ctx context.Context, name string, from, to S, outcome string) {
	canTotal.WithLabelValues(
		sanitizeWorkflow(e.name),
		sanitizeTransition(name, outcome),
		outcome,
	).Inc()

	addCanEvent(ctx, e.name, name, stateString(from), outcome)

	if e.logger == nil {
		return
	}

	switch outcome {
	case outcomeAllowed:
		e.logger.TransitionAllowed(ctx, e.name, name, stateString(from), stateString(to))
	case outcomeDenied:
		e.logger.TransitionDenied(ctx, e.name, name, stateString(from))
	case outcomeUnexpectedState:
		e.logger.UnexpectedState(ctx, e.name, name, stateString(from))
	case outcomeNotFound:
		e.logger.TransitionNotFound(ctx, e.name, name)
	}
}

func (e *engine[S]) observeApply(ctx context.Context, name string, from, to S, outcome string) {
	applyTotal.WithLabelValues(
		sanitizeWorkflow(e.name),
		sanitizeTransition(name, outcome),
		outcome,
	).Inc()

	if e.logger == nil {
		return
	}

	switch outcome {
	case outcomeApplied:
		e.logger.TransitionApplied(ctx, e.name, name, stateString(from), stateString(to))
	case outcomeRejected:
		e.logger.TransitionRejected(ctx, e.name, name, stateString(from))
	case outcomeNotFound:
		e.logger.TransitionNotFound(ctx, e.name, name)
	}
}
