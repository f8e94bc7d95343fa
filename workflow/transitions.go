package workflow

import "slices"

// Transition fires from exactly one origin state.
type Transition[S comparable] struct {
	from S
	to   S
}

// NewTransition creates a new single-origin transition.
func NewTransition[S comparable](from, to S) *Transition[S] {
	return &Transition[S]{
		from: from,
		to:   to,
	}
}

func (t *Transition[S]) From() S {
	return t.from
}

func (t *Transition[S]) Resolve(current S) (S, bool) {
	if current == t.from {
		return t.to, true
	}

	var zero S

	return zero, false
}

func (t *Transition[S]) Origins() []S {
	return []S{t.from}
}

func (t *Transition[S]) Destination() S {
	return t.to
}

func (*Transition[S]) rule() {}

// MultiOriginTransition fires from any of several origin states.
type MultiOriginTransition[S comparable] struct {
	from []S
	to   S
}

// NewMultiOriginTransition creates a new transition that fires from any state in from.
// The slice is copied.
func NewMultiOriginTransition[S comparable](from []S, to S) *MultiOriginTransition[S] {
	return &MultiOriginTransition[S]{
		from: slices.Clone(from),
		to:   to,
	}
}

func (t *MultiOriginTransition[S]) Resolve(current S) (S, bool) {
	if slices.Contains(t.from, current) {
		return t.to, true
	}

	var zero S

	return zero, false
}

func (t *MultiOriginTransition[S]) Origins() []S {
	return slices.Clone(t.from)
}

func (t *MultiOriginTransition[S]) Destination() S {
	return t.to
}

func (*MultiOriginTransition[S]) rule() {}
