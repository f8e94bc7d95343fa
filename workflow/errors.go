package workflow

import (
	"errors"
	"fmt"
)

// Predefined error types.
var (
	// ErrTransitionNotFound indicates that no transition is registered under the requested name.
	ErrTransitionNotFound = errors.New("transition not found")
	// ErrTransitionRejected indicates that a transition cannot fire from the current state.
	ErrTransitionRejected = errors.New("transition rejected")
	// ErrUnexpectedState indicates that the current state is not one of the workflow's known states.
	ErrUnexpectedState = errors.New("unexpected state")
	// ErrInvalidConfig indicates that a workflow was constructed with an invalid configuration.
	ErrInvalidConfig = errors.New("invalid configuration")
	// ErrInvalidEntity indicates that a nil entity was passed to an entity-based workflow.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrConfigNameRequired indicates that a configuration name is required.
	ErrConfigNameRequired = errors.New("config name is required")
	// ErrTransitionNameRequired indicates that a transition name is required.
	ErrTransitionNameRequired = errors.New("transition name is required")
	// ErrTransitionFromRequired indicates that a transition needs at least one origin state.
	ErrTransitionFromRequired = errors.New("transition from state is required")
	// ErrTransitionToRequired indicates that a transition to state is required.
	ErrTransitionToRequired = errors.New("transition to state is required")
)

// TransitionError wraps an error with the name of the transition involved
// and, for rejections, the state it was attempted from.
type TransitionError struct {
	Transition string
	State      string
	Err        error
}

func (e *TransitionError) Error() string {
	switch {
	case errors.Is(e.Err, ErrTransitionNotFound):
		return fmt.Sprintf("transition '%s' not found", e.Transition)
	case errors.Is(e.Err, ErrTransitionRejected):
		return fmt.Sprintf("can't apply transition '%s' to current state '%s'", e.Transition, e.State)
	default:
		return fmt.Sprintf("transition '%s': %v", e.Transition, e.Err)
	}
}

func (e *TransitionError) Unwrap() error {
	return e.Err
}

// StateError wraps an error with state context.
type StateError struct {
	State string
	Err   error
}

func (e *StateError) Error() string {
	if errors.Is(e.Err, ErrUnexpectedState) {
		return fmt.Sprintf("the instance has an unexpected state '%s'", e.State)
	}

	return fmt.Sprintf("state '%s': %v", e.State, e.Err)
}

func (e *StateError) Unwrap() error {
	return e.Err
}

func newTransitionNotFoundError(transition string) error {
	return &TransitionError{
		Transition: transition,
		Err:        ErrTransitionNotFound,
	}
}

func newTransitionRejectedError(transition, state string) error {
	return &TransitionError{
		Transition: transition,
		State:      state,
		Err:        ErrTransitionRejected,
	}
}

func newUnexpectedStateError(state string) error {
	return &StateError{
		State: state,
		Err:   ErrUnexpectedState,
	}
}

// stateString renders a state for error messages, logs, metric labels and span attributes.
func stateString(state any) string {
	return fmt.Sprint(state)
}
