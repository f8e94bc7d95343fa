package workflow

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newPublishingWorkflow builds the draft -> published -> aborted|completed -> archived workflow.
func newPublishingWorkflow(opts Options[string]) *Workflow[string] {
	wf := New(opts)

	wf.AddTransition("publish", NewTransition("draft", "published"))
	wf.AddTransition("abort", NewTransition("published", "aborted"))
	wf.AddTransition("complete", NewTransition("published", "completed"))
	wf.AddTransition("archive", NewMultiOriginTransition([]string{"aborted", "completed"}, "archived"))

	return wf
}

func TestWorkflowTransitionNotFound(t *testing.T) {
	t.Parallel()

	wf := newPublishingWorkflow(Options[string]{DetectUnexpectedState: true})

	_, ok, err := wf.Can("invalid_transition", "draft")
	require.Error(t, err)
	assert.False(t, ok)
	assert.Equal(t, "transition 'invalid_transition' not found", err.Error())
	assert.ErrorIs(t, err, ErrTransitionNotFound)

	var transErr *TransitionError
	require.ErrorAs(t, err, &transErr)
	assert.Equal(t, "invalid_transition", transErr.Transition)

	_, err = wf.Apply("invalid_transition", "draft")
	assert.ErrorIs(t, err, ErrTransitionNotFound)

	_, err = wf.Transition("invalid_transition")
	assert.ErrorIs(t, err, ErrTransitionNotFound)
}

func TestWorkflowTransitionNotFoundIgnoresGuard(t *testing.T) {
	t.Parallel()

	for _, detect := range []bool{false, true} {
		wf := New(Options[string]{DetectUnexpectedState: detect})

		for _, state := range []string{"draft", "never-seen", ""} {
			_, _, err := wf.Can("missing", state)
			require.ErrorIs(t, err, ErrTransitionNotFound)
			assert.NotErrorIs(t, err, ErrUnexpectedState)
		}
	}
}

func TestWorkflowTransitionsAsExpected(t *testing.T) {
	t.Parallel()

	wf := newPublishingWorkflow(Options[string]{})

	allowed := map[string]map[string]string{
		"draft":     {"publish": "published"},
		"published": {"abort": "aborted", "complete": "completed"},
		"aborted":   {"archive": "archived"},
		"completed": {"archive": "archived"},
		"archived":  {},
		"invalid":   {},
	}

	for state, transitions := range allowed {
		for _, name := range wf.Transitions() {
			next, ok, err := wf.Can(name, state)
			require.NoError(t, err)

			want, wantOK := transitions[name]
			assert.Equal(t, wantOK, ok, "%s from %s", name, state)
			assert.Equal(t, want, next, "%s from %s", name, state)
		}
	}
}

func TestWorkflowApply(t *testing.T) {
	t.Parallel()

	wf := newPublishingWorkflow(Options[string]{})

	state := "draft"

	state, err := wf.Apply("publish", state)
	require.NoError(t, err)
	assert.Equal(t, "published", state)

	state, err = wf.Apply("complete", state)
	require.NoError(t, err)
	assert.Equal(t, "completed", state)

	state, err = wf.Apply("archive", state)
	require.NoError(t, err)
	assert.Equal(t, "archived", state)

	next, err := wf.Apply("publish", state)
	require.Error(t, err)
	assert.Empty(t, next)
	assert.ErrorIs(t, err, ErrTransitionRejected)
	assert.Equal(t, "can't apply transition 'publish' to current state 'archived'", err.Error())

	var transErr *TransitionError
	require.ErrorAs(t, err, &transErr)
	assert.Equal(t, "publish", transErr.Transition)
	assert.Equal(t, "archived", transErr.State)
}

func TestWorkflowApplySkipsUnexpectedStateGuard(t *testing.T) {
	t.Parallel()

	wf := newPublishingWorkflow(Options[string]{DetectUnexpectedState: true})

	_, err := wf.Apply("publish", "invalid")
	require.ErrorIs(t, err, ErrTransitionRejected)
	assert.NotErrorIs(t, err, ErrUnexpectedState)
}

func TestWorkflowDetectUnexpectedState(t *testing.T) {
	t.Parallel()

	wf := New(Options[string]{DetectUnexpectedState: true})
	wf.AddTransition("publish", NewTransition("draft", "published"))

	_, ok, err := wf.Can("publish", "invalid")
	require.Error(t, err)
	assert.False(t, ok)
	assert.Equal(t, "the instance has an unexpected state 'invalid'", err.Error())
	assert.ErrorIs(t, err, ErrUnexpectedState)

	var stateErr *StateError
	require.ErrorAs(t, err, &stateErr)
	assert.Equal(t, "invalid", stateErr.State)
}

func TestWorkflowUnexpectedStateWithEmptyKnownStates(t *testing.T) {
	t.Parallel()

	wf := newPublishingWorkflow(Options[string]{DetectUnexpectedState: true})

	// Success never consults the guard.
	next, ok, err := wf.Can("publish", "draft")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "published", next)

	// With nothing known, every failed resolution trips.
	_, _, err = wf.Can("abort", "draft")
	assert.ErrorIs(t, err, ErrUnexpectedState)
}

func TestWorkflowKnownStatesSuppressGuard(t *testing.T) {
	t.Parallel()

	wf := newPublishingWorkflow(Options[string]{
		DetectUnexpectedState: true,
		KnownStates:           []string{"draft", "published"},
	})
	wf.AddKnownStates("aborted", "completed", "archived")

	_, ok, err := wf.Can("abort", "draft")
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = wf.Can("publish", "archived")
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, err = wf.Can("publish", "deleted")
	assert.ErrorIs(t, err, ErrUnexpectedState)
}

func TestWorkflowGuardOffNeverTrips(t *testing.T) {
	t.Parallel()

	wf := newPublishingWorkflow(Options[string]{})

	_, ok, err := wf.Can("publish", "invalid")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestWorkflowAddTransitionFirstWins(t *testing.T) {
	t.Parallel()

	wf := New(Options[string]{})

	wf.AddTransition("publish", NewTransition("draft", "published"))
	wf.AddTransition("publish", NewTransition("review", "rejected"))
	wf.AddTransition("publish", nil)
	wf.AddTransition("noop", nil)

	next, ok, err := wf.Can("publish", "draft")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "published", next)

	_, ok, err = wf.Can("publish", "review")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.Equal(t, []string{"publish"}, wf.Transitions())

	_, err = wf.Transition("noop")
	assert.ErrorIs(t, err, ErrTransitionNotFound)
}

func TestWorkflowKnownStatesNaturalOrder(t *testing.T) {
	t.Parallel()

	wf := New(Options[string]{KnownStates: []string{"step10", "step2", "step1"}})
	wf.AddKnownStates("step2", "done")

	assert.Equal(t, []string{"done", "step1", "step2", "step10"}, wf.KnownStates())
}

func TestWorkflowIntegerStates(t *testing.T) {
	t.Parallel()

	wf := New(Options[int]{Name: "integers", DetectUnexpectedState: true, KnownStates: []int{0, 1}})
	wf.AddTransition("advance", NewTransition(0, 1))

	next, ok, err := wf.Can("advance", 0)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, next)

	_, err = wf.Apply("advance", 1)
	require.EqualError(t, err, "can't apply transition 'advance' to current state '1'")

	_, _, err = wf.Can("advance", 5)
	require.EqualError(t, err, "the instance has an unexpected state '5'")

	assert.Equal(t, "integers", wf.Name())
	assert.True(t, wf.DetectsUnexpectedState())
}

func TestErrorMessagesForOtherCauses(t *testing.T) {
	t.Parallel()

	cause := errors.New("boom") //nolint:err113

	transErr := &TransitionError{Transition: "publish", Err: cause}
	assert.Equal(t, "transition 'publish': boom", transErr.Error())
	assert.ErrorIs(t, transErr, cause)

	stateErr := &StateError{State: "draft", Err: cause}
	assert.Equal(t, "state 'draft': boom", stateErr.Error())
	assert.ErrorIs(t, stateErr, cause)
}
