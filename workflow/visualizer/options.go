package visualizer

// Options configures the visualization output.
type Options struct {
	// ShowTransitionNames labels each edge with its transition name
	ShowTransitionNames bool

	// Direction controls diagram flow: "TB" (top-bottom) or "LR" (left-right)
	Direction string

	// InitialState draws an entry edge into this state when set
	InitialState string

	// MarkTerminalStates draws an exit edge from states that are reached but never left
	MarkTerminalStates bool

	// Highlight highlights specific states, e.g. an entity's current state
	Highlight []string
}

// DefaultOptions returns sensible defaults for visualization.
func DefaultOptions() Options {
	return Options{
		ShowTransitionNames: true,
		Direction:           "TB",
		MarkTerminalStates:  true,
	}
}

// WithShowTransitionNames enables/disables edge labels.
func (o Options) WithShowTransitionNames(show bool) Options {
	o.ShowTransitionNames = show

	return o
}

// WithDirection sets the diagram direction.
func (o Options) WithDirection(direction string) Options {
	o.Direction = direction

	return o
}

// WithInitialState sets the state the entry edge points to.
func (o Options) WithInitialState(state string) Options {
	o.InitialState = state

	return o
}

// WithMarkTerminalStates enables/disables exit edges.
func (o Options) WithMarkTerminalStates(mark bool) Options {
	o.MarkTerminalStates = mark

	return o
}

// WithHighlight sets states to highlight.
func (o Options) WithHighlight(states ...string) Options {
	o.Highlight = states

	return o
}
