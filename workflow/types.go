package workflow

// Rule maps one or more origin states to a single destination state.
// Implementations are immutable and safe for concurrent use.
//
// The set of rules is closed: use NewTransition or NewMultiOriginTransition.
type Rule[S comparable] interface {
	// Resolve returns the destination and true if current is one of the
	// rule's origins, or the zero state and false otherwise.
	Resolve(current S) (S, bool)
	Origins() []S
	Destination() S

	rule()
}

// Accessor reads and writes the state held by an entity of type T.
type Accessor[T any, S comparable] interface {
	Get(entity *T) S
	Set(entity *T, state S)
}
