package engine

// State is the lifecycle state of a Context.
type State int

const (
	// StateUninitialized is a freshly created Context; no collaborator has
	// been built yet
	StateUninitialized State = iota
	// StateInitialized means the collaborators are built and the Context is
	// serving operations
	StateInitialized
	// StateDisposed is terminal; every operation fails with ErrDisposed
	StateDisposed
)

// String returns the state name
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateInitialized:
		return "initialized"
	case StateDisposed:
		return "disposed"
	default:
		return "unknown"
	}
}
