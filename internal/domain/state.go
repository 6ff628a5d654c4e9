package domain

// State is the position of one submission in the interaction lifecycle.
type State string

const (
	StateIdle               State = "idle"
	StateValidating         State = "validating"
	StateAwaitingCompletion State = "awaiting_completion"
	StateSuccess            State = "success"
	StateFailed             State = "failed"
)

// Terminal reports whether no further transition follows without a new submit.
func (s State) Terminal() bool {
	return s == StateSuccess || s == StateFailed
}

// CanTransition reports whether next is a legal successor of s.
func (s State) CanTransition(next State) bool {
	switch s {
	case StateIdle:
		return next == StateValidating
	case StateValidating:
		return next == StateAwaitingCompletion || next == StateFailed
	case StateAwaitingCompletion:
		return next == StateSuccess || next == StateFailed
	case StateSuccess, StateFailed:
		return next == StateIdle
	default:
		return false
	}
}
