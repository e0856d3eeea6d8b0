package process

// State represents the current lifecycle state of a process
type State string

const (
	StateSubmitted   State = "submitted"
	StateWaiting     State = "waiting" //waiting for memory
	StateRunning     State = "running"
	StateCompleted   State = "completed"
	StateInterrupted State = "interrupted"
	// StateRejected marks a request that can never be satisfied because it
	// exceeds the pool's total capacity.
	StateRejected State = "rejected"
)

// transitions lists the states reachable from each non-terminal state
var transitions = map[State][]State{
	StateSubmitted: {StateRunning, StateWaiting, StateRejected},
	StateWaiting:   {StateRunning, StateInterrupted},
	StateRunning:   {StateCompleted, StateInterrupted},
}

// IsTerminal returns true when no further transition is possible
func (s State) IsTerminal() bool {
	switch s {
	case StateCompleted, StateInterrupted, StateRejected:
		return true
	}
	return false
}

// CanTransition reports whether s can move to next
func (s State) CanTransition(next State) bool {
	for _, candidate := range transitions[s] {
		if candidate == next {
			return true
		}
	}
	return false
}

// ParseState returns the state matching name or false
func ParseState(name string) (State, bool) {
	switch s := State(name); s {
	case StateSubmitted, StateWaiting, StateRunning, StateCompleted, StateInterrupted, StateRejected:
		return s, true
	}
	return "", false
}
