// Package lifecycle enforces status transition tables.
package lifecycle

// Machine holds the allowed transitions between states.
type Machine[S comparable] struct {
	transitions map[S][]S
}

// New creates a machine from a transition table.
func New[S comparable](transitions map[S][]S) *Machine[S] {
	return &Machine[S]{transitions: transitions}
}

// CanTransition reports whether moving from one state to another is
// allowed.
func (m *Machine[S]) CanTransition(from, to S) bool {
	for _, allowed := range m.transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Next returns the states reachable from a state.
func (m *Machine[S]) Next(from S) []S {
	allowed := m.transitions[from]
	out := make([]S, len(allowed))
	copy(out, allowed)
	return out
}
