package domain

// ProjectState is the tracking status of a single project.
type ProjectState int

const (
	StateInactive ProjectState = iota
	StateActive
)

// String returns the state name for display purposes.
func (s ProjectState) String() string {
	if s == StateActive {
		return "active"
	}
	return "inactive"
}

// Transition applies command to the state. START on an active project and
// STOP on an inactive one are self-transitions and report changed=false.
func (s ProjectState) Transition(command Command) (next ProjectState, changed bool) {
	switch command {
	case CommandStart:
		return StateActive, s != StateActive
	case CommandStop:
		return StateInactive, s != StateInactive
	default:
		return s, false
	}
}
