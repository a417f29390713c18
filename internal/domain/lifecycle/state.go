package lifecycle

// State is the run state of a dispatcher
type State string

const (
	StateIdle      State = "IDLE"
	StateRunning   State = "RUNNING"
	StateCompleted State = "COMPLETED"
	StateAborted   State = "ABORTED"
)

var validStates = map[State]bool{
	StateIdle:      true,
	StateRunning:   true,
	StateCompleted: true,
	StateAborted:   true,
}

var finishedStates = map[State]bool{
	StateCompleted: true,
	StateAborted:   true,
}

// IsFinished returns true once a run has ended, successfully or not
func (s State) IsFinished() bool {
	return finishedStates[s]
}

// String returns the string representation of the state
func (s State) String() string {
	return string(s)
}

// IsValid returns true if the state is a known run state
func (s State) IsValid() bool {
	return validStates[s]
}
