package model

// State represents the current state of a triage session
type State string

const (
	// StateIdle means no folder has been chosen yet
	StateIdle State = "Idle"

	// StateReady means the queue is populated and the current file is previewed
	StateReady State = "Ready"

	// StateSaving means the current file is being validated and committed
	StateSaving State = "Saving"

	// StateComplete means every file of the scanned folder has been triaged
	StateComplete State = "Complete"
)

// String returns the string representation of State
func (s State) String() string {
	return string(s)
}

// AcceptsSave returns true if a save action can be processed in this state
func (s State) AcceptsSave() bool {
	return s == StateReady
}

// IsFinished returns true if the session has no more files to triage
func (s State) IsFinished() bool {
	return s == StateComplete
}
