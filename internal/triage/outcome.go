package triage

import (
	"image"

	"github.com/ytget/doc-sorter/internal/model"
)

// OutcomeKind tells the caller how a transition ended
type OutcomeKind int

const (
	// OutcomeReady means a file is loaded and waiting for input
	OutcomeReady OutcomeKind = iota
	// OutcomeSaved means the previous file was stored and the next one loaded
	OutcomeSaved
	// OutcomeCompleted means no files are left in the folder
	OutcomeCompleted
	// OutcomeInvalid means the input was rejected and nothing changed
	OutcomeInvalid
	// OutcomeNeedsConfirmation means Save stopped to ask the user a question
	OutcomeNeedsConfirmation
	// OutcomeFailed means the filesystem operation failed; the file stays current
	OutcomeFailed
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeReady:
		return "ready"
	case OutcomeSaved:
		return "saved"
	case OutcomeCompleted:
		return "completed"
	case OutcomeInvalid:
		return "invalid"
	case OutcomeNeedsConfirmation:
		return "needs-confirmation"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Prompt identifies the question a NeedsConfirmation outcome asks
type Prompt int

const (
	// PromptNone means no question is pending
	PromptNone Prompt = iota
	// PromptUncategorized asks whether to file into the default category
	PromptUncategorized
	// PromptCollision asks whether to add a numeric suffix to a taken name
	PromptCollision
)

// Confirmations carries the answers the user has already given for one save.
// They are not remembered between saves.
type Confirmations struct {
	Uncategorized bool
	Suffix        bool
}

// Outcome describes the result of a controller transition
type Outcome struct {
	Kind   OutcomeKind
	Prompt Prompt
	Err    error

	// Destination is where the saved file was written
	Destination string

	// Entry is the current file after the transition, zero when none is left
	Entry      model.FileEntry
	Preview    image.Image
	PreviewErr error
	Remaining  int

	// Completed is set on the one outcome that finishes the folder
	Completed bool
}

// HasEntry reports whether the outcome carries a current file
func (o Outcome) HasEntry() bool {
	return o.Entry.Path != ""
}
