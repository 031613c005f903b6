// Package session owns the lifecycle of one analysis attempt: file intake,
// submission, progress, result, and the conversational follow-up bound to
// that result.
package session

import (
	"errors"
)

// Phase is the explicit state of the analysis session. All mutations go
// through the documented operations, so invalid combinations (for example
// "Complete but no report") are unrepresentable.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseFileSelected
	PhaseSubmitting
	PhaseAwaitingResult
	PhaseComplete
	PhaseError
)

// String returns a short name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseFileSelected:
		return "file-selected"
	case PhaseSubmitting:
		return "submitting"
	case PhaseAwaitingResult:
		return "awaiting-result"
	case PhaseComplete:
		return "complete"
	case PhaseError:
		return "error"
	}
	return "unknown"
}

// FileRef identifies a local file chosen for submission.
type FileRef struct {
	Path string
	Name string
	Size int64
}

// Guard errors. These reject an operation synchronously without issuing a
// network call or changing phase.
var (
	// ErrNoPrimaryFile rejects a submission or attachment with no primary
	// file selected.
	ErrNoPrimaryFile = errors.New("no primary file selected")

	// ErrSubmissionInFlight rejects operations while a submission is
	// outstanding. Only one submission runs at a time, and a new file
	// selection during one is ignored until it resolves.
	ErrSubmissionInFlight = errors.New("a submission is already in flight")

	// ErrSessionConcluded rejects an optional-file attachment after the
	// session reached Complete or Error; a fresh primary selection or a
	// reset is required first.
	ErrSessionConcluded = errors.New("session has concluded; select a new file or reset")

	// ErrAttemptAbandoned reports that a submission resolved after the
	// session stopped caring about it (reset or replaced). The late result
	// is discarded and no state changes.
	ErrAttemptAbandoned = errors.New("analysis attempt was abandoned")
)
