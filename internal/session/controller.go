package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/Mdsinan09/hcis-project/internal/backend"
	"github.com/Mdsinan09/hcis-project/internal/chat"
	"github.com/Mdsinan09/hcis-project/internal/report"
)

// Analyzer is the abstract submission transport.
type Analyzer interface {
	Analyze(ctx context.Context, primaryPath, optionalTextPath string, progress backend.ProgressFunc) (map[string]any, error)
}

// Recorder is notified when a report completes. The notification is
// advisory: the authoritative save already happened server-side during
// submission.
type Recorder interface {
	RecordCompletion(rep *report.AnalysisReport)
}

// ProgressFunc observes submission progress as a percentage in 0..100.
type ProgressFunc func(percent int)

// Controller drives one analysis attempt through its phases:
//
//	Idle -> FileSelected -> Submitting -> AwaitingResult -> Complete
//
// with Error reachable from Submitting/AwaitingResult and Idle reachable
// from Complete/Error via Reset. The controller exclusively owns the
// session's mutable state; the normalized report is handed out read-only.
type Controller struct {
	mu         sync.Mutex
	analyzer   Analyzer
	chats      chat.Transport
	recorder   Recorder
	onProgress ProgressFunc

	phase    Phase
	primary  *FileRef
	optional *FileRef
	progress int
	report   *report.AnalysisReport
	errMsg   string
	// attempt tokens detect late-arriving responses for abandoned attempts.
	attempt string

	chatSession *chat.Session
}

// NewController creates an idle controller. recorder may be nil.
func NewController(analyzer Analyzer, chats chat.Transport, recorder Recorder) *Controller {
	return &Controller{
		analyzer: analyzer,
		chats:    chats,
		recorder: recorder,
		phase:    PhaseIdle,
	}
}

// SetProgressFunc installs an observer for submission progress updates.
// Updates are monotonically non-decreasing within one attempt and always
// reach 100 when the attempt concludes, success or failure.
func (c *Controller) SetProgressFunc(fn ProgressFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onProgress = fn
}

// SelectPrimaryFile chooses the file to analyze. A file replacement always
// starts a fresh session: any prior report, error, and chat state is
// cleared. Selection is ignored while a submission is in flight.
func (c *Controller) SelectPrimaryFile(f FileRef) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.inFlightLocked() {
		return ErrSubmissionInFlight
	}

	c.primary = &f
	c.optional = nil
	c.report = nil
	c.chatSession = nil
	c.errMsg = ""
	c.progress = 0
	c.phase = PhaseFileSelected
	return nil
}

// AttachOptionalFile adds an ancillary context file (for example a
// transcript). The phase stays FileSelected; the optional file is
// independently addable and removable.
func (c *Controller) AttachOptionalFile(f FileRef) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch {
	case c.inFlightLocked():
		return ErrSubmissionInFlight
	case c.primary == nil:
		return ErrNoPrimaryFile
	case c.phase != PhaseFileSelected:
		return ErrSessionConcluded
	}

	c.optional = &f
	return nil
}

// RemoveOptionalFile detaches the ancillary context file, if any.
func (c *Controller) RemoveOptionalFile() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase == PhaseFileSelected {
		c.optional = nil
	}
}

// Submit uploads the selection and normalizes the response. It fails
// synchronously, with no transition and no network call, when no primary
// file is selected or another submission is outstanding. Transport and
// validation failures land the session in PhaseError with a human-readable
// message; there is no automatic retry.
func (c *Controller) Submit(ctx context.Context) (*report.AnalysisReport, error) {
	c.mu.Lock()
	if c.inFlightLocked() {
		c.mu.Unlock()
		return nil, ErrSubmissionInFlight
	}
	if c.primary == nil {
		c.mu.Unlock()
		return nil, ErrNoPrimaryFile
	}

	attempt := uuid.NewString()
	c.attempt = attempt
	c.phase = PhaseSubmitting
	c.progress = 0
	c.report = nil
	c.chatSession = nil
	c.errMsg = ""

	primary := *c.primary
	var optionalPath string
	if c.optional != nil {
		optionalPath = c.optional.Path
	}
	observer := c.onProgress
	c.mu.Unlock()

	if observer != nil {
		observer(0)
	}

	payload, err := c.analyzer.Analyze(ctx, primary.Path, optionalPath, func(sent, total int64) {
		if total <= 0 {
			return
		}
		c.noteProgress(attempt, int(sent*100/total))
	})

	c.mu.Lock()
	if c.attempt != attempt {
		// Reset or replacement happened while the upload was in flight;
		// the session no longer cares about this result.
		c.mu.Unlock()
		return nil, ErrAttemptAbandoned
	}

	if err != nil {
		failure := fmt.Errorf("analysis failed: %w", err)
		c.concludeLocked(PhaseError, nil, failure.Error())
		c.mu.Unlock()
		c.emitProgress(100)
		return nil, failure
	}

	// Transport finished; the result is in hand but not yet normalized.
	c.phase = PhaseAwaitingResult
	c.mu.Unlock()

	rep, normErr := report.Normalize(payload, report.FileMeta{Name: primary.Name, Size: primary.Size})

	c.mu.Lock()
	if c.attempt != attempt {
		c.mu.Unlock()
		return nil, ErrAttemptAbandoned
	}

	if normErr != nil {
		failure := fmt.Errorf("analysis failed: %w", normErr)
		c.concludeLocked(PhaseError, nil, failure.Error())
		c.mu.Unlock()
		c.emitProgress(100)
		return nil, failure
	}

	c.concludeLocked(PhaseComplete, rep, "")
	c.chatSession = chat.NewSession(c.chats, rep)
	recorder := c.recorder
	c.mu.Unlock()
	c.emitProgress(100)

	if recorder != nil {
		recorder.RecordCompletion(rep)
	}
	return rep, nil
}

// Reset returns the session to Idle, discarding all selection, report,
// error, and chat state. An in-flight submission is not cancelled, but its
// eventual result is discarded via the attempt token.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.attempt = ""
	c.phase = PhaseIdle
	c.primary = nil
	c.optional = nil
	c.progress = 0
	c.report = nil
	c.chatSession = nil
	c.errMsg = ""
}

// Phase returns the current phase.
func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// Progress returns the last observed submission progress percentage.
func (c *Controller) Progress() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.progress
}

// Report returns the normalized report, or nil before completion.
func (c *Controller) Report() *report.AnalysisReport {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.report
}

// ErrorMessage returns the human-readable failure message, or "".
func (c *Controller) ErrorMessage() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errMsg
}

// PrimaryFile returns the selected primary file, or nil.
func (c *Controller) PrimaryFile() *FileRef {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.primary
}

// OptionalFile returns the attached ancillary file, or nil.
func (c *Controller) OptionalFile() *FileRef {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.optional
}

// ChatSession returns the conversation bound to the completed report, or
// nil before completion. The session is recreated fresh on every
// completion and discarded on reset or file replacement.
func (c *Controller) ChatSession() *chat.Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.chatSession
}

// inFlightLocked reports whether a submission is outstanding. Must be
// called with the lock held.
func (c *Controller) inFlightLocked() bool {
	return c.phase == PhaseSubmitting || c.phase == PhaseAwaitingResult
}

// concludeLocked pins progress to 100 and records the terminal outcome.
// Must be called with the lock held.
func (c *Controller) concludeLocked(phase Phase, rep *report.AnalysisReport, errMsg string) {
	c.phase = phase
	c.report = rep
	c.errMsg = errMsg
	c.progress = 100
}

// noteProgress applies a progress update from the transport, keeping the
// sequence monotonically non-decreasing and ignoring updates from stale
// attempts.
func (c *Controller) noteProgress(attempt string, percent int) {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	c.mu.Lock()
	if c.attempt != attempt || percent <= c.progress {
		c.mu.Unlock()
		return
	}
	c.progress = percent
	observer := c.onProgress
	c.mu.Unlock()

	if observer != nil {
		observer(percent)
	}
}

// emitProgress pushes a terminal progress value to the observer.
func (c *Controller) emitProgress(percent int) {
	c.mu.Lock()
	if percent > c.progress {
		c.progress = percent
	}
	observer := c.onProgress
	c.mu.Unlock()

	if observer != nil {
		observer(percent)
	}
}
