package wizard

import (
	"errors"
	"fmt"
	"time"
	"unicode/utf8"
)

// RecordStore is the persistence surface the session needs. The store
// package's WorkflowStore satisfies it.
type RecordStore interface {
	GetByID(id string) (WorkflowRecord, error)
	Save(record *WorkflowRecord) error
	NewWorkflowID() string
}

// ErrGateFailed is returned by Advance when the current step's gating rule
// does not hold.
var ErrGateFailed = errors.New("wizard: step gate not satisfied")

// Session drives one live onboarding run. All mutation funnels through the
// session so the state machine is testable without a rendering environment.
// One session per process; a second process editing the same record silently
// wins on last write.
type Session struct {
	store RecordStore
	seed  SeedContext
	now   func() time.Time

	record    WorkflowRecord
	step      int
	persisted bool
	finished  bool
}

// NewSession builds a session bound to a store and the configured seed
// values. Call InitializeNew or Resume before anything else.
func NewSession(store RecordStore, seed SeedContext) *Session {
	return &Session{store: store, seed: seed, now: time.Now}
}

// SetClock overrides the timestamp source. Tests use it to pin AcceptedAt.
func (s *Session) SetClock(now func() time.Time) {
	s.now = now
}

// InitializeNew starts a fresh session at step 1. No record exists in the
// store until the first Advance or SaveAndExit.
func (s *Session) InitializeNew() {
	s.record = WorkflowRecord{
		CurrentStep: StepCompanyInfo,
		Status:      StatusInProgress,
		Step1:       DefaultCompanyInfo(s.seed),
	}
	s.step = StepCompanyInfo
	s.persisted = false
	s.finished = false
}

// Resume loads a saved record and rehydrates the session at its current
// step. A missing id starts a new session instead. This is a one-shot load:
// later store changes are not reflected in the live session.
func (s *Session) Resume(id string) {
	record, err := s.store.GetByID(id)
	if err != nil {
		s.InitializeNew()
		return
	}
	if record.CurrentStep < 1 || record.CurrentStep > StepCount {
		record.CurrentStep = StepCompanyInfo
	}
	s.record = record.Clone()
	s.step = record.CurrentStep
	s.persisted = true
	s.finished = false
}

// CurrentStep returns the step the session is on, 1..7.
func (s *Session) CurrentStep() int { return s.step }

// Finished reports whether the session completed via step 7.
func (s *Session) Finished() bool { return s.finished }

// WorkflowID returns the record id, empty until first persisted.
func (s *Session) WorkflowID() string { return s.record.ID }

// Persisted reports whether the record has been written to the store at
// least once. Cancelling an unpersisted session leaves no trace.
func (s *Session) Persisted() bool { return s.persisted }

// Record returns a snapshot of the working record.
func (s *Session) Record() WorkflowRecord { return s.record.Clone() }

// CompanyInfo exposes the step-1 payload for editing. Always present.
func (s *Session) CompanyInfo() *CompanyInfo { return &s.record.Step1 }

// TemplateChoice exposes the step-2 payload, seeding defaults on first use.
func (s *Session) TemplateChoice() *TemplateChoice {
	if s.record.Step2 == nil {
		v := DefaultTemplateChoice()
		s.record.Step2 = &v
	}
	return s.record.Step2
}

// DocumentTypes exposes the step-3 payload, seeding defaults on first use.
func (s *Session) DocumentTypes() *DocumentTypes {
	if s.record.Step3 == nil {
		v := DefaultDocumentTypes()
		s.record.Step3 = &v
	}
	return s.record.Step3
}

// ValidationRules exposes the step-4 payload, seeding defaults on first use.
func (s *Session) ValidationRules() *ValidationRules {
	if s.record.Step4 == nil {
		v := DefaultValidationRules(s.seed)
		s.record.Step4 = &v
	}
	return s.record.Step4
}

// VolumeEstimate exposes the step-5 payload. Rows are seeded from, and kept
// in sync with, step 1's lines-of-business count unless the estimate has
// been explicitly skipped.
func (s *Session) VolumeEstimate() *VolumeEstimate {
	if s.record.Step5 == nil {
		ctx := s.seed
		ctx.LOBCount = s.record.Step1.LinesOfBusiness
		v := DefaultVolumeEstimate(ctx)
		s.record.Step5 = &v
		return s.record.Step5
	}
	synced := SyncVolumeRows(*s.record.Step5, s.record.Step1.LinesOfBusiness)
	*s.record.Step5 = synced
	return s.record.Step5
}

// OutputFormat exposes the step-6 payload, seeding defaults on first use.
// The delivery location falls back to step 1's pick-up location.
func (s *Session) OutputFormat() *OutputFormat {
	if s.record.Step6 == nil {
		ctx := s.seed
		ctx.PickupLocation = s.record.Step1.SecurePickupLocation
		v := DefaultOutputFormat(ctx)
		s.record.Step6 = &v
	}
	if s.record.Step6.Delivery.Location == "" {
		s.record.Step6.Delivery.Location = s.record.Step1.SecurePickupLocation
	}
	return s.record.Step6
}

// ReviewAccept exposes the step-7 payload, seeding defaults on first use.
func (s *Session) ReviewAccept() *ReviewAccept {
	if s.record.Step7 == nil {
		v := DefaultReviewAccept()
		s.record.Step7 = &v
	}
	return s.record.Step7
}

// CanAdvance evaluates the current step's gating rule. The reason string is
// shown next to the disabled Next action; it is empty when advancing is
// allowed.
func (s *Session) CanAdvance() (bool, string) {
	switch s.step {
	case StepChooseTemplate:
		if s.record.Step2 == nil || s.record.Step2.SelectedTemplateID == "" {
			return false, "Select a template to continue"
		}
	case StepDocumentTypes:
		if s.record.Step3 == nil || len(s.record.Step3.SelectedTemplateIDs) == 0 {
			return false, "Select at least one document type"
		}
	case StepOutputFormat:
		if s.record.Step6 == nil || len(s.record.Step6.SelectedFormats) == 0 {
			return false, "Select at least one output format (JSON or CSV)"
		}
	case StepReviewAccept:
		if s.record.Step7 == nil || !s.record.Step7.PoliciesAccepted.All() {
			return false, "Accept all four policies to continue"
		}
		if utf8.RuneCountInString(s.record.Step7.AcceptedBy) < 2 {
			return false, "Enter your full name as signature"
		}
	}
	return true, ""
}

// Advance persists the current snapshot and moves to the next step. The
// first persist assigns the record id. Advancing from step 7 finalizes the
// workflow instead: status flips to completed, the acceptance timestamp is
// stamped, and the session is finished.
func (s *Session) Advance() error {
	if ok, reason := s.CanAdvance(); !ok {
		return fmt.Errorf("%w: %s", ErrGateFailed, reason)
	}
	finalizing := s.step == StepReviewAccept
	if finalizing {
		// Always re-stamp: a record re-opened after completion carries the
		// old acceptance timestamp, and the new one must match the payloads
		// being accepted now.
		s.record.Status = StatusCompleted
		s.record.Step7.AcceptedAt = s.now().UTC().Format(time.RFC3339)
	} else {
		s.record.Status = StatusInProgress
		s.record.CurrentStep = s.step + 1
	}
	if err := s.persist(); err != nil {
		return err
	}
	if finalizing {
		s.finished = true
		return nil
	}
	s.step++
	return nil
}

// Retreat moves back one step. Back-navigation is free: nothing persists.
func (s *Session) Retreat() {
	if s.step > 1 {
		s.step--
	}
}

// EditStep jumps directly to a step, used from the review sidebar. No
// persistence side effect.
func (s *Session) EditStep(step int) {
	if step >= 1 && step <= StepCount {
		s.step = step
	}
}

// SaveAndExit persists the current snapshot without moving. A draft stays
// in-progress; a record re-opened after completion reverts to in-progress
// here, and must run through step 7 again to complete.
func (s *Session) SaveAndExit() error {
	s.record.Status = StatusInProgress
	s.record.CurrentStep = s.step
	return s.persist()
}

// Summarize returns the one-line digest for a step of the working record.
func (s *Session) Summarize(step int) string {
	return Summarize(s.record, step)
}

// Summaries returns all seven digests for the progress sidebar.
func (s *Session) Summaries() []string {
	return Summaries(s.record)
}

func (s *Session) persist() error {
	if s.record.ID == "" {
		s.record.ID = s.store.NewWorkflowID()
	}
	if s.record.Name == "" || s.record.Name == "Untitled Workflow" {
		if s.record.Step1.CompanyName != "" {
			s.record.Name = s.record.Step1.CompanyName
		} else {
			s.record.Name = "Untitled Workflow"
		}
	}
	snapshot := s.record.Clone()
	if err := s.store.Save(&snapshot); err != nil {
		return fmt.Errorf("wizard: persist workflow %s: %w", s.record.ID, err)
	}
	// The store stamps CreatedAt/UpdatedAt on the saved copy.
	s.record.CreatedAt = snapshot.CreatedAt
	s.record.UpdatedAt = snapshot.UpdatedAt
	s.persisted = true
	return nil
}
