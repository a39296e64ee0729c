package wizard

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stellahq/stella-console/internal/catalog"
)

type fakeStore struct {
	records map[string]WorkflowRecord
	nextID  int
	saves   int
}

func newFakeStore() *fakeStore {
	return &fakeStore{records: map[string]WorkflowRecord{}}
}

func (f *fakeStore) GetByID(id string) (WorkflowRecord, error) {
	record, ok := f.records[id]
	if !ok {
		return WorkflowRecord{}, errors.New("not found")
	}
	return record.Clone(), nil
}

func (f *fakeStore) Save(record *WorkflowRecord) error {
	f.saves++
	now := time.Date(2026, 3, 1, 12, 0, 0, f.saves, time.UTC)
	if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}
	record.UpdatedAt = now
	f.records[record.ID] = record.Clone()
	return nil
}

func (f *fakeStore) NewWorkflowID() string {
	f.nextID++
	return fmt.Sprintf("wf_test_%d", f.nextID)
}

func testSeed() SeedContext {
	return SeedContext{
		Country:             "United States",
		ConfidenceThreshold: 85,
		RetentionDays:       90,
	}
}

func TestInitializeNewSeedsDefaults(t *testing.T) {
	store := newFakeStore()
	session := NewSession(store, testSeed())
	session.InitializeNew()

	if session.CurrentStep() != StepCompanyInfo {
		t.Fatalf("expected step 1, got %d", session.CurrentStep())
	}
	if session.WorkflowID() != "" {
		t.Fatalf("new session should have no id until persisted")
	}
	info := session.CompanyInfo()
	if info.Country != "United States" {
		t.Fatalf("country default not applied: %q", info.Country)
	}
	if info.LinesOfBusiness != 1 {
		t.Fatalf("expected one default line of business, got %d", info.LinesOfBusiness)
	}
	if len(store.records) != 0 {
		t.Fatalf("record created eagerly; want lazy creation")
	}
}

func TestOutputFormatDefaultsPreEnableBothFormats(t *testing.T) {
	session := NewSession(newFakeStore(), testSeed())
	session.InitializeNew()
	session.CompanyInfo().SecurePickupLocation = "Dock 4, Springfield"

	format := session.OutputFormat()
	if !format.JSON.Enabled || !format.CSV.Enabled {
		t.Fatalf("json and csv should both start enabled")
	}
	if format.JSON.FileNaming != DefaultFileNaming || format.CSV.FileNaming != DefaultFileNaming {
		t.Fatalf("naming pattern defaults missing: %q / %q", format.JSON.FileNaming, format.CSV.FileNaming)
	}
	if format.Delivery.Location != "Dock 4, Springfield" {
		t.Fatalf("delivery location should fall back to pick-up location, got %q", format.Delivery.Location)
	}
	if len(format.AuditTrail.Events) != 4 {
		t.Fatalf("expected 4 audit events, got %d", len(format.AuditTrail.Events))
	}
	for _, event := range format.AuditTrail.Events {
		if !event.Enabled {
			t.Fatalf("audit event %s should always be enabled", event.EventType)
		}
	}
	if format.AuditTrail.RetentionDays != 90 {
		t.Fatalf("retention should come from config, got %d", format.AuditTrail.RetentionDays)
	}
}

func TestAdvanceScenarioAcme(t *testing.T) {
	store := newFakeStore()
	session := NewSession(store, testSeed())
	session.InitializeNew()

	session.CompanyInfo().CompanyName = "Acme"
	if err := session.Advance(); err != nil {
		t.Fatalf("advance from step 1: %v", err)
	}
	if session.CurrentStep() != 2 {
		t.Fatalf("expected step 2, got %d", session.CurrentStep())
	}
	saved, ok := store.records[session.WorkflowID()]
	if !ok {
		t.Fatalf("record not created on first advance")
	}
	if saved.CurrentStep != 2 || saved.Status != StatusInProgress {
		t.Fatalf("unexpected saved record: step=%d status=%s", saved.CurrentStep, saved.Status)
	}
	if saved.Step1.CompanyName != "Acme" || saved.Name != "Acme" {
		t.Fatalf("company name not persisted: %+v", saved)
	}

	choice := session.TemplateChoice()
	choice.SelectedTemplateID = "basic-invoice"
	choice.TemplateName = "Basic Invoice Processing"
	if err := session.Advance(); err != nil {
		t.Fatalf("advance from step 2: %v", err)
	}
	if session.CurrentStep() != 3 {
		t.Fatalf("expected step 3, got %d", session.CurrentStep())
	}

	// Zero selections: the gate must hold the session at step 3.
	if ok, _ := session.CanAdvance(); ok {
		t.Fatalf("step 3 gate should fail with no selections")
	}
	if err := session.Advance(); !errors.Is(err, ErrGateFailed) {
		t.Fatalf("expected gate failure, got %v", err)
	}
	if session.CurrentStep() != 3 {
		t.Fatalf("step changed on rejected advance: %d", session.CurrentStep())
	}
}

func TestGatesPerStep(t *testing.T) {
	cases := []struct {
		name    string
		prepare func(s *Session)
		step    int
		want    bool
	}{
		{"step1 ungated when empty", func(s *Session) {}, 1, true},
		{"step2 requires selection", func(s *Session) { s.EditStep(2) }, 2, false},
		{"step2 passes with selection", func(s *Session) {
			s.TemplateChoice().SelectedTemplateID = "banking"
			s.EditStep(2)
		}, 2, true},
		{"step4 ungated", func(s *Session) { s.EditStep(4) }, 4, true},
		{"step5 ungated", func(s *Session) { s.EditStep(5) }, 5, true},
		{"step6 requires a format", func(s *Session) {
			s.OutputFormat().SelectedFormats = nil
			s.EditStep(6)
		}, 6, false},
		{"step6 passes with json only", func(s *Session) {
			s.OutputFormat().SelectedFormats = []string{"json"}
			s.EditStep(6)
		}, 6, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			session := NewSession(newFakeStore(), testSeed())
			session.InitializeNew()
			tc.prepare(session)
			if session.CurrentStep() != tc.step {
				t.Fatalf("setup landed on step %d, want %d", session.CurrentStep(), tc.step)
			}
			got, reason := session.CanAdvance()
			if got != tc.want {
				t.Fatalf("CanAdvance = %v (%q), want %v", got, reason, tc.want)
			}
			if !tc.want && reason == "" {
				t.Fatalf("rejected advance should carry a reason")
			}
		})
	}
}

func TestStep7GateBoundary(t *testing.T) {
	session := NewSession(newFakeStore(), testSeed())
	session.InitializeNew()
	session.EditStep(7)

	accept := session.ReviewAccept()
	accept.PoliciesAccepted = PolicyAcceptance{DPA: true, SLA: true, Compliance: true, AuditRetention: true}

	accept.AcceptedBy = "A"
	if ok, _ := session.CanAdvance(); ok {
		t.Fatalf("signature of length 1 should reject")
	}
	accept.AcceptedBy = "Al"
	if ok, reason := session.CanAdvance(); !ok {
		t.Fatalf("signature of length 2 should accept, got %q", reason)
	}

	// The length is counted in runes, not bytes: one multi-byte rune is
	// still too short, two pass.
	accept.AcceptedBy = "Ω"
	if ok, _ := session.CanAdvance(); ok {
		t.Fatalf("single-rune signature should reject")
	}
	accept.AcceptedBy = "李白"
	if ok, reason := session.CanAdvance(); !ok {
		t.Fatalf("two-rune signature should accept, got %q", reason)
	}

	// Flipping any single policy flag off must reject.
	flips := []func(*PolicyAcceptance){
		func(p *PolicyAcceptance) { p.DPA = false },
		func(p *PolicyAcceptance) { p.SLA = false },
		func(p *PolicyAcceptance) { p.Compliance = false },
		func(p *PolicyAcceptance) { p.AuditRetention = false },
	}
	for i, flip := range flips {
		accept.PoliciesAccepted = PolicyAcceptance{DPA: true, SLA: true, Compliance: true, AuditRetention: true}
		flip(&accept.PoliciesAccepted)
		if ok, _ := session.CanAdvance(); ok {
			t.Fatalf("flip %d: gate should reject with one policy off", i)
		}
	}
}

func TestAdvanceFromStep7Finalizes(t *testing.T) {
	store := newFakeStore()
	session := NewSession(store, testSeed())
	session.SetClock(func() time.Time {
		return time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)
	})
	session.InitializeNew()

	session.CompanyInfo().CompanyName = "Northwind"
	session.TemplateChoice().SelectedTemplateID = "banking"
	session.DocumentTypes().SelectedTemplateIDs = []string{"template-a"}
	session.OutputFormat()
	accept := session.ReviewAccept()
	accept.PoliciesAccepted = PolicyAcceptance{DPA: true, SLA: true, Compliance: true, AuditRetention: true}
	accept.AcceptedBy = "Jordan Reyes"
	session.EditStep(7)

	if err := session.Advance(); err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if !session.Finished() {
		t.Fatalf("session should be finished after completing step 7")
	}
	saved := store.records[session.WorkflowID()]
	if saved.Status != StatusCompleted {
		t.Fatalf("expected completed status, got %s", saved.Status)
	}
	if saved.Step7.AcceptedAt != "2026-03-02T09:30:00Z" {
		t.Fatalf("unexpected acceptance timestamp: %q", saved.Step7.AcceptedAt)
	}
	if err := saved.Validate(); err != nil {
		t.Fatalf("completed record should validate: %v", err)
	}
}

func TestSaveAndExitKeepsStepAndRoundTrips(t *testing.T) {
	store := newFakeStore()
	session := NewSession(store, testSeed())
	session.InitializeNew()
	session.CompanyInfo().CompanyName = "Contoso"
	if err := session.Advance(); err != nil {
		t.Fatalf("advance: %v", err)
	}
	session.TemplateChoice().SelectedTemplateID = "insurance"
	if err := session.SaveAndExit(); err != nil {
		t.Fatalf("save and exit: %v", err)
	}
	id := session.WorkflowID()

	resumed := NewSession(store, testSeed())
	resumed.Resume(id)
	if resumed.CurrentStep() != 2 {
		t.Fatalf("resume should land on saved step 2, got %d", resumed.CurrentStep())
	}
	if resumed.CompanyInfo().CompanyName != "Contoso" {
		t.Fatalf("step 1 payload lost on resume")
	}
	if resumed.TemplateChoice().SelectedTemplateID != "insurance" {
		t.Fatalf("step 2 payload lost on resume")
	}
}

func TestResumeMissingIDStartsNewSession(t *testing.T) {
	session := NewSession(newFakeStore(), testSeed())
	session.Resume("wf_does_not_exist")
	if session.CurrentStep() != 1 || session.WorkflowID() != "" {
		t.Fatalf("missing id should behave as a new session: step=%d id=%q",
			session.CurrentStep(), session.WorkflowID())
	}
}

func TestSaveAfterCompletionRevertsToInProgress(t *testing.T) {
	store := newFakeStore()
	store.records["wf_done"] = WorkflowRecord{
		ID:          "wf_done",
		Name:        "Globex",
		CurrentStep: 7,
		Status:      StatusCompleted,
		Step1:       CompanyInfo{CompanyName: "Globex"},
		Step2:       &TemplateChoice{SelectedTemplateID: "banking"},
		Step3:       &DocumentTypes{SelectedTemplateIDs: []string{"template-a"}},
		Step6:       &OutputFormat{SelectedFormats: []string{"json"}},
		Step7: &ReviewAccept{
			PoliciesAccepted: PolicyAcceptance{DPA: true, SLA: true, Compliance: true, AuditRetention: true},
			AcceptedBy:       "Pat Vance",
			AcceptedAt:       "2026-02-01T00:00:00Z",
		},
	}

	session := NewSession(store, testSeed())
	session.Resume("wf_done")
	session.EditStep(3)
	if err := session.SaveAndExit(); err != nil {
		t.Fatalf("save and exit: %v", err)
	}
	if got := store.records["wf_done"].Status; got != StatusInProgress {
		t.Fatalf("re-edited record should revert to in-progress, got %s", got)
	}
}

func TestReFinalizeRestampsAcceptance(t *testing.T) {
	store := newFakeStore()
	store.records["wf_redo"] = WorkflowRecord{
		ID:          "wf_redo",
		Name:        "Initech",
		CurrentStep: 7,
		Status:      StatusCompleted,
		Step1:       CompanyInfo{CompanyName: "Initech"},
		Step2:       &TemplateChoice{SelectedTemplateID: "banking"},
		Step3:       &DocumentTypes{SelectedTemplateIDs: []string{"template-a"}},
		Step6:       &OutputFormat{SelectedFormats: []string{"json"}},
		Step7: &ReviewAccept{
			PoliciesAccepted: PolicyAcceptance{DPA: true, SLA: true, Compliance: true, AuditRetention: true},
			AcceptedBy:       "Pat Vance",
			AcceptedAt:       "2026-02-01T00:00:00Z",
		},
	}

	session := NewSession(store, testSeed())
	session.SetClock(func() time.Time {
		return time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	})
	session.Resume("wf_redo")

	// Re-open at step 3, save, then walk back through to completion.
	session.EditStep(3)
	session.DocumentTypes().SelectedTemplateIDs = []string{"template-a", "template-b"}
	if err := session.SaveAndExit(); err != nil {
		t.Fatalf("save and exit: %v", err)
	}
	for step := 3; step < StepCount; step++ {
		if err := session.Advance(); err != nil {
			t.Fatalf("advance from step %d: %v", step, err)
		}
	}
	if err := session.Advance(); err != nil {
		t.Fatalf("re-finalize: %v", err)
	}

	saved := store.records["wf_redo"]
	if saved.Status != StatusCompleted {
		t.Fatalf("expected completed status, got %s", saved.Status)
	}
	if saved.Step7.AcceptedAt != "2026-03-15T10:00:00Z" {
		t.Fatalf("acceptance timestamp not re-stamped: %q", saved.Step7.AcceptedAt)
	}
}

func TestRetreatDoesNotPersist(t *testing.T) {
	store := newFakeStore()
	session := NewSession(store, testSeed())
	session.InitializeNew()
	if err := session.Advance(); err != nil {
		t.Fatalf("advance: %v", err)
	}
	saves := store.saves
	session.Retreat()
	if session.CurrentStep() != 1 {
		t.Fatalf("retreat should move back to step 1, got %d", session.CurrentStep())
	}
	if store.saves != saves {
		t.Fatalf("retreat persisted; saves went %d -> %d", saves, store.saves)
	}
	session.Retreat()
	if session.CurrentStep() != 1 {
		t.Fatalf("retreat below step 1 should be a no-op")
	}
}

func TestVolumeRowsFollowLinesOfBusiness(t *testing.T) {
	session := NewSession(newFakeStore(), testSeed())
	session.InitializeNew()
	session.CompanyInfo().LinesOfBusiness = 3

	estimate := session.VolumeEstimate()
	if len(estimate.Volumes) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(estimate.Volumes))
	}
	estimate.Volumes[0] = VolumeRow{LOBID: "lob-1", LOBName: "Traffic", ExpectedMonthlyVolume: 1200}
	estimate.Volumes[1] = VolumeRow{LOBID: "lob-2", LOBName: "Parking", ExpectedMonthlyVolume: 800}
	estimate.Volumes[2] = VolumeRow{LOBID: "lob-3", LOBName: "Courts", ExpectedMonthlyVolume: 300}

	// Grow 3 -> 5: first three rows preserved, two empty rows appended.
	session.CompanyInfo().LinesOfBusiness = 5
	estimate = session.VolumeEstimate()
	if len(estimate.Volumes) != 5 {
		t.Fatalf("expected 5 rows after growth, got %d", len(estimate.Volumes))
	}
	if estimate.Volumes[1].LOBName != "Parking" || estimate.Volumes[1].ExpectedMonthlyVolume != 800 {
		t.Fatalf("existing row lost on growth: %+v", estimate.Volumes[1])
	}
	if estimate.Volumes[4].LOBID != "lob-5" || estimate.Volumes[4].LOBName != "" {
		t.Fatalf("appended row should be a default: %+v", estimate.Volumes[4])
	}

	// Shrink 5 -> 2: truncate, preserving the first two.
	session.CompanyInfo().LinesOfBusiness = 2
	estimate = session.VolumeEstimate()
	if len(estimate.Volumes) != 2 {
		t.Fatalf("expected 2 rows after shrink, got %d", len(estimate.Volumes))
	}
	if estimate.Volumes[0].ExpectedMonthlyVolume != 1200 || estimate.Volumes[1].ExpectedMonthlyVolume != 800 {
		t.Fatalf("rows not preserved on shrink: %+v", estimate.Volumes)
	}
}

func TestSkippedEstimateIsNotRegenerated(t *testing.T) {
	session := NewSession(newFakeStore(), testSeed())
	session.InitializeNew()
	session.CompanyInfo().LinesOfBusiness = 2
	estimate := session.VolumeEstimate()
	estimate.SkipVolumeEstimate = true
	estimate.Volumes = nil

	session.CompanyInfo().LinesOfBusiness = 4
	estimate = session.VolumeEstimate()
	if !estimate.SkipVolumeEstimate || len(estimate.Volumes) != 0 {
		t.Fatalf("skipped estimate should stay empty: %+v", estimate)
	}
}

func TestRecordValidateRejectsIncompleteCompletion(t *testing.T) {
	record := WorkflowRecord{
		ID:          "wf_bad",
		CurrentStep: 7,
		Status:      StatusCompleted,
		Step2:       &TemplateChoice{SelectedTemplateID: "banking"},
		Step3:       &DocumentTypes{SelectedTemplateIDs: []string{"template-a"}},
		Step6:       &OutputFormat{SelectedFormats: []string{"csv"}},
		Step7:       &ReviewAccept{AcceptedBy: "Sam"},
	}
	if err := record.Validate(); err == nil {
		t.Fatalf("completion without accepted policies should fail validation")
	}
	record.Step7.PoliciesAccepted = PolicyAcceptance{DPA: true, SLA: true, Compliance: true, AuditRetention: true}
	if err := record.Validate(); err != nil {
		t.Fatalf("valid completed record rejected: %v", err)
	}
}

func TestCloneIsDeep(t *testing.T) {
	record := WorkflowRecord{
		ID:          "wf_clone",
		CurrentStep: 3,
		Status:      StatusInProgress,
		Step3: &DocumentTypes{
			SelectedTemplateIDs: []string{"template-a"},
			DocumentTemplates:   []catalog.DocumentTemplate{{ID: "template-a", Accuracy: 97.5}},
		},
		Step4: &ValidationRules{
			TemplateValidation: map[string]TemplateValidation{
				"template-a": {RequiredFields: []string{"f1"}},
			},
		},
	}
	clone := record.Clone()
	clone.Step3.SelectedTemplateIDs[0] = "template-z"
	clone.Step4.TemplateValidation["template-b"] = TemplateValidation{}
	if record.Step3.SelectedTemplateIDs[0] != "template-a" {
		t.Fatalf("clone shares the selection slice")
	}
	if _, leaked := record.Step4.TemplateValidation["template-b"]; leaked {
		t.Fatalf("clone shares the validation map")
	}
}
