package store

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stellahq/stella-console/internal/catalog"
	"github.com/stellahq/stella-console/internal/logbook"
)

func newTestDraftStore(t *testing.T) *TemplateDraftStore {
	t.Helper()
	dir := t.TempDir()
	log, err := logbook.New(filepath.Join(dir, "logs", "console.log"))
	if err != nil {
		t.Fatalf("logbook: %v", err)
	}
	return NewTemplateDraftStore(filepath.Join(dir, "state", "template-drafts.json"), log)
}

func TestCreateDraftSeedsPhaseOne(t *testing.T) {
	store := newTestDraftStore(t)
	draft, err := store.CreateDraft("Parking Citation")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if draft.CurrentPhase != catalog.PhaseFieldIdentification {
		t.Fatalf("new draft should start at phase 1, got %d", draft.CurrentPhase)
	}
	if draft.Status != catalog.TemplateStatusDraft {
		t.Fatalf("unexpected status: %s", draft.Status)
	}
	if len(store.ListDrafts()) != 1 {
		t.Fatalf("draft not persisted")
	}

	unnamed, err := store.CreateDraft("   ")
	if err != nil {
		t.Fatalf("create unnamed: %v", err)
	}
	if unnamed.Name != "Untitled Template" {
		t.Fatalf("blank name should default, got %q", unnamed.Name)
	}
}

func TestDraftRoundTrip(t *testing.T) {
	store := newTestDraftStore(t)
	draft, err := store.CreateDraft("Traffic Ticket")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	draft.CurrentPhase = catalog.PhaseExtractionTesting
	draft.Phase1 = &catalog.Phase1Data{
		Fields:          catalog.DetectFields(),
		DetectionStatus: catalog.DetectionComplete,
	}
	if err := store.SaveDraft(&draft); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := store.GetDraftByID(draft.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.CurrentPhase != catalog.PhaseExtractionTesting {
		t.Fatalf("phase lost: %d", got.CurrentPhase)
	}
	if got.Phase1 == nil || len(got.Phase1.Fields) != 9 {
		t.Fatalf("phase 1 data lost: %+v", got.Phase1)
	}
}

func TestApproveDraftProducesActiveTemplate(t *testing.T) {
	store := newTestDraftStore(t)
	draft, err := store.CreateDraft("Parking Citation")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Approval requires both phases.
	if _, err := store.ApproveDraft(draft.ID); err == nil {
		t.Fatalf("approving a draft without phase data should fail")
	}

	draft.Phase1 = &catalog.Phase1Data{Fields: catalog.DetectFields(), DetectionStatus: catalog.DetectionComplete}
	draft.Phase3 = &catalog.Phase3Data{OverallAccuracy: 99.6, TargetAccuracy: catalog.DefaultTargetAccuracy, Approved: true}
	if err := store.SaveDraft(&draft); err != nil {
		t.Fatalf("save: %v", err)
	}

	template, err := store.ApproveDraft(draft.ID)
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if template.ID != "template-parking-citation" {
		t.Fatalf("unexpected template id: %q", template.ID)
	}
	if template.Status != catalog.TemplateStatusActive {
		t.Fatalf("approved template should be active, got %s", template.Status)
	}
	if template.FieldsDetected != 9 || template.Accuracy != 99.6 {
		t.Fatalf("template should carry draft figures: %+v", template)
	}
	if _, err := store.GetDraftByID(draft.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("approved draft should be removed, got %v", err)
	}
}

func TestDeleteDraft(t *testing.T) {
	store := newTestDraftStore(t)
	draft, err := store.CreateDraft("Short-lived")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := store.DeleteDraft(draft.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(store.ListDrafts()) != 0 {
		t.Fatalf("draft not deleted")
	}
}
