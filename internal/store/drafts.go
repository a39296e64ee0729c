package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/stellahq/stella-console/internal/catalog"
	"github.com/stellahq/stella-console/internal/logbook"
)

// TemplateDraftStore owns the template-drafts collection file used by the
// create-template flow. Same contract as the workflow store: whole-collection
// read-modify-write, fail-soft reads, last write wins.
type TemplateDraftStore struct {
	path string
	log  *logbook.Logbook
	now  func() time.Time
}

// NewTemplateDraftStore creates a store over the given collection file.
func NewTemplateDraftStore(path string, log *logbook.Logbook) *TemplateDraftStore {
	return &TemplateDraftStore{path: path, log: log, now: time.Now}
}

// SetClock overrides the timestamp source for tests.
func (s *TemplateDraftStore) SetClock(now func() time.Time) {
	s.now = now
}

// NewTemplateID mints a draft identifier.
func (s *TemplateDraftStore) NewTemplateID() string {
	return "tmpl_" + uuid.NewString()
}

// CreateDraft seeds and persists a new phase-1 draft.
func (s *TemplateDraftStore) CreateDraft(name string) (catalog.TemplateDraft, error) {
	if strings.TrimSpace(name) == "" {
		name = "Untitled Template"
	}
	draft := catalog.TemplateDraft{
		ID:           s.NewTemplateID(),
		Name:         name,
		CurrentPhase: catalog.PhaseFieldIdentification,
		Status:       catalog.TemplateStatusDraft,
	}
	if err := s.SaveDraft(&draft); err != nil {
		return catalog.TemplateDraft{}, err
	}
	return draft, nil
}

// ListDrafts returns every stored draft, empty on a missing or corrupt file.
func (s *TemplateDraftStore) ListDrafts() []catalog.TemplateDraft {
	drafts, err := s.readAll()
	if err != nil {
		s.warn("listing template drafts: %v", err)
		return nil
	}
	return drafts
}

// GetDraftByID returns the draft with the given id or ErrNotFound.
func (s *TemplateDraftStore) GetDraftByID(id string) (catalog.TemplateDraft, error) {
	drafts, err := s.readAll()
	if err != nil {
		s.warn("loading template draft %s: %v", id, err)
		return catalog.TemplateDraft{}, fmt.Errorf("store: load template draft %s: %w", id, err)
	}
	for _, draft := range drafts {
		if draft.ID == id {
			return draft, nil
		}
	}
	return catalog.TemplateDraft{}, fmt.Errorf("store: template draft %s: %w", id, ErrNotFound)
}

// SaveDraft upserts a draft by id and refreshes its UpdatedAt.
func (s *TemplateDraftStore) SaveDraft(draft *catalog.TemplateDraft) error {
	if draft.ID == "" {
		return errors.New("store: save template draft: missing id")
	}
	drafts, err := s.readAll()
	if err != nil {
		s.warn("resetting template draft collection: %v", err)
		drafts = nil
	}
	stamp := s.now()
	if draft.CreatedAt.IsZero() {
		draft.CreatedAt = stamp
	}
	if !stamp.After(draft.UpdatedAt) {
		stamp = draft.UpdatedAt.Add(time.Nanosecond)
	}
	draft.UpdatedAt = stamp

	replaced := false
	for i := range drafts {
		if drafts[i].ID == draft.ID {
			drafts[i] = *draft
			replaced = true
			break
		}
	}
	if !replaced {
		drafts = append(drafts, *draft)
	}
	if err := s.writeAll(drafts); err != nil {
		s.warn("saving template draft %s: %v", draft.ID, err)
		return fmt.Errorf("store: save template draft %s: %w", draft.ID, err)
	}
	return nil
}

// DeleteDraft removes a draft by id. Unknown ids are a no-op.
func (s *TemplateDraftStore) DeleteDraft(id string) error {
	drafts, err := s.readAll()
	if err != nil {
		s.warn("deleting template draft %s: %v", id, err)
		return nil
	}
	kept := drafts[:0]
	for _, draft := range drafts {
		if draft.ID != id {
			kept = append(kept, draft)
		}
	}
	if len(kept) == len(drafts) {
		return nil
	}
	if err := s.writeAll(kept); err != nil {
		s.warn("deleting template draft %s: %v", id, err)
		return fmt.Errorf("store: delete template draft %s: %w", id, err)
	}
	return nil
}

// ApproveDraft converts a finished draft into an active document template
// and removes the draft from the collection.
func (s *TemplateDraftStore) ApproveDraft(id string) (catalog.DocumentTemplate, error) {
	draft, err := s.GetDraftByID(id)
	if err != nil {
		return catalog.DocumentTemplate{}, err
	}
	if draft.Phase1 == nil || draft.Phase3 == nil {
		return catalog.DocumentTemplate{}, fmt.Errorf("store: approve template draft %s: missing phase data", id)
	}
	template := catalog.DocumentTemplate{
		ID:             "template-" + slugify(draft.Name),
		Name:           draft.Name,
		LOB:            "Traffic Enforcement",
		City:           "San Francisco",
		Classification: catalog.ClassificationMixed,
		FieldsDetected: len(draft.Phase1.Fields),
		Accuracy:       draft.Phase3.OverallAccuracy,
		Status:         catalog.TemplateStatusActive,
		Pipeline:       catalog.ProcessingPipeline,
	}
	if err := s.DeleteDraft(id); err != nil {
		return catalog.DocumentTemplate{}, err
	}
	return template, nil
}

func slugify(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "-")
}

func (s *TemplateDraftStore) readAll() ([]catalog.TemplateDraft, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var drafts []catalog.TemplateDraft
	if err := json.Unmarshal(data, &drafts); err != nil {
		return nil, fmt.Errorf("corrupt collection: %w", err)
	}
	return drafts, nil
}

func (s *TemplateDraftStore) writeAll(drafts []catalog.TemplateDraft) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	if drafts == nil {
		drafts = []catalog.TemplateDraft{}
	}
	encoded, err := json.MarshalIndent(drafts, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, append(encoded, '\n'), 0o644)
}

func (s *TemplateDraftStore) warn(format string, args ...any) {
	if s.log != nil {
		s.log.Warn(format, args...)
	}
}
