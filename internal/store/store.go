// Package store persists workflow records and template drafts as JSON-array
// files under the project state directory. Every operation is a
// whole-collection read-modify-write; there are no partial updates and no
// cross-process coordination, so the last writer wins. Reads fail soft: a
// missing or corrupt backing file degrades to an empty collection with a
// logged warning, never a user-facing error.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/stellahq/stella-console/internal/logbook"
	"github.com/stellahq/stella-console/internal/wizard"
)

// ErrNotFound is returned when no record with the requested id exists.
var ErrNotFound = errors.New("store: record not found")

// WorkflowStore owns the workflows collection file. It satisfies
// wizard.RecordStore.
type WorkflowStore struct {
	path string
	log  *logbook.Logbook
	now  func() time.Time
}

// NewWorkflowStore creates a store over the given collection file.
func NewWorkflowStore(path string, log *logbook.Logbook) *WorkflowStore {
	return &WorkflowStore{path: path, log: log, now: time.Now}
}

// SetClock overrides the timestamp source for tests.
func (s *WorkflowStore) SetClock(now func() time.Time) {
	s.now = now
}

// NewWorkflowID mints a record identifier.
func (s *WorkflowStore) NewWorkflowID() string {
	return "wf_" + uuid.NewString()
}

// ListAll returns every stored record. An unreadable or corrupt backing
// file degrades to an empty list with a logged warning.
func (s *WorkflowStore) ListAll() []wizard.WorkflowRecord {
	records, err := s.readAll()
	if err != nil {
		s.warn("listing workflows: %v", err)
		return nil
	}
	return records
}

// GetByID returns the record with the given id or ErrNotFound.
func (s *WorkflowStore) GetByID(id string) (wizard.WorkflowRecord, error) {
	records, err := s.readAll()
	if err != nil {
		s.warn("loading workflow %s: %v", id, err)
		return wizard.WorkflowRecord{}, fmt.Errorf("store: load workflow %s: %w", id, err)
	}
	for _, record := range records {
		if record.ID == id {
			return record.Clone(), nil
		}
	}
	return wizard.WorkflowRecord{}, fmt.Errorf("store: workflow %s: %w", id, ErrNotFound)
}

// Save upserts a record by id and refreshes its UpdatedAt, which strictly
// increases across saves of the same collection. The caller's record is
// updated with the stamped timestamps.
func (s *WorkflowStore) Save(record *wizard.WorkflowRecord) error {
	if record.ID == "" {
		return errors.New("store: save workflow: missing id")
	}
	records, err := s.readAll()
	if err != nil {
		// Corrupt collections are replaced rather than surfaced; the store
		// is advisory and the draft in hand is worth more than the file.
		s.warn("resetting workflow collection: %v", err)
		records = nil
	}
	stamp := s.now()
	if record.CreatedAt.IsZero() {
		record.CreatedAt = stamp
	}
	if !stamp.After(record.UpdatedAt) {
		stamp = record.UpdatedAt.Add(time.Nanosecond)
	}
	record.UpdatedAt = stamp

	replaced := false
	for i := range records {
		if records[i].ID == record.ID {
			records[i] = record.Clone()
			replaced = true
			break
		}
	}
	if !replaced {
		records = append(records, record.Clone())
	}
	if err := s.writeAll(records); err != nil {
		s.warn("saving workflow %s: %v", record.ID, err)
		return fmt.Errorf("store: save workflow %s: %w", record.ID, err)
	}
	return nil
}

// Delete removes a record by id. Deleting an unknown id is a no-op.
func (s *WorkflowStore) Delete(id string) error {
	records, err := s.readAll()
	if err != nil {
		s.warn("deleting workflow %s: %v", id, err)
		return nil
	}
	kept := records[:0]
	for _, record := range records {
		if record.ID != id {
			kept = append(kept, record)
		}
	}
	if len(kept) == len(records) {
		return nil
	}
	if err := s.writeAll(kept); err != nil {
		s.warn("deleting workflow %s: %v", id, err)
		return fmt.Errorf("store: delete workflow %s: %w", id, err)
	}
	return nil
}

// Rename sets a record's display name.
func (s *WorkflowStore) Rename(id, name string) error {
	return s.update(id, func(record *wizard.WorkflowRecord) {
		record.Name = name
	})
}

// SetStatus overwrites a record's lifecycle status.
func (s *WorkflowStore) SetStatus(id string, status wizard.Status) error {
	return s.update(id, func(record *wizard.WorkflowRecord) {
		record.Status = status
	})
}

func (s *WorkflowStore) update(id string, mutate func(*wizard.WorkflowRecord)) error {
	record, err := s.GetByID(id)
	if err != nil {
		return err
	}
	mutate(&record)
	return s.Save(&record)
}

func (s *WorkflowStore) readAll() ([]wizard.WorkflowRecord, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var records []wizard.WorkflowRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("corrupt collection: %w", err)
	}
	return records, nil
}

func (s *WorkflowStore) writeAll(records []wizard.WorkflowRecord) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	if records == nil {
		records = []wizard.WorkflowRecord{}
	}
	encoded, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, append(encoded, '\n'), 0o644)
}

func (s *WorkflowStore) warn(format string, args ...any) {
	if s.log != nil {
		s.log.Warn(format, args...)
	}
}
