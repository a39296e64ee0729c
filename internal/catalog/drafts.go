package catalog

import "time"

// DraftPhase numbers the create-template flow: field identification,
// extraction testing, accuracy review.
const (
	PhaseFieldIdentification = 1
	PhaseExtractionTesting   = 2
	PhaseAccuracyReview      = 3
)

// DefaultTargetAccuracy is the approval bar for a new template.
const DefaultTargetAccuracy = 99.5

// UploadedSample records one sample document attached to a draft.
type UploadedSample struct {
	FileName   string    `json:"fileName"`
	FileSize   int64     `json:"fileSize"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// Phase1Data holds the field-identification phase of a template draft.
type Phase1Data struct {
	Samples           []UploadedSample  `json:"samples"`
	Fields            []FieldDefinition `json:"fields"`
	DetectionStatus   DetectionStatus   `json:"detectionStatus"`
	DetectionAttempts int               `json:"detectionAttempts"`
}

// Phase3Data holds the accuracy-review phase of a template draft.
type Phase3Data struct {
	OverallAccuracy float64            `json:"overallAccuracy"`
	FieldAccuracies map[string]float64 `json:"fieldAccuracies,omitempty"`
	TargetAccuracy  float64            `json:"targetAccuracy"`
	Approved        bool               `json:"approved"`
	ApprovedAt      string             `json:"approvedAt,omitempty"`
}

// TemplateDraft is an in-progress template from the create-template flow.
// Drafts persist in the template draft store until approved or discarded.
type TemplateDraft struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
	CurrentPhase int            `json:"currentPhase"`
	Status       TemplateStatus `json:"status"`
	Phase1       *Phase1Data    `json:"phase1Data,omitempty"`
	Phase3       *Phase3Data    `json:"phase3Data,omitempty"`
}
