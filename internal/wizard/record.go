// Package wizard implements the quick-start onboarding session: the
// WorkflowRecord data model, per-step defaults, the session controller that
// owns navigation and persistence, and the one-line step summaries shown in
// the review sidebar. The package is UI-free so the state machine can be
// exercised without a rendering environment.
package wizard

import (
	"fmt"
	"time"

	"github.com/stellahq/stella-console/internal/catalog"
)

// StepCount is the number of wizard steps.
const StepCount = 7

// Step indices. The review step doubles as the completion gate.
const (
	StepCompanyInfo     = 1
	StepChooseTemplate  = 2
	StepDocumentTypes   = 3
	StepValidationRules = 4
	StepVolumeEstimate  = 5
	StepOutputFormat    = 6
	StepReviewAccept    = 7
)

// StepName returns the display name of a wizard step.
func StepName(step int) string {
	switch step {
	case StepCompanyInfo:
		return "Company Info"
	case StepChooseTemplate:
		return "Choose Template"
	case StepDocumentTypes:
		return "Document Types"
	case StepValidationRules:
		return "Validation Rules"
	case StepVolumeEstimate:
		return "Volume Estimate"
	case StepOutputFormat:
		return "Output Format"
	case StepReviewAccept:
		return "Review & Accept"
	default:
		return fmt.Sprintf("Step %d", step)
	}
}

// Status is the lifecycle state of a workflow record. Transitions only move
// forward to completed; re-editing a completed record flips it back to
// in-progress on the next persist.
type Status string

const (
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
)

// Contact is one of the two primary contacts collected on step 1.
type Contact struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Cell  string `json:"cell"`
}

// CompanyInfo is the step-1 payload. It is always present on a record; the
// remaining steps stay nil until first visited.
type CompanyInfo struct {
	CompanyName            string  `json:"companyName"`
	IndustrySector         string  `json:"industrySector"`
	PrimaryRegion          string  `json:"primaryRegion"`
	Country                string  `json:"country"`
	LinesOfBusiness        int     `json:"linesOfBusiness"`
	PrimaryContact1        Contact `json:"primaryContact1"`
	PrimaryContact2        Contact `json:"primaryContact2"`
	SecuredDropoffLocation string  `json:"securedDropoffLocation"`
	SecurePickupLocation   string  `json:"securePickupLocation"`
}

// TemplateChoice is the step-2 payload: the selected starter template.
type TemplateChoice struct {
	SelectedTemplateID string `json:"selectedTemplateId"`
	TemplateName       string `json:"templateName"`
}

// DocumentTypes is the step-3 payload: which document templates the customer
// wants processed, plus a snapshot of the template rows so the record stays
// self-contained if the catalog changes.
type DocumentTypes struct {
	SelectedTemplateIDs []string                   `json:"selectedTemplateIds"`
	DocumentTemplates   []catalog.DocumentTemplate `json:"documentTemplates"`
}

// Selected reports whether a template id is part of the selection.
func (d DocumentTypes) Selected(id string) bool {
	for _, candidate := range d.SelectedTemplateIDs {
		if candidate == id {
			return true
		}
	}
	return false
}

// RuleAction is what happens when a validation rule fires.
type RuleAction string

const (
	RuleActionFlagForReview RuleAction = "flag_for_review"
	RuleActionBlock         RuleAction = "block"
	RuleActionWarn          RuleAction = "warn"
)

// ValidationRule is one configured field rule on the validation step.
type ValidationRule struct {
	ID         string     `json:"id"`
	FieldID    string     `json:"fieldId"`
	FieldName  string     `json:"fieldName"`
	RuleType   string     `json:"ruleType"`
	RuleConfig string     `json:"ruleConfig"`
	Action     RuleAction `json:"action"`
	Enabled    bool       `json:"enabled"`
}

// ExternalValidation is a lookup of an extracted value against an external
// reference set (ZIP codes, state codes and the like).
type ExternalValidation struct {
	FieldID        string `json:"fieldId"`
	FieldName      string `json:"fieldName"`
	ValidationType string `json:"validationType"`
	Enabled        bool   `json:"enabled"`
}

// TemplateValidation groups the per-template validation configuration.
type TemplateValidation struct {
	RequiredFields     []string             `json:"requiredFields"`
	ValidationRules    []ValidationRule     `json:"validationRules"`
	ExternalValidation []ExternalValidation `json:"externalValidation"`
}

// GlobalValidationSettings apply to every template in the workflow.
type GlobalValidationSettings struct {
	ConfidenceThreshold      int  `json:"confidenceThreshold"`
	EnableExternalValidation bool `json:"enableExternalValidation"`
}

// ValidationRules is the step-4 payload.
type ValidationRules struct {
	EnableValidation   bool                          `json:"enableValidation"`
	GlobalSettings     GlobalValidationSettings      `json:"globalSettings"`
	TemplateValidation map[string]TemplateValidation `json:"templateValidation"`
}

// VolumeRow is one line-of-business row on the volume-estimate step.
type VolumeRow struct {
	LOBID                 string `json:"lobId"`
	LOBName               string `json:"lobName"`
	ExpectedMonthlyVolume int    `json:"expectedMonthlyVolume"`
	PeakProcessingPeriod  string `json:"peakProcessingPeriod"`
}

// VolumeEstimate is the step-5 payload. Rows mirror step 1's
// lines-of-business count unless the estimate is explicitly skipped.
type VolumeEstimate struct {
	SkipVolumeEstimate bool        `json:"skipVolumeEstimate"`
	Volumes            []VolumeRow `json:"volumes"`
}

// TotalMonthlyVolume sums expected volume across all rows.
func (v VolumeEstimate) TotalMonthlyVolume() int {
	total := 0
	for _, row := range v.Volumes {
		total += row.ExpectedMonthlyVolume
	}
	return total
}

// JSONOutput configures the JSON export on the output-format step.
type JSONOutput struct {
	Enabled                 bool   `json:"enabled"`
	FileNaming              string `json:"fileNaming"`
	IncludeMetadata         bool   `json:"includeMetadata"`
	IncludeConfidenceScores bool   `json:"includeConfidenceScores"`
	PrettyPrint             bool   `json:"prettyPrint"`
	Indentation             string `json:"indentation"`
	Schema                  string `json:"schema"`
	Compression             string `json:"compression"`
}

// CSVOutput configures the CSV export on the output-format step.
type CSVOutput struct {
	Enabled            bool   `json:"enabled"`
	FileNaming         string `json:"fileNaming"`
	Delimiter          string `json:"delimiter"`
	IncludeHeaders     bool   `json:"includeHeaders"`
	TextQualifier      string `json:"textQualifier"`
	Encoding           string `json:"encoding"`
	EscapeSpecialChars bool   `json:"escapeSpecialChars"`
}

// Delivery configures where and when processed output lands.
type Delivery struct {
	Method             string `json:"method"`
	Location           string `json:"location"`
	Schedule           string `json:"schedule"`
	NotifyOnCompletion bool   `json:"notifyOnCompletion"`
}

// AuditEvent is one always-on processing event recorded for compliance.
type AuditEvent struct {
	EventType string   `json:"eventType"`
	Enabled   bool     `json:"enabled"`
	Metadata  []string `json:"metadata,omitempty"`
}

// AuditTrail is read-only in the UI: it exists to be summarized and
// persisted, never disabled.
type AuditTrail struct {
	Enabled       bool         `json:"enabled"`
	Events        []AuditEvent `json:"events"`
	RetentionDays int          `json:"retentionDays"`
}

// OutputFormat is the step-6 payload.
type OutputFormat struct {
	JSON            JSONOutput `json:"json"`
	CSV             CSVOutput  `json:"csv"`
	SelectedFormats []string   `json:"selectedFormats"`
	Delivery        Delivery   `json:"delivery"`
	AuditTrail      AuditTrail `json:"auditTrail"`
}

// FormatSelected reports whether the given format key ("json"/"csv") is on.
func (o OutputFormat) FormatSelected(format string) bool {
	for _, f := range o.SelectedFormats {
		if f == format {
			return true
		}
	}
	return false
}

// PolicyAcceptance tracks the four policies that must all be accepted
// before completion.
type PolicyAcceptance struct {
	DPA            bool `json:"dpa"`
	SLA            bool `json:"sla"`
	Compliance     bool `json:"compliance"`
	AuditRetention bool `json:"auditRetention"`
}

// All reports whether every policy has been accepted.
func (p PolicyAcceptance) All() bool {
	return p.DPA && p.SLA && p.Compliance && p.AuditRetention
}

// ReviewAccept is the step-7 payload: policy flags plus the electronic
// signature.
type ReviewAccept struct {
	PoliciesAccepted PolicyAcceptance `json:"policiesAccepted"`
	AcceptedBy       string           `json:"acceptedBy"`
	AcceptedAt       string           `json:"acceptedAt,omitempty"`
}

// WorkflowRecord is one onboarding session, in progress or completed. The
// JSON shape round-trips through the draft store verbatim, so tags mirror
// the persisted wire format exactly.
type WorkflowRecord struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
	CurrentStep int              `json:"currentStep"`
	Status      Status           `json:"status"`
	Step1       CompanyInfo      `json:"step1Data"`
	Step2       *TemplateChoice  `json:"step2Data,omitempty"`
	Step3       *DocumentTypes   `json:"step3Data,omitempty"`
	Step4       *ValidationRules `json:"step4Data,omitempty"`
	Step5       *VolumeEstimate  `json:"step5Data,omitempty"`
	Step6       *OutputFormat    `json:"step6Data,omitempty"`
	Step7       *ReviewAccept    `json:"step7Data,omitempty"`
}

// DisplayName returns the record name, falling back to the untitled default.
func (r WorkflowRecord) DisplayName() string {
	if r.Name != "" {
		return r.Name
	}
	return "Untitled Workflow"
}

// Validate checks the record invariants that must hold after every persist.
func (r WorkflowRecord) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("workflow record: id is required")
	}
	if r.CurrentStep < 1 || r.CurrentStep > StepCount {
		return fmt.Errorf("workflow record %s: current step %d out of range", r.ID, r.CurrentStep)
	}
	switch r.Status {
	case StatusInProgress:
	case StatusCompleted:
		// Completion requires every gated step to carry a passing payload.
		if r.Step2 == nil || r.Step2.SelectedTemplateID == "" {
			return fmt.Errorf("workflow record %s: completed without template selection", r.ID)
		}
		if r.Step3 == nil || len(r.Step3.SelectedTemplateIDs) == 0 {
			return fmt.Errorf("workflow record %s: completed without document types", r.ID)
		}
		if r.Step6 == nil || len(r.Step6.SelectedFormats) == 0 {
			return fmt.Errorf("workflow record %s: completed without output formats", r.ID)
		}
		if r.Step7 == nil || !r.Step7.PoliciesAccepted.All() || len(r.Step7.AcceptedBy) < 2 {
			return fmt.Errorf("workflow record %s: completed without acceptance", r.ID)
		}
	default:
		return fmt.Errorf("workflow record %s: unknown status %q", r.ID, r.Status)
	}
	return nil
}

// Clone returns a deep copy of the record so callers can mutate snapshots
// without sharing slices or maps.
func (r WorkflowRecord) Clone() WorkflowRecord {
	clone := r
	if r.Step2 != nil {
		v := *r.Step2
		clone.Step2 = &v
	}
	if r.Step3 != nil {
		v := DocumentTypes{
			SelectedTemplateIDs: cloneStrings(r.Step3.SelectedTemplateIDs),
			DocumentTemplates:   append([]catalog.DocumentTemplate(nil), r.Step3.DocumentTemplates...),
		}
		clone.Step3 = &v
	}
	if r.Step4 != nil {
		v := ValidationRules{
			EnableValidation: r.Step4.EnableValidation,
			GlobalSettings:   r.Step4.GlobalSettings,
		}
		if r.Step4.TemplateValidation != nil {
			v.TemplateValidation = make(map[string]TemplateValidation, len(r.Step4.TemplateValidation))
			for id, tv := range r.Step4.TemplateValidation {
				v.TemplateValidation[id] = TemplateValidation{
					RequiredFields:     cloneStrings(tv.RequiredFields),
					ValidationRules:    append([]ValidationRule(nil), tv.ValidationRules...),
					ExternalValidation: append([]ExternalValidation(nil), tv.ExternalValidation...),
				}
			}
		}
		clone.Step4 = &v
	}
	if r.Step5 != nil {
		v := VolumeEstimate{
			SkipVolumeEstimate: r.Step5.SkipVolumeEstimate,
			Volumes:            append([]VolumeRow(nil), r.Step5.Volumes...),
		}
		clone.Step5 = &v
	}
	if r.Step6 != nil {
		v := *r.Step6
		v.SelectedFormats = cloneStrings(r.Step6.SelectedFormats)
		v.AuditTrail.Events = make([]AuditEvent, len(r.Step6.AuditTrail.Events))
		for i, ev := range r.Step6.AuditTrail.Events {
			ev.Metadata = cloneStrings(ev.Metadata)
			v.AuditTrail.Events[i] = ev
		}
		clone.Step6 = &v
	}
	if r.Step7 != nil {
		v := *r.Step7
		clone.Step7 = &v
	}
	return clone
}

func cloneStrings(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, len(values))
	copy(out, values)
	return out
}
