// Package catalog holds the mock product data the console is demonstrated
// with: document templates, starter workflow templates, simulated field
// detection results and the dashboard figures. Nothing here talks to a real
// processing backend; the data is deterministic so screens and tests render
// the same content on every run.
package catalog

import "fmt"

// Classification describes how a document template's sources are produced.
type Classification string

const (
	ClassificationMachinePrinted Classification = "machine-printed"
	ClassificationHandwritten    Classification = "handwritten"
	ClassificationMixed          Classification = "mixed"
)

// TemplateStatus is the lifecycle state of a document template.
type TemplateStatus string

const (
	TemplateStatusDraft    TemplateStatus = "draft"
	TemplateStatusTesting  TemplateStatus = "testing"
	TemplateStatusActive   TemplateStatus = "active"
	TemplateStatusArchived TemplateStatus = "archived"
)

// ProcessingPipeline is the fixed pipeline label shown on template cards.
const ProcessingPipeline = "OCR (olmOCR 2) → Extract fields → Validate → Export"

// DocumentTemplate is one processable document type. The JSON shape is the
// persistence format for step-3 payloads, so field names are load-bearing.
type DocumentTemplate struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	LOB            string         `json:"lob"`
	City           string         `json:"city"`
	Classification Classification `json:"classification"`
	FieldsDetected int            `json:"fieldsDetected"`
	Accuracy       float64        `json:"accuracy"`
	Status         TemplateStatus `json:"status"`
	Pipeline       string         `json:"processingPipeline"`
}

var templateCities = []string{
	"Los Angeles",
	"San Francisco",
	"San Diego",
	"Sacramento",
	"Oakland",
	"Fresno",
	"Long Beach",
	"Riverside",
}

var templateClassifications = []Classification{
	ClassificationMachinePrinted,
	ClassificationHandwritten,
	ClassificationMixed,
}

// DocumentTemplates returns the twenty demo templates. Values are derived
// from the index instead of randomness so selections, summaries and tests
// stay stable across runs.
func DocumentTemplates() []DocumentTemplate {
	templates := make([]DocumentTemplate, 0, 20)
	for i := 0; i < 20; i++ {
		letter := string(rune('A' + i))
		lob := "Traffic Enforcement"
		name := fmt.Sprintf("Traffic Violation Ticket (Type %s)", letter)
		if i%2 == 1 {
			lob = "Parking Services"
			name = fmt.Sprintf("Parking Citation (Type %s)", letter)
		}
		templates = append(templates, DocumentTemplate{
			ID:             fmt.Sprintf("template-%s", string(rune('a'+i))),
			Name:           name,
			LOB:            lob,
			City:           templateCities[i%len(templateCities)],
			Classification: templateClassifications[i%len(templateClassifications)],
			FieldsDetected: 8 + (i*3)%8,
			Accuracy:       95.0 + float64((i*7)%50)/10.0,
			Status:         TemplateStatusActive,
			Pipeline:       ProcessingPipeline,
		})
	}
	return templates
}

// DocumentTemplateByID looks a demo template up by its identifier.
func DocumentTemplateByID(id string) (DocumentTemplate, bool) {
	for _, t := range DocumentTemplates() {
		if t.ID == id {
			return t, true
		}
	}
	return DocumentTemplate{}, false
}

// StarterTemplate is one of the pre-configured workflow starting points
// offered on the choose-template step.
type StarterTemplate struct {
	ID            string
	Name          string
	Description   string
	DocumentTypes string
	SetupTime     string
	// Blank marks the start-from-scratch option: every later step begins empty.
	Blank bool
}

// StarterTemplates returns the six selectable starting points for a new
// onboarding workflow.
func StarterTemplates() []StarterTemplate {
	return []StarterTemplate{
		{
			ID:            "basic-invoice",
			Name:          "Basic Invoice Processing",
			Description:   "Pre-configured workflow for standard invoice documents with automated field extraction and validation.",
			DocumentTypes: "Invoices, purchase orders, receipts",
			SetupTime:     "~3 min",
		},
		{
			ID:            "mixed-document",
			Name:          "Mixed Document Processing",
			Description:   "Handles both handwritten and machine-printed documents with automatic classification and routing.",
			DocumentTypes: "Mixed handwritten & printed forms",
			SetupTime:     "~5 min",
		},
		{
			ID:            "healthcare-form",
			Name:          "Healthcare Form Processing",
			Description:   "Optimized for medical forms, patient records, and clinical documents with compliance checks.",
			DocumentTypes: "Patient forms, clinical records, claims",
			SetupTime:     "~4 min",
		},
		{
			ID:            "banking",
			Name:          "Banking",
			Description:   "Tailored for financial documents including account applications, loan forms, and transaction records.",
			DocumentTypes: "Applications, statements, KYC docs",
			SetupTime:     "~4 min",
		},
		{
			ID:            "insurance",
			Name:          "Insurance",
			Description:   "Designed for policy documents, claims processing, and underwriting forms with risk assessment rules.",
			DocumentTypes: "Policies, claims, underwriting forms",
			SetupTime:     "~4 min",
		},
		{
			ID:          "start-from-scratch",
			Name:        "Start from Scratch",
			Description: "Build a custom workflow from the ground up. All settings will be blank for you to configure.",
			Blank:       true,
		},
	}
}

// StarterTemplateByID looks a starter template up by its identifier.
func StarterTemplateByID(id string) (StarterTemplate, bool) {
	for _, t := range StarterTemplates() {
		if t.ID == id {
			return t, true
		}
	}
	return StarterTemplate{}, false
}
