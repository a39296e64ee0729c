package wizard

import "fmt"

// Picker option lists for the step forms. Values are what persists; the TUI
// renders them as-is.
var (
	IndustryOptions = []string{
		"Banking & Finance",
		"Insurance",
		"Healthcare",
		"Government & Public Sector",
		"Legal Services",
		"Other",
	}

	RegionOptions = []string{
		"North America",
		"Europe",
		"Asia Pacific",
		"Latin America",
		"Middle East & Africa",
	}

	CountryOptions = []string{
		"United States", "Canada", "United Kingdom", "Germany", "France",
		"Australia", "Japan", "China", "India", "Brazil",
		"Mexico", "Spain", "Italy", "Netherlands", "Singapore",
		"South Korea", "Switzerland", "Sweden", "Belgium", "Austria",
	}

	PeakPeriodOptions = []string{
		"monthly-end",
		"quarterly-end",
		"fiscal-year-end",
		"tax-season",
		"holiday-season",
		"other",
	}

	DeliveryMethodOptions = []string{
		"pickup-location",
		"s3-bucket",
		"sftp",
		"api-webhook",
	}

	DeliveryScheduleOptions = []string{
		"immediate",
		"hourly",
		"daily",
		"weekly",
		"custom",
	}
)

// AuditEventTypes are the four processing events recorded for every
// workflow. They cannot be disabled.
var AuditEventTypes = []string{
	"drop_off_arrived",
	"left_for_processing",
	"outputs_ready",
	"transferred_to_customer",
}

// DefaultFileNaming is the export naming pattern pre-filled on step 6.
const DefaultFileNaming = "{date}_{batch}_{index}"

// SeedContext carries the configuration and cross-step inputs a step default
// depends on.
type SeedContext struct {
	Country             string // config default, step 1 country
	ConfidenceThreshold int    // config default, step 4 global threshold
	RetentionDays       int    // config default, step 6 audit retention
	LOBCount            int    // step 1 lines of business, drives step 5 rows
	PickupLocation      string // step 1 pick-up location, step 6 delivery fallback
}

// DefaultCompanyInfo seeds step 1.
func DefaultCompanyInfo(ctx SeedContext) CompanyInfo {
	return CompanyInfo{
		Country:         ctx.Country,
		LinesOfBusiness: 1,
	}
}

// DefaultTemplateChoice seeds step 2 with no selection; the gate keeps Next
// disabled until one is made.
func DefaultTemplateChoice() TemplateChoice {
	return TemplateChoice{}
}

// DefaultDocumentTypes seeds step 3 with an empty selection.
func DefaultDocumentTypes() DocumentTypes {
	return DocumentTypes{}
}

// DefaultValidationRules seeds step 4: validation on, threshold from config,
// external validation on, no per-template rules yet.
func DefaultValidationRules(ctx SeedContext) ValidationRules {
	return ValidationRules{
		EnableValidation: true,
		GlobalSettings: GlobalValidationSettings{
			ConfidenceThreshold:      ctx.ConfidenceThreshold,
			EnableExternalValidation: true,
		},
		TemplateValidation: map[string]TemplateValidation{},
	}
}

// DefaultVolumeEstimate seeds step 5 with one empty row per line of business.
func DefaultVolumeEstimate(ctx SeedContext) VolumeEstimate {
	return VolumeEstimate{
		Volumes: defaultVolumeRows(ctx.LOBCount),
	}
}

func defaultVolumeRows(count int) []VolumeRow {
	if count < 1 {
		count = 1
	}
	rows := make([]VolumeRow, count)
	for i := range rows {
		rows[i] = VolumeRow{LOBID: fmt.Sprintf("lob-%d", i+1)}
	}
	return rows
}

// SyncVolumeRows resizes the row set to match the line-of-business count,
// preserving existing rows by index. Skipped estimates keep their empty set.
func SyncVolumeRows(estimate VolumeEstimate, lobCount int) VolumeEstimate {
	if estimate.SkipVolumeEstimate {
		return estimate
	}
	if lobCount < 1 {
		lobCount = 1
	}
	if len(estimate.Volumes) == lobCount {
		return estimate
	}
	rows := make([]VolumeRow, lobCount)
	for i := range rows {
		if i < len(estimate.Volumes) {
			rows[i] = estimate.Volumes[i]
			continue
		}
		rows[i] = VolumeRow{LOBID: fmt.Sprintf("lob-%d", i+1)}
	}
	estimate.Volumes = rows
	return estimate
}

// DefaultOutputFormat seeds step 6: both formats enabled with the standard
// naming pattern, delivery to the step-1 pick-up location, audit trail on.
func DefaultOutputFormat(ctx SeedContext) OutputFormat {
	events := make([]AuditEvent, len(AuditEventTypes))
	for i, eventType := range AuditEventTypes {
		events[i] = AuditEvent{EventType: eventType, Enabled: true}
	}
	return OutputFormat{
		JSON: JSONOutput{
			Enabled:                 true,
			FileNaming:              DefaultFileNaming,
			IncludeMetadata:         true,
			IncludeConfidenceScores: true,
			PrettyPrint:             true,
			Indentation:             "2-spaces",
			Schema:                  "json-schema-v7",
			Compression:             "none",
		},
		CSV: CSVOutput{
			Enabled:            true,
			FileNaming:         DefaultFileNaming,
			Delimiter:          "comma",
			IncludeHeaders:     true,
			TextQualifier:      "double-quotes",
			Encoding:           "utf-8",
			EscapeSpecialChars: true,
		},
		SelectedFormats: []string{"json", "csv"},
		Delivery: Delivery{
			Method:             "pickup-location",
			Location:           ctx.PickupLocation,
			Schedule:           "daily",
			NotifyOnCompletion: true,
		},
		AuditTrail: AuditTrail{
			Enabled:       true,
			Events:        events,
			RetentionDays: ctx.RetentionDays,
		},
	}
}

// DefaultReviewAccept seeds step 7 with nothing accepted.
func DefaultReviewAccept() ReviewAccept {
	return ReviewAccept{}
}
