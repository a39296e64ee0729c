package wizard

import (
	"fmt"
	"strings"
)

// Summarize produces the one-line digest of a step's payload for the review
// sidebar. It is a pure function of the record: the same payload always
// yields the same text, and an untouched step yields "".
func Summarize(record WorkflowRecord, step int) string {
	switch step {
	case StepCompanyInfo:
		return summarizeCompanyInfo(record.Step1)
	case StepChooseTemplate:
		return summarizeTemplateChoice(record.Step2)
	case StepDocumentTypes:
		return summarizeDocumentTypes(record.Step3)
	case StepValidationRules:
		return summarizeValidationRules(record.Step4)
	case StepVolumeEstimate:
		return summarizeVolumeEstimate(record.Step5)
	case StepOutputFormat:
		return summarizeOutputFormat(record.Step6)
	case StepReviewAccept:
		return summarizeReviewAccept(record.Step7)
	default:
		return ""
	}
}

// Summaries returns the digest for every step in order, for the progress
// sidebar.
func Summaries(record WorkflowRecord) []string {
	out := make([]string, StepCount)
	for step := 1; step <= StepCount; step++ {
		out[step-1] = Summarize(record, step)
	}
	return out
}

func summarizeCompanyInfo(info CompanyInfo) string {
	var parts []string
	if info.CompanyName != "" {
		parts = append(parts, "Company: "+info.CompanyName)
	}
	if info.IndustrySector != "" {
		parts = append(parts, "Industry: "+info.IndustrySector)
	}
	if info.PrimaryRegion != "" {
		parts = append(parts, "Region: "+info.PrimaryRegion)
	}
	return strings.Join(parts, " • ")
}

func summarizeTemplateChoice(choice *TemplateChoice) string {
	if choice == nil || choice.SelectedTemplateID == "" {
		return ""
	}
	if choice.TemplateName != "" {
		return "Template: " + choice.TemplateName
	}
	return "Template: " + choice.SelectedTemplateID
}

func summarizeDocumentTypes(types *DocumentTypes) string {
	if types == nil || len(types.SelectedTemplateIDs) == 0 {
		return ""
	}
	count := len(types.SelectedTemplateIDs)
	return fmt.Sprintf("%d selected • Avg accuracy: %s%%", count, AverageAccuracy(*types))
}

// AverageAccuracy is the arithmetic mean of the accuracy field across
// selected templates, one decimal place, "0.0" when nothing is selected.
func AverageAccuracy(types DocumentTypes) string {
	var sum float64
	var count int
	for _, tmpl := range types.DocumentTemplates {
		if types.Selected(tmpl.ID) {
			sum += tmpl.Accuracy
			count++
		}
	}
	if count == 0 {
		return "0.0"
	}
	return fmt.Sprintf("%.1f", sum/float64(count))
}

func summarizeValidationRules(rules *ValidationRules) string {
	if rules == nil {
		return ""
	}
	if !rules.EnableValidation {
		return "Validation: off"
	}
	ruleCount := 0
	for _, tv := range rules.TemplateValidation {
		ruleCount += len(tv.ValidationRules)
	}
	return fmt.Sprintf("Validation: on • Threshold: %d%% • %d rules",
		rules.GlobalSettings.ConfidenceThreshold, ruleCount)
}

func summarizeVolumeEstimate(estimate *VolumeEstimate) string {
	if estimate == nil {
		return ""
	}
	if estimate.SkipVolumeEstimate {
		return "Volume estimate skipped"
	}
	total := estimate.TotalMonthlyVolume()
	if total == 0 {
		return ""
	}
	return fmt.Sprintf("%s docs/month across %d LOBs", formatCount(total), len(estimate.Volumes))
}

func summarizeOutputFormat(format *OutputFormat) string {
	if format == nil || len(format.SelectedFormats) == 0 {
		return ""
	}
	formats := make([]string, len(format.SelectedFormats))
	for i, f := range format.SelectedFormats {
		formats[i] = strings.ToUpper(f)
	}
	summary := "Formats: " + strings.Join(formats, ", ")
	if format.Delivery.Method != "" {
		summary += " • Delivery: " + format.Delivery.Method
	}
	return summary
}

func summarizeReviewAccept(accept *ReviewAccept) string {
	if accept == nil {
		return ""
	}
	if accept.PoliciesAccepted.All() && accept.AcceptedBy != "" {
		return "Accepted by " + accept.AcceptedBy
	}
	accepted := 0
	for _, ok := range []bool{
		accept.PoliciesAccepted.DPA,
		accept.PoliciesAccepted.SLA,
		accept.PoliciesAccepted.Compliance,
		accept.PoliciesAccepted.AuditRetention,
	} {
		if ok {
			accepted++
		}
	}
	if accepted == 0 {
		return ""
	}
	return fmt.Sprintf("%d of 4 policies accepted", accepted)
}

// formatCount renders an integer with thousands separators, dashboard-style.
func formatCount(n int) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
