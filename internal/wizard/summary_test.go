package wizard

import (
	"testing"

	"github.com/stellahq/stella-console/internal/catalog"
)

func TestSummarizeIsPure(t *testing.T) {
	record := WorkflowRecord{
		Step1: CompanyInfo{CompanyName: "Acme", IndustrySector: "Banking & Finance", PrimaryRegion: "North America"},
		Step3: &DocumentTypes{
			SelectedTemplateIDs: []string{"template-a", "template-b"},
			DocumentTemplates: []catalog.DocumentTemplate{
				{ID: "template-a", Accuracy: 96.0},
				{ID: "template-b", Accuracy: 98.0},
			},
		},
	}
	for step := 1; step <= StepCount; step++ {
		first := Summarize(record, step)
		second := Summarize(record, step)
		if first != second {
			t.Fatalf("step %d summary not stable: %q vs %q", step, first, second)
		}
	}
}

func TestSummarizeCompanyInfo(t *testing.T) {
	record := WorkflowRecord{
		Step1: CompanyInfo{CompanyName: "Acme", IndustrySector: "Banking & Finance", PrimaryRegion: "North America"},
	}
	want := "Company: Acme • Industry: Banking & Finance • Region: North America"
	if got := Summarize(record, StepCompanyInfo); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	empty := WorkflowRecord{}
	if got := Summarize(empty, StepCompanyInfo); got != "" {
		t.Fatalf("untouched step should summarize to empty, got %q", got)
	}
}

func TestAverageAccuracy(t *testing.T) {
	types := DocumentTypes{
		SelectedTemplateIDs: []string{"template-a", "template-c"},
		DocumentTemplates: []catalog.DocumentTemplate{
			{ID: "template-a", Accuracy: 95.0},
			{ID: "template-b", Accuracy: 99.0},
			{ID: "template-c", Accuracy: 98.5},
		},
	}
	if got := AverageAccuracy(types); got != "96.8" {
		t.Fatalf("mean of selected accuracies = %q, want 96.8", got)
	}
	if got := AverageAccuracy(DocumentTypes{}); got != "0.0" {
		t.Fatalf("empty selection should render 0.0, got %q", got)
	}
}

func TestSummarizeVolumeEstimate(t *testing.T) {
	skipped := WorkflowRecord{Step5: &VolumeEstimate{SkipVolumeEstimate: true}}
	if got := Summarize(skipped, StepVolumeEstimate); got != "Volume estimate skipped" {
		t.Fatalf("got %q", got)
	}
	filled := WorkflowRecord{Step5: &VolumeEstimate{Volumes: []VolumeRow{
		{ExpectedMonthlyVolume: 1200},
		{ExpectedMonthlyVolume: 300},
	}}}
	want := "1,500 docs/month across 2 LOBs"
	if got := Summarize(filled, StepVolumeEstimate); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestSummarizeOutputFormat(t *testing.T) {
	record := WorkflowRecord{Step6: &OutputFormat{
		SelectedFormats: []string{"json", "csv"},
		Delivery:        Delivery{Method: "pickup-location"},
	}}
	want := "Formats: JSON, CSV • Delivery: pickup-location"
	if got := Summarize(record, StepOutputFormat); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	none := WorkflowRecord{Step6: &OutputFormat{}}
	if got := Summarize(none, StepOutputFormat); got != "" {
		t.Fatalf("no formats selected should summarize to empty, got %q", got)
	}
}

func TestSummarizeReviewAccept(t *testing.T) {
	partial := WorkflowRecord{Step7: &ReviewAccept{
		PoliciesAccepted: PolicyAcceptance{DPA: true, Compliance: true},
	}}
	if got := Summarize(partial, StepReviewAccept); got != "2 of 4 policies accepted" {
		t.Fatalf("got %q", got)
	}
	full := WorkflowRecord{Step7: &ReviewAccept{
		PoliciesAccepted: PolicyAcceptance{DPA: true, SLA: true, Compliance: true, AuditRetention: true},
		AcceptedBy:       "Jordan Reyes",
	}}
	if got := Summarize(full, StepReviewAccept); got != "Accepted by Jordan Reyes" {
		t.Fatalf("got %q", got)
	}
}

func TestSummariesReturnsAllSteps(t *testing.T) {
	record := WorkflowRecord{Step1: CompanyInfo{CompanyName: "Acme"}}
	summaries := Summaries(record)
	if len(summaries) != StepCount {
		t.Fatalf("expected %d summaries, got %d", StepCount, len(summaries))
	}
	if summaries[0] != "Company: Acme" {
		t.Fatalf("unexpected first summary: %q", summaries[0])
	}
	for i := 1; i < StepCount; i++ {
		if summaries[i] != "" {
			t.Fatalf("untouched step %d should be empty, got %q", i+1, summaries[i])
		}
	}
}

func TestFormatCount(t *testing.T) {
	cases := map[int]string{
		0:       "0",
		999:     "999",
		1000:    "1,000",
		25300:   "25,300",
		1247000: "1,247,000",
	}
	for in, want := range cases {
		if got := formatCount(in); got != want {
			t.Fatalf("formatCount(%d) = %q, want %q", in, got, want)
		}
	}
}
