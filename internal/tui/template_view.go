package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/stellahq/stella-console/internal/catalog"
)

// simulatedAccuracy is the post-correction accuracy reported after the
// extraction-testing phase. There is no real extraction behind it.
const simulatedAccuracy = 99.6

// templateView drives the three-phase create-template flow: field
// identification, extraction testing, accuracy review.
type templateView struct {
	app   *App
	draft catalog.TemplateDraft
	name  textinput.Model
}

func newTemplateView(app *App) *templateView {
	name := textinput.New()
	name.Placeholder = "e.g. Parking Citation"
	name.CharLimit = 80
	name.Focus()
	return &templateView{
		app: app,
		draft: catalog.TemplateDraft{
			ID:           app.drafts.NewTemplateID(),
			Name:         "Untitled Template",
			CurrentPhase: catalog.PhaseFieldIdentification,
			Status:       catalog.TemplateStatusDraft,
		},
		name: name,
	}
}

func (v *templateView) Init() tea.Cmd {
	return textinput.Blink
}

func (v *templateView) Update(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	switch key.String() {
	case "esc":
		v.exit("Template creation cancelled")
		return nil
	case "ctrl+s":
		v.applyName()
		if err := v.app.drafts.SaveDraft(&v.draft); err != nil {
			v.app.statusMsg = "Save failed; see log"
			return nil
		}
		v.app.logInfo("Template draft %s saved in phase %d", v.draft.ID, v.draft.CurrentPhase)
		v.exit(fmt.Sprintf("Draft %q saved", v.draft.Name))
		return nil
	case "ctrl+n":
		return v.advancePhase()
	case "ctrl+b":
		if v.draft.CurrentPhase > catalog.PhaseFieldIdentification {
			v.draft.CurrentPhase--
		}
		return nil
	case "d":
		if v.draft.CurrentPhase == catalog.PhaseFieldIdentification && !v.name.Focused() {
			v.runDetection()
			return nil
		}
	case "a":
		if v.draft.CurrentPhase == catalog.PhaseAccuracyReview {
			return v.approve()
		}
	case "enter":
		if v.draft.CurrentPhase == catalog.PhaseFieldIdentification && v.name.Focused() {
			v.applyName()
			v.name.Blur()
			return nil
		}
	}

	if v.draft.CurrentPhase == catalog.PhaseFieldIdentification && v.name.Focused() {
		var cmd tea.Cmd
		v.name, cmd = v.name.Update(msg)
		return cmd
	}
	return nil
}

func (v *templateView) applyName() {
	if name := strings.TrimSpace(v.name.Value()); name != "" {
		v.draft.Name = name
	}
}

func (v *templateView) runDetection() {
	fields := catalog.DetectFields()
	attempts := 1
	if v.draft.Phase1 != nil {
		attempts = v.draft.Phase1.DetectionAttempts + 1
	}
	v.draft.Phase1 = &catalog.Phase1Data{
		Samples: []catalog.UploadedSample{
			{FileName: "sample-001.pdf", FileSize: 184_320, UploadedAt: v.app.now()},
		},
		Fields:            fields,
		DetectionStatus:   catalog.DetectionComplete,
		DetectionAttempts: attempts,
	}
	v.app.logInfo("Template draft %s · detected %d fields", v.draft.ID, len(fields))
	v.app.statusMsg = fmt.Sprintf("Detected %d fields", len(fields))
}

func (v *templateView) advancePhase() tea.Cmd {
	switch v.draft.CurrentPhase {
	case catalog.PhaseFieldIdentification:
		v.applyName()
		if v.draft.Phase1 == nil || v.draft.Phase1.DetectionStatus != catalog.DetectionComplete {
			v.app.statusMsg = "Run field detection first (press d)"
			return nil
		}
		v.draft.CurrentPhase = catalog.PhaseExtractionTesting
	case catalog.PhaseExtractionTesting:
		// Entering review: report the simulated post-correction accuracy.
		v.draft.Phase3 = &catalog.Phase3Data{
			OverallAccuracy: simulatedAccuracy,
			TargetAccuracy:  catalog.DefaultTargetAccuracy,
		}
		v.draft.CurrentPhase = catalog.PhaseAccuracyReview
	case catalog.PhaseAccuracyReview:
		v.app.statusMsg = "Press a to approve the template"
		return nil
	}
	if err := v.app.drafts.SaveDraft(&v.draft); err != nil {
		v.app.statusMsg = "Save failed; see log"
	} else {
		v.app.statusMsg = ""
	}
	return nil
}

func (v *templateView) approve() tea.Cmd {
	if v.draft.Phase3 == nil || v.draft.Phase3.OverallAccuracy < v.draft.Phase3.TargetAccuracy {
		v.app.statusMsg = "Accuracy below target; template cannot be approved"
		return nil
	}
	if err := v.app.drafts.SaveDraft(&v.draft); err != nil {
		v.app.statusMsg = "Save failed; see log"
		return nil
	}
	template, err := v.app.drafts.ApproveDraft(v.draft.ID)
	if err != nil {
		v.app.statusMsg = "Approval failed; see log"
		v.app.logWarn("Approving template draft %s: %v", v.draft.ID, err)
		return nil
	}
	v.app.logInfo("Template %s approved (%.1f%% accuracy)", template.ID, template.Accuracy)
	v.exit(fmt.Sprintf("Template %q approved", template.Name))
	return nil
}

func (v *templateView) exit(status string) {
	v.app.state = stateDashboard
	v.app.templateView = nil
	v.app.statusMsg = status
}

func (v *templateView) View(width int) string {
	title := stepTitleStyle.Render(fmt.Sprintf("Create Template · Phase %d of 3", v.draft.CurrentPhase))
	var body string
	switch v.draft.CurrentPhase {
	case catalog.PhaseFieldIdentification:
		body = v.renderPhase1()
	case catalog.PhaseExtractionTesting:
		body = v.renderPhase2()
	case catalog.PhaseAccuracyReview:
		body = v.renderPhase3()
	}
	hints := stepHintStyle.Render("Ctrl+N → next phase    Ctrl+B → back    Ctrl+S → save draft    Esc → cancel")
	return lipgloss.JoinVertical(lipgloss.Left, title, "", body, "", hints)
}

func (v *templateView) renderPhase1() string {
	lines := []string{
		"Name your template and run field detection against the sample set.",
		"",
		"Template Name: " + v.name.View(),
		"",
	}
	if v.draft.Phase1 == nil {
		lines = append(lines, stepHintStyle.Render("Press Enter to confirm the name, then d to detect fields."))
		return strings.Join(lines, "\n")
	}
	lines = append(lines, fmt.Sprintf("Detection: %s (attempt %d)",
		v.draft.Phase1.DetectionStatus, v.draft.Phase1.DetectionAttempts))
	lines = append(lines, "")
	for _, field := range v.draft.Phase1.Fields {
		required := " "
		if field.Required {
			required = "*"
		}
		lines = append(lines, fmt.Sprintf("  %s %-16s %-12s %3d%%", required, field.Name, field.Type, field.Confidence))
	}
	return strings.Join(lines, "\n")
}

func (v *templateView) renderPhase2() string {
	count := 0
	if v.draft.Phase1 != nil {
		count = len(v.draft.Phase1.Fields)
	}
	return strings.Join([]string{
		"Extraction testing runs the detected fields against held-out samples.",
		"",
		fmt.Sprintf("Testing %d fields across the sample set…", count),
		stepHintStyle.Render("This is simulated; continue when ready."),
	}, "\n")
}

func (v *templateView) renderPhase3() string {
	accuracy := 0.0
	target := catalog.DefaultTargetAccuracy
	if v.draft.Phase3 != nil {
		accuracy = v.draft.Phase3.OverallAccuracy
		target = v.draft.Phase3.TargetAccuracy
	}
	verdict := gateReasonStyle.Render(fmt.Sprintf("Below the %.1f%% target", target))
	if accuracy >= target {
		verdict = fmt.Sprintf("Meets the %.1f%% target · press a to approve", target)
	}
	return strings.Join([]string{
		fmt.Sprintf("Template: %s", v.draft.Name),
		"",
		fmt.Sprintf("Overall accuracy: %.1f%%", accuracy),
		verdict,
	}, "\n")
}
