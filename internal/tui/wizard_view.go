package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/stellahq/stella-console/internal/catalog"
	"github.com/stellahq/stella-console/internal/wizard"
)

var (
	stepTitleStyle   = lipgloss.NewStyle().Bold(true)
	stepHintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	fieldLabelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#CCCCCC"))
	fieldFocusStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
	gateReasonStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
	sidebarHeadStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
	summaryStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#A0AEC0"))
)

type fieldKind int

const (
	fieldText   fieldKind = iota
	fieldPicker           // left/right cycles options
	fieldNumber           // left/right adjusts within bounds
	fieldToggle           // space flips
	fieldChoice           // radio row, space/enter selects one
	fieldCheck            // checklist row, space toggles membership
	fieldInfo             // read-only line
)

// formField is one focusable row of a wizard step form. The per-step build
// and apply functions translate between fields and session payloads.
type formField struct {
	key     string
	label   string
	kind    fieldKind
	input   textinput.Model
	options []string
	optIdx  int
	on      bool
	num     int
	numMin  int
	numMax  int
	numStep int
	note    string
}

func textField(key, label, value, placeholder string) formField {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = 160
	in.SetValue(value)
	return formField{key: key, label: label, kind: fieldText, input: in}
}

func pickerField(key, label, current string, options []string) formField {
	idx := 0
	for i, opt := range options {
		if opt == current {
			idx = i
			break
		}
	}
	return formField{key: key, label: label, kind: fieldPicker, options: options, optIdx: idx}
}

func numberField(key, label string, value, min, max, step int) formField {
	if value < min {
		value = min
	}
	if value > max {
		value = max
	}
	return formField{key: key, label: label, kind: fieldNumber, num: value, numMin: min, numMax: max, numStep: step}
}

func toggleField(key, label string, on bool) formField {
	return formField{key: key, label: label, kind: fieldToggle, on: on}
}

func infoField(label, note string) formField {
	return formField{kind: fieldInfo, label: label, note: note}
}

// wizardView drives one onboarding session inside the console.
type wizardView struct {
	app     *App
	session *wizard.Session

	fields []formField
	focus  int
}

func newWizardView(app *App, resumeID string) *wizardView {
	session := wizard.NewSession(app.workflows, app.seedContext())
	if resumeID != "" {
		session.Resume(resumeID)
		if session.WorkflowID() == resumeID {
			app.logInfo("Resuming workflow %s at step %d", resumeID, session.CurrentStep())
		} else {
			app.logWarn("Workflow %s not found; starting a new session", resumeID)
		}
	} else {
		session.InitializeNew()
		app.logInfo("Quick start · new onboarding session")
	}
	view := &wizardView{app: app, session: session}
	view.buildFields()
	return view
}

func (v *wizardView) Init() tea.Cmd {
	return textinput.Blink
}

func (v *wizardView) Update(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	switch key.String() {
	case "esc":
		v.applyFields()
		v.exit("Wizard closed")
		return nil
	case "ctrl+s":
		v.applyFields()
		if err := v.session.SaveAndExit(); err != nil {
			v.app.statusMsg = "Save failed; see log"
			return nil
		}
		v.app.logInfo("Workflow %s saved at step %d", v.session.WorkflowID(), v.session.CurrentStep())
		v.exit("Draft saved")
		return nil
	case "ctrl+n":
		return v.advance()
	case "ctrl+b":
		v.applyFields()
		v.session.Retreat()
		v.buildFields()
		return nil
	case "tab", "down":
		v.moveFocus(1)
		return textinput.Blink
	case "shift+tab", "up":
		v.moveFocus(-1)
		return textinput.Blink
	case "enter":
		if field := v.focused(); field != nil && field.kind == fieldChoice {
			v.selectChoice(v.focus)
			v.applyFields()
			return nil
		}
		v.moveFocus(1)
		return textinput.Blink
	}

	field := v.focused()
	if field == nil {
		return nil
	}

	switch key.String() {
	case "left":
		if v.adjustField(field, -1) {
			v.applyFields()
			return nil
		}
	case "right":
		if v.adjustField(field, 1) {
			v.applyFields()
			return nil
		}
	case " ":
		switch field.kind {
		case fieldToggle, fieldCheck:
			field.on = !field.on
			v.applyFields()
			// The skip toggle adds or removes the row fields.
			if field.key == "skip" {
				v.buildFields()
			}
			return nil
		case fieldChoice:
			v.selectChoice(v.focus)
			v.applyFields()
			return nil
		}
	}

	// Jump-edit from the review step: digits pick a step unless a text
	// field owns the keystroke.
	if v.session.CurrentStep() == wizard.StepReviewAccept && field.kind != fieldText {
		if n, err := strconv.Atoi(key.String()); err == nil && n >= 1 && n < wizard.StepReviewAccept {
			v.applyFields()
			v.session.EditStep(n)
			v.buildFields()
			return nil
		}
	}

	if field.kind == fieldText {
		var cmd tea.Cmd
		field.input, cmd = field.input.Update(msg)
		v.applyFields()
		return cmd
	}
	return nil
}

func (v *wizardView) advance() tea.Cmd {
	v.applyFields()
	finalizing := v.session.CurrentStep() == wizard.StepReviewAccept
	if err := v.session.Advance(); err != nil {
		if ok, reason := v.session.CanAdvance(); !ok {
			v.app.statusMsg = reason
		} else {
			v.app.statusMsg = "Save failed; see log"
		}
		return nil
	}
	if finalizing && v.session.Finished() {
		v.app.logInfo("Workflow %s completed", v.session.WorkflowID())
		v.exit("Workflow completed")
		return nil
	}
	v.app.statusMsg = ""
	v.buildFields()
	return textinput.Blink
}

func (v *wizardView) exit(status string) {
	v.app.state = stateDashboard
	v.app.wizardView = nil
	v.app.statusMsg = status
}

func (v *wizardView) focused() *formField {
	if v.focus < 0 || v.focus >= len(v.fields) {
		return nil
	}
	return &v.fields[v.focus]
}

func (v *wizardView) moveFocus(delta int) {
	if len(v.fields) == 0 {
		return
	}
	if field := v.focused(); field != nil && field.kind == fieldText {
		field.input.Blur()
	}
	for i := 0; i < len(v.fields); i++ {
		v.focus = (v.focus + delta + len(v.fields)) % len(v.fields)
		if v.fields[v.focus].kind != fieldInfo {
			break
		}
	}
	if field := v.focused(); field != nil && field.kind == fieldText {
		field.input.Focus()
	}
}

func (v *wizardView) adjustField(field *formField, delta int) bool {
	switch field.kind {
	case fieldPicker:
		if len(field.options) == 0 {
			return false
		}
		field.optIdx = (field.optIdx + delta + len(field.options)) % len(field.options)
		return true
	case fieldNumber:
		step := field.numStep
		if step == 0 {
			step = 1
		}
		next := field.num + delta*step
		if next < field.numMin {
			next = field.numMin
		}
		if next > field.numMax {
			next = field.numMax
		}
		field.num = next
		return true
	}
	return false
}

// selectChoice enforces radio semantics across the choice rows.
func (v *wizardView) selectChoice(idx int) {
	for i := range v.fields {
		if v.fields[i].kind == fieldChoice {
			v.fields[i].on = i == idx
		}
	}
}

// --- Field construction per step -------------------------------------------

func (v *wizardView) buildFields() {
	switch v.session.CurrentStep() {
	case wizard.StepCompanyInfo:
		v.buildCompanyInfoFields()
	case wizard.StepChooseTemplate:
		v.buildTemplateChoiceFields()
	case wizard.StepDocumentTypes:
		v.buildDocumentTypeFields()
	case wizard.StepValidationRules:
		v.buildValidationFields()
	case wizard.StepVolumeEstimate:
		v.buildVolumeFields()
	case wizard.StepOutputFormat:
		v.buildOutputFields()
	case wizard.StepReviewAccept:
		v.buildReviewFields()
	}
	v.focus = 0
	if len(v.fields) > 0 && v.fields[0].kind == fieldInfo {
		v.moveFocus(1)
	}
	if field := v.focused(); field != nil && field.kind == fieldText {
		field.input.Focus()
	}
}

func withLeadingBlank(options []string) []string {
	return append([]string{""}, options...)
}

func (v *wizardView) buildCompanyInfoFields() {
	info := v.session.CompanyInfo()
	v.fields = []formField{
		textField("companyName", "Company Name", info.CompanyName, "Acme Corp"),
		pickerField("industry", "Industry Sector", info.IndustrySector, withLeadingBlank(wizard.IndustryOptions)),
		pickerField("region", "Primary Region", info.PrimaryRegion, withLeadingBlank(wizard.RegionOptions)),
		pickerField("country", "Country", info.Country, wizard.CountryOptions),
		numberField("lob", "Lines of Business", info.LinesOfBusiness, 1, 10, 1),
		textField("c1name", "Primary Contact · Name", info.PrimaryContact1.Name, "Full name"),
		textField("c1email", "Primary Contact · Email", info.PrimaryContact1.Email, "name@company.com"),
		textField("c1cell", "Primary Contact · Cell", info.PrimaryContact1.Cell, "+1 555 000 0000"),
		textField("c2name", "Second Contact · Name", info.PrimaryContact2.Name, "Optional"),
		textField("c2email", "Second Contact · Email", info.PrimaryContact2.Email, "Optional"),
		textField("c2cell", "Second Contact · Cell", info.PrimaryContact2.Cell, "Optional"),
		textField("dropoff", "Secured Drop-off Location", info.SecuredDropoffLocation, "Street address"),
		textField("pickup", "Secure Pick-up Location", info.SecurePickupLocation, "Street address"),
	}
}

func (v *wizardView) buildTemplateChoiceFields() {
	choice := v.session.TemplateChoice()
	starters := catalog.StarterTemplates()
	fields := make([]formField, 0, len(starters))
	for _, starter := range starters {
		note := starter.Description
		if !starter.Blank {
			note = fmt.Sprintf("%s · %s · %s", starter.Description, starter.DocumentTypes, starter.SetupTime)
		}
		fields = append(fields, formField{
			key:   starter.ID,
			label: starter.Name,
			kind:  fieldChoice,
			on:    starter.ID == choice.SelectedTemplateID,
			note:  note,
		})
	}
	v.fields = fields
}

func (v *wizardView) buildDocumentTypeFields() {
	types := v.session.DocumentTypes()
	templates := catalog.DocumentTemplates()
	fields := make([]formField, 0, len(templates)+1)
	fields = append(fields, infoField("Select every document type this workflow should process.", ""))
	for _, tmpl := range templates {
		fields = append(fields, formField{
			key:   tmpl.ID,
			label: fmt.Sprintf("%-34s %-20s %4.1f%%", tmpl.Name, tmpl.LOB, tmpl.Accuracy),
			kind:  fieldCheck,
			on:    types.Selected(tmpl.ID),
			note:  fmt.Sprintf("%s · %d fields · %s", tmpl.City, tmpl.FieldsDetected, tmpl.Classification),
		})
	}
	v.fields = fields
}

func (v *wizardView) buildValidationFields() {
	rules := v.session.ValidationRules()
	fields := []formField{
		toggleField("enable", "Enable Validation", rules.EnableValidation),
		numberField("threshold", "Confidence Threshold (%)", rules.GlobalSettings.ConfidenceThreshold, 50, 100, 5),
		toggleField("external", "External Validation Lookups", rules.GlobalSettings.EnableExternalValidation),
	}
	if types := v.session.DocumentTypes(); len(types.SelectedTemplateIDs) > 0 {
		fields = append(fields, infoField("Per-template rules", ""))
		for _, id := range types.SelectedTemplateIDs {
			name := id
			if tmpl, ok := catalog.DocumentTemplateByID(id); ok {
				name = tmpl.Name
			}
			tv := rules.TemplateValidation[id]
			fields = append(fields, infoField(
				fmt.Sprintf("  %s", name),
				fmt.Sprintf("%d required · %d rules · %d lookups",
					len(tv.RequiredFields), len(tv.ValidationRules), len(tv.ExternalValidation)),
			))
		}
	}
	v.fields = fields
}

func (v *wizardView) buildVolumeFields() {
	estimate := v.session.VolumeEstimate()
	fields := []formField{
		toggleField("skip", "Skip Volume Estimate", estimate.SkipVolumeEstimate),
	}
	if !estimate.SkipVolumeEstimate {
		for i, row := range estimate.Volumes {
			prefix := fmt.Sprintf("row%d.", i)
			fields = append(fields,
				infoField(fmt.Sprintf("Line of Business %d", i+1), ""),
				textField(prefix+"name", "  Name", row.LOBName, "e.g. Traffic Enforcement"),
				textField(prefix+"volume", "  Expected Monthly Volume", volumeString(row.ExpectedMonthlyVolume), "0"),
				pickerField(prefix+"peak", "  Peak Processing Period", row.PeakProcessingPeriod, withLeadingBlank(wizard.PeakPeriodOptions)),
			)
		}
	}
	v.fields = fields
}

func volumeString(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}

func (v *wizardView) buildOutputFields() {
	format := v.session.OutputFormat()
	retention := fmt.Sprintf("Retention: %d days", format.AuditTrail.RetentionDays)
	events := make([]string, len(format.AuditTrail.Events))
	for i, event := range format.AuditTrail.Events {
		events[i] = strings.ReplaceAll(event.EventType, "_", " ")
	}
	v.fields = []formField{
		toggleField("json", "JSON Output", format.JSON.Enabled),
		textField("jsonNaming", "  File Naming Pattern", format.JSON.FileNaming, wizard.DefaultFileNaming),
		toggleField("jsonPretty", "  Pretty Print", format.JSON.PrettyPrint),
		toggleField("csv", "CSV Output", format.CSV.Enabled),
		textField("csvNaming", "  File Naming Pattern", format.CSV.FileNaming, wizard.DefaultFileNaming),
		pickerField("csvDelimiter", "  Delimiter", format.CSV.Delimiter, []string{"comma", "semicolon", "tab"}),
		toggleField("csvHeaders", "  Include Headers", format.CSV.IncludeHeaders),
		pickerField("method", "Delivery Method", format.Delivery.Method, wizard.DeliveryMethodOptions),
		textField("location", "Delivery Location", format.Delivery.Location, v.session.CompanyInfo().SecurePickupLocation),
		pickerField("schedule", "Delivery Schedule", format.Delivery.Schedule, wizard.DeliveryScheduleOptions),
		toggleField("notify", "Notify on Completion", format.Delivery.NotifyOnCompletion),
		infoField("Audit Trail (required, always on)", strings.Join(events, " · ")),
		infoField("", retention),
	}
}

func (v *wizardView) buildReviewFields() {
	accept := v.session.ReviewAccept()
	fields := []formField{
		infoField("Review your configuration (press 1-6 to edit a step):", ""),
	}
	for step := 1; step < wizard.StepReviewAccept; step++ {
		summary := v.session.Summarize(step)
		if summary == "" {
			summary = "—"
		}
		fields = append(fields, infoField(
			fmt.Sprintf("  %d. %s", step, wizard.StepName(step)),
			summary,
		))
	}
	fields = append(fields,
		toggleField("dpa", "Accept Data Processing Agreement", accept.PoliciesAccepted.DPA),
		toggleField("sla", "Accept Service Level Agreement", accept.PoliciesAccepted.SLA),
		toggleField("compliance", "Accept Compliance Terms", accept.PoliciesAccepted.Compliance),
		toggleField("retention", "Accept Audit Retention Policy", accept.PoliciesAccepted.AuditRetention),
		textField("signature", "Electronic Signature (full name)", accept.AcceptedBy, "Jane Smith"),
	)
	v.fields = fields
}

// --- Applying fields back to the session -----------------------------------

func (v *wizardView) applyFields() {
	switch v.session.CurrentStep() {
	case wizard.StepCompanyInfo:
		v.applyCompanyInfo()
	case wizard.StepChooseTemplate:
		v.applyTemplateChoice()
	case wizard.StepDocumentTypes:
		v.applyDocumentTypes()
	case wizard.StepValidationRules:
		v.applyValidation()
	case wizard.StepVolumeEstimate:
		v.applyVolumes()
	case wizard.StepOutputFormat:
		v.applyOutput()
	case wizard.StepReviewAccept:
		v.applyReview()
	}
}

func (v *wizardView) applyCompanyInfo() {
	info := v.session.CompanyInfo()
	for _, field := range v.fields {
		switch field.key {
		case "companyName":
			info.CompanyName = strings.TrimSpace(field.input.Value())
		case "industry":
			info.IndustrySector = field.options[field.optIdx]
		case "region":
			info.PrimaryRegion = field.options[field.optIdx]
		case "country":
			info.Country = field.options[field.optIdx]
		case "lob":
			info.LinesOfBusiness = field.num
		case "c1name":
			info.PrimaryContact1.Name = strings.TrimSpace(field.input.Value())
		case "c1email":
			info.PrimaryContact1.Email = strings.TrimSpace(field.input.Value())
		case "c1cell":
			info.PrimaryContact1.Cell = strings.TrimSpace(field.input.Value())
		case "c2name":
			info.PrimaryContact2.Name = strings.TrimSpace(field.input.Value())
		case "c2email":
			info.PrimaryContact2.Email = strings.TrimSpace(field.input.Value())
		case "c2cell":
			info.PrimaryContact2.Cell = strings.TrimSpace(field.input.Value())
		case "dropoff":
			info.SecuredDropoffLocation = strings.TrimSpace(field.input.Value())
		case "pickup":
			info.SecurePickupLocation = strings.TrimSpace(field.input.Value())
		}
	}
}

func (v *wizardView) applyTemplateChoice() {
	choice := v.session.TemplateChoice()
	for _, field := range v.fields {
		if field.kind == fieldChoice && field.on {
			choice.SelectedTemplateID = field.key
			choice.TemplateName = field.label
			return
		}
	}
}

func (v *wizardView) applyDocumentTypes() {
	types := v.session.DocumentTypes()
	var selected []string
	for _, field := range v.fields {
		if field.kind == fieldCheck && field.on {
			selected = append(selected, field.key)
		}
	}
	types.SelectedTemplateIDs = selected
	types.DocumentTemplates = catalog.DocumentTemplates()
}

func (v *wizardView) applyValidation() {
	rules := v.session.ValidationRules()
	for _, field := range v.fields {
		switch field.key {
		case "enable":
			rules.EnableValidation = field.on
		case "threshold":
			rules.GlobalSettings.ConfidenceThreshold = field.num
		case "external":
			rules.GlobalSettings.EnableExternalValidation = field.on
		}
	}
	// Every selected template keeps a validation slot, even when untouched.
	if rules.TemplateValidation == nil {
		rules.TemplateValidation = map[string]wizard.TemplateValidation{}
	}
	for _, id := range v.session.DocumentTypes().SelectedTemplateIDs {
		if _, ok := rules.TemplateValidation[id]; !ok {
			rules.TemplateValidation[id] = wizard.TemplateValidation{}
		}
	}
}

func (v *wizardView) applyVolumes() {
	estimate := v.session.VolumeEstimate()
	for _, field := range v.fields {
		if field.key == "skip" {
			if field.on && !estimate.SkipVolumeEstimate {
				estimate.SkipVolumeEstimate = true
				estimate.Volumes = nil
			} else if !field.on && estimate.SkipVolumeEstimate {
				estimate.SkipVolumeEstimate = false
			}
			continue
		}
		var row int
		var attr string
		if n, _ := fmt.Sscanf(field.key, "row%d.", &row); n != 1 {
			continue
		}
		if dot := strings.Index(field.key, "."); dot >= 0 {
			attr = field.key[dot+1:]
		}
		if row >= len(estimate.Volumes) {
			continue
		}
		switch attr {
		case "name":
			estimate.Volumes[row].LOBName = strings.TrimSpace(field.input.Value())
		case "volume":
			value, err := strconv.Atoi(strings.TrimSpace(field.input.Value()))
			if err != nil || value < 0 {
				value = 0
			}
			estimate.Volumes[row].ExpectedMonthlyVolume = value
		case "peak":
			estimate.Volumes[row].PeakProcessingPeriod = field.options[field.optIdx]
		}
	}
}

func (v *wizardView) applyOutput() {
	format := v.session.OutputFormat()
	for _, field := range v.fields {
		switch field.key {
		case "json":
			format.JSON.Enabled = field.on
		case "jsonNaming":
			format.JSON.FileNaming = strings.TrimSpace(field.input.Value())
		case "jsonPretty":
			format.JSON.PrettyPrint = field.on
		case "csv":
			format.CSV.Enabled = field.on
		case "csvNaming":
			format.CSV.FileNaming = strings.TrimSpace(field.input.Value())
		case "csvDelimiter":
			format.CSV.Delimiter = field.options[field.optIdx]
		case "csvHeaders":
			format.CSV.IncludeHeaders = field.on
		case "method":
			format.Delivery.Method = field.options[field.optIdx]
		case "location":
			format.Delivery.Location = strings.TrimSpace(field.input.Value())
		case "schedule":
			format.Delivery.Schedule = field.options[field.optIdx]
		case "notify":
			format.Delivery.NotifyOnCompletion = field.on
		}
	}
	var selected []string
	if format.JSON.Enabled {
		selected = append(selected, "json")
	}
	if format.CSV.Enabled {
		selected = append(selected, "csv")
	}
	format.SelectedFormats = selected
}

func (v *wizardView) applyReview() {
	accept := v.session.ReviewAccept()
	for _, field := range v.fields {
		switch field.key {
		case "dpa":
			accept.PoliciesAccepted.DPA = field.on
		case "sla":
			accept.PoliciesAccepted.SLA = field.on
		case "compliance":
			accept.PoliciesAccepted.Compliance = field.on
		case "retention":
			accept.PoliciesAccepted.AuditRetention = field.on
		case "signature":
			accept.AcceptedBy = strings.TrimSpace(field.input.Value())
		}
	}
}

// --- Rendering -------------------------------------------------------------

var stepSubtitles = map[int]string{
	wizard.StepCompanyInfo:     "Tell us about your organization",
	wizard.StepChooseTemplate:  "Pick a starting point for this workflow",
	wizard.StepDocumentTypes:   "Choose the document types to process",
	wizard.StepValidationRules: "Configure extraction validation",
	wizard.StepVolumeEstimate:  "Estimate monthly processing volume",
	wizard.StepOutputFormat:    "Configure how output is delivered",
	wizard.StepReviewAccept:    "Review everything and accept the policies",
}

func (v *wizardView) View(width int) string {
	sidebarWidth := max(30, width/3)
	contentWidth := max(40, width-sidebarWidth-6)

	content := v.renderStepForm(contentWidth)
	sidebar := v.renderSidebar(sidebarWidth - 4)

	contentBox := lipgloss.NewStyle().Width(contentWidth).Render(content)
	sidebarBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444444")).
		Padding(0, 1).
		Width(sidebarWidth).
		Render(sidebar)
	return lipgloss.JoinHorizontal(lipgloss.Top, contentBox, sidebarBox)
}

func (v *wizardView) renderStepForm(width int) string {
	step := v.session.CurrentStep()
	title := stepTitleStyle.Render(fmt.Sprintf("Step %d of %d · %s", step, wizard.StepCount, wizard.StepName(step)))
	subtitle := stepHintStyle.Render(stepSubtitles[step])

	var rows []string
	for i, field := range v.fields {
		rows = append(rows, v.renderField(field, i == v.focus, width))
	}

	footer := v.renderFooter()
	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		subtitle,
		"",
		strings.Join(rows, "\n"),
		"",
		footer,
	)
}

func (v *wizardView) renderField(field formField, focused bool, width int) string {
	marker := "  "
	if focused {
		marker = "▸ "
	}
	var value string
	switch field.kind {
	case fieldText:
		value = field.input.View()
	case fieldPicker:
		option := field.options[field.optIdx]
		if option == "" {
			option = "(none)"
		}
		value = fmt.Sprintf("◂ %s ▸", option)
	case fieldNumber:
		value = fmt.Sprintf("◂ %d ▸", field.num)
	case fieldToggle:
		value = checkbox(field.on)
	case fieldChoice:
		radio := "( )"
		if field.on {
			radio = "(•)"
		}
		value = radio
	case fieldCheck:
		value = checkbox(field.on)
	case fieldInfo:
		line := fieldLabelStyle.Render(field.label)
		if field.note != "" {
			line += "  " + summaryStyle.Render(field.note)
		}
		return "  " + line
	}

	label := fieldLabelStyle.Render(field.label)
	if focused {
		label = fieldFocusStyle.Render(field.label)
	}
	line := fmt.Sprintf("%s%s  %s", marker, value, label)
	if field.note != "" && (field.kind == fieldChoice || field.kind == fieldCheck) {
		note := summaryStyle.Render(truncate(field.note, max(20, width-8)))
		line += "\n      " + note
	}
	return line
}

func (v *wizardView) renderFooter() string {
	hints := "Ctrl+N → next    Ctrl+B → back    Ctrl+S → save & exit    Esc → cancel"
	if v.session.CurrentStep() == wizard.StepReviewAccept {
		hints = "Ctrl+N → complete    " + hints[len("Ctrl+N → next    "):]
	}
	footer := stepHintStyle.Render(hints)
	if ok, reason := v.session.CanAdvance(); !ok {
		footer = gateReasonStyle.Render("⚠ "+reason) + "\n" + footer
	}
	return footer
}

func (v *wizardView) renderSidebar(width int) string {
	head := sidebarHeadStyle.Render("Your Progress")
	current := v.session.CurrentStep()
	summaries := v.session.Summaries()

	var rows []string
	for step := 1; step <= wizard.StepCount; step++ {
		var bullet string
		switch {
		case step < current:
			bullet = "✓"
		case step == current:
			bullet = "●"
		default:
			bullet = "○"
		}
		name := wizard.StepName(step)
		line := fmt.Sprintf("%s %s", bullet, name)
		if step == current {
			line = fieldFocusStyle.Render(line)
		}
		rows = append(rows, line)
		if summary := summaries[step-1]; summary != "" && step <= current {
			rows = append(rows, "  "+summaryStyle.Render(truncate(summary, max(16, width-2))))
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, head, "", strings.Join(rows, "\n"))
}

func checkbox(on bool) string {
	if on {
		return "[x]"
	}
	return "[ ]"
}

func truncate(value string, limit int) string {
	if limit <= 1 || len(value) <= limit {
		return value
	}
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	return string(runes[:limit-1]) + "…"
}
