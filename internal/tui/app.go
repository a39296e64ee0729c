// internal/tui/app.go
//
// This is the main TUI for the Stella console. It uses bubbletea, which
// follows The Elm Architecture:
//
// 1. Model: Your application state
// 2. Update: A function that updates state based on messages
// 3. View: A function that renders state to a string
//
// The flow is: User Input -> Message -> Update -> New Model -> View -> Screen

package tui

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/stellahq/stella-console/internal/catalog"
	"github.com/stellahq/stella-console/internal/config"
	"github.com/stellahq/stella-console/internal/logbook"
	"github.com/stellahq/stella-console/internal/store"
	"github.com/stellahq/stella-console/internal/wizard"
)

// appState represents which "screen" we're on.
type appState int

const (
	stateLogin          appState = iota // Mock sign-in gate
	stateDashboard                      // Stat cards + main menu
	stateWorkflows                      // Saved workflow list: resume/rename/delete
	stateWizard                         // Quick-start onboarding wizard
	stateCreateTemplate                 // Three-phase template creation
	stateDocuments                      // Stub
	stateJobs                           // Stub
	stateSettings                       // Stub
)

// AppOption customizes App construction for tests.
type AppOption func(*App)

// WithClock overrides the timestamp source used by the stores.
func WithClock(now func() time.Time) AppOption {
	return func(a *App) {
		if now != nil {
			a.now = now
			a.workflows.SetClock(now)
			a.drafts.SetClock(now)
		}
	}
}

// App is the main application model. In bubbletea, this holds ALL your state.
type App struct {
	state     appState
	config    *config.Config
	logbook   *logbook.Logbook
	workflows *store.WorkflowStore
	drafts    *store.TemplateDraftStore
	now       func() time.Time

	// Login form
	loginInputs [2]textinput.Model
	loginFocus  int

	// Dashboard
	mainMenu list.Model

	// Workflows screen
	workflowRows    []wizard.WorkflowRecord
	workflowCursor  int
	renaming        bool
	renameInput     textinput.Model
	pendingResumeID string

	// Sub-views
	wizardView   *wizardView
	templateView *templateView

	statusMsg string

	width  int
	height int
}

// menuItem implements list.Item for the dashboard menu.
type menuItem struct {
	title string
	desc  string
}

func (i menuItem) Title() string       { return i.title }
func (i menuItem) Description() string { return i.desc }
func (i menuItem) FilterValue() string { return i.title }

// NewApp creates the console bound to a project directory. The .stella
// directory must already exist (cmd/stella calls config.InitStellaDir).
func NewApp(projectDir string, opts ...AppOption) (*App, error) {
	cfg, err := config.NewConfig(projectDir)
	if err != nil {
		return nil, err
	}
	lb, err := logbook.New(cfg.LogPath())
	if err != nil {
		return nil, err
	}
	lb.Info("Console opened · project %s", filepath.Base(cfg.ProjectDir))

	mainMenu := list.New(buildMainMenu(), list.NewDefaultDelegate(), 0, 0)
	mainMenu.Title = "✦ STELLA CONSOLE"
	mainMenu.SetShowStatusBar(false)
	mainMenu.SetFilteringEnabled(false)

	email := textinput.New()
	email.Placeholder = "you@company.com"
	email.CharLimit = 120
	email.Focus()
	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	password.CharLimit = 120

	rename := textinput.New()
	rename.CharLimit = 80

	app := &App{
		state:       stateLogin,
		config:      cfg,
		logbook:     lb,
		workflows:   store.NewWorkflowStore(cfg.WorkflowStorePath(), lb),
		drafts:      store.NewTemplateDraftStore(cfg.TemplateStorePath(), lb),
		now:         time.Now,
		mainMenu:    mainMenu,
		renameInput: rename,
	}
	app.loginInputs[0] = email
	app.loginInputs[1] = password
	for _, opt := range opts {
		if opt != nil {
			opt(app)
		}
	}
	return app, nil
}

func buildMainMenu() []list.Item {
	return []list.Item{
		menuItem{title: "Quick Start", desc: "Run the onboarding wizard for a new workflow"},
		menuItem{title: "Workflows", desc: "Resume, rename or delete saved workflows"},
		menuItem{title: "Create Template", desc: "Build a document template from samples"},
		menuItem{title: "Documents", desc: "Browse processed documents"},
		menuItem{title: "Jobs", desc: "Monitor the processing queue"},
		menuItem{title: "Settings", desc: "Configure the console"},
		menuItem{title: "Log Out", desc: "Return to the sign-in screen"},
		menuItem{title: "Exit", desc: "Quit the console"},
	}
}

// SetResumeWorkflow queues a workflow to open right after sign-in. Used by
// the -resume flag.
func (a *App) SetResumeWorkflow(id string) {
	a.pendingResumeID = strings.TrimSpace(id)
}

func (a *App) seedContext() wizard.SeedContext {
	return wizard.SeedContext{
		Country:             a.config.DefaultCountry(),
		ConfidenceThreshold: a.config.ConfidenceThreshold(),
		RetentionDays:       a.config.AuditRetentionDays(),
	}
}

func (a *App) logInfo(format string, args ...any) {
	if a.logbook != nil {
		a.logbook.Info(format, args...)
	}
}

func (a *App) logWarn(format string, args ...any) {
	if a.logbook != nil {
		a.logbook.Warn(format, args...)
	}
}

// Init is called once when the program starts.
func (a *App) Init() tea.Cmd {
	return textinput.Blink
}

// Update is called when a message is received.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.mainMenu.SetSize(max(0, msg.Width-8), max(0, msg.Height-16))
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
	}

	switch a.state {
	case stateLogin:
		return a.updateLogin(msg)
	case stateDashboard:
		return a.updateDashboard(msg)
	case stateWorkflows:
		return a.updateWorkflows(msg)
	case stateWizard:
		if a.wizardView != nil {
			return a, a.wizardView.Update(msg)
		}
		return a.returnToDashboard("")
	case stateCreateTemplate:
		if a.templateView != nil {
			return a, a.templateView.Update(msg)
		}
		return a.returnToDashboard("")
	case stateDocuments, stateJobs, stateSettings:
		return a.updateStub(msg)
	}
	return a, nil
}

// --- Login -----------------------------------------------------------------

func (a *App) updateLogin(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "tab", "shift+tab", "up", "down":
			a.loginFocus = (a.loginFocus + 1) % 2
			for i := range a.loginInputs {
				if i == a.loginFocus {
					a.loginInputs[i].Focus()
				} else {
					a.loginInputs[i].Blur()
				}
			}
			return a, textinput.Blink
		case "enter":
			email := strings.TrimSpace(a.loginInputs[0].Value())
			password := a.loginInputs[1].Value()
			if email == "" || password == "" {
				a.statusMsg = "Enter an email and password to sign in"
				return a, nil
			}
			// Prototype gate: any non-empty credentials pass.
			a.logInfo("Signed in as %s", email)
			a.statusMsg = fmt.Sprintf("Welcome back, %s", a.config.Operator())
			a.state = stateDashboard
			if a.pendingResumeID != "" {
				id := a.pendingResumeID
				a.pendingResumeID = ""
				return a.openWizard(id)
			}
			return a, nil
		}
	}
	var cmd tea.Cmd
	a.loginInputs[a.loginFocus], cmd = a.loginInputs[a.loginFocus].Update(msg)
	return a, cmd
}

// --- Dashboard -------------------------------------------------------------

func (a *App) updateDashboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "q":
			return a, tea.Quit
		case "enter":
			return a.handleMainMenuSelection()
		}
	}
	var cmd tea.Cmd
	a.mainMenu, cmd = a.mainMenu.Update(msg)
	return a, cmd
}

func (a *App) handleMainMenuSelection() (tea.Model, tea.Cmd) {
	item, ok := a.mainMenu.SelectedItem().(menuItem)
	if !ok {
		return a, nil
	}
	a.logInfo("Menu · %s selected", item.title)
	switch item.title {
	case "Quick Start":
		return a.openWizard("")
	case "Workflows":
		return a.openWorkflows()
	case "Create Template":
		a.templateView = newTemplateView(a)
		a.state = stateCreateTemplate
		a.statusMsg = ""
		return a, a.templateView.Init()
	case "Documents":
		a.state = stateDocuments
		a.statusMsg = "Documents browsing is coming soon"
		return a, nil
	case "Jobs":
		a.state = stateJobs
		a.statusMsg = "Job monitoring is coming soon"
		return a, nil
	case "Settings":
		a.state = stateSettings
		a.statusMsg = "Settings are coming soon"
		return a, nil
	case "Log Out":
		a.state = stateLogin
		a.loginInputs[1].SetValue("")
		a.statusMsg = "Signed out"
		return a, nil
	case "Exit":
		return a, tea.Quit
	}
	return a, nil
}

// --- Workflows list --------------------------------------------------------

func (a *App) openWorkflows() (tea.Model, tea.Cmd) {
	a.workflowRows = a.workflows.ListAll()
	if a.workflowCursor >= len(a.workflowRows) {
		a.workflowCursor = 0
	}
	a.renaming = false
	a.state = stateWorkflows
	a.statusMsg = ""
	return a, nil
}

func (a *App) updateWorkflows(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return a, nil
	}
	if a.renaming {
		switch key.String() {
		case "enter":
			name := strings.TrimSpace(a.renameInput.Value())
			if name != "" && a.workflowCursor < len(a.workflowRows) {
				id := a.workflowRows[a.workflowCursor].ID
				if err := a.workflows.Rename(id, name); err != nil {
					a.statusMsg = "Rename failed; see log"
				} else {
					a.logInfo("Workflow %s renamed to %q", id, name)
					a.statusMsg = "Renamed"
				}
				a.workflowRows = a.workflows.ListAll()
			}
			a.renaming = false
			return a, nil
		case "esc":
			a.renaming = false
			return a, nil
		}
		var cmd tea.Cmd
		a.renameInput, cmd = a.renameInput.Update(msg)
		return a, cmd
	}

	switch key.String() {
	case "esc", "q":
		return a.returnToDashboard("")
	case "up", "k":
		if a.workflowCursor > 0 {
			a.workflowCursor--
		}
	case "down", "j":
		if a.workflowCursor < len(a.workflowRows)-1 {
			a.workflowCursor++
		}
	case "n":
		return a.openWizard("")
	case "enter":
		if a.workflowCursor < len(a.workflowRows) {
			return a.openWizard(a.workflowRows[a.workflowCursor].ID)
		}
	case "r":
		if a.workflowCursor < len(a.workflowRows) {
			a.renameInput.SetValue(a.workflowRows[a.workflowCursor].DisplayName())
			a.renameInput.Focus()
			a.renaming = true
			return a, textinput.Blink
		}
	case "d":
		if a.workflowCursor < len(a.workflowRows) {
			id := a.workflowRows[a.workflowCursor].ID
			if err := a.workflows.Delete(id); err != nil {
				a.statusMsg = "Delete failed; see log"
			} else {
				a.logInfo("Workflow %s deleted", id)
				a.statusMsg = "Deleted"
			}
			a.workflowRows = a.workflows.ListAll()
			if a.workflowCursor >= len(a.workflowRows) && a.workflowCursor > 0 {
				a.workflowCursor--
			}
		}
	}
	return a, nil
}

// --- Stubs -----------------------------------------------------------------

func (a *App) updateStub(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc", "q", "enter":
			return a.returnToDashboard("")
		}
	}
	return a, nil
}

// --- Navigation ------------------------------------------------------------

func (a *App) openWizard(resumeID string) (tea.Model, tea.Cmd) {
	a.wizardView = newWizardView(a, resumeID)
	a.state = stateWizard
	a.statusMsg = ""
	return a, a.wizardView.Init()
}

func (a *App) returnToDashboard(status string) (tea.Model, tea.Cmd) {
	a.state = stateDashboard
	a.wizardView = nil
	a.templateView = nil
	if status != "" {
		a.statusMsg = status
	}
	return a, nil
}

// View renders the current state to a string.
func (a *App) View() string {
	width := a.width
	if width <= 0 {
		width = 100
	}
	var content string
	switch a.state {
	case stateLogin:
		content = a.renderLogin()
	case stateDashboard:
		content = a.renderDashboard(width)
	case stateWorkflows:
		content = a.renderWorkflows(width)
	case stateWizard:
		if a.wizardView != nil {
			content = a.wizardView.View(width)
		}
	case stateCreateTemplate:
		if a.templateView != nil {
			content = a.templateView.View(width)
		}
	case stateDocuments:
		content = a.renderStub("Documents", "Processed document browsing is coming soon.")
	case stateJobs:
		content = a.renderStub("Jobs", "Queue monitoring is coming soon.")
	case stateSettings:
		content = a.renderStub("Settings", "Console settings are coming soon.")
	}
	return a.renderFrame(content, width)
}

func (a *App) renderFrame(content string, width int) string {
	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#5B8DEF")).
		MarginBottom(1).
		Render("✦ STELLA")
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444444")).
		Padding(0, 1).
		Width(max(40, width-2)).
		Render(content)
	sections := []string{header, box}
	if logPanel := a.renderLogPanel(); logPanel != "" {
		sections = append(sections, logPanel)
	}
	footer := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#888888")).
		MarginTop(1).
		Render(a.statusMsg)
	sections = append(sections, footer)
	return strings.Join(sections, "\n")
}

func (a *App) renderLogPanel() string {
	if a.logbook == nil {
		return ""
	}
	lines, total := a.logbook.Tail(6)
	if len(lines) == 0 {
		return ""
	}
	head := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#5B8DEF")).
		Render(fmt.Sprintf("LOG · %s (%d entries)", filepath.Base(a.logbook.Path()), total))
	body := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#AAAAAA")).
		Render(strings.Join(lines, "\n"))
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444444")).
		Padding(0, 1).
		Render(head + "\n" + body)
}

func (a *App) renderLogin() string {
	title := lipgloss.NewStyle().Bold(true).Render("Sign in to Stella")
	lines := []string{
		title,
		"",
		"Email:    " + a.loginInputs[0].View(),
		"Password: " + a.loginInputs[1].View(),
		"",
		lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).
			Render("Tab → switch field    Enter → sign in"),
	}
	return strings.Join(lines, "\n")
}

func (a *App) renderDashboard(width int) string {
	stats, customers, jobs := catalog.DashboardData()
	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444444")).
		Padding(0, 2)
	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		cardStyle.Render(fmt.Sprintf("Jobs Today\n%s", stats.TotalJobs)),
		cardStyle.Render(fmt.Sprintf("Success Rate\n%s", stats.SuccessRate)),
		cardStyle.Render(fmt.Sprintf("Avg Time\n%s", stats.AvgTime)),
		cardStyle.Render(fmt.Sprintf("In Queue\n%d", stats.QueueDepth)),
	)
	var activity []string
	activity = append(activity, lipgloss.NewStyle().Bold(true).Render("Recent Activity"))
	for _, job := range jobs {
		activity = append(activity, fmt.Sprintf("#%d  %-10s  %-10s  %-16s %s",
			job.ID, job.Status, job.Customer, job.Type, job.Age))
	}
	activity = append(activity, "")
	activity = append(activity, lipgloss.NewStyle().Bold(true).Render("Customers"))
	for _, c := range customers {
		activity = append(activity, fmt.Sprintf("%-12s %4d jobs  %3d%%", c.Name, c.Jobs, c.Percent))
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		cards,
		"",
		a.mainMenu.View(),
		"",
		strings.Join(activity, "\n"),
	)
}

func (a *App) renderWorkflows(width int) string {
	title := lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("Workflows (%d)", len(a.workflowRows)))
	if len(a.workflowRows) == 0 {
		empty := "No saved workflows. Press n to start the quick-start wizard."
		return lipgloss.JoinVertical(lipgloss.Left, title, "", empty, "", a.workflowsHint())
	}
	var rows []string
	for i, record := range a.workflowRows {
		line := fmt.Sprintf("%-28s %-12s step %d/%d  updated %s",
			record.DisplayName(),
			string(record.Status),
			record.CurrentStep, wizard.StepCount,
			record.UpdatedAt.Format("2006-01-02 15:04"),
		)
		style := lipgloss.NewStyle()
		if i == a.workflowCursor {
			style = style.Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
			line = "▸ " + line
		} else {
			line = "  " + line
		}
		rows = append(rows, style.Render(line))
	}
	sections := []string{title, "", strings.Join(rows, "\n")}
	if a.renaming {
		sections = append(sections, "", "New name: "+a.renameInput.View())
	}
	sections = append(sections, "", a.workflowsHint())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (a *App) workflowsHint() string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).
		Render("Enter → resume    n → new    r → rename    d → delete    Esc → dashboard")
}

func (a *App) renderStub(title, note string) string {
	head := lipgloss.NewStyle().Bold(true).Render(title)
	hint := lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).
		Render("Esc → dashboard")
	return strings.Join([]string{head, "", note, "", hint}, "\n")
}
