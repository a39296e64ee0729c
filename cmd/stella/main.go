// cmd/stella/main.go
//
// Entry point for the Stella console. Running `stella` in a project
// directory initializes the .stella folder and starts the TUI.
//
// Flags:
//
//	-C <dir>          run against a different project directory
//	-resume <id>      open a saved workflow right after sign-in

package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/stellahq/stella-console/internal/config"
	"github.com/stellahq/stella-console/internal/tui"
)

func main() {
	projectDir := flag.String("C", "", "project directory (defaults to the working directory)")
	resumeID := flag.String("resume", "", "workflow id to resume after sign-in")
	flag.Parse()

	dir := *projectDir
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting working directory: %v\n", err)
			os.Exit(1)
		}
		dir = cwd
	}

	if err := config.InitStellaDir(dir); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing .stella directory: %v\n", err)
		os.Exit(1)
	}

	app, err := tui.NewApp(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error starting console: %v\n", err)
		os.Exit(1)
	}
	if *resumeID != "" {
		app.SetResumeWorkflow(*resumeID)
	}

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running console: %v\n", err)
		os.Exit(1)
	}
}
