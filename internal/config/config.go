// internal/config/config.go
//
// This package handles configuration and the .stella directory structure.
// Every project that uses the Stella console gets a .stella/ folder created
// in its root; workflow drafts, template drafts and logs all live under it.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// StellaDir is the name of the directory we create in each project
	StellaDir = ".stella"

	defaultCountry             = "United States"
	defaultAuditRetentionDays  = 90
	defaultConfidenceThreshold = 85
)

const defaultProjectConfigYAML = `# stella console configuration
version: 1

# Display name used for the dashboard greeting after login.
operator: Administrator

defaults:
  # Country pre-selected on the company-info step.
  country: United States
  # Audit trail retention shown on the output-format step (minimum 90 days).
  audit_retention_days: 90
  # Starting confidence threshold for the validation-rules step (50-100).
  confidence_threshold: 85
`

// OnboardingDefaults seeds wizard steps that carry pre-filled values.
type OnboardingDefaults struct {
	Country             string `yaml:"country"`
	AuditRetentionDays  int    `yaml:"audit_retention_days"`
	ConfidenceThreshold int    `yaml:"confidence_threshold"`
}

// ProjectConfig models .stella/config.yaml.
type ProjectConfig struct {
	Version  int                `yaml:"version"`
	Operator string             `yaml:"operator,omitempty"`
	Defaults OnboardingDefaults `yaml:"defaults"`
}

// Config holds the runtime configuration for the Stella console.
type Config struct {
	// ProjectDir is the directory where the user ran `stella` from
	ProjectDir string

	// StellaProjectDir is ProjectDir/.stella
	StellaProjectDir string

	Project ProjectConfig
}

// InitStellaDir creates the .stella directory structure in the given project
// directory. This is called when the console starts up.
//
// Structure created:
// .stella/
// ├── state/  <- workflow drafts + template drafts (JSON collections)
// └── logs/   <- console activity log
func InitStellaDir(projectDir string) error {
	stellaDir := filepath.Join(projectDir, StellaDir)

	dirs := []string{
		filepath.Join(stellaDir, "state"),
		filepath.Join(stellaDir, "logs"),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	return ensureProjectConfig(filepath.Join(stellaDir, "config.yaml"))
}

// NewConfig creates a new Config instance populated with project settings.
func NewConfig(projectDir string) (*Config, error) {
	cfg := &Config{
		ProjectDir:       projectDir,
		StellaProjectDir: filepath.Join(projectDir, StellaDir),
		Project:          defaultProjectConfig(),
	}

	if err := cfg.loadProjectConfig(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// StateDir returns the path to the state directory
func (c *Config) StateDir() string {
	return filepath.Join(c.StellaProjectDir, "state")
}

// LogsDir returns the path to the logs directory
func (c *Config) LogsDir() string {
	return filepath.Join(c.StellaProjectDir, "logs")
}

// WorkflowStorePath returns the JSON collection holding workflow drafts.
func (c *Config) WorkflowStorePath() string {
	return filepath.Join(c.StateDir(), "workflows.json")
}

// TemplateStorePath returns the JSON collection holding template drafts.
func (c *Config) TemplateStorePath() string {
	return filepath.Join(c.StateDir(), "template-drafts.json")
}

// LogPath returns the console activity log file.
func (c *Config) LogPath() string {
	return filepath.Join(c.LogsDir(), "console.log")
}

// ProjectConfigPath returns the on-disk location for the project config file.
func (c *Config) ProjectConfigPath() string {
	return filepath.Join(c.StellaProjectDir, "config.yaml")
}

// Operator returns the display name used for the dashboard greeting.
func (c *Config) Operator() string {
	return c.Project.Operator
}

// DefaultCountry returns the country pre-selected on the company-info step.
func (c *Config) DefaultCountry() string {
	return c.Project.Defaults.Country
}

// AuditRetentionDays returns the audit trail retention period.
func (c *Config) AuditRetentionDays() int {
	return c.Project.Defaults.AuditRetentionDays
}

// ConfidenceThreshold returns the starting validation confidence threshold.
func (c *Config) ConfidenceThreshold() int {
	return c.Project.Defaults.ConfidenceThreshold
}

func (c *Config) loadProjectConfig() error {
	path := c.ProjectConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	var parsed ProjectConfig
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	parsed.applyDefaults()
	parsed.normalize()
	if err := parsed.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	c.Project = parsed
	return nil
}

// Save persists the current project configuration back to config.yaml.
func (c *Config) Save() error {
	if c == nil {
		return fmt.Errorf("config: nil receiver")
	}
	c.Project.applyDefaults()
	c.Project.normalize()
	if err := c.Project.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := os.MkdirAll(c.StellaProjectDir, 0o755); err != nil {
		return fmt.Errorf("config: ensure stella dir: %w", err)
	}
	data, err := yaml.Marshal(c.Project)
	if err != nil {
		return fmt.Errorf("config: encode config: %w", err)
	}
	if err := os.WriteFile(c.ProjectConfigPath(), data, 0644); err != nil {
		return fmt.Errorf("config: write project config: %w", err)
	}
	return nil
}

func defaultProjectConfig() ProjectConfig {
	return ProjectConfig{
		Version:  1,
		Operator: "Administrator",
		Defaults: OnboardingDefaults{
			Country:             defaultCountry,
			AuditRetentionDays:  defaultAuditRetentionDays,
			ConfidenceThreshold: defaultConfidenceThreshold,
		},
	}
}

func (pc *ProjectConfig) applyDefaults() {
	if pc.Version == 0 {
		pc.Version = 1
	}
	if pc.Defaults.Country == "" {
		pc.Defaults.Country = defaultCountry
	}
	if pc.Defaults.AuditRetentionDays == 0 {
		pc.Defaults.AuditRetentionDays = defaultAuditRetentionDays
	}
	if pc.Defaults.ConfidenceThreshold == 0 {
		pc.Defaults.ConfidenceThreshold = defaultConfidenceThreshold
	}
}

func (pc *ProjectConfig) normalize() {
	pc.Operator = strings.TrimSpace(pc.Operator)
	if pc.Operator == "" {
		pc.Operator = "Administrator"
	}
	pc.Defaults.Country = strings.TrimSpace(pc.Defaults.Country)
}

func (pc *ProjectConfig) validate() error {
	if pc.Version < 1 {
		return fmt.Errorf("config version must be >= 1")
	}
	if pc.Defaults.AuditRetentionDays < 1 {
		return fmt.Errorf("defaults.audit_retention_days must be >= 1")
	}
	if pc.Defaults.ConfidenceThreshold < 50 || pc.Defaults.ConfidenceThreshold > 100 {
		return fmt.Errorf("defaults.confidence_threshold must be between 50 and 100")
	}
	return nil
}

func ensureProjectConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.WriteFile(path, []byte(defaultProjectConfigYAML), 0644)
}
