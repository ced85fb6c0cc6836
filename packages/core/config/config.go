package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Settings represents the bddrun project configuration file
type Settings struct {
	Defaults DefaultsSettings `yaml:"defaults,omitempty"`
	Engine   EngineSettings   `yaml:"engine,omitempty"`
	Reports  ReportSettings   `yaml:"reports,omitempty"`
	Notify   NotifySettings   `yaml:"notify,omitempty"`
	History  HistorySettings  `yaml:"history,omitempty"`
	Watch    WatchSettings    `yaml:"watch,omitempty"`

	// Path is the file the settings were loaded from, empty for built-ins
	Path string `yaml:"-"`
}

// DefaultsSettings overlays the built-in run defaults. Nil and empty
// values leave the built-in default in place.
type DefaultsSettings struct {
	Headless *bool   `yaml:"headless,omitempty"`
	SlowMo   *int    `yaml:"slowmo,omitempty"`
	Parallel *bool   `yaml:"parallel,omitempty"`
	Report   string  `yaml:"report,omitempty"`
	Browser  string  `yaml:"browser,omitempty"`
	BaseURL  string  `yaml:"baseUrl,omitempty"`
	Markers  *string `yaml:"markers,omitempty"`
	Verbose  *bool   `yaml:"verbose,omitempty"`
}

// EngineSettings describes how the external test engine is invoked
type EngineSettings struct {
	Command string   `yaml:"command,omitempty"`
	Args    []string `yaml:"args,omitempty"`
	Workdir string   `yaml:"workdir,omitempty"`
	EnvFile string   `yaml:"envFile,omitempty"`
}

// ReportSettings locates report artifacts and controls the html viewer
type ReportSettings struct {
	Root string `yaml:"root,omitempty"`
	Open *bool  `yaml:"open,omitempty"`
}

// NotifySettings configures run notifications
type NotifySettings struct {
	On    string        `yaml:"on,omitempty"`
	Slack SlackSettings `yaml:"slack,omitempty"`
	Teams TeamsSettings `yaml:"teams,omitempty"`
}

type SlackSettings struct {
	Webhook string `yaml:"webhook,omitempty"`
	Channel string `yaml:"channel,omitempty"`
}

type TeamsSettings struct {
	Webhook string `yaml:"webhook,omitempty"`
}

// HistorySettings configures the run history database
type HistorySettings struct {
	Enabled *bool  `yaml:"enabled,omitempty"`
	Path    string `yaml:"path,omitempty"`
}

// WatchSettings lists the directories watched by `bddrun watch`
type WatchSettings struct {
	Paths []string `yaml:"paths,omitempty"`
}

// BoolPtr returns a pointer to b
func BoolPtr(b bool) *bool {
	return &b
}

// getBool returns the value of a bool pointer, or the default if nil
func getBool(b *bool, defaultVal bool) bool {
	if b == nil {
		return defaultVal
	}
	return *b
}

// Layout returns the report layout rooted at the configured reports root.
// With an engine workdir a relative root lives under that workdir and is
// made absolute, so the engine and the report phases name the same files.
func (s *Settings) Layout() Layout {
	root := s.Reports.Root
	if root == "" {
		root = DefaultReportsRoot
	}
	if s.Engine.Workdir != "" && !filepath.IsAbs(root) {
		root = filepath.Join(s.Engine.Workdir, root)
		if abs, err := filepath.Abs(root); err == nil {
			root = abs
		}
	}
	return Layout{Root: root}
}

// ValidateBaseURL checks that value is an absolute http or https URL
func ValidateBaseURL(value string) error {
	u, err := url.Parse(value)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.New("scheme must be http or https")
	}
	if u.Host == "" {
		return errors.New("host is missing")
	}
	return nil
}

// GetOpenReport returns whether the html report is opened after a run, defaulting to false
func (s *Settings) GetOpenReport() bool {
	return getBool(s.Reports.Open, false)
}

// GetHistoryEnabled returns whether runs are recorded, defaulting to false
func (s *Settings) GetHistoryEnabled() bool {
	return getBool(s.History.Enabled, false)
}

// HistoryPath returns the history database path
func (s *Settings) HistoryPath() string {
	if s.History.Path != "" {
		return s.History.Path
	}
	return s.Layout().HistoryDB()
}

// RunDefaults overlays the file defaults on the built-in run configuration.
// The schema has already constrained every value, so no further checks run here.
func (s *Settings) RunDefaults() RunConfig {
	cfg := DefaultRunConfig()
	d := s.Defaults

	cfg.Headless = getBool(d.Headless, cfg.Headless)
	cfg.Parallel = getBool(d.Parallel, cfg.Parallel)
	cfg.Verbose = getBool(d.Verbose, cfg.Verbose)
	if d.SlowMo != nil {
		cfg.SlowMo = *d.SlowMo
	}
	if d.Report != "" {
		cfg.Report = ReportMode(d.Report)
	}
	if d.Browser != "" {
		cfg.Browser = Browser(d.Browser)
	}
	if d.BaseURL != "" {
		cfg.BaseURL = d.BaseURL
	}
	if d.Markers != nil {
		cfg.Markers = *d.Markers
	}
	return cfg
}

// SettingsFilenames contains the possible settings file names, in lookup order
var SettingsFilenames = []string{
	".bddrun.yaml",
	".bddrun.yml",
	"bddrun.yaml",
}

// LoadSettings loads settings from the specified path or searches the
// current directory for a settings file
func LoadSettings(path string) (*Settings, error) {
	if path != "" {
		return loadSettingsFromFile(path)
	}
	return FindAndLoadSettings(".")
}

// FindAndLoadSettings searches for a settings file in the given directory
func FindAndLoadSettings(dir string) (*Settings, error) {
	for _, filename := range SettingsFilenames {
		p := filepath.Join(dir, filename)
		if _, err := os.Stat(p); err == nil {
			return loadSettingsFromFile(p)
		}
	}

	// Return defaults if no settings file found
	return DefaultSettings(), nil
}

func loadSettingsFromFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read settings file: %w", err)
	}

	s, err := ParseSettings(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	s.Path = path
	return s, nil
}

// ParseSettings decodes and validates a YAML settings document
func ParseSettings(data []byte) (*Settings, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}
	if doc == nil {
		return DefaultSettings(), nil
	}

	if err := validateDocument(doc); err != nil {
		return nil, err
	}

	s := DefaultSettings()
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	if s.Defaults.BaseURL != "" {
		if err := ValidateBaseURL(s.Defaults.BaseURL); err != nil {
			return nil, fmt.Errorf("defaults.baseUrl %q: %w", s.Defaults.BaseURL, err)
		}
	}
	if s.Engine.Command == "" {
		s.Engine.Command = DefaultEngineCommand
	}
	if s.Notify.On == "" {
		s.Notify.On = DefaultNotifyOn
	}
	return s, nil
}

// Save writes the settings as YAML
func (s *Settings) Save(path string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
