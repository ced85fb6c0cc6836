package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/abdul-hamid-achik/bddrun/packages/core/config"
	"github.com/spf13/cobra"
)

var forceInit bool

var initCmd = &cobra.Command{
	Use:   "init [directory]",
	Short: "Initialize a bddrun project",
	Long: `Initialize a bddrun project in the given directory (default: current).

This creates:
  - .bddrun.yaml                      - Settings with every default spelled out
  - tests/features/example.feature    - Example feature file

Examples:
  bddrun init
  bddrun init --force`,
	Args: cobra.MaximumNArgs(1),
	RunE: initCommand,
}

func init() {
	initCmd.Flags().BoolVarP(&forceInit, "force", "f", false, "Overwrite existing files")
}

const exampleFeature = `@example
Feature: Home page

  @smoke
  Scenario: Home page loads
    Given I navigate to the home page
    Then I verify the page title is "Home"
`

// scaffoldSettings spells out the built-in defaults so they are easy to edit
func scaffoldSettings() *config.Settings {
	d := config.DefaultRunConfig()
	s := config.DefaultSettings()

	s.Defaults = config.DefaultsSettings{
		Headless: config.BoolPtr(d.Headless),
		SlowMo:   &d.SlowMo,
		Parallel: config.BoolPtr(d.Parallel),
		Report:   string(d.Report),
		Browser:  string(d.Browser),
		BaseURL:  d.BaseURL,
		Verbose:  config.BoolPtr(d.Verbose),
	}
	s.Reports.Open = config.BoolPtr(false)
	s.History.Enabled = config.BoolPtr(false)
	return s
}

func initCommand(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}

	configFile := filepath.Join(dir, config.SettingsFilenames[0])
	exampleFile := filepath.Join(dir, "tests", "features", "example.feature")

	if !forceInit {
		for _, f := range []string{configFile, exampleFile} {
			if _, err := os.Stat(f); err == nil {
				return fmt.Errorf("file already exists: %s (use --force to overwrite)", f)
			}
		}
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	if err := scaffoldSettings().Save(configFile); err != nil {
		return fmt.Errorf("failed to create settings file: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created: %s\n", configFile)

	if err := os.MkdirAll(filepath.Dir(exampleFile), 0755); err != nil {
		return err
	}
	if err := os.WriteFile(exampleFile, []byte(exampleFeature), 0644); err != nil {
		return fmt.Errorf("failed to create example feature: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created: %s\n", exampleFile)

	fmt.Fprintf(cmd.OutOrStdout(), "\nbddrun project initialized!\n")
	fmt.Fprintf(cmd.OutOrStdout(), "Run 'bddrun list' to see the example scenario.\n")

	return nil
}
