package cmd

import (
	"fmt"

	"github.com/abdul-hamid-achik/bddrun/packages/features"
	"github.com/spf13/cobra"
)

var validateConfigFlag string

var validateCmd = &cobra.Command{
	Use:   "validate [file|directory ...]",
	Short: "Validate the settings file and feature files",
	Long: `Validate the settings file against its schema and parse every feature
file without running anything.

Examples:
  bddrun validate
  bddrun validate tests/features --config ci.bddrun.yaml`,
	RunE: validateCommand,
}

func init() {
	validateCmd.Flags().StringVar(&validateConfigFlag, "config", getEnvString("BDDRUN_CONFIG", ""), "Path to settings file (env: BDDRUN_CONFIG)")
}

func validateCommand(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings(validateConfigFlag)
	if err != nil {
		return err
	}
	if settings.Path != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "Valid: %s\n", settings.Path)
	}

	paths := args
	if len(paths) == 0 {
		paths = []string{DefaultFeaturePath}
	}

	files, err := features.Files(paths)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no %s files found", features.Extension)
	}

	hasErrors := false
	for _, file := range files {
		if _, err := features.ParseFile(file); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error in %v\n", err)
			hasErrors = true
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "Valid: %s\n", file)
		}
	}

	if hasErrors {
		return fmt.Errorf("validation failed")
	}

	return nil
}
