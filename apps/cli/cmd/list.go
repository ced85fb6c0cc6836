package cmd

import (
	"fmt"

	"github.com/abdul-hamid-achik/bddrun/packages/features"
	"github.com/abdul-hamid-achik/bddrun/packages/output"
	"github.com/spf13/cobra"
)

// DefaultFeaturePath is listed when no path is given
const DefaultFeaturePath = "tests/features"

var (
	listTagFlag     string
	listOutputFlag  string
	listVerboseFlag bool
)

var listCmd = &cobra.Command{
	Use:   "list [file|directory ...]",
	Short: "List the scenarios in feature files",
	Long: `List every feature and scenario with its tags, so marker expressions
can be composed before a run. Tags inherited from the feature and rule are
included.

Examples:
  bddrun list
  bddrun list tests/features --tag smoke
  bddrun list --output json`,
	RunE: listCommand,
}

func init() {
	listCmd.Flags().StringVarP(&listTagFlag, "tag", "t", "", "Only list scenarios carrying this tag")
	listCmd.Flags().StringVarP(&listOutputFlag, "output", "o", "console", "Output format: console, json")
	listCmd.Flags().BoolVarP(&listVerboseFlag, "verbose", "v", false, "Show scenario steps")
}

func listCommand(cmd *cobra.Command, args []string) error {
	paths := args
	if len(paths) == 0 {
		paths = []string{DefaultFeaturePath}
	}

	console := output.NewConsole(
		output.WithWriter(cmd.OutOrStdout()),
		output.WithErrWriter(cmd.ErrOrStderr()),
		output.WithVerbose(listVerboseFlag),
		output.WithNoColor(getEnvBool("BDDRUN_NO_COLOR", false)),
	)

	list, err := features.Collect(paths)
	if err != nil {
		if list == nil {
			return err
		}
		// Some files failed to parse; list the rest
		console.Warnf("%v", err)
	}
	list = features.FilterByTag(list, listTagFlag)

	switch listOutputFlag {
	case "console":
		console.Features(list)
		return nil
	case "json":
		return output.NewJSONFormatter(output.JSONWithWriter(cmd.OutOrStdout())).Features(list)
	}
	return fmt.Errorf("unknown output format %q", listOutputFlag)
}
