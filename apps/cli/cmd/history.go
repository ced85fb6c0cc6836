package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/abdul-hamid-achik/bddrun/packages/history"
	"github.com/abdul-hamid-achik/bddrun/packages/output"
	"github.com/spf13/cobra"
)

var (
	historyLimitFlag   int
	historyOutputFlag  string
	historyConfigFlag  string
	historyVerboseFlag bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent runs",
	Long: `Show runs recorded in the history database, newest first.

Recording is enabled with history.enabled in the settings file.

Examples:
  bddrun history
  bddrun history --limit 5 --output json`,
	Args: cobra.NoArgs,
	RunE: historyCommand,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimitFlag, "limit", "n", 20, "Number of runs to show")
	historyCmd.Flags().StringVarP(&historyOutputFlag, "output", "o", "console", "Output format: console, json")
	historyCmd.Flags().StringVar(&historyConfigFlag, "config", getEnvString("BDDRUN_CONFIG", ""), "Path to settings file (env: BDDRUN_CONFIG)")
	historyCmd.Flags().BoolVarP(&historyVerboseFlag, "verbose", "v", false, "Show scenario counts")
}

func historyCommand(cmd *cobra.Command, args []string) error {
	if historyOutputFlag != "console" && historyOutputFlag != "json" {
		return fmt.Errorf("unknown output format %q", historyOutputFlag)
	}

	settings, err := loadSettings(historyConfigFlag)
	if err != nil {
		return err
	}

	runs, err := recentRuns(cmd, settings.HistoryPath(), historyLimitFlag)
	if err != nil {
		return err
	}

	if historyOutputFlag == "json" {
		return output.NewJSONFormatter(output.JSONWithWriter(cmd.OutOrStdout())).History(runs)
	}

	output.NewConsole(
		output.WithWriter(cmd.OutOrStdout()),
		output.WithErrWriter(cmd.ErrOrStderr()),
		output.WithVerbose(historyVerboseFlag),
		output.WithNoColor(getEnvBool("BDDRUN_NO_COLOR", false)),
	).History(runs)
	return nil
}

// recentRuns reads the history database without creating it
func recentRuns(cmd *cobra.Command, path string, limit int) ([]history.Run, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}

	store, err := history.Open(path)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	return store.Recent(cmd.Context(), limit)
}
