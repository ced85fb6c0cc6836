package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "bddrun [--key=value ...] [-- engine-args ...]",
	Short: "Run browser BDD suites with managed reports.",
	Long: `bddrun validates run options, prepares the report directories,
hands the suite to the test engine and post-processes its reports.
The process exits with the engine's own status.

Running bddrun without a command is the same as "bddrun run".`,
	Args:               cobra.ArbitraryArgs,
	DisableFlagParsing: true,
	SilenceErrors:      true,
	SilenceUsage:       true,
	RunE:               runCommand,
}

func Execute(v, bt string) {
	version = v
	buildTime = bt

	err := rootCmd.Execute()
	if err != nil && !silent(err) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(exitCode(err))
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
}
