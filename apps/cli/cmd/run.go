package cmd

import (
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run [--key=value ...] [-- engine-args ...]",
	Short: "Run the BDD suite once",
	Long: `Run the BDD suite once with the given options.

Options use the --key=value form and are applied left to right on top of
the settings file defaults. Arguments after -- go to the test engine
unchanged. Use --help to list every option and its default.

Examples:
  bddrun run --browser=firefox --headless=true --slowmo=0
  bddrun run --report=both --markers="smoke and not slow"
  bddrun run --parallel=yes -- -k contact`,
	Args:               cobra.ArbitraryArgs,
	DisableFlagParsing: true,
	RunE:               runCommand,
}

func runCommand(cmd *cobra.Command, args []string) error {
	a, release, err := newAppForCommand(cmd)
	if err != nil {
		return err
	}
	defer release()

	return a.run(cmd.Context(), args)
}
