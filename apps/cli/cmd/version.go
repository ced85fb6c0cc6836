package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

var versionShort bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	RunE:  versionCommand,
}

func init() {
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "Print only the version number")
}

func versionCommand(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	if versionShort {
		fmt.Fprintln(out, version)
		return nil
	}

	fmt.Fprintf(out, "bddrun version %s\n", version)
	fmt.Fprintf(out, "Built:    %s\n", buildTime)
	fmt.Fprintf(out, "Go:       %s\n", runtime.Version())
	fmt.Fprintf(out, "Platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	return nil
}
