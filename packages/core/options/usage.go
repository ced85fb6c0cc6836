package options

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/abdul-hamid-achik/bddrun/packages/core/config"
)

// WriteUsage prints every option with its domain and the default in effect
// for defaults, which already carries any settings-file overlay.
func WriteUsage(w io.Writer, program string, defaults config.RunConfig) error {
	fmt.Fprintf(w, "Usage: %s [--key=value ...] [-- engine-args ...]\n\n", program)
	fmt.Fprintf(w, "Options:\n")

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, o := range optionTable {
		fmt.Fprintf(tw, "  --%s=<value>\t%s\tdefault: %s\n", o.name, o.domain, o.current(defaults))
	}
	fmt.Fprintf(tw, "  --help, -h\tshow this help\t\n")
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\nBooleans accept %s (case-insensitive).\n", boolUsage)
	fmt.Fprintf(w, "Arguments after -- are passed to the test engine unchanged.\n")
	return nil
}
