package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/abdul-hamid-achik/bddrun/packages/core/plan"
	"github.com/abdul-hamid-achik/bddrun/packages/features"
	"github.com/abdul-hamid-achik/bddrun/packages/history"
	"github.com/abdul-hamid-achik/bddrun/packages/report"
	"github.com/fatih/color"
)

// truncate shortens s to maxLen runes, marking the cut
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) > maxLen {
		return string(r[:maxLen]) + "..."
	}
	return s
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// Console prints run progress, warnings and summaries for humans.
// Warnings and errors go to the error writer.
type Console struct {
	writer    io.Writer
	errWriter io.Writer
	verbose   bool
	noColor   bool
}

type ConsoleOption func(*Console)

func NewConsole(opts ...ConsoleOption) *Console {
	c := &Console{
		writer:    os.Stdout,
		errWriter: os.Stderr,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.noColor {
		color.NoColor = true
	}
	return c
}

func WithWriter(w io.Writer) ConsoleOption {
	return func(c *Console) {
		c.writer = w
	}
}

func WithErrWriter(w io.Writer) ConsoleOption {
	return func(c *Console) {
		c.errWriter = w
	}
}

func WithVerbose(v bool) ConsoleOption {
	return func(c *Console) {
		c.verbose = v
	}
}

func WithNoColor(nc bool) ConsoleOption {
	return func(c *Console) {
		c.noColor = nc
	}
}

// Writer returns the standard output writer
func (c *Console) Writer() io.Writer {
	return c.writer
}

func (c *Console) Header(version string) {
	bold := color.New(color.Bold).SprintFunc()
	fmt.Fprintf(c.writer, "%s %s\n", bold("bddrun"), version)
}

// Invocation echoes the engine command line before it runs
func (c *Console) Invocation(inv plan.Invocation) {
	cyan := color.New(color.FgCyan).SprintFunc()
	fmt.Fprintf(c.writer, "%s %s\n", cyan("Running:"), inv.String())
	if c.verbose && inv.Dir != "" {
		fmt.Fprintf(c.writer, "  in %s\n", inv.Dir)
	}
}

func (c *Console) Info(format string, args ...any) {
	fmt.Fprintf(c.writer, format+"\n", args...)
}

func (c *Console) Warning(w report.Warning) {
	yellow := color.New(color.FgYellow).SprintFunc()
	fmt.Fprintf(c.errWriter, "%s %s\n", yellow("warning:"), w.Message)
}

// Warnf prints a warning that has no report kind
func (c *Console) Warnf(format string, args ...any) {
	yellow := color.New(color.FgYellow).SprintFunc()
	fmt.Fprintf(c.errWriter, "%s %s\n", yellow("warning:"), fmt.Sprintf(format, args...))
}

func (c *Console) Error(err error) {
	red := color.New(color.FgRed).SprintFunc()
	fmt.Fprintf(c.errWriter, "%s %v\n", red("Error:"), err)
}

func (c *Console) Summary(s *report.Summary) {
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	bold := color.New(color.Bold).SprintFunc()

	mode := "headed"
	if s.Config.Headless {
		mode = "headless"
	}

	fmt.Fprintf(c.writer, "\n%s\n", bold("Run "+s.RunID))
	fmt.Fprintf(c.writer, "Browser: %s (%s), report: %s\n", s.Config.Browser, mode, s.Config.Report)
	if s.Config.HasMarkers() {
		fmt.Fprintf(c.writer, "Markers: %s\n", s.Config.Markers)
	}

	if st := s.Stats; st != nil {
		fmt.Fprintf(c.writer, "Scenarios: ")
		if st.Passed > 0 {
			fmt.Fprintf(c.writer, "%s, ", green(fmt.Sprintf("%d passed", st.Passed)))
		}
		if st.Failed > 0 {
			fmt.Fprintf(c.writer, "%s, ", red(fmt.Sprintf("%d failed", st.Failed)))
		}
		if st.Broken > 0 {
			fmt.Fprintf(c.writer, "%s, ", red(fmt.Sprintf("%d broken", st.Broken)))
		}
		if st.Skipped > 0 {
			fmt.Fprintf(c.writer, "%s, ", yellow(fmt.Sprintf("%d skipped", st.Skipped)))
		}
		fmt.Fprintf(c.writer, "%d total\n", st.Total)

		for _, f := range st.Failures {
			fmt.Fprintf(c.writer, "  %s %s", red("✗"), f.Name)
			if f.Message != "" {
				fmt.Fprintf(c.writer, ": %s", truncate(f.Message, 120))
			}
			fmt.Fprintf(c.writer, "\n")
		}
	}

	fmt.Fprintf(c.writer, "Time:   %s\n", s.Duration.Round(time.Millisecond))
	if s.Passed() && s.IsRecovery {
		fmt.Fprintf(c.writer, "Result: %s (recovered)\n", green("PASSED"))
	} else if s.Passed() {
		fmt.Fprintf(c.writer, "Result: %s\n", green("PASSED"))
	} else {
		fmt.Fprintf(c.writer, "Result: %s (exit status %d)\n", red("FAILED"), s.ExitCode)
	}
	if n := len(s.Warnings); n > 0 && c.verbose {
		fmt.Fprintf(c.writer, "%s\n", yellow(fmt.Sprintf("%d report warning(s)", n)))
	}
}

// History prints recorded runs, newest first
func (c *Console) History(runs []history.Run) {
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	if len(runs) == 0 {
		fmt.Fprintf(c.writer, "No runs recorded\n")
		return
	}

	for _, r := range runs {
		status := green("pass")
		if r.ExitCode != 0 {
			status = red(fmt.Sprintf("fail(%d)", r.ExitCode))
		}
		line := []string{
			r.StartedAt.Local().Format("2006-01-02 15:04:05"),
			status,
			r.Browser,
			r.Report,
			r.Duration.Round(time.Second).String(),
		}
		if r.Markers != "" {
			line = append(line, "-m "+r.Markers)
		}
		fmt.Fprintf(c.writer, "%s  %s\n", shortID(r.ID), strings.Join(line, "  "))
		if c.verbose && r.Total > 0 {
			fmt.Fprintf(c.writer, "          %d passed, %d failed, %d broken, %d total\n", r.Passed, r.Failed, r.Broken, r.Total)
		}
	}
}

// Features prints a feature listing with scenario tags
func (c *Console) Features(list []*features.Feature) {
	bold := color.New(color.Bold).SprintFunc()
	gray := color.New(color.FgHiBlack).SprintFunc()

	if len(list) == 0 {
		fmt.Fprintf(c.writer, "No scenarios found\n")
		return
	}

	for _, f := range list {
		fmt.Fprintf(c.writer, "%s %s\n", bold(f.Name), gray(f.Path))
		for _, s := range f.Scenarios {
			fmt.Fprintf(c.writer, "  %s:%d %s", f.Path, s.Line, s.Name)
			if len(s.Tags) > 0 {
				fmt.Fprintf(c.writer, " %s", gray("@"+strings.Join(s.Tags, " @")))
			}
			fmt.Fprintf(c.writer, "\n")
			if c.verbose {
				for _, step := range s.Steps {
					fmt.Fprintf(c.writer, "      %s\n", step)
				}
			}
		}
	}
	fmt.Fprintf(c.writer, "\n%d scenario(s) in %d feature(s)\n", features.CountScenarios(list), len(list))
}
