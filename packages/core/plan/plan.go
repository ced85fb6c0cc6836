package plan

import (
	"strconv"
	"strings"

	"github.com/abdul-hamid-achik/bddrun/packages/core/config"
)

// Invocation is one call of the external test engine
type Invocation struct {
	Command string
	Args    []string
	Dir     string
	Env     []string // KEY=value pairs added to the inherited environment
}

// Build maps cfg to the engine arguments. Order: leading engine args,
// the browser options, parallelism, markers, verbosity, report outputs,
// then passthrough tokens.
func Build(cfg config.RunConfig, engine config.EngineSettings, layout config.Layout, passthrough []string) Invocation {
	command := engine.Command
	if command == "" {
		command = config.DefaultEngineCommand
	}

	args := make([]string, 0, len(engine.Args)+12+len(passthrough))
	args = append(args, engine.Args...)
	args = append(args,
		"--browser="+string(cfg.Browser),
		"--headless="+strconv.FormatBool(cfg.Headless),
		"--slowmo="+strconv.Itoa(cfg.SlowMo),
		"--base-url="+cfg.BaseURL,
	)

	if cfg.Parallel {
		args = append(args, "-n", "auto")
	}
	if cfg.HasMarkers() {
		args = append(args, "-m", cfg.Markers)
	}
	if cfg.Verbose {
		args = append(args, "-v")
	}

	args = append(args, ReportArgs(cfg.Report, layout)...)
	args = append(args, passthrough...)

	return Invocation{
		Command: command,
		Args:    args,
		Dir:     engine.Workdir,
	}
}

// ReportArgs returns the engine arguments that direct report output for mode
func ReportArgs(mode config.ReportMode, layout config.Layout) []string {
	var args []string
	if mode.Allure() {
		args = append(args, "--alluredir="+layout.ResultsDir())
	}
	if mode.HTML() {
		args = append(args, "--html="+layout.HTMLReport(), "--self-contained-html")
	}
	return args
}

// String renders the invocation as a shell command line
func (inv Invocation) String() string {
	parts := make([]string, 0, len(inv.Args)+1)
	parts = append(parts, quote(inv.Command))
	for _, a := range inv.Args {
		parts = append(parts, quote(a))
	}
	return strings.Join(parts, " ")
}

func quote(s string) string {
	if s == "" {
		return "''"
	}
	if strings.IndexFunc(s, needsQuote) < 0 {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func needsQuote(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return false
	}
	return !strings.ContainsRune("-_=./:,@%+", r)
}
