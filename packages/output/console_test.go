package output

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/abdul-hamid-achik/bddrun/packages/core/config"
	"github.com/abdul-hamid-achik/bddrun/packages/core/plan"
	"github.com/abdul-hamid-achik/bddrun/packages/features"
	"github.com/abdul-hamid-achik/bddrun/packages/history"
	"github.com/abdul-hamid-achik/bddrun/packages/report"
	"github.com/stretchr/testify/assert"
)

func newTestConsole(verbose bool) (*Console, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	c := NewConsole(WithWriter(&out), WithErrWriter(&errOut), WithVerbose(verbose), WithNoColor(true))
	return c, &out, &errOut
}

func TestConsole_WarningsGoToStderr(t *testing.T) {
	c, out, errOut := newTestConsole(false)

	c.Warning(report.Warning{Kind: report.ReportToolMissing, Message: "allure command not found"})
	c.Warnf("history unavailable: %s", "locked")
	c.Error(errors.New("unknown option: --foo"))

	assert.Empty(t, out.String())
	assert.Equal(t, "warning: allure command not found\nwarning: history unavailable: locked\nError: unknown option: --foo\n", errOut.String())
}

func TestConsole_Invocation(t *testing.T) {
	c, out, _ := newTestConsole(true)
	c.Invocation(plan.Invocation{Command: "pytest", Args: []string{"--browser=firefox", "-m", "smoke and not slow"}, Dir: "suite"})

	assert.Equal(t, "Running: pytest --browser=firefox -m 'smoke and not slow'\n  in suite\n", out.String())
}

func TestConsole_Summary(t *testing.T) {
	c, out, _ := newTestConsole(false)
	cfg := config.DefaultRunConfig()
	cfg.Markers = "smoke"

	c.Summary(&report.Summary{
		RunID:    "run-42",
		Duration: 3 * time.Second,
		ExitCode: 1,
		Config:   cfg,
		Stats: &report.Stats{
			Total: 3, Passed: 2, Failed: 1,
			Failures: []report.Failure{{Name: "Home page title", Status: "failed", Message: "title mismatch"}},
		},
	})

	s := out.String()
	assert.Contains(t, s, "Run run-42")
	assert.Contains(t, s, "Browser: chromium (headed), report: allure")
	assert.Contains(t, s, "Markers: smoke")
	assert.Contains(t, s, "Scenarios: 2 passed, 1 failed, 3 total")
	assert.Contains(t, s, "✗ Home page title: title mismatch")
	assert.Contains(t, s, "Result: FAILED (exit status 1)")
}

func TestConsole_SummaryWithoutStats(t *testing.T) {
	c, out, _ := newTestConsole(false)
	cfg := config.DefaultRunConfig()
	cfg.Report = config.ReportNone

	c.Summary(&report.Summary{RunID: "r", Config: cfg})

	assert.NotContains(t, out.String(), "Scenarios:")
	assert.Contains(t, out.String(), "Result: PASSED")
}

func TestConsole_SummaryRecovery(t *testing.T) {
	c, out, _ := newTestConsole(false)
	c.Summary(&report.Summary{RunID: "r", Config: config.DefaultRunConfig(), IsRecovery: true})
	assert.Contains(t, out.String(), "Result: PASSED (recovered)\n")

	c, out, _ = newTestConsole(false)
	c.Summary(&report.Summary{RunID: "r", Config: config.DefaultRunConfig()})
	assert.NotContains(t, out.String(), "recovered")
}

func TestConsole_History(t *testing.T) {
	c, out, _ := newTestConsole(false)
	c.History(nil)
	assert.Equal(t, "No runs recorded\n", out.String())

	out.Reset()
	c.History([]history.Run{{
		ID:        "0123456789abcdef",
		StartedAt: time.Date(2026, 10, 19, 8, 0, 0, 0, time.Local),
		Duration:  65 * time.Second,
		ExitCode:  1,
		Browser:   "webkit",
		Report:    "html",
		Markers:   "smoke",
	}})
	assert.Equal(t, "01234567  2026-10-19 08:00:00  fail(1)  webkit  html  1m5s  -m smoke\n", out.String())
}

func TestConsole_Features(t *testing.T) {
	c, out, _ := newTestConsole(false)
	c.Features([]*features.Feature{{
		Name: "Navigation",
		Path: "tests/features/nav.feature",
		Scenarios: []features.Scenario{
			{Name: "Home", Line: 4, Tags: []string{"smoke"}},
			{Name: "Contact", Line: 9},
		},
	}})

	s := out.String()
	assert.Contains(t, s, "Navigation tests/features/nav.feature\n")
	assert.Contains(t, s, "  tests/features/nav.feature:4 Home @smoke\n")
	assert.Contains(t, s, "  tests/features/nav.feature:9 Contact\n")
	assert.Contains(t, s, "2 scenario(s) in 1 feature(s)")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abc...", truncate("abcdef", 3))
}
