package cmd

import (
	"context"
	"errors"
	"time"

	"github.com/abdul-hamid-achik/bddrun/packages/core/config"
	"github.com/abdul-hamid-achik/bddrun/packages/core/options"
	"github.com/abdul-hamid-achik/bddrun/packages/core/plan"
	"github.com/abdul-hamid-achik/bddrun/packages/core/runner"
	"github.com/abdul-hamid-achik/bddrun/packages/history"
	"github.com/abdul-hamid-achik/bddrun/packages/notify"
	"github.com/abdul-hamid-achik/bddrun/packages/output"
	"github.com/abdul-hamid-achik/bddrun/packages/report"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

const programName = "bddrun"

// runHistory is the part of the history store a run needs
type runHistory interface {
	Record(ctx context.Context, r history.Run) error
	Last(ctx context.Context) (*history.Run, error)
}

// app resolves and executes runs against one set of settings. A single
// app serves every iteration of watch mode so notification state carries
// over between runs.
type app struct {
	settings  *config.Settings
	console   *output.Console
	delegator runner.Delegator
	reports   *report.Manager
	notifier  *notify.Manager
	history   runHistory
	// lastPassed is the result of the previous run in this process
	lastPassed *bool
	now        func() time.Time
	newID      func() string
}

type appOption func(*app)

func withDelegator(d runner.Delegator) appOption {
	return func(a *app) {
		a.delegator = d
	}
}

func withReports(m *report.Manager) appOption {
	return func(a *app) {
		a.reports = m
	}
}

func withNotifier(m *notify.Manager) appOption {
	return func(a *app) {
		a.notifier = m
	}
}

func withHistory(h runHistory) appOption {
	return func(a *app) {
		a.history = h
	}
}

func withClock(now func() time.Time) appOption {
	return func(a *app) {
		a.now = now
	}
}

func withIDs(newID func() string) appOption {
	return func(a *app) {
		a.newID = newID
	}
}

func newApp(settings *config.Settings, console *output.Console, opts ...appOption) *app {
	a := &app{
		settings:  settings,
		console:   console,
		delegator: runner.NewExecDelegator(),
		reports:   report.NewManager(report.WithOpenReport(settings.GetOpenReport())),
		now:       time.Now,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// newAppForCommand builds the app used by run and watch: settings from
// BDDRUN_CONFIG or the working directory, the engine and report tools
// sharing the command's streams, plus the configured notifiers and
// history store. The returned func releases the history store.
func newAppForCommand(cmd *cobra.Command) (*app, func(), error) {
	settings, err := loadSettings(getEnvString("BDDRUN_CONFIG", ""))
	if err != nil {
		return nil, nil, err
	}

	console := output.NewConsole(
		output.WithWriter(cmd.OutOrStdout()),
		output.WithErrWriter(cmd.ErrOrStderr()),
		output.WithNoColor(getEnvBool("BDDRUN_NO_COLOR", false)),
	)

	notifier, err := notify.FromSettings(settings.Notify)
	if err != nil {
		return nil, nil, &ConfigError{Err: err}
	}

	opts := []appOption{
		withDelegator(runner.NewExecDelegator(runner.WithStreams(cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr()))),
		withReports(report.NewManager(
			report.WithOpenReport(settings.GetOpenReport()),
			report.WithTools(report.ExecTools{Output: cmd.ErrOrStderr()}),
		)),
		withNotifier(notifier),
	}

	release := func() {}
	if settings.GetHistoryEnabled() {
		store, err := history.Open(settings.HistoryPath())
		if err != nil {
			console.Warnf("run history disabled: %v", err)
		} else {
			opts = append(opts, withHistory(store))
			release = func() { _ = store.Close() }
		}
	}

	return newApp(settings, console, opts...), release, nil
}

func loadSettings(path string) (*config.Settings, error) {
	settings, err := config.LoadSettings(path)
	if err != nil {
		return nil, &ConfigError{Err: err}
	}
	return settings, nil
}

// resolve parses the command line over the settings defaults
func (a *app) resolve(tokens []string) (options.Result, error) {
	return options.Parse(tokens, a.settings.RunDefaults())
}

// usage prints every option with the defaults currently in effect
func (a *app) usage() error {
	return options.WriteUsage(a.console.Writer(), programName, a.settings.RunDefaults())
}

// run is the whole single-shot lifecycle: resolve, then help or execute
func (a *app) run(ctx context.Context, tokens []string) error {
	res, err := a.resolve(tokens)
	if err != nil {
		return err
	}
	if res.Help {
		return a.usage()
	}
	_, err = a.execute(ctx, res)
	return err
}

// execute cleans stale reports, delegates to the engine and processes the
// reports it left behind. A non-zero engine status comes back as an
// *EngineFailedError after post-run processing has completed.
func (a *app) execute(ctx context.Context, res options.Result) (*report.Summary, error) {
	cfg := res.Config

	env, err := runner.LoadEnvFile(a.settings.Engine.EnvFile)
	if err != nil {
		return nil, &ConfigError{Err: err}
	}

	layout := a.settings.Layout()
	inv := plan.Build(cfg, a.settings.Engine, layout, res.Passthrough)
	inv.Env = env

	reportPlan := report.NewPlan(cfg.Report, layout)
	if err := a.reports.Prepare(reportPlan); err != nil {
		return nil, err
	}

	runID := a.newID()
	a.console.Invocation(inv)

	started := a.now()
	status, err := a.delegator.Run(ctx, inv)
	if err != nil {
		return nil, err
	}

	outcome := a.reports.Finalize(ctx, reportPlan, report.RunInfo{ID: runID, Config: cfg})
	for _, w := range outcome.Warnings {
		a.console.Warning(w)
	}

	summary := &report.Summary{
		RunID:     runID,
		StartedAt: started,
		Duration:  a.now().Sub(started),
		ExitCode:  status,
		Config:    cfg,
		Stats:     outcome.Stats,
		Warnings:  outcome.Warnings,
	}
	a.afterRun(ctx, summary)
	a.console.Summary(summary)

	if status != 0 {
		return summary, &EngineFailedError{Status: status}
	}
	return summary, nil
}

// afterRun marks a recovery against the previous run, then notifies and
// records the run. Notification and recording are best effort.
func (a *app) afterRun(ctx context.Context, summary *report.Summary) {
	previous := a.lastPassed
	if a.history != nil {
		last, err := a.history.Last(ctx)
		if err != nil {
			a.console.Warnf("cannot read run history: %v", err)
		} else if last != nil {
			passed := last.Succeeded()
			previous = &passed
		}
	}

	if previous != nil {
		summary.IsRecovery = summary.Passed() && !*previous
		if a.notifier != nil {
			a.notifier.SetPreviousResult(*previous)
		}
	}
	passed := summary.Passed()
	a.lastPassed = &passed

	if a.notifier != nil && a.notifier.Len() > 0 {
		if err := a.notifier.Notify(ctx, summary); err != nil {
			a.console.Warnf("failed to send notification: %v", err)
		}
	}

	if a.history != nil {
		if err := a.history.Record(ctx, history.FromSummary(summary)); err != nil {
			a.console.Warnf("failed to record run: %v", err)
		}
	}
}

// fatal reports whether err should stop watch mode instead of waiting for
// the next change
func fatal(err error) bool {
	var (
		configErr   *ConfigError
		unavailable *runner.EngineUnavailableError
	)
	return errors.As(err, &configErr) || errors.As(err, &unavailable)
}
