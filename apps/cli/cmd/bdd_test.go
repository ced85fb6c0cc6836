package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/abdul-hamid-achik/bddrun/packages/core/config"
	"github.com/abdul-hamid-achik/bddrun/packages/core/options"
	"github.com/abdul-hamid-achik/bddrun/packages/core/plan"
	"github.com/abdul-hamid-achik/bddrun/packages/output"
	"github.com/abdul-hamid-achik/bddrun/packages/report"
	"github.com/cucumber/godog"
)

// runState is the per-scenario world of the CLI suite
type runState struct {
	root       string
	engine     *fakeEngine
	err        error
	stdout     bytes.Buffer
	stderr     bytes.Buffer
	sawEmpty   bool
	stats      *report.Stats
	writeFiles []func(plan.Invocation) error
}

func (s *runState) layout() config.Layout {
	return config.Layout{Root: s.root}
}

func (s *runState) reset() error {
	dir, err := os.MkdirTemp("", "bddrun-bdd-")
	if err != nil {
		return err
	}
	*s = runState{root: filepath.Join(dir, "reports"), engine: &fakeEngine{}}
	return nil
}

func (s *runState) engineExitsWith(status int) error {
	s.engine.status = status
	return nil
}

func (s *runState) engineWritesResult(status string) error {
	s.writeFiles = append(s.writeFiles, func(plan.Invocation) error {
		dir := s.layout().ResultsDir()
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
		body := fmt.Sprintf(`{"name":"Home page title","status":%q}`, status)
		return os.WriteFile(filepath.Join(dir, "0001-result.json"), []byte(body), 0644)
	})
	return nil
}

func (s *runState) staleResultExists() error {
	dir := s.layout().ResultsDir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "stale-result.json"), []byte(`{"status":"passed"}`), 0644)
}

func (s *runState) runWith(line string) error {
	settings := config.DefaultSettings()
	settings.Reports.Root = s.root

	s.engine.produce = func(inv plan.Invocation) {
		entries, err := os.ReadDir(s.layout().ResultsDir())
		s.sawEmpty = err == nil && len(entries) == 0
		for _, write := range s.writeFiles {
			_ = write(inv)
		}
	}

	console := output.NewConsole(output.WithWriter(&s.stdout), output.WithErrWriter(&s.stderr), output.WithNoColor(true))
	a := newApp(settings, console,
		withDelegator(s.engine),
		withReports(report.NewManager(report.WithTools(noTools{}))),
		withIDs(func() string { return "bdd" }),
	)

	res, err := a.resolve(strings.Fields(line))
	if err != nil {
		s.err = err
		return nil
	}
	if res.Help {
		s.err = a.usage()
		return nil
	}

	summary, err := a.execute(context.Background(), res)
	s.err = err
	if summary != nil {
		s.stats = summary.Stats
	}
	return nil
}

func (s *runState) exitStatusIs(want int) error {
	if got := exitCode(s.err); got != want {
		return fmt.Errorf("exit status %d, want %d (err: %v)", got, want, s.err)
	}
	return nil
}

func (s *runState) engineCalledWith(arg string) error {
	if len(s.engine.calls) != 1 {
		return fmt.Errorf("engine called %d times", len(s.engine.calls))
	}
	for _, a := range s.engine.calls[0].Args {
		if a == arg {
			return nil
		}
	}
	return fmt.Errorf("argument %q missing from %v", arg, s.engine.calls[0].Args)
}

func (s *runState) engineNotCalledWith(arg string) error {
	if err := s.engineCalledWith(arg); err == nil {
		return fmt.Errorf("argument %q unexpectedly present", arg)
	}
	return nil
}

func (s *runState) engineNotStarted() error {
	if len(s.engine.calls) != 0 {
		return fmt.Errorf("engine called %d times", len(s.engine.calls))
	}
	return nil
}

func (s *runState) errorNames(field, value string) error {
	var invalid *options.InvalidArgumentError
	if !errors.As(s.err, &invalid) {
		return fmt.Errorf("expected an invalid argument error, got %v", s.err)
	}
	if invalid.Field != field || invalid.Value != value {
		return fmt.Errorf("error names %q=%q", invalid.Field, invalid.Value)
	}
	return nil
}

func (s *runState) resultsSummarized(failed int) error {
	if s.stats == nil {
		return errors.New("no allure statistics")
	}
	if s.stats.Failed != failed {
		return fmt.Errorf("%d failed, want %d", s.stats.Failed, failed)
	}
	return nil
}

func (s *runState) warningMentions(text string) error {
	if !strings.Contains(s.stderr.String(), "warning: "+text) {
		return fmt.Errorf("no warning %q in %q", text, s.stderr.String())
	}
	return nil
}

func (s *runState) outputMentions(text string) error {
	if !strings.Contains(s.stdout.String(), text) {
		return fmt.Errorf("%q not in output", text)
	}
	return nil
}

func (s *runState) sawEmptyResults() error {
	if !s.sawEmpty {
		return errors.New("results directory was not empty when the engine started")
	}
	return nil
}

func initializeRunScenario(sc *godog.ScenarioContext, s *runState) {
	sc.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		return ctx, s.reset()
	})
	sc.After(func(ctx context.Context, _ *godog.Scenario, err error) (context.Context, error) {
		_ = os.RemoveAll(filepath.Dir(s.root))
		return ctx, nil
	})

	sc.Step(`^the test engine exits with status (\d+)$`, s.engineExitsWith)
	sc.Step(`^the engine writes an allure result with status "([^"]*)"$`, s.engineWritesResult)
	sc.Step(`^a stale allure result exists$`, s.staleResultExists)
	sc.Step(`^I run bddrun with "([^"]*)"$`, s.runWith)
	sc.Step(`^the exit status is (\d+)$`, s.exitStatusIs)
	sc.Step(`^the engine was called with "([^"]*)"$`, s.engineCalledWith)
	sc.Step(`^the engine was not called with "([^"]*)"$`, s.engineNotCalledWith)
	sc.Step(`^the engine was not started$`, s.engineNotStarted)
	sc.Step(`^the error names "([^"]*)" and "([^"]*)"$`, s.errorNames)
	sc.Step(`^the allure results were summarized with (\d+) failed scenarios?$`, s.resultsSummarized)
	sc.Step(`^a warning mentions "([^"]*)"$`, s.warningMentions)
	sc.Step(`^the output mentions "([^"]*)"$`, s.outputMentions)
	sc.Step(`^the engine saw an empty results directory$`, s.sawEmptyResults)
}

func TestRunFeatures(t *testing.T) {
	state := &runState{}
	suite := godog.TestSuite{
		ScenarioInitializer: func(sc *godog.ScenarioContext) {
			initializeRunScenario(sc, state)
		},
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{filepath.Join("testdata", "features")},
			TestingT: t,
			Tags:     "~@wip",
			NoColors: true,
		},
	}
	if suite.Run() != 0 {
		t.Fatal("bddrun BDD suite failed")
	}
}
