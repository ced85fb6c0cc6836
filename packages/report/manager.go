package report

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Outcome is what the post-run phase found and did
type Outcome struct {
	ResultFiles int
	Stats       *Stats // nil unless allure results were found
	Rendered    bool
	Opened      bool
	Warnings    []Warning
}

func (o *Outcome) warn(kind WarningKind, format string, args ...any) {
	o.Warnings = append(o.Warnings, Warning{Kind: kind, Message: fmt.Sprintf(format, args...)})
}

// Manager runs the pre-run and post-run report phases
type Manager struct {
	files FileSystem
	tools Tools
	open  bool
}

type ManagerOption func(*Manager)

func WithFileSystem(files FileSystem) ManagerOption {
	return func(m *Manager) {
		m.files = files
	}
}

func WithTools(tools Tools) ManagerOption {
	return func(m *Manager) {
		m.tools = tools
	}
}

// WithOpenReport opens the html report in the system viewer after a run
func WithOpenReport(open bool) ManagerOption {
	return func(m *Manager) {
		m.open = open
	}
}

func NewManager(opts ...ManagerOption) *Manager {
	m := &Manager{
		files: OSFileSystem{},
		tools: ExecTools{Output: os.Stderr},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Prepare removes stale artifacts so nothing from an earlier run mixes
// with this one. Results directories are left existing and empty.
func (m *Manager) Prepare(p Plan) error {
	if p.Empty() {
		return nil
	}

	for _, dir := range p.ClearDirs {
		if err := m.clearDir(dir); err != nil {
			return err
		}
	}

	for _, file := range p.RemoveFiles {
		if err := m.files.Remove(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return &CleanupError{Path: file, Err: err}
		}
	}
	return nil
}

func (m *Manager) clearDir(dir string) error {
	entries, err := m.files.ReadDir(dir)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return &CleanupError{Path: dir, Err: err}
	}

	for _, e := range entries {
		p := filepath.Join(dir, e.Name())
		if err := m.files.RemoveAll(p); err != nil {
			return &CleanupError{Path: p, Err: err}
		}
	}

	if err := m.files.MkdirAll(dir, 0755); err != nil {
		return &CleanupError{Path: dir, Err: err}
	}
	return nil
}

// Finalize verifies and post-processes the artifacts of a finished run.
// It runs whatever the engine's status was and never fails: every
// problem becomes a warning on the outcome.
func (m *Manager) Finalize(ctx context.Context, p Plan, info RunInfo) *Outcome {
	out := &Outcome{}
	if p.Empty() {
		return out
	}

	if p.ResultsDir != "" {
		m.finalizeAllure(ctx, p, info, out)
	}
	if p.HTMLReport != "" {
		m.finalizeHTML(ctx, p, out)
	}

	return out
}

func (m *Manager) finalizeAllure(ctx context.Context, p Plan, info RunInfo, out *Outcome) {
	paths, err := resultFiles(m.files, p.ResultsDir)
	if err != nil {
		out.warn(NoResultsGenerated, "cannot read %s: %v", p.ResultsDir, err)
		return
	}
	if len(paths) == 0 {
		out.warn(NoResultsGenerated, "no allure results were generated in %s", p.ResultsDir)
		return
	}

	out.ResultFiles = len(paths)
	out.Stats = summarize(m.files, paths)

	if err := writeMetadata(m.files, p.ResultsDir, info); err != nil {
		out.warn(ReportMetadataFailed, "cannot write allure metadata: %v", err)
	}

	if _, err := m.tools.LookPath(allureTool); err != nil {
		out.warn(ReportToolMissing, "allure command not found; skipping report generation (results kept in %s)", p.ResultsDir)
		return
	}

	if err := m.tools.Run(ctx, allureTool, "generate", p.ResultsDir, "-o", p.AllureReportDir, "--clean"); err != nil {
		out.warn(ReportRenderFailed, "allure report generation failed: %v", err)
		return
	}
	out.Rendered = true
}

func (m *Manager) finalizeHTML(ctx context.Context, p Plan, out *Outcome) {
	if _, err := m.files.Stat(p.HTMLReport); err != nil {
		out.warn(ReportFileMissing, "html report not found at %s", p.HTMLReport)
		return
	}

	if !m.open {
		return
	}

	name, args := viewerCommand(p.HTMLReport)
	if _, err := m.tools.LookPath(name); err != nil {
		out.warn(ReportViewerFailed, "no viewer available to open %s", p.HTMLReport)
		return
	}
	if err := m.tools.Run(ctx, name, args...); err != nil {
		out.warn(ReportViewerFailed, "cannot open %s: %v", p.HTMLReport, err)
		return
	}
	out.Opened = true
}
