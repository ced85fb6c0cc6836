package report

import "github.com/abdul-hamid-achik/bddrun/packages/core/config"

// Plan lists the pre-run and post-run report actions for one run
type Plan struct {
	Mode config.ReportMode

	// Pre-run: directories emptied and files removed
	ClearDirs   []string
	RemoveFiles []string

	// Post-run: allure results to count and render, html report to verify
	ResultsDir      string
	AllureReportDir string
	HTMLReport      string
}

// NewPlan derives the report actions for mode under layout
func NewPlan(mode config.ReportMode, layout config.Layout) Plan {
	p := Plan{Mode: mode}
	if mode.Allure() {
		p.ClearDirs = append(p.ClearDirs, layout.ResultsDir())
		p.ResultsDir = layout.ResultsDir()
		p.AllureReportDir = layout.AllureReportDir()
	}
	if mode.HTML() {
		p.RemoveFiles = append(p.RemoveFiles, layout.HTMLReport())
		p.HTMLReport = layout.HTMLReport()
	}
	return p
}

// Empty reports whether the plan has no actions at all
func (p Plan) Empty() bool {
	return len(p.ClearDirs) == 0 && len(p.RemoveFiles) == 0 &&
		p.ResultsDir == "" && p.HTMLReport == ""
}
