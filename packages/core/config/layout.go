package config

import "path/filepath"

// Layout resolves the fixed report locations under a reports root.
type Layout struct {
	Root string
}

// ResultsDir is where the engine writes allure result artifacts.
func (l Layout) ResultsDir() string {
	return filepath.Join(l.Root, "allure-results")
}

// HTMLReport is the self-contained html report file.
func (l Layout) HTMLReport() string {
	return filepath.Join(l.Root, "report.html")
}

// AllureReportDir is where the allure renderer writes the generated site.
func (l Layout) AllureReportDir() string {
	return filepath.Join(l.Root, "allure-report")
}

// HistoryDB is the default location of the run history database.
func (l Layout) HistoryDB() string {
	return filepath.Join(l.Root, "history.db")
}
