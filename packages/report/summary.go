package report

import (
	"time"

	"github.com/abdul-hamid-achik/bddrun/packages/core/config"
)

// Summary describes one finished run for the console, notifiers and history
type Summary struct {
	RunID     string
	StartedAt time.Time
	Duration  time.Duration
	ExitCode  int
	Config    config.RunConfig
	Stats     *Stats // nil when no allure results were summarized
	Warnings  []Warning

	// IsRecovery marks a passing run that follows a failing one
	IsRecovery bool
}

// Passed reports whether the engine exited successfully
func (s *Summary) Passed() bool {
	return s.ExitCode == 0
}

// FailedCount is the number of failed and broken scenarios, or zero
// when no allure statistics are available
func (s *Summary) FailedCount() int {
	if s.Stats == nil {
		return 0
	}
	return s.Stats.Failed + s.Stats.Broken
}
