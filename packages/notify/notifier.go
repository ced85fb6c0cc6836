// Package notify posts run results to chat webhooks.
package notify

import (
	"context"
	"errors"
	"fmt"

	"github.com/abdul-hamid-achik/bddrun/packages/report"
)

// NotifyOn specifies when to send notifications
type NotifyOn string

const (
	// NotifyAlways sends notifications for every run
	NotifyAlways NotifyOn = "always"
	// NotifyFailure sends notifications only when the engine fails
	NotifyFailure NotifyOn = "failure"
	// NotifySuccess sends notifications only when the engine succeeds
	NotifySuccess NotifyOn = "success"
	// NotifyRecovery sends notifications on failure and on the first
	// success after a failure
	NotifyRecovery NotifyOn = "recovery"
)

// ParseNotifyOn validates a notification policy name
func ParseNotifyOn(s string) (NotifyOn, error) {
	switch on := NotifyOn(s); on {
	case NotifyAlways, NotifyFailure, NotifySuccess, NotifyRecovery:
		return on, nil
	}
	return "", fmt.Errorf("unknown notification policy %q", s)
}

// Notifier is the interface for notification services
type Notifier interface {
	// Notify sends a notification about a finished run
	Notify(ctx context.Context, summary *report.Summary) error

	// Name returns the name of the notifier
	Name() string
}

// Manager manages multiple notifiers
type Manager struct {
	notifiers []Notifier
	notifyOn  NotifyOn
	lastState bool // true if last run was successful
}

// NewManager creates a new notification manager
func NewManager(notifyOn NotifyOn, notifiers ...Notifier) *Manager {
	return &Manager{
		notifiers: notifiers,
		notifyOn:  notifyOn,
		lastState: true,
	}
}

// AddNotifier adds a notifier to the manager
func (m *Manager) AddNotifier(n Notifier) {
	m.notifiers = append(m.notifiers, n)
}

// Len returns the number of configured notifiers
func (m *Manager) Len() int {
	return len(m.notifiers)
}

// SetPreviousResult seeds the recovery state, usually from run history
func (m *Manager) SetPreviousResult(passed bool) {
	m.lastState = passed
}

// ShouldNotify applies the policy to a run. It marks the summary as a
// recovery when it is one.
func (m *Manager) ShouldNotify(summary *report.Summary) bool {
	passed := summary.Passed()
	summary.IsRecovery = passed && !m.lastState

	switch m.notifyOn {
	case NotifyAlways:
		return true
	case NotifyFailure:
		return !passed
	case NotifySuccess:
		return passed
	case NotifyRecovery:
		return !passed || summary.IsRecovery
	}
	return false
}

// Notify sends notifications based on the configured policy. Every
// notifier is attempted; failures are joined.
func (m *Manager) Notify(ctx context.Context, summary *report.Summary) error {
	should := m.ShouldNotify(summary)
	m.lastState = summary.Passed()

	if !should {
		return nil
	}

	var errs []error
	for _, n := range m.notifiers {
		if err := n.Notify(ctx, summary); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", n.Name(), err))
		}
	}
	return errors.Join(errs...)
}

// headline is the one-line verdict shared by every notifier
func headline(summary *report.Summary) string {
	switch {
	case !summary.Passed() && summary.FailedCount() > 0:
		return fmt.Sprintf("%d scenario(s) failed", summary.FailedCount())
	case !summary.Passed():
		return fmt.Sprintf("Run failed with exit status %d", summary.ExitCode)
	case summary.IsRecovery:
		return "Scenarios recovered!"
	}
	return "All scenarios passed!"
}

func configLine(summary *report.Summary) string {
	cfg := summary.Config
	mode := "headed"
	if cfg.Headless {
		mode = "headless"
	}
	line := fmt.Sprintf("%s (%s) against %s", cfg.Browser, mode, cfg.BaseURL)
	if cfg.HasMarkers() {
		line += fmt.Sprintf(", markers: %s", cfg.Markers)
	}
	return line
}
