package cmd

import (
	"errors"
	"fmt"

	"github.com/abdul-hamid-achik/bddrun/packages/core/options"
	"github.com/abdul-hamid-achik/bddrun/packages/core/runner"
	"github.com/abdul-hamid-achik/bddrun/packages/report"
)

// Exit codes for the bddrun CLI. A test engine failure is propagated as
// the engine's own status instead of a fixed code.
const (
	// ExitSuccess indicates the engine succeeded or help was printed
	ExitSuccess = 0

	// ExitFailure indicates an error with no more specific code
	ExitFailure = 1

	// ExitUsageError indicates an invalid value or an unknown option
	ExitUsageError = 64

	// ExitEngineUnavailable indicates the test engine could not be started
	ExitEngineUnavailable = 69

	// ExitCleanupError indicates stale report artifacts could not be removed
	ExitCleanupError = 73

	// ExitConfigError indicates an invalid settings or env file
	ExitConfigError = 78
)

// ConfigError wraps a settings problem found before any run starts
type ConfigError struct {
	Err error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration error: %v", e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// EngineFailedError carries the engine's non-zero exit status
type EngineFailedError struct {
	Status int
}

func (e *EngineFailedError) Error() string {
	return fmt.Sprintf("test engine exited with status %d", e.Status)
}

// exitCode maps an error returned by a command to the process status
func exitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var (
		engineFailed *EngineFailedError
		invalid      *options.InvalidArgumentError
		unknown      *options.UnknownOptionError
		unavailable  *runner.EngineUnavailableError
		cleanup      *report.CleanupError
		configErr    *ConfigError
	)

	switch {
	case errors.As(err, &engineFailed):
		return engineFailed.Status
	case errors.As(err, &invalid), errors.As(err, &unknown):
		return ExitUsageError
	case errors.As(err, &unavailable):
		return ExitEngineUnavailable
	case errors.As(err, &cleanup):
		return ExitCleanupError
	case errors.As(err, &configErr):
		return ExitConfigError
	}
	return ExitFailure
}

// silent reports whether err was already made visible to the user
func silent(err error) bool {
	var engineFailed *EngineFailedError
	return errors.As(err, &engineFailed)
}
