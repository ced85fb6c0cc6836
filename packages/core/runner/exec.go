package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/abdul-hamid-achik/bddrun/packages/core/plan"
)

// EngineUnavailableError reports an engine that could not be started at all
type EngineUnavailableError struct {
	Command string
	Err     error
}

func (e *EngineUnavailableError) Error() string {
	return fmt.Sprintf("test engine %q unavailable: %v", e.Command, e.Err)
}

func (e *EngineUnavailableError) Unwrap() error {
	return e.Err
}

// Delegator hands an invocation to the external test engine
type Delegator interface {
	// Run blocks until the engine exits and returns its exit status.
	// A non-zero status is not an error.
	Run(ctx context.Context, inv plan.Invocation) (int, error)
}

// ExecDelegator runs the engine as a child process sharing this
// process's standard streams
type ExecDelegator struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

type ExecOption func(*ExecDelegator)

// WithStreams overrides the standard streams handed to the engine
func WithStreams(stdin io.Reader, stdout, stderr io.Writer) ExecOption {
	return func(d *ExecDelegator) {
		d.stdin = stdin
		d.stdout = stdout
		d.stderr = stderr
	}
}

func NewExecDelegator(opts ...ExecOption) *ExecDelegator {
	d := &ExecDelegator{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Run executes inv and returns the engine's exit status verbatim
func (d *ExecDelegator) Run(ctx context.Context, inv plan.Invocation) (int, error) {
	path, err := exec.LookPath(inv.Command)
	if err != nil {
		return 0, &EngineUnavailableError{Command: inv.Command, Err: err}
	}

	cmd := exec.CommandContext(ctx, path, inv.Args...)
	cmd.Dir = inv.Dir
	cmd.Env = append(os.Environ(), inv.Env...)
	cmd.Stdin = d.stdin
	cmd.Stdout = d.stdout
	cmd.Stderr = d.stderr

	err = cmd.Run()
	if err == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code := exitErr.ExitCode()
		if code < 0 {
			// Killed by a signal; there is no status to propagate
			code = 1
		}
		return code, nil
	}

	return 0, &EngineUnavailableError{Command: inv.Command, Err: err}
}
