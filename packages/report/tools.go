package report

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"runtime"
)

// Tools looks up and runs the optional external report tools
type Tools interface {
	LookPath(name string) (string, error)
	Run(ctx context.Context, name string, args ...string) error
}

// ExecTools runs tools as child processes, sending their output to a
// single writer
type ExecTools struct {
	Output io.Writer
}

func (t ExecTools) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

func (t ExecTools) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = t.Output
	cmd.Stderr = t.Output
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

const allureTool = "allure"

// ViewerCommand returns the command that opens path in the platform's
// default viewer
func ViewerCommand(goos, path string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{path}
	case "windows":
		return "cmd", []string{"/c", "start", "", path}
	default:
		return "xdg-open", []string{path}
	}
}

func viewerCommand(path string) (string, []string) {
	return ViewerCommand(runtime.GOOS, path)
}
