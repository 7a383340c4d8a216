// Package runner starts the child process that inherits the prepared
// environment.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// Runner starts a command and waits for it.
type Runner interface {
	Run(ctx context.Context, env []string, name string, args ...string) error
}

// ExitError reports a child that ran and exited with a non-zero code.
type ExitError struct {
	Name string
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s exited with code %d", e.Name, e.Code)
}

// ExecRunner implements Runner with os/exec. The child shares the standard
// streams of the current process unless others are set.
type ExecRunner struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewExecRunner creates an ExecRunner wired to the process streams.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
}

// Run starts name with args and env and waits for it to exit. A non-zero
// exit is returned as *ExitError; failing to start is returned as is.
func (r *ExecRunner) Run(ctx context.Context, env []string, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Env = env
	cmd.Stdin = r.Stdin
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr

	err := cmd.Run()
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && ctx.Err() == nil {
		return &ExitError{Name: name, Code: exitErr.ExitCode()}
	}
	return fmt.Errorf("failed to run %s: %w", name, err)
}
