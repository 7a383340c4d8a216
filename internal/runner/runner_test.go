package runner

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"testing"
)

func shell(t *testing.T, script string) (string, []string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		return "cmd", []string{"/c", script}
	}
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	return "sh", []string{"-c", script}
}

func TestExecRunner_PassesEnvironment(t *testing.T) {
	var out bytes.Buffer
	r := &ExecRunner{Stdout: &out, Stderr: &out}

	script := "echo $VC_VERS"
	if runtime.GOOS == "windows" {
		script = "echo %VC_VERS%"
	}
	name, args := shell(t, script)

	env := append(os.Environ(), "VC_VERS=80")
	if err := r.Run(context.Background(), env, name, args...); err != nil {
		t.Fatalf("Run error = %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != "80" {
		t.Errorf("child saw VC_VERS=%q, want 80", got)
	}
}

func TestExecRunner_ExitCode(t *testing.T) {
	r := &ExecRunner{Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}}
	name, args := shell(t, "exit 3")

	err := r.Run(context.Background(), os.Environ(), name, args...)
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("Run error = %v, want *ExitError", err)
	}
	if exitErr.Code != 3 {
		t.Errorf("Code = %d, want 3", exitErr.Code)
	}
}

func TestExecRunner_NotFound(t *testing.T) {
	r := &ExecRunner{}
	err := r.Run(context.Background(), nil, "vcenv-no-such-program")
	if err == nil {
		t.Fatal("expected error")
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		t.Error("a program that never started must not report an exit code")
	}
}
