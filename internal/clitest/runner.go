// Package clitest runs the simbuild binary as a child process in tests and
// asserts on its exit code and output.
package clitest

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"
)

// ReexecEnv marks a child process that should run main() instead of the tests.
const ReexecEnv = "SIMBUILD_REEXEC_MAIN"

// Runner provides utilities for testing CLI invocations.
type Runner struct {
	t          *testing.T
	binaryPath string
	workingDir string
	env        []string
	timeout    time.Duration
}

// NewRunner creates a runner for binaryPath. Tests usually pass os.Args[0]
// together with a TestMain that checks ReexecEnv.
func NewRunner(t *testing.T, binaryPath string) *Runner {
	return &Runner{
		t:          t,
		binaryPath: binaryPath,
		env:        append(os.Environ(), ReexecEnv+"=1"),
		timeout:    30 * time.Second,
	}
}

// WithWorkingDir sets the working directory for CLI commands.
func (r *Runner) WithWorkingDir(dir string) *Runner {
	r.workingDir = dir
	return r
}

// WithPathPrefix puts dir first on PATH so fake tools shadow real ones.
func (r *Runner) WithPathPrefix(dir string) *Runner {
	r.env = append(r.env, "PATH="+dir+string(os.PathListSeparator)+os.Getenv("PATH"))
	return r
}

// WithPath replaces PATH entirely, hiding every tool outside dir.
func (r *Runner) WithPath(dir string) *Runner {
	r.env = append(r.env, "PATH="+dir)
	return r
}

// Result represents the result of a CLI command execution.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
	Duration time.Duration
	Error    error
}

// Run executes the binary with args and returns the result.
func (r *Runner) Run(args ...string) *Result {
	r.t.Helper()

	start := time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, r.binaryPath, args...) //nolint:gosec // test runner intentionally executes the test binary
	cmd.Dir = r.workingDir
	cmd.Env = r.env

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := &Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
		Error:    err,
	}

	var exitError *exec.ExitError
	switch {
	case err == nil:
		result.ExitCode = 0
	case errors.As(err, &exitError):
		result.ExitCode = exitError.ExitCode()
	default:
		result.ExitCode = -1
	}

	return result
}

// AssertExitCode validates the exit code.
func (result *Result) AssertExitCode(t *testing.T, expected int) *Result {
	t.Helper()
	if result.ExitCode != expected {
		t.Errorf("Expected exit code %d, got %d\nStdout: %s\nStderr: %s",
			expected, result.ExitCode, result.Stdout, result.Stderr)
	}
	return result
}

// AssertOutputContains validates that stdout contains expected text.
func (result *Result) AssertOutputContains(t *testing.T, expected string) *Result {
	t.Helper()
	if !strings.Contains(result.Stdout, expected) {
		t.Errorf("Expected output to contain %q\nActual output: %s", expected, result.Stdout)
	}
	return result
}

// AssertOutputNotContains validates that stdout does not contain text.
func (result *Result) AssertOutputNotContains(t *testing.T, unexpected string) *Result {
	t.Helper()
	if strings.Contains(result.Stdout, unexpected) {
		t.Errorf("Expected output not to contain %q\nActual output: %s", unexpected, result.Stdout)
	}
	return result
}

// AssertErrorContains validates that stderr contains expected text.
func (result *Result) AssertErrorContains(t *testing.T, expected string) *Result {
	t.Helper()
	if !strings.Contains(result.Stderr, expected) {
		t.Errorf("Expected error output to contain %q\nActual error: %s", expected, result.Stderr)
	}
	return result
}

// FakeTool writes an executable shell script named name into dir. The script
// appends its arguments, one per line, to <dir>/<name>.args and exits with exitCode.
func FakeTool(t *testing.T, dir, name string, exitCode int) (argsFile string) {
	t.Helper()
	argsFile = filepath.Join(dir, name+".args")
	script := "#!/bin/sh\nfor a in \"$@\"; do printf '%s\\n' \"$a\" >> '" + argsFile + "'; done\nexit " + strconv.Itoa(exitCode) + "\n"
	if err := os.WriteFile(filepath.Join(dir, name), []byte(script), 0o700); err != nil { //nolint:gosec // test helper needs an executable script
		t.Fatalf("write fake %s: %v", name, err)
	}
	return argsFile
}

// ReadArgs returns the lines recorded by a FakeTool, or nil if it never ran.
func ReadArgs(t *testing.T, argsFile string) []string {
	t.Helper()
	data, err := os.ReadFile(argsFile)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		t.Fatalf("read %s: %v", argsFile, err)
	}
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}
