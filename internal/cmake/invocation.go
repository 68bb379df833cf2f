package cmake

import (
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/cachesim/simbuild/internal/logfields"
)

const (
	// DefaultTool is the configuration tool invocation name.
	DefaultTool = "cmake"
	// DefaultSourceDir is the source tree passed to the tool.
	DefaultSourceDir = "."

	SourceDirFlag = "-S"
	BuildDirFlag  = "-B"
)

// Invocation is a single configuration tool command line.
type Invocation struct {
	Tool        string
	SourceDir   string
	BuildDir    string
	Definitions []string
}

// Args returns the argument list in its fixed shape:
// [-S, source, -B, build, definitions...].
func (i Invocation) Args() []string {
	args := make([]string, 0, 4+len(i.Definitions))
	args = append(args, SourceDirFlag, i.SourceDir, BuildDirFlag, i.BuildDir)
	return append(args, i.Definitions...)
}

// String renders the full command line for display.
func (i Invocation) String() string {
	return strings.Join(append([]string{i.Tool}, i.Args()...), " ")
}

// Runner executes an external command and blocks until it returns.
type Runner interface {
	Run(name string, args ...string) error
}

// ExecRunner runs commands as child processes with output passed through.
type ExecRunner struct {
	Stdout io.Writer
	Stderr io.Writer
}

// NewExecRunner returns a runner wired to the process's stdout and stderr.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{Stdout: os.Stdout, Stderr: os.Stderr}
}

// Run executes name with args. No timeout is applied.
func (r *ExecRunner) Run(name string, args ...string) error {
	// #nosec G204 -- tool name and arguments come from the local driver config and fixed definitions
	cmd := exec.Command(name, args...)
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	slog.Debug("Running configuration tool", logfields.Tool(name), logfields.Args(args))
	return cmd.Run()
}
