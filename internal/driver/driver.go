// Package driver runs the configure pipeline: prepare the build directory,
// compute definitions and invoke the configuration tool once.
package driver

import (
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/cachesim/simbuild/internal/builddir"
	"github.com/cachesim/simbuild/internal/cmake"
	"github.com/cachesim/simbuild/internal/config"
	"github.com/cachesim/simbuild/internal/logfields"
	"github.com/cachesim/simbuild/internal/options"
)

// Result describes a completed run.
type Result struct {
	RunID      string
	Action     builddir.Action
	Invocation cmake.Invocation
	// ToolErr is whatever the runner returned. It never fails the run.
	ToolErr error
}

// Driver wires the build directory manager and the tool runner together.
type Driver struct {
	cfg    *config.Config
	runner cmake.Runner
	out    io.Writer
	logger *slog.Logger
}

// New creates a Driver. A nil cfg means config.Default(); a nil runner
// means cmake.NewExecRunner().
func New(cfg *config.Config, runner cmake.Runner, out io.Writer) *Driver {
	if cfg == nil {
		cfg = config.Default()
	}
	if runner == nil {
		runner = cmake.NewExecRunner()
	}
	if out == nil {
		out = io.Discard
	}
	return &Driver{cfg: cfg, runner: runner, out: out, logger: slog.Default()}
}

// WithLogger overrides the base logger.
func (d *Driver) WithLogger(logger *slog.Logger) *Driver {
	if logger != nil {
		d.logger = logger
	}
	return d
}

// Run executes the pipeline for opts. Only build directory faults are
// returned; the tool's exit status is recorded in Result.ToolErr and
// otherwise ignored.
func (d *Driver) Run(opts options.BuildOptions) (*Result, error) {
	runID := uuid.NewString()
	logger := d.logger.With(logfields.RunID(runID))

	logger.Info("Starting configure",
		logfields.BuildType(string(opts.BuildType)),
		logfields.Clean(opts.Clean),
		logfields.SimTrace(opts.SimTrace),
		logfields.ConsolePrint(opts.ConsolePrint))

	action, err := builddir.NewManager(d.cfg.BuildDir, d.out).WithLogger(logger).Prepare(opts.Clean)
	if err != nil {
		return nil, err
	}

	inv := cmake.Invocation{
		Tool:        d.cfg.Tool,
		SourceDir:   d.cfg.SourceDir,
		BuildDir:    d.cfg.BuildDir,
		Definitions: cmake.Definitions(opts),
	}

	logger.Info("Invoking configuration tool", logfields.Tool(inv.Tool), logfields.Command(inv.String()))
	toolErr := d.runner.Run(inv.Tool, inv.Args()...)
	if toolErr != nil {
		logger.Debug("Configuration tool returned an error", logfields.Error(toolErr))
	}

	return &Result{
		RunID:      runID,
		Action:     action,
		Invocation: inv,
		ToolErr:    toolErr,
	}, nil
}
