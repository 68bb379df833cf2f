package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/cachesim/simbuild/internal/cmake"
	"github.com/cachesim/simbuild/internal/config"
	"github.com/cachesim/simbuild/internal/driver"
	"github.com/cachesim/simbuild/internal/options"
)

// Global carries the process-level collaborators handed to the CLI.
type Global struct {
	Logger *slog.Logger
	Stdout io.Writer
	Runner cmake.Runner
}

// CLI definition & flags.
type CLI struct {
	Build        string `short:"b" help:"Build type (Debug or Release); anything else falls back to Debug" default:"Debug"`
	Clean        bool   `short:"c" help:"Delete and recreate the build directory before configuring"`
	SimTrace     bool   `short:"S" name:"sim-trace" help:"Compile with simulation tracing (SIM_TRACE=1)"`
	ConsolePrint bool   `short:"C" name:"console-print" help:"Compile with console printing (CONSOLE_PRINT=1)"`

	Config  string           `help:"Driver configuration file path" default:"simbuild.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// Options translates the parsed flags into BuildOptions, warning on w when
// the build type is not recognized.
func (c *CLI) Options(w io.Writer) options.BuildOptions {
	opts, fellBack := options.New(c.Build, c.Clean, c.SimTrace, c.ConsolePrint)
	if fellBack {
		_, _ = fmt.Fprintln(w, options.InvalidBuildTypeMessage)
		slog.Warn("Unrecognized build type", "requested", c.Build, "using", string(opts.BuildType))
	}
	return opts
}

// Run configures the build directory with the parsed options.
func (c *CLI) Run(g *Global) error {
	if g.Stdout == nil {
		g.Stdout = os.Stdout
	}
	opts := c.Options(g.Stdout)

	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}

	_, err = driver.New(cfg, g.Runner, g.Stdout).WithLogger(g.Logger).Run(opts)
	return err
}
