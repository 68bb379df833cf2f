package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/cachesim/simbuild/cmd/simbuild/commands"
	"github.com/cachesim/simbuild/internal/cmake"
	derrors "github.com/cachesim/simbuild/internal/errors"
	"github.com/cachesim/simbuild/internal/version"
)

func main() {
	var cli commands.CLI
	kong.Parse(&cli,
		kong.Name("simbuild"),
		kong.Description("Configure the cache simulator build with cmake"),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)

	g := &commands.Global{
		Logger: slog.Default(),
		Stdout: os.Stdout,
		Runner: cmake.NewExecRunner(),
	}
	if err := cli.Run(g); err != nil {
		derrors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
	}
}
