package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	derrors "github.com/cachesim/simbuild/internal/errors"
	"github.com/cachesim/simbuild/internal/options"
)

func parse(t *testing.T, args ...string) *CLI {
	t.Helper()
	var cli CLI
	parser, err := kong.New(&cli, kong.Vars{"version": "test"}, kong.Exit(func(int) { t.Fatal("unexpected exit") }))
	require.NoError(t, err)
	_, err = parser.Parse(args)
	require.NoError(t, err)
	return &cli
}

type recordingRunner struct {
	name string
	args []string
	runs int
}

func (r *recordingRunner) Run(name string, args ...string) error {
	r.name, r.args = name, args
	r.runs++
	return nil
}

func TestParseDefaults(t *testing.T) {
	cli := parse(t)

	assert.Equal(t, "Debug", cli.Build)
	assert.False(t, cli.Clean)
	assert.False(t, cli.SimTrace)
	assert.False(t, cli.ConsolePrint)
	assert.Equal(t, "simbuild.yaml", cli.Config)
}

func TestParseShortAndLongForms(t *testing.T) {
	short := parse(t, "-b", "Release", "-c", "-S", "-C")
	long := parse(t, "--build", "Release", "--clean", "--sim-trace", "--console-print")

	want := options.BuildOptions{BuildType: options.BuildRelease, Clean: true, SimTrace: true, ConsolePrint: true}
	var out bytes.Buffer
	assert.Equal(t, want, short.Options(&out))
	assert.Equal(t, want, long.Options(&out))
	assert.Empty(t, out.String())
}

func TestOptionsInvalidBuildTypeWarns(t *testing.T) {
	for _, raw := range []string{"release", "Profile", "garbage"} {
		cli := parse(t, "--build", raw)
		var out bytes.Buffer

		opts := cli.Options(&out)

		assert.Equal(t, options.BuildDebug, opts.BuildType)
		assert.Equal(t, "Invalid build type specified, defaulting to Debug\n", out.String())
	}
}

func TestRunEndToEnd(t *testing.T) {
	root := t.TempDir()
	buildDir := filepath.Join(root, "build")
	cfgPath := filepath.Join(root, "simbuild.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("source_dir: "+root+"\nbuild_dir: "+buildDir+"\n"), 0o600))

	cli := parse(t, "-b", "Release", "-S", "--config", cfgPath)
	runner := &recordingRunner{}
	var out bytes.Buffer

	require.NoError(t, cli.Run(&Global{Stdout: &out, Runner: runner}))

	assert.DirExists(t, buildDir)
	assert.Equal(t, 1, runner.runs)
	assert.Equal(t, "cmake", runner.name)
	assert.Equal(t, []string{"-S", root, "-B", buildDir, "-DCMAKE_C_BUILD_TYPE=Release", "-DSIM_TRACE=1"}, runner.args)
}

func TestRunConfigErrorStopsBeforeTool(t *testing.T) {
	root := t.TempDir()
	cfgPath := filepath.Join(root, "simbuild.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("tool: [broken\n"), 0o600))

	cli := parse(t, "--config", cfgPath)
	runner := &recordingRunner{}

	err := cli.Run(&Global{Stdout: &bytes.Buffer{}, Runner: runner})

	require.Error(t, err)
	assert.True(t, derrors.IsCategory(err, derrors.CategoryConfig))
	assert.Zero(t, runner.runs)
}
