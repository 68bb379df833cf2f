package driver

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cachesim/simbuild/internal/builddir"
	"github.com/cachesim/simbuild/internal/config"
	derrors "github.com/cachesim/simbuild/internal/errors"
	"github.com/cachesim/simbuild/internal/options"
)

type call struct {
	name     string
	args     []string
	dirExist bool
}

// recordingRunner captures invocations and checks the build directory at call time.
type recordingRunner struct {
	buildDir string
	calls    []call
	err      error
}

func (r *recordingRunner) Run(name string, args ...string) error {
	_, statErr := os.Stat(r.buildDir)
	r.calls = append(r.calls, call{name: name, args: args, dirExist: statErr == nil})
	return r.err
}

func newTestDriver(t *testing.T) (*Driver, *recordingRunner, *bytes.Buffer, string) {
	t.Helper()
	root := t.TempDir()
	cfg := &config.Config{
		SourceDir: root,
		BuildDir:  filepath.Join(root, "build"),
		Tool:      "cmake",
	}
	runner := &recordingRunner{buildDir: cfg.BuildDir}
	var out bytes.Buffer
	return New(cfg, runner, &out), runner, &out, cfg.BuildDir
}

func TestRunReleaseWithTraceEndToEnd(t *testing.T) {
	d, runner, _, buildDir := newTestDriver(t)
	opts, fellBack := options.New("Release", false, true, false)
	require.False(t, fellBack)

	res, err := d.Run(opts)

	require.NoError(t, err)
	assert.Equal(t, builddir.ActionCreated, res.Action)
	assert.DirExists(t, buildDir)
	require.Len(t, runner.calls, 1)

	c := runner.calls[0]
	assert.Equal(t, "cmake", c.name)
	assert.True(t, c.dirExist, "build directory must exist when the tool runs")
	assert.Equal(t, []string{"-S", d.cfg.SourceDir, "-B", buildDir}, c.args[:4])
	assert.Contains(t, c.args, "-DCMAKE_C_BUILD_TYPE=Release")
	assert.Contains(t, c.args, "-DSIM_TRACE=1")
	for _, a := range c.args {
		assert.NotContains(t, a, "CONSOLE_PRINT")
	}
}

func TestRunCleanWipesExistingDirectory(t *testing.T) {
	d, runner, out, buildDir := newTestDriver(t)
	require.NoError(t, os.MkdirAll(buildDir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(buildDir, "cache.txt"), []byte("stale"), 0o600))

	res, err := d.Run(options.BuildOptions{BuildType: options.BuildDebug, Clean: true})

	require.NoError(t, err)
	assert.Equal(t, builddir.ActionCleaned, res.Action)
	assert.NoFileExists(t, filepath.Join(buildDir, "cache.txt"))
	assert.Contains(t, out.String(), "Clean build. Deleting "+buildDir)
	require.Len(t, runner.calls, 1)
	assert.True(t, runner.calls[0].dirExist)
}

func TestRunIgnoresToolFailure(t *testing.T) {
	d, runner, _, _ := newTestDriver(t)
	runner.err = errors.New("exit status 1")

	res, err := d.Run(options.BuildOptions{BuildType: options.BuildDebug})

	require.NoError(t, err)
	assert.EqualError(t, res.ToolErr, "exit status 1")
	assert.Len(t, runner.calls, 1, "no retries")
}

func TestRunDirectoryFaultIsReturned(t *testing.T) {
	d, runner, _, buildDir := newTestDriver(t)
	require.NoError(t, os.WriteFile(buildDir, []byte("file in the way"), 0o600))

	_, err := d.Run(options.BuildOptions{BuildType: options.BuildDebug})

	require.Error(t, err)
	assert.True(t, derrors.IsCategory(err, derrors.CategoryFileSystem))
	assert.Empty(t, runner.calls, "tool must not run without a build directory")
}

func TestRunAssignsRunID(t *testing.T) {
	d, _, _, _ := newTestDriver(t)

	first, err := d.Run(options.BuildOptions{})
	require.NoError(t, err)
	second, err := d.Run(options.BuildOptions{})
	require.NoError(t, err)

	_, parseErr := uuid.Parse(first.RunID)
	require.NoError(t, parseErr)
	assert.NotEqual(t, first.RunID, second.RunID)
	assert.Equal(t, builddir.ActionReused, second.Action)
}

func TestRunLogsCommandLine(t *testing.T) {
	d, _, _, buildDir := newTestDriver(t)
	var logs bytes.Buffer
	d.WithLogger(slog.New(slog.NewTextHandler(&logs, nil)))

	res, err := d.Run(options.BuildOptions{BuildType: options.BuildRelease})

	require.NoError(t, err)
	assert.Equal(t, "cmake -S "+d.cfg.SourceDir+" -B "+buildDir+" -DCMAKE_C_BUILD_TYPE=Release -DSIM_TRACE=0", res.Invocation.String())
	assert.Contains(t, logs.String(), `command="`+res.Invocation.String()+`"`)
	assert.Contains(t, logs.String(), "run_id="+res.RunID)
}
