// Package builddir manages the lifecycle of the build output directory.
package builddir

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	derrors "github.com/cachesim/simbuild/internal/errors"
	"github.com/cachesim/simbuild/internal/logfields"
)

// Action records what Prepare did to the directory.
type Action string

const (
	ActionCreated Action = "created"
	ActionCleaned Action = "cleaned"
	ActionReused  Action = "reused"
)

// DefaultPath is the conventional build output location, relative to the invocation directory.
const DefaultPath = "./build"

// Manager handles the build output directory.
type Manager struct {
	dir    string
	out    io.Writer
	logger *slog.Logger
}

// NewManager creates a manager for dir. User-facing messages are written to out.
func NewManager(dir string, out io.Writer) *Manager {
	if dir == "" {
		dir = DefaultPath
	}
	if out == nil {
		out = io.Discard
	}
	return &Manager{dir: dir, out: out, logger: slog.Default()}
}

// WithLogger sets the logger used for lifecycle messages.
func (m *Manager) WithLogger(logger *slog.Logger) *Manager {
	if logger != nil {
		m.logger = logger
	}
	return m
}

// Path returns the managed directory.
func (m *Manager) Path() string {
	return m.dir
}

// Prepare guarantees the directory exists on return.
// With clean set an existing directory is removed and recreated empty;
// without it an existing directory is left untouched.
func (m *Manager) Prepare(clean bool) (Action, error) {
	exists, err := m.exists()
	if err != nil {
		return "", err
	}

	switch {
	case clean && exists:
		_, _ = fmt.Fprintf(m.out, "Clean build. Deleting %s\n", m.dir)
		if err := os.RemoveAll(m.dir); err != nil {
			return "", derrors.DirectoryError("remove", m.dir, err)
		}
		if err := m.create(); err != nil {
			return "", err
		}
		m.logger.Info("Cleaned build directory", logfields.Path(m.dir), logfields.Action(string(ActionCleaned)))
		return ActionCleaned, nil
	case !exists:
		if err := m.create(); err != nil {
			return "", err
		}
		m.logger.Info("Created build directory", logfields.Path(m.dir), logfields.Action(string(ActionCreated)))
		return ActionCreated, nil
	default:
		m.logger.Debug("Reusing build directory", logfields.Path(m.dir), logfields.Action(string(ActionReused)))
		return ActionReused, nil
	}
}

func (m *Manager) exists() (bool, error) {
	info, err := os.Stat(m.dir)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, derrors.DirectoryError("stat", m.dir, err)
	}
	if !info.IsDir() {
		return false, derrors.DirectoryError("stat", m.dir, fmt.Errorf("%s exists and is not a directory", m.dir))
	}
	return true, nil
}

func (m *Manager) create() error {
	if err := os.MkdirAll(m.dir, 0o750); err != nil {
		return derrors.DirectoryError("create", m.dir, err)
	}
	return nil
}
