// Package config loads the optional driver configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cachesim/simbuild/internal/builddir"
	"github.com/cachesim/simbuild/internal/cmake"
	derrors "github.com/cachesim/simbuild/internal/errors"
)

// DefaultPath is where the driver looks for its configuration file.
const DefaultPath = "simbuild.yaml"

// Config holds the paths and tool name used for the configuration step.
type Config struct {
	SourceDir string `yaml:"source_dir"`
	BuildDir  string `yaml:"build_dir"`
	Tool      string `yaml:"tool"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		SourceDir: cmake.DefaultSourceDir,
		BuildDir:  builddir.DefaultPath,
		Tool:      cmake.DefaultTool,
	}
}

// Load reads configPath. A missing file is not an error and yields Default().
// Environment variables are not expanded.
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, derrors.ConfigLoadFailed(configPath, fmt.Errorf("failed to read config file: %w", err))
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, derrors.ConfigLoadFailed(configPath, fmt.Errorf("failed to unmarshal config: %w", err))
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	def := Default()
	if c.SourceDir == "" {
		c.SourceDir = def.SourceDir
	}
	if c.BuildDir == "" {
		c.BuildDir = def.BuildDir
	}
	if c.Tool == "" {
		c.Tool = def.Tool
	}
}

// Validate rejects build directories that a clean build must never remove.
func (c *Config) Validate() error {
	build, err := filepath.Abs(c.BuildDir)
	if err != nil {
		return derrors.ValidationFailed("build_dir", err.Error())
	}
	source, err := filepath.Abs(c.SourceDir)
	if err != nil {
		return derrors.ValidationFailed("source_dir", err.Error())
	}

	if filepath.Dir(build) == build {
		return derrors.ValidationFailed("build_dir", "must not be the filesystem root")
	}
	rel, err := filepath.Rel(build, source)
	if err != nil {
		return derrors.ValidationFailed("build_dir", err.Error())
	}
	if rel == "." {
		return derrors.ValidationFailed("build_dir", "must differ from source_dir")
	}
	if !escapesParent(rel) {
		return derrors.ValidationFailed("build_dir", "must not contain source_dir")
	}
	return nil
}

// escapesParent reports whether a relative path climbs out of its base.
func escapesParent(rel string) bool {
	return rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
