// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package config resolves stubgen settings from flags, STUBGEN_* environment
// variables, and an optional .stubgen.yaml file, all through viper.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/spf13/viper"
)

// Keys shared by flags, environment variables, and the config file.
const (
	KeyPackage        = "package"
	KeyOutput         = "output"
	KeyOverwrite      = "overwrite"
	KeyVerbose        = "verbose"
	KeyPython         = "python"
	KeyPythonPath     = "python-path"
	KeyTimeout        = "timeout"
	KeyRequireVersion = "require-version"
	KeyCommit         = "commit"
	KeyMypy           = "mypy"
	KeyFormat         = "format"
)

const (
	EnvPrefix = "STUBGEN"
	FileName  = ".stubgen"
	FileType  = "yaml"

	DefaultPackage = "raysect"
	DefaultPython  = "python3"
	DefaultTimeout = 60 * time.Second
	DefaultFormat  = "text"
)

// ErrInvalidConfig is returned when a resolved setting is unusable.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds the resolved settings for a stubgen run.
type Config struct {
	Package        string        // Root package to introspect
	OutputDir      string        // Root of the stub tree
	Overwrite      bool          // Replace existing stub files
	Verbose        bool          // Debug logging and skip reporting
	Python         string        // Interpreter used by the probe
	PythonPath     []string      // Extra PYTHONPATH entries for the probe
	Timeout        time.Duration // Per-module probe timeout
	RequireVersion string        // Semver constraint on the library version
	Commit         bool          // Commit generated stubs with git
	Mypy           string        // mypy command for the check step (empty to skip)
	Format         string        // Check report format: text, json, or yaml
}

// New returns a viper instance wired for stubgen: defaults, STUBGEN_*
// environment variables, and .stubgen.yaml in dir. A missing or unreadable
// config file is ignored.
func New(dir string) *viper.Viper {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetConfigName(FileName)
	v.SetConfigType(FileType)
	v.AddConfigPath(dir)
	_ = v.ReadInConfig()

	return v
}

// SetDefaults registers the default value of every key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyPackage, DefaultPackage)
	v.SetDefault(KeyOutput, "")
	v.SetDefault(KeyOverwrite, false)
	v.SetDefault(KeyVerbose, false)
	v.SetDefault(KeyPython, DefaultPython)
	v.SetDefault(KeyPythonPath, []string{})
	v.SetDefault(KeyTimeout, DefaultTimeout)
	v.SetDefault(KeyRequireVersion, "")
	v.SetDefault(KeyCommit, false)
	v.SetDefault(KeyMypy, "")
	v.SetDefault(KeyFormat, DefaultFormat)
}

// Load reads a Config out of v, fills derived defaults, and validates it.
func Load(v *viper.Viper) (Config, error) {
	cfg := Config{
		Package:        strings.TrimSpace(v.GetString(KeyPackage)),
		OutputDir:      strings.TrimSpace(v.GetString(KeyOutput)),
		Overwrite:      v.GetBool(KeyOverwrite),
		Verbose:        v.GetBool(KeyVerbose),
		Python:         strings.TrimSpace(v.GetString(KeyPython)),
		PythonPath:     v.GetStringSlice(KeyPythonPath),
		Timeout:        v.GetDuration(KeyTimeout),
		RequireVersion: strings.TrimSpace(v.GetString(KeyRequireVersion)),
		Commit:         v.GetBool(KeyCommit),
		Mypy:           strings.TrimSpace(v.GetString(KeyMypy)),
		Format:         strings.ToLower(strings.TrimSpace(v.GetString(KeyFormat))),
	}

	if cfg.OutputDir == "" {
		cfg.OutputDir = DefaultOutputDir(cfg.Package)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// DefaultOutputDir is the stub tree location used when none is configured.
func DefaultOutputDir(pkg string) string {
	return filepath.Join("src", pkg+"-stubs")
}

// Validate checks that the settings can drive a run.
func (c Config) Validate() error {
	if c.Package == "" {
		return fmt.Errorf("%w: package is required", ErrInvalidConfig)
	}
	for _, seg := range strings.Split(c.Package, ".") {
		if seg == "" {
			return fmt.Errorf("%w: package %q is not a dotted module name", ErrInvalidConfig, c.Package)
		}
	}
	if c.Python == "" {
		return fmt.Errorf("%w: python interpreter is required", ErrInvalidConfig)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("%w: timeout must be positive, got %s", ErrInvalidConfig, c.Timeout)
	}
	if c.RequireVersion != "" {
		if _, err := semver.NewConstraint(c.RequireVersion); err != nil {
			return fmt.Errorf("%w: require-version %q: %v", ErrInvalidConfig, c.RequireVersion, err)
		}
	}
	switch c.Format {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("%w: format must be text, json, or yaml, got %q", ErrInvalidConfig, c.Format)
	}
	return nil
}
