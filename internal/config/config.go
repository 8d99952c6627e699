// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
	"github.com/matt-FFFFFF/githerd/internal/discover"
)

var (
	// ErrGetConfigFile is returned when the configuration file cannot be fetched.
	ErrGetConfigFile = errors.New("failed to get config file")
	// ErrParseConfig is returned when the configuration file cannot be parsed.
	ErrParseConfig = errors.New("failed to parse config file")
	// ErrInvalidConfig is returned when a parsed configuration fails validation.
	ErrInvalidConfig = errors.New("invalid config")
)

// Alias names a pre-configured operation so a run can refer to it by name
// instead of a path.
type Alias struct {
	Path string   `yaml:"path"`
	Args []string `yaml:"args"`
}

// File is the optional YAML run configuration. Flags take precedence over
// values set here.
type File struct {
	Root          string            `yaml:"root"`
	TargetDir     string            `yaml:"target_dir"` // current or parent
	AutoRespond   bool              `yaml:"auto_respond"`
	LogDir        string            `yaml:"log_dir"`
	SkipExitCodes []int             `yaml:"skip_exit_codes"`
	Answers       map[string]string `yaml:"answers"`    // preset prompt answers, keyed by verbatim prompt text
	Operations    map[string]Alias  `yaml:"operations"` // operation aliases
}

// Default returns the configuration used when no file is supplied.
func Default() *File {
	return &File{
		TargetDir: discover.ModeCurrent.String(),
		LogDir:    ".",
	}
}

// Load fetches and parses a configuration file. The source may be a local
// path or any go-getter URL (git, http, s3, ...), matching how run files
// are fetched elsewhere in the ecosystem.
func Load(ctx context.Context, src string) (*File, error) {
	raw, err := fetch(ctx, src)
	if err != nil {
		return nil, err
	}

	return Parse(raw)
}

// Parse decodes and validates a configuration document.
func Parse(raw []byte) (*File, error) {
	f := Default()

	if err := yaml.Unmarshal(raw, f); err != nil {
		return nil, errors.Join(ErrParseConfig, err)
	}

	if _, err := discover.ParseMode(f.TargetDir); err != nil {
		return nil, fmt.Errorf("%w: target_dir %q", ErrInvalidConfig, f.TargetDir)
	}

	// Allow $HOME and friends in paths.
	f.Root = os.ExpandEnv(f.Root)
	f.LogDir = os.ExpandEnv(f.LogDir)

	for name, alias := range f.Operations {
		if alias.Path == "" {
			return nil, fmt.Errorf("%w: operation alias %q has no path", ErrInvalidConfig, name)
		}
	}

	return f, nil
}

// Mode returns the parsed discovery mode.
func (f *File) Mode() discover.Mode {
	m, _ := discover.ParseMode(f.TargetDir)
	return m
}

// ResolveAlias returns the alias for name, if one is configured.
func (f *File) ResolveAlias(name string) (Alias, bool) {
	a, ok := f.Operations[name]
	return a, ok
}

// localPath reports whether src names an existing local file.
func localPath(src string) bool {
	fi, err := os.Stat(src)
	return err == nil && !fi.IsDir()
}

func expandLocal(src string) string {
	abs, err := filepath.Abs(src)
	if err != nil {
		return src
	}

	return abs
}
