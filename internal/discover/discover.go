// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package discover

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/matt-FFFFFF/githerd/internal/ctxlog"
	"github.com/spf13/afero"
)

const gitMarker = ".git"

// SkipNotARepository is the recorded reason for directories without a repository marker.
const SkipNotARepository = "not a repository"

var (
	// ErrRootNotFound is returned when the discovery root does not exist.
	ErrRootNotFound = errors.New("discovery root does not exist")
	// ErrRootNotADirectory is returned when the discovery root is not a directory.
	ErrRootNotADirectory = errors.New("discovery root is not a directory")
)

// Target is one repository directory the batch runner will process.
type Target struct {
	Name string // base name of the directory
	Path string // absolute path to the directory
}

// Skip records a subdirectory that will not be processed, with the reason why.
type Skip struct {
	Name   string
	Path   string
	Reason string
}

// Listing is the result of a discovery pass: repository targets in scan
// order, plus the subdirectories that were skipped. The skips are part of
// the final tally, not silently dropped.
type Listing struct {
	Root    string // the directory whose children were scanned
	Targets []Target
	Skips   []Skip
}

// Discover scans the immediate subdirectories of root (or of its parent when
// mode is ModeParent) and classifies each as a repository target or a skip.
// A directory qualifies as a repository when it contains a .git entry; the
// entry may be a directory or a gitfile, as used by worktrees and submodules.
//
// Hidden directories are not scanned. Ordering is lexical, so one filesystem
// snapshot always produces the same listing.
func Discover(ctx context.Context, fsys afero.Fs, root string, mode Mode) (*Listing, error) {
	scanRoot := root
	if mode == ModeParent {
		scanRoot = filepath.Dir(root)
	}

	fi, err := fsys.Stat(scanRoot)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrRootNotFound, scanRoot)
	}

	if !fi.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrRootNotADirectory, scanRoot)
	}

	entries, err := afero.ReadDir(fsys, scanRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", scanRoot, err)
	}

	listing := &Listing{Root: scanRoot}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		if strings.HasPrefix(entry.Name(), ".") {
			continue
		}

		path := filepath.Join(scanRoot, entry.Name())

		if !isRepository(fsys, path) {
			ctxlog.Debug(ctx, "skipping directory", "path", path, "reason", SkipNotARepository)
			listing.Skips = append(listing.Skips, Skip{
				Name:   entry.Name(),
				Path:   path,
				Reason: SkipNotARepository,
			})

			continue
		}

		listing.Targets = append(listing.Targets, Target{
			Name: entry.Name(),
			Path: path,
		})
	}

	ctxlog.Debug(ctx, "discovery complete",
		"root", scanRoot,
		"targets", len(listing.Targets),
		"skips", len(listing.Skips),
	)

	return listing, nil
}

// Len returns the total number of classified directories.
func (l *Listing) Len() int {
	return len(l.Targets) + len(l.Skips)
}

// isRepository reports whether dir contains a .git entry. Worktrees and
// submodules use a plain gitfile instead of a directory, so any entry counts.
func isRepository(fsys afero.Fs, dir string) bool {
	_, err := fsys.Stat(filepath.Join(dir, gitMarker))
	return err == nil
}
