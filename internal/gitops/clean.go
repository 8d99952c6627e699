// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package gitops

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/matt-FFFFFF/githerd/internal/ctxlog"
	"github.com/matt-FFFFFF/githerd/internal/prompt"
	"github.com/matt-FFFFFF/githerd/internal/runner"
)

// junkFiles are OS artifacts that have no business in a repository.
var junkFiles = []string{
	".DS_Store",
	"Thumbs.db",
	"desktop.ini",
}

const gitignorePerm = 0o644

// CleanSystemFiles removes OS junk files from the working tree and adds the
// junk patterns to .gitignore so they stay gone.
func CleanSystemFiles(ctx context.Context, dir string, _ prompt.Provider) error {
	var found []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}

			return nil
		}

		if slices.Contains(junkFiles, d.Name()) {
			found = append(found, path)
		}

		return nil
	})
	if err != nil {
		return err //nolint:wrapcheck
	}

	missing := missingIgnorePatterns(dir)

	if len(found) == 0 && len(missing) == 0 {
		return runner.ErrNothingToDo
	}

	var merr *multierror.Error

	for _, path := range found {
		ctxlog.Info(ctx, "removing system file", "path", path)

		if err := os.Remove(path); err != nil {
			merr = multierror.Append(merr, err)
		}
	}

	if len(missing) > 0 {
		if err := appendIgnorePatterns(dir, missing); err != nil {
			merr = multierror.Append(merr, err)
		}
	}

	return merr.ErrorOrNil()
}

// missingIgnorePatterns returns the junk patterns not yet in .gitignore.
func missingIgnorePatterns(dir string) []string {
	existing := map[string]struct{}{}

	raw, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
	if err == nil {
		for _, line := range strings.Split(string(raw), "\n") {
			existing[strings.TrimSpace(line)] = struct{}{}
		}
	}

	var missing []string

	for _, pattern := range junkFiles {
		if _, ok := existing[pattern]; !ok {
			missing = append(missing, pattern)
		}
	}

	return missing
}

func appendIgnorePatterns(dir string, patterns []string) error {
	path := filepath.Join(dir, ".gitignore")

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, gitignorePerm)
	if err != nil {
		return err //nolint:wrapcheck
	}

	defer f.Close() //nolint:errcheck

	// Keep the appended block tidy when the file lacks a trailing newline.
	if fi, err := f.Stat(); err == nil && fi.Size() > 0 {
		raw, rerr := os.ReadFile(path)
		if rerr == nil && len(raw) > 0 && raw[len(raw)-1] != '\n' {
			if _, werr := f.WriteString("\n"); werr != nil {
				return werr //nolint:wrapcheck
			}
		}
	}

	for _, pattern := range patterns {
		if _, err := f.WriteString(pattern + "\n"); err != nil {
			return err //nolint:wrapcheck
		}
	}

	return nil
}
