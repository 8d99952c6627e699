// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package gitops

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// runGit executes a git command in dir and surfaces stderr in the error.
func runGit(ctx context.Context, dir string, args ...string) error {
	cmd := exec.CommandContext(ctx, "git", append([]string{"-C", dir}, args...)...)

	var stderr bytes.Buffer

	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return fmt.Errorf("git %s: %w", strings.Join(args, " "), err)
		}

		return fmt.Errorf("git %s: %s: %w", strings.Join(args, " "), msg, err)
	}

	return nil
}

// outputGit executes a git command in dir and returns its trimmed stdout.
func outputGit(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", append([]string{"-C", dir}, args...)...)

	var stdout, stderr bytes.Buffer

	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return "", fmt.Errorf("git %s: %w", strings.Join(args, " "), err)
		}

		return "", fmt.Errorf("git %s: %s: %w", strings.Join(args, " "), msg, err)
	}

	return strings.TrimSpace(stdout.String()), nil
}

// defaultBranch resolves the repository's default branch. It prefers the
// origin HEAD, falling back to main and then master.
func defaultBranch(ctx context.Context, dir string) string {
	if ref, err := outputGit(ctx, dir, "symbolic-ref", "refs/remotes/origin/HEAD"); err == nil {
		if name := strings.TrimPrefix(ref, "refs/remotes/origin/"); name != ref {
			return name
		}
	}

	for _, name := range []string{"main", "master"} {
		if err := runGit(ctx, dir, "show-ref", "--verify", "--quiet", "refs/heads/"+name); err == nil {
			return name
		}
	}

	return "main"
}

// currentBranch returns the checked-out branch name.
func currentBranch(ctx context.Context, dir string) (string, error) {
	return outputGit(ctx, dir, "rev-parse", "--abbrev-ref", "HEAD")
}
