// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package gitops

import (
	"context"
	"fmt"

	"github.com/matt-FFFFFF/githerd/internal/ctxlog"
	"github.com/matt-FFFFFF/githerd/internal/prompt"
	"github.com/matt-FFFFFF/githerd/internal/runner"
)

// ArchiveBranch tags a branch as archive/<name> and deletes the branch.
// The ref history stays reachable through the tag, so the branch list gets
// shorter without losing anything.
func ArchiveBranch(ctx context.Context, dir string, p prompt.Provider) error {
	ans, err := p.Ask(ctx, prompt.Prompt{Text: "Branch to archive:"})
	if err != nil {
		return fmt.Errorf("failed to read branch name: %w", err)
	}

	branch := ans.Value
	if branch == "" {
		return runner.ErrNothingToDo
	}

	if err := runGit(ctx, dir, "show-ref", "--verify", "--quiet", "refs/heads/"+branch); err != nil {
		// Absent in this repository; fine in a batch where only some
		// repositories carry the branch.
		return runner.ErrNothingToDo
	}

	tag := "archive/" + branch

	if err := runGit(ctx, dir, "tag", tag, branch); err != nil {
		return err
	}

	if err := runGit(ctx, dir, "branch", "-D", branch); err != nil {
		return err
	}

	ctxlog.Info(ctx, "archived branch", "branch", branch, "tag", tag, "dir", dir)

	return nil
}
