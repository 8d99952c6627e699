// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package gitops

import (
	"context"
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/matt-FFFFFF/githerd/internal/ctxlog"
	"github.com/matt-FFFFFF/githerd/internal/prompt"
	"github.com/matt-FFFFFF/githerd/internal/runner"
)

// PruneMerged deletes local branches that are already merged into the
// default branch. The operator confirms once; the confirmation prompt text
// is stable so a cached answer covers the whole batch.
func PruneMerged(ctx context.Context, dir string, p prompt.Provider) error {
	base := defaultBranch(ctx, dir)

	out, err := outputGit(ctx, dir, "branch", "--merged", base, "--format=%(refname:short)")
	if err != nil {
		return err
	}

	current, err := currentBranch(ctx, dir)
	if err != nil {
		return err
	}

	var merged []string

	for _, name := range strings.Split(out, "\n") {
		name = strings.TrimSpace(name)
		if name == "" || name == base || name == current {
			continue
		}

		merged = append(merged, name)
	}

	if len(merged) == 0 {
		return runner.ErrNothingToDo
	}

	ans, err := p.Ask(ctx, prompt.Prompt{
		Text:    "Delete merged branches? (y/n)",
		Default: "n",
	})
	if err != nil {
		return fmt.Errorf("failed to confirm branch deletion: %w", err)
	}

	if !strings.EqualFold(strings.TrimSpace(ans.Value), "y") {
		return runner.ErrNothingToDo
	}

	var merr *multierror.Error

	for _, name := range merged {
		ctxlog.Info(ctx, "deleting merged branch", "branch", name, "dir", dir)

		if err := runGit(ctx, dir, "branch", "-d", name); err != nil {
			merr = multierror.Append(merr, err)
		}
	}

	return merr.ErrorOrNil()
}
