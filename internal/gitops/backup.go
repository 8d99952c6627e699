// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package gitops

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/matt-FFFFFF/githerd/internal/ctxlog"
	"github.com/matt-FFFFFF/githerd/internal/prompt"
)

const backupDirPerm = 0o755

// BackupBundle writes a bundle of every ref in the repository to a backup
// directory. A bundle is a single ordinary file, so the backups directory
// can live on any medium.
func BackupBundle(ctx context.Context, dir string, p prompt.Provider) error {
	ans, err := p.Ask(ctx, prompt.Prompt{
		Text:    "Backup directory:",
		Default: filepath.Join("..", "backups"),
	})
	if err != nil {
		return fmt.Errorf("failed to read backup directory: %w", err)
	}

	backupDir := ans.Value
	if !filepath.IsAbs(backupDir) {
		backupDir = filepath.Join(dir, backupDir)
	}

	if err := os.MkdirAll(backupDir, backupDirPerm); err != nil {
		return fmt.Errorf("failed to create backup directory: %w", err)
	}

	name := fmt.Sprintf("%s-%s.bundle", filepath.Base(dir), time.Now().Format("20060102-150405"))
	bundlePath := filepath.Join(backupDir, name)

	if err := runGit(ctx, dir, "bundle", "create", bundlePath, "--all"); err != nil {
		return err
	}

	ctxlog.Info(ctx, "wrote backup bundle", "bundle", bundlePath, "dir", dir)

	return nil
}
