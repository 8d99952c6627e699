// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package gitops

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matt-FFFFFF/githerd/internal/prompt"
	"github.com/matt-FFFFFF/githerd/internal/runner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// initRepo creates a git repository with one commit on main.
func initRepo(t *testing.T) string {
	t.Helper()

	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}

	dir := t.TempDir()
	ctx := context.Background()

	require.NoError(t, runGit(ctx, dir, "init"))
	require.NoError(t, runGit(ctx, dir, "config", "user.email", "test@example.com"))
	require.NoError(t, runGit(ctx, dir, "config", "user.name", "Test"))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("hello\n"), 0o644))
	require.NoError(t, runGit(ctx, dir, "add", "."))
	require.NoError(t, runGit(ctx, dir, "commit", "-m", "initial"))
	require.NoError(t, runGit(ctx, dir, "branch", "-M", "main"))

	return dir
}

func scripted(answers map[string]string) prompt.Provider {
	return &prompt.ScriptProvider{Answers: answers, UseDefaults: true}
}

func TestPruneMergedNothingToDo(t *testing.T) {
	dir := initRepo(t)

	err := PruneMerged(context.Background(), dir, scripted(nil))
	require.ErrorIs(t, err, runner.ErrNothingToDo)
}

func TestPruneMergedDeletesBranch(t *testing.T) {
	dir := initRepo(t)
	ctx := context.Background()

	// A branch pointing at main's head is merged by definition.
	require.NoError(t, runGit(ctx, dir, "branch", "feature"))

	err := PruneMerged(ctx, dir, scripted(map[string]string{
		"Delete merged branches? (y/n)": "y",
	}))
	require.NoError(t, err)

	out, err := outputGit(ctx, dir, "branch", "--format=%(refname:short)")
	require.NoError(t, err)
	assert.NotContains(t, out, "feature")
	assert.Contains(t, out, "main")
}

func TestPruneMergedDeclined(t *testing.T) {
	dir := initRepo(t)
	ctx := context.Background()

	require.NoError(t, runGit(ctx, dir, "branch", "feature"))

	err := PruneMerged(ctx, dir, scripted(map[string]string{
		"Delete merged branches? (y/n)": "n",
	}))
	require.ErrorIs(t, err, runner.ErrNothingToDo)

	out, err := outputGit(ctx, dir, "branch", "--format=%(refname:short)")
	require.NoError(t, err)
	assert.Contains(t, out, "feature")
}

func TestArchiveBranch(t *testing.T) {
	dir := initRepo(t)
	ctx := context.Background()

	require.NoError(t, runGit(ctx, dir, "branch", "feature"))

	err := ArchiveBranch(ctx, dir, scripted(map[string]string{
		"Branch to archive:": "feature",
	}))
	require.NoError(t, err)

	tags, err := outputGit(ctx, dir, "tag")
	require.NoError(t, err)
	assert.Contains(t, tags, "archive/feature")

	branches, err := outputGit(ctx, dir, "branch", "--format=%(refname:short)")
	require.NoError(t, err)
	assert.NotContains(t, branches, "feature")
}

func TestArchiveBranchAbsent(t *testing.T) {
	dir := initRepo(t)

	err := ArchiveBranch(context.Background(), dir, scripted(map[string]string{
		"Branch to archive:": "no-such-branch",
	}))
	require.ErrorIs(t, err, runner.ErrNothingToDo)
}

func TestArchiveBranchEmptyAnswer(t *testing.T) {
	dir := initRepo(t)

	err := ArchiveBranch(context.Background(), dir, scripted(map[string]string{
		"Branch to archive:": "",
	}))
	require.ErrorIs(t, err, runner.ErrNothingToDo)
}

func TestBackupBundle(t *testing.T) {
	dir := initRepo(t)
	backupDir := t.TempDir()

	err := BackupBundle(context.Background(), dir, scripted(map[string]string{
		"Backup directory:": backupDir,
	}))
	require.NoError(t, err)

	entries, err := os.ReadDir(backupDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, strings.HasSuffix(entries[0].Name(), ".bundle"))
}

func TestCleanSystemFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".DS_Store"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "Thumbs.db"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "keep.txt"), []byte("x"), 0o644))

	require.NoError(t, CleanSystemFiles(context.Background(), dir, nil))

	_, err := os.Stat(filepath.Join(dir, ".DS_Store"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(dir, "sub", "Thumbs.db"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(dir, "keep.txt"))
	assert.NoError(t, err)

	raw, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), ".DS_Store")
	assert.Contains(t, string(raw), "Thumbs.db")

	// Second run finds nothing left to clean.
	require.ErrorIs(t, CleanSystemFiles(context.Background(), dir, nil), runner.ErrNothingToDo)
}

func TestCleanSystemFilesSkipsGitDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".git"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".git", ".DS_Store"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(".DS_Store\nThumbs.db\ndesktop.ini\n"), 0o644))

	require.ErrorIs(t, CleanSystemFiles(context.Background(), dir, nil), runner.ErrNothingToDo)

	_, err := os.Stat(filepath.Join(dir, ".git", ".DS_Store"))
	assert.NoError(t, err)
}

func TestBuiltinsSortedAndLookup(t *testing.T) {
	all := Builtins()
	require.Len(t, all, 4)

	names := make([]string, 0, len(all))
	for _, b := range all {
		names = append(names, b.Name)
	}

	assert.Equal(t, []string{"archive-branch", "backup-bundle", "clean-system-files", "prune-merged"}, names)

	op, ok := Lookup("prune-merged")
	require.True(t, ok)
	assert.Equal(t, "prune-merged", op.Label())

	_, ok = Lookup("nope")
	assert.False(t, ok)
}
