// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package discover

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFs(t *testing.T) afero.Fs {
	t.Helper()

	fsys := afero.NewMemMapFs()

	require.NoError(t, fsys.MkdirAll("/work/repoA/.git", 0o755))
	require.NoError(t, fsys.MkdirAll("/work/repoB/.git", 0o755))
	require.NoError(t, fsys.MkdirAll("/work/notes", 0o755))
	require.NoError(t, fsys.MkdirAll("/work/.hidden", 0o755))
	require.NoError(t, afero.WriteFile(fsys, "/work/README.md", []byte("hi"), 0o644))

	return fsys
}

func TestDiscoverCurrent(t *testing.T) {
	fsys := newTestFs(t)

	listing, err := Discover(context.Background(), fsys, "/work", ModeCurrent)
	require.NoError(t, err)

	require.Len(t, listing.Targets, 2)
	assert.Equal(t, "repoA", listing.Targets[0].Name)
	assert.Equal(t, "repoB", listing.Targets[1].Name)
	assert.Equal(t, "/work/repoA", listing.Targets[0].Path)

	require.Len(t, listing.Skips, 1)
	assert.Equal(t, "notes", listing.Skips[0].Name)
	assert.Equal(t, SkipNotARepository, listing.Skips[0].Reason)

	assert.Equal(t, 3, listing.Len())
}

func TestDiscoverParent(t *testing.T) {
	fsys := newTestFs(t)

	listing, err := Discover(context.Background(), fsys, "/work/repoA", ModeParent)
	require.NoError(t, err)

	assert.Equal(t, "/work", listing.Root)
	assert.Len(t, listing.Targets, 2)
}

func TestDiscoverGitfileRepository(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, fsys.MkdirAll("/work/worktree", 0o755))
	require.NoError(t, afero.WriteFile(fsys, "/work/worktree/.git", []byte("gitdir: /elsewhere"), 0o644))

	listing, err := Discover(context.Background(), fsys, "/work", ModeCurrent)
	require.NoError(t, err)

	require.Len(t, listing.Targets, 1)
	assert.Equal(t, "worktree", listing.Targets[0].Name)
}

func TestDiscoverRootMissing(t *testing.T) {
	fsys := afero.NewMemMapFs()

	_, err := Discover(context.Background(), fsys, "/nope", ModeCurrent)
	require.ErrorIs(t, err, ErrRootNotFound)
}

func TestDiscoverRootNotADirectory(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/file", []byte("x"), 0o644))

	_, err := Discover(context.Background(), fsys, "/file", ModeCurrent)
	require.ErrorIs(t, err, ErrRootNotADirectory)
}

func TestDiscoverDeterministicOrder(t *testing.T) {
	fsys := afero.NewMemMapFs()
	for _, name := range []string{"zeta", "alpha", "mid"} {
		require.NoError(t, fsys.MkdirAll("/work/"+name+"/.git", 0o755))
	}

	first, err := Discover(context.Background(), fsys, "/work", ModeCurrent)
	require.NoError(t, err)

	second, err := Discover(context.Background(), fsys, "/work", ModeCurrent)
	require.NoError(t, err)

	assert.Equal(t, first.Targets, second.Targets)
	assert.Equal(t, "alpha", first.Targets[0].Name)
	assert.Equal(t, "zeta", first.Targets[2].Name)
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		input   string
		want    Mode
		wantErr bool
	}{
		{input: "current", want: ModeCurrent},
		{input: "", want: ModeCurrent},
		{input: "parent", want: ModeParent},
		{input: "sideways", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseMode(tc.input)
			if tc.wantErr {
				require.ErrorIs(t, err, ErrModeUnknown)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
