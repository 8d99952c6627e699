// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package gitops

import (
	"sort"

	"github.com/matt-FFFFFF/githerd/internal/runner"
)

// Builtin pairs an operation name with a short description for listings.
type Builtin struct {
	Name        string
	Description string
	Func        runner.OperationFunc
}

var builtins = []Builtin{
	{
		Name:        "prune-merged",
		Description: "delete local branches already merged into the default branch",
		Func:        PruneMerged,
	},
	{
		Name:        "archive-branch",
		Description: "tag a branch as archive/<name> and delete it",
		Func:        ArchiveBranch,
	},
	{
		Name:        "backup-bundle",
		Description: "write a git bundle of the whole repository to a backup directory",
		Func:        BackupBundle,
	},
	{
		Name:        "clean-system-files",
		Description: "remove OS junk files and ignore them going forward",
		Func:        CleanSystemFiles,
	},
}

// Builtins returns the built-in operations sorted by name.
func Builtins() []Builtin {
	out := make([]Builtin, len(builtins))
	copy(out, builtins)

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	return out
}

// Lookup finds a built-in operation by name.
func Lookup(name string) (*runner.FuncOperation, bool) {
	for _, b := range builtins {
		if b.Name == name {
			return &runner.FuncOperation{Name: b.Name, Func: b.Func}, true
		}
	}

	return nil, false
}
