// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package cmd contains the command-line interface (CLI) for the module.
package cmd

import (
	"os"

	"github.com/matt-FFFFFF/githerd/cmd/ops"
	"github.com/matt-FFFFFF/githerd/cmd/run"
	"github.com/urfave/cli/v3"
)

// RootCmd is the root command for the CLI.
var RootCmd = &cli.Command{
	Commands: []*cli.Command{
		run.RunCmd,
		ops.OpsCmd,
	},
	Writer:    os.Stdout,
	ErrWriter: os.Stderr,
	Name:      "githerd",
	Description: `Githerd runs an operation across every git repository in a directory.
It discovers sibling repositories, invokes the operation in each one while
streaming its output, captures interactive prompt answers the first time they
occur and offers to replay them for the remaining repositories, and finishes
with a tally of successes, failures, and skips.`,
	Usage:     "githerd run ./my-operation.sh",
	Copyright: "Copyright (c) matt-FFFFFF 2025. All rights reserved.",
	Authors: []any{
		"Matt White (matt-FFFFFF)",
	},
	EnableShellCompletion: true,
}
