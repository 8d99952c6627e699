// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package ops contains the command that lists the built-in operations.
package ops

import (
	"context"
	"fmt"

	"github.com/matt-FFFFFF/githerd/internal/gitops"
	"github.com/urfave/cli/v3"
)

// OpsCmd lists the built-in operations that can be used instead of an
// external executable.
var OpsCmd = &cli.Command{
	Name:        "ops",
	Description: "List the built-in operations. Pass a name to `githerd run` to use one.",
	Action: func(_ context.Context, cmd *cli.Command) error {
		for _, b := range gitops.Builtins() {
			fmt.Fprintf(cmd.Writer, "%-20s %s\n", b.Name, b.Description) //nolint:errcheck
		}

		return nil
	},
}
