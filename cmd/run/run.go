// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package run contains the command that executes a batch run.
package run

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/matt-FFFFFF/githerd/internal/batchlog"
	"github.com/matt-FFFFFF/githerd/internal/config"
	"github.com/matt-FFFFFF/githerd/internal/ctxlog"
	"github.com/matt-FFFFFF/githerd/internal/discover"
	"github.com/matt-FFFFFF/githerd/internal/gitops"
	"github.com/matt-FFFFFF/githerd/internal/prompt"
	"github.com/matt-FFFFFF/githerd/internal/runner"
	"github.com/matt-FFFFFF/githerd/internal/session"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v3"
)

const (
	autoRespondFlag = "auto-respond"
	targetDirFlag   = "target-dir"
	rootFlag        = "root"
	logDirFlag      = "log-dir"
	configFlag      = "config"
	jsonFlag        = "json"
	skipExitFlag    = "skip-exit-code"

	// exitConfigError is the exit code for a fatal configuration error that
	// prevented the run from starting. Per-target failures exit with 1.
	exitConfigError = 2
)

// RunCmd executes an operation across every discovered repository.
var RunCmd = &cli.Command{
	Name:      "run",
	Usage:     "githerd run [flags] <operation> [operation args...]",
	ArgsUsage: "<operation> [operation args...]",
	Description: `Run an operation in every git repository found in the target directory.

The operation may be the path to an executable, the name of an operation
alias from the configuration file, or one of the built-in operations listed
by 'githerd ops'.

An executable operation requests interactive input by writing a line of the
form '::ask::<prompt>' or '::ask::<prompt>::<default>' to stderr and reading
the answer from stdin. Answers are optionally remembered for the remaining
repositories of the run.`,
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:     autoRespondFlag,
			Aliases:  []string{"a"},
			Usage:    "Silently reuse every prompt answer for the remaining repositories",
			OnlyOnce: true,
		},
		&cli.StringFlag{
			Name:     targetDirFlag,
			Aliases:  []string{"t"},
			Usage:    "Where to discover repositories: 'current' or 'parent'",
			OnlyOnce: true,
		},
		&cli.StringFlag{
			Name:      rootFlag,
			Aliases:   []string{"r"},
			Usage:     "Override the discovery root directory",
			TakesFile: true,
			OnlyOnce:  true,
		},
		&cli.StringFlag{
			Name:      logDirFlag,
			Usage:     "Directory for the per-run log file",
			TakesFile: true,
			OnlyOnce:  true,
		},
		&cli.StringFlag{
			Name:     configFlag,
			Aliases:  []string{"c"},
			Usage:    "Configuration file; any go-getter URL is accepted",
			OnlyOnce: true,
		},
		&cli.BoolFlag{
			Name:     jsonFlag,
			Usage:    "Emit the final report as JSON",
			OnlyOnce: true,
		},
		&cli.IntSliceFlag{
			Name:  skipExitFlag,
			Usage: "Child exit code meaning 'nothing to do'; the target is recorded as skipped",
		},
	},
	Action: actionFunc,
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	logger := ctxlog.Logger(ctx).With("command", cmd.Name)

	args := cmd.Args().Slice()
	if len(args) == 0 {
		return cli.Exit("no operation given; see 'githerd ops' for built-ins", exitConfigError)
	}

	cfg, err := loadConfig(ctx, cmd)
	if err != nil {
		return cli.Exit(err.Error(), exitConfigError)
	}

	op, label, err := resolveOperation(cfg, cmd, args)
	if err != nil {
		return cli.Exit(err.Error(), exitConfigError)
	}

	root := cmd.String(rootFlag)
	if root == "" {
		root = cfg.Root
	}

	if root == "" {
		root, err = os.Getwd()
		if err != nil {
			return cli.Exit(err.Error(), exitConfigError)
		}
	}

	mode := cfg.Mode()

	if td := cmd.String(targetDirFlag); td != "" {
		mode, err = discover.ParseMode(td)
		if err != nil {
			return cli.Exit(fmt.Sprintf("invalid --%s value %q", targetDirFlag, td), exitConfigError)
		}
	}

	listing, err := discover.Discover(ctx, afero.NewOsFs(), root, mode)
	if err != nil {
		return cli.Exit(err.Error(), exitConfigError)
	}

	logDir := cmd.String(logDirFlag)
	if logDir == "" {
		logDir = cfg.LogDir
	}

	blog := batchlog.New(logDir)
	defer blog.Close() //nolint:errcheck

	autoRespond := cmd.Bool(autoRespondFlag) || cfg.AutoRespond

	cacheOpts := []prompt.CacheOption{
		prompt.WithEventFunc(blog.Line),
		prompt.WithPreset(cfg.Answers),
	}
	if autoRespond {
		cacheOpts = append(cacheOpts, prompt.WithAutoRespond())
	}

	provider := prompt.NewCacheProvider(prompt.NewTerminalProvider(), cacheOpts...)

	r := &runner.Runner{
		Provider: provider,
		Log:      blog,
		Console:  cmd.Writer,
	}

	sess := session.New(label, mode, autoRespond)

	logger.Info("starting batch run",
		"operation", label,
		"root", listing.Root,
		"targets", len(listing.Targets),
		"skips", len(listing.Skips),
	)

	r.RunBatch(ctx, sess, listing, op)

	report := sess.Report(listing.Len())

	if report.InvariantErr != nil {
		logger.Error("report inconsistency detected", "error", report.InvariantErr)
	}

	if cmd.Bool(jsonFlag) {
		err = report.WriteJSON(cmd.Writer)
	} else {
		err = report.WriteText(cmd.Writer)
	}

	if err != nil {
		logger.Error("failed to write report", "error", err)
	}

	if path := blog.Path(); path != "" {
		logger.Info("run log written", "path", path)
	}

	if code := report.ExitCode(); code != 0 {
		return cli.Exit("", code)
	}

	return nil
}

// loadConfig fetches the configuration file when one is given, otherwise
// returns defaults.
func loadConfig(ctx context.Context, cmd *cli.Command) (*config.File, error) {
	src := cmd.String(configFlag)
	if src == "" {
		return config.Default(), nil
	}

	return config.Load(ctx, src)
}

// resolveOperation turns the first positional argument into an Operation.
// Resolution order: built-in name, configured alias, executable path.
func resolveOperation(cfg *config.File, cmd *cli.Command, args []string) (runner.Operation, string, error) {
	name, opArgs := args[0], args[1:]

	// A path never shadows a built-in or alias name.
	if !strings.ContainsRune(name, os.PathSeparator) {
		if op, ok := gitops.Lookup(name); ok {
			return op, name, nil
		}

		if alias, ok := cfg.ResolveAlias(name); ok {
			exe, err := runner.ResolveExec(alias.Path, append(alias.Args, opArgs...))
			if err != nil {
				return nil, "", err
			}

			exe.Name = name
			exe.SkipExitCodes = skipExitCodes(cfg, cmd)

			return exe, name, nil
		}
	}

	exe, err := runner.ResolveExec(name, opArgs)
	if err != nil {
		return nil, "", err
	}

	exe.SkipExitCodes = skipExitCodes(cfg, cmd)

	return exe, exe.Label(), nil
}

func skipExitCodes(cfg *config.File, cmd *cli.Command) []int {
	if codes := cmd.IntSlice(skipExitFlag); len(codes) > 0 {
		return codes
	}

	return cfg.SkipExitCodes
}
