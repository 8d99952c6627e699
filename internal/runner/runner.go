// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runner

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/matt-FFFFFF/githerd/internal/batchlog"
	"github.com/matt-FFFFFF/githerd/internal/ctxlog"
	"github.com/matt-FFFFFF/githerd/internal/discover"
	"github.com/matt-FFFFFF/githerd/internal/prompt"
	"github.com/matt-FFFFFF/githerd/internal/session"
)

const (
	initialScanBuffer = 64 * 1024
	maxScanBuffer     = 1024 * 1024
)

// Operation is something that can be invoked once per repository target.
// Implementations return a terminal outcome and must not panic across the
// Invoke boundary.
type Operation interface {
	Label() string
	Invoke(ctx context.Context, r *Runner, target discover.Target) session.Outcome
}

// Runner processes targets strictly sequentially, one child at a time, in
// discovery order. Targets are slow version-control operations, not a
// scheduling workload, and prompt replay needs exclusive console access.
type Runner struct {
	Provider prompt.Provider
	Log      *batchlog.Log
	Console  io.Writer // defaults to os.Stdout
}

// RunBatch invokes op on every target in the listing and records one outcome
// per directory into the session. Discovery skips are recorded first. A
// failing target never aborts the batch; cancellation marks the in-flight
// target interrupted and the remaining ones skipped, so the report can still
// be produced.
func (r *Runner) RunBatch(ctx context.Context, sess *session.Session, listing *discover.Listing, op Operation) {
	for _, skip := range listing.Skips {
		r.record(ctx, sess, session.Outcome{
			Target: discover.Target{Name: skip.Name, Path: skip.Path},
			Status: session.StatusSkipped,
			Reason: skip.Reason,
		})
	}

	total := len(listing.Targets)

	for i, target := range listing.Targets {
		if ctx.Err() != nil {
			r.record(ctx, sess, session.Outcome{
				Target: target,
				Status: session.StatusSkipped,
				Reason: session.ReasonRunInterrupted,
			})

			continue
		}

		marker := fmt.Sprintf("processing target %d/%d: %s", i+1, total, target.Name)
		ctxlog.Info(ctx, marker)
		fmt.Fprintf(r.console(), "%s\n", marker) //nolint:errcheck

		if r.Log != nil {
			r.Log.Line(marker)
		}

		outcome := op.Invoke(ctx, r, target)
		r.record(ctx, sess, outcome)
	}
}

func (r *Runner) record(ctx context.Context, sess *session.Session, o session.Outcome) {
	if r.Log != nil {
		switch o.Status {
		case session.StatusSkipped:
			r.Log.Linef("%s: skipped (%s)", o.Target.Name, o.Reason)
		default:
			r.Log.Linef("%s: %s (exit code: %d)", o.Target.Name, o.Status, o.ExitCode)
		}
	}

	if err := sess.Record(o); err != nil {
		// A duplicate or malformed outcome is an internal bug; surface it
		// loudly, the report's consistency check will flag it again.
		ctxlog.Error(ctx, "failed to record outcome", "target", o.Target.Name, "error", err)
	}
}

func (r *Runner) console() io.Writer {
	if r.Console != nil {
		return r.Console
	}

	return os.Stdout
}
