// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runner

import (
	"context"
	"errors"
	"fmt"

	"github.com/matt-FFFFFF/githerd/internal/ctxlog"
	"github.com/matt-FFFFFF/githerd/internal/discover"
	"github.com/matt-FFFFFF/githerd/internal/prompt"
	"github.com/matt-FFFFFF/githerd/internal/session"
)

// ErrNothingToDo is returned by built-in operations to signal that the
// target required no work; the target is recorded as skipped.
var ErrNothingToDo = errors.New("nothing to do")

var _ Operation = (*FuncOperation)(nil)

// OperationFunc is a built-in operation body. It receives the target
// directory and the session's prompt provider.
type OperationFunc func(ctx context.Context, dir string, p prompt.Provider) error

// FuncOperation runs a built-in operation in process through the same
// surface as an external executable.
type FuncOperation struct {
	Name string
	Func OperationFunc
}

// Label implements the Operation interface.
func (o *FuncOperation) Label() string {
	return o.Name
}

// Invoke implements the Operation interface for FuncOperation.
// Panics in the operation body are converted to per-target failures so one
// bad repository cannot take down the batch.
func (o *FuncOperation) Invoke(ctx context.Context, r *Runner, target discover.Target) (out session.Outcome) {
	defer func() {
		if rec := recover(); rec != nil {
			ctxlog.Error(ctx, "built-in operation panicked", "operation", o.Name, "panic", rec)
			out = session.Outcome{
				Target:   target,
				Status:   session.StatusFailure,
				ExitCode: -1,
				Err:      fmt.Errorf("operation panic: %v", rec),
			}
		}
	}()

	err := o.Func(ctx, target.Path, r.Provider)

	switch {
	case errors.Is(err, ErrNothingToDo):
		return session.Outcome{
			Target: target,
			Status: session.StatusSkipped,
			Reason: "nothing to do",
		}
	case errors.Is(err, context.Canceled):
		return session.Outcome{
			Target:   target,
			Status:   session.StatusFailure,
			ExitCode: -1,
			Reason:   session.ReasonInterrupted,
			Err:      err,
		}
	case err != nil:
		return session.Outcome{
			Target:   target,
			Status:   session.StatusFailure,
			ExitCode: 1,
			Err:      err,
		}
	default:
		return session.Outcome{Target: target, Status: session.StatusSuccess}
	}
}
