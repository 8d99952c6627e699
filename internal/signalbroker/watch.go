// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package signalbroker

import (
	"context"
	"os"
	"os/signal"

	"github.com/matt-FFFFFF/githerd/internal/ctxlog"
)

// forceExitCode is the exit code used when a second signal forces termination.
const forceExitCode = 130

// exit is swapped out in tests.
var exit = os.Exit

// Watch monitors the signal channel and handles signals.
// The first signal of a given type cancels the context so that the batch can
// wind down and still emit its report. A second signal of the same type forces
// immediate termination.
func Watch(ctx context.Context, sigCh chan os.Signal, cancel context.CancelFunc) {
	sigMap := make(map[os.Signal]struct{})

	for sig := range sigCh {
		if _, ok := sigMap[sig]; ok {
			ctxlog.Logger(ctx).Info("watchdog", "detail", "received second signal of type, forcefully terminating", "signal", sig.String())
			signal.Stop(sigCh)
			close(sigCh)
			exit(forceExitCode)

			return
		}

		ctxlog.Logger(ctx).Info("watchdog", "detail", "received signal, cancelling run", "signal", sig.String())

		sigMap[sig] = struct{}{}

		cancel()
	}
}
