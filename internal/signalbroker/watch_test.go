// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package signalbroker

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/matt-FFFFFF/githerd/internal/ctxlog"
	"github.com/prashantv/gostub"
	"github.com/stretchr/testify/assert"
)

func TestWatchFirstSignalCancels(t *testing.T) {
	var exitCode int

	stub := gostub.Stub(&exit, func(code int) { exitCode = code })
	defer stub.Reset()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ctx = ctxlog.New(ctx, ctxlog.DefaultLogger)

	sigCh := make(chan os.Signal, 1)

	var wg sync.WaitGroup

	wg.Add(1)

	go func() {
		defer wg.Done()
		Watch(ctx, sigCh, cancel)
	}()

	sigCh <- os.Interrupt

	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("context was not cancelled after first signal")
	}

	// Second signal of the same type ends the watch loop.
	sigCh <- os.Interrupt
	wg.Wait()

	assert.Equal(t, forceExitCode, exitCode)
}

func TestWatchSecondSignalForcesTermination(t *testing.T) {
	var exitCode int

	stub := gostub.Stub(&exit, func(code int) { exitCode = code })
	defer stub.Reset()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ctx = ctxlog.New(ctx, ctxlog.DefaultLogger)

	sigCh := make(chan os.Signal, 2)
	done := make(chan struct{})

	go func() {
		defer close(done)
		Watch(ctx, sigCh, cancel)
	}()

	sigCh <- os.Interrupt

	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("context was not cancelled")
	}

	sigCh <- os.Interrupt

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("watch did not exit after duplicate signal")
	}

	assert.Error(t, ctx.Err())
	assert.Equal(t, forceExitCode, exitCode)
}
