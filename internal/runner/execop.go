// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runner

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/matt-FFFFFF/githerd/internal/ctxlog"
	"github.com/matt-FFFFFF/githerd/internal/discover"
	"github.com/matt-FFFFFF/githerd/internal/prompt"
	"github.com/matt-FFFFFF/githerd/internal/session"
)

var (
	// ErrOperationNotFound is returned when the operation executable does not exist.
	ErrOperationNotFound = errors.New("operation not found")
	// ErrOperationNotExecutable is returned when the operation path is not an executable file.
	ErrOperationNotExecutable = errors.New("operation is not executable")
	// ErrCouldNotStartProcess is returned when the child process could not be started.
	ErrCouldNotStartProcess = errors.New("could not start process")
	// ErrInterrupted is returned when the child process was terminated by
	// cancellation of the run.
	ErrInterrupted = errors.New("operation interrupted")
)

var _ Operation = (*ExecOperation)(nil)

// ExecOperation runs an external executable once per target, with the target
// directory as the child's working directory. The working directory of the
// runner process is never changed.
type ExecOperation struct {
	Name string   // label for logs and the report
	Path string   // absolute path to the executable
	Args []string // arguments, not including the executable name

	// SkipExitCodes lists child exit codes that mean "nothing to do here";
	// such targets are recorded as skipped rather than failed.
	SkipExitCodes []int
}

// ResolveExec validates the operation path before the run starts. A missing
// or non-executable path is a configuration error for the whole batch,
// distinct from any per-target failure.
func ResolveExec(path string, args []string) (*ExecOperation, error) {
	resolved := path

	// A bare name is looked up on PATH, like a shell would.
	if !strings.ContainsRune(path, os.PathSeparator) {
		p, err := exec.LookPath(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrOperationNotFound, path)
		}

		resolved = p
	}

	abs, err := filepath.Abs(resolved)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrOperationNotFound, path)
	}

	fi, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrOperationNotFound, abs)
	}

	if fi.IsDir() || fi.Mode().Perm()&0o111 == 0 {
		return nil, fmt.Errorf("%w: %s", ErrOperationNotExecutable, abs)
	}

	return &ExecOperation{
		Name: filepath.Base(abs),
		Path: abs,
		Args: args,
	}, nil
}

// Label implements the Operation interface.
func (o *ExecOperation) Label() string {
	if o.Name != "" {
		return o.Name
	}

	return filepath.Base(o.Path)
}

// Invoke implements the Operation interface for ExecOperation.
func (o *ExecOperation) Invoke(ctx context.Context, r *Runner, target discover.Target) session.Outcome {
	logger := ctxlog.Logger(ctx).With("operation", o.Label()).With("target", target.Name)
	logger.Debug("command info", "path", o.Path, "cwd", target.Path, "args", o.Args)

	cmd := exec.Command(o.Path, o.Args...) //nolint:gosec // the operation is operator-supplied by design
	cmd.Dir = target.Path
	cmd.Env = append(os.Environ(),
		"GITHERD_TARGET_NAME="+target.Name,
		"GITHERD_TARGET_PATH="+target.Path,
	)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return failedOutcome(target, errors.Join(ErrCouldNotStartProcess, err))
	}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return failedOutcome(target, errors.Join(ErrCouldNotStartProcess, err))
	}

	stderr, err := cmd.StderrPipe()
	if err != nil {
		return failedOutcome(target, errors.Join(ErrCouldNotStartProcess, err))
	}

	if err := cmd.Start(); err != nil {
		return failedOutcome(target, errors.Join(ErrCouldNotStartProcess, err))
	}

	logger.Debug("process started", "pid", cmd.Process.Pid)

	// Watchdog: kill the child when the run is cancelled. The done channel
	// stops the watchdog once Wait returns; killed records why.
	done := make(chan struct{})
	killed := make(chan error, 1)

	go func() {
		select {
		case <-ctx.Done():
			logger.Info("run cancelled, killing process", "pid", cmd.Process.Pid)
			killed <- ErrInterrupted

			if err := cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
				logger.Error("process kill error", "pid", cmd.Process.Pid, "error", err)
			}
		case <-done:
		}
	}()

	var wg sync.WaitGroup

	wg.Add(2)

	go func() {
		defer wg.Done()
		r.streamLines(ctx, stdout, target, nil)
	}()

	go func() {
		defer wg.Done()
		r.streamLines(ctx, stderr, target, stdin)
	}()

	wg.Wait()

	psErr := cmd.Wait()

	close(done)

	_ = stdin.Close()

	exitCode := cmd.ProcessState.ExitCode()
	logger.Debug("process finished", "exitCode", exitCode)

	var kerr error

	select {
	case kerr = <-killed:
	default:
	}

	return o.exitOutcome(target, exitCode, psErr, kerr)
}

// exitOutcome maps a finished child to its outcome. A kill request counts as
// an interruption only when the process actually died from it (exit code -1);
// a child that completed just before cancellation landed keeps its real
// result.
func (o *ExecOperation) exitOutcome(target discover.Target, exitCode int, psErr, kerr error) session.Outcome {
	if kerr != nil && exitCode == -1 {
		return session.Outcome{
			Target:   target,
			Status:   session.StatusFailure,
			ExitCode: exitCode,
			Reason:   session.ReasonInterrupted,
			Err:      kerr,
		}
	}

	switch {
	case exitCode == 0:
		return session.Outcome{Target: target, Status: session.StatusSuccess}
	case slices.Contains(o.SkipExitCodes, exitCode):
		return session.Outcome{
			Target:   target,
			Status:   session.StatusSkipped,
			ExitCode: exitCode,
			Reason:   "nothing to do",
		}
	default:
		return session.Outcome{
			Target:   target,
			Status:   session.StatusFailure,
			ExitCode: exitCode,
			Err:      psErr,
		}
	}
}

// streamLines copies child output to the console and the batch log one line
// at a time. When answers is non-nil the stream is watched for ask-protocol
// lines, which are resolved through the runner's provider instead of being
// echoed.
func (r *Runner) streamLines(ctx context.Context, from io.Reader, target discover.Target, answers io.Writer) {
	scanner := bufio.NewScanner(from)
	scanner.Buffer(make([]byte, 0, initialScanBuffer), maxScanBuffer)

	for scanner.Scan() {
		line := scanner.Text()

		if answers != nil {
			if p, ok := parseAsk(line); ok {
				r.resolveAsk(ctx, p, target, answers)
				continue
			}
		}

		fmt.Fprintf(r.console(), "  %s | %s\n", target.Name, line) //nolint:errcheck

		if r.Log != nil {
			r.Log.Linef("%s | %s", target.Name, line)
		}
	}

	// A scan error (typically a line over the buffer limit) must not leave
	// the pipe full: the child would block on write and never exit. Drain
	// the rest so the target is still recorded by its exit code.
	if err := scanner.Err(); err != nil {
		ctxlog.Warn(ctx, "output stream truncated", "target", target.Name, "error", err)

		if r.Log != nil {
			r.Log.Linef("%s | output stream truncated: %v", target.Name, err)
		}

		_, _ = io.Copy(io.Discard, from)
	}
}

func (r *Runner) resolveAsk(ctx context.Context, p prompt.Prompt, target discover.Target, answers io.Writer) {
	ans, err := r.Provider.Ask(ctx, p)
	if err != nil {
		ctxlog.Warn(ctx, "failed to resolve prompt", "prompt", p.Text, "error", err)

		// Leave the child to handle an empty answer; closing its stdin
		// here would abort every later prompt too.
		ans.Value = ""
	}

	if r.Log != nil {
		r.Log.Linef("%s | resolved prompt %q", target.Name, p.Text)
	}

	fmt.Fprintln(answers, ans.Value) //nolint:errcheck
}

func failedOutcome(target discover.Target, err error) session.Outcome {
	return session.Outcome{
		Target:   target,
		Status:   session.StatusFailure,
		ExitCode: -1,
		Err:      err,
	}
}
