// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package batchlog writes the per-run diagnostic log: an append-only,
// line-oriented file capturing every line the invoked operation produced,
// interleaved with runner progress markers. The file is created lazily on
// the first write, so a run that fails configuration leaves no log behind.
package batchlog

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const (
	fileNameFormat = "githerd-20060102-150405.log"
	timeFormat     = "15:04:05.000"
	filePerm       = 0o644
	dirPerm        = 0o755
)

// Log is a session-wide log sink. Writes are line-oriented and flushed per
// line so a crash mid-run still leaves a readable partial log. It is safe
// for concurrent use; the output scanner goroutines write to it directly.
type Log struct {
	mu   sync.Mutex
	dir  string
	path string
	f    *os.File
	now  func() time.Time
}

// New creates a Log that will write into dir once the first line arrives.
func New(dir string) *Log {
	return &Log{dir: dir, now: time.Now}
}

// Line appends one line to the log, prefixed with a timestamp.
func (l *Log) Line(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.open(); err != nil {
		return
	}

	fmt.Fprintf(l.f, "%s %s\n", l.now().Format(timeFormat), s) //nolint:errcheck
}

// Linef appends one formatted line to the log.
func (l *Log) Linef(format string, args ...any) {
	l.Line(fmt.Sprintf(format, args...))
}

// Path returns the log file path, or the empty string if nothing has been
// written yet.
func (l *Log) Path() string {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.path
}

// Close closes the underlying file if one was created.
func (l *Log) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.f == nil {
		return nil
	}

	err := l.f.Close()
	l.f = nil

	return err //nolint:wrapcheck
}

// open creates the log file on first use. Must be called with the lock held.
func (l *Log) open() error {
	if l.f != nil {
		return nil
	}

	if err := os.MkdirAll(l.dir, dirPerm); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	path := filepath.Join(l.dir, l.now().Format(fileNameFormat))

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, filePerm)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}

	l.f = f
	l.path = path

	return nil
}
