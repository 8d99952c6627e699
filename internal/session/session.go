// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/matt-FFFFFF/githerd/internal/discover"
)

var (
	// ErrNonTerminalOutcome is returned when an outcome is recorded with a
	// status that is not a final state.
	ErrNonTerminalOutcome = errors.New("outcome status is not terminal")
	// ErrDuplicateOutcome is returned when a second outcome is recorded for
	// the same target.
	ErrDuplicateOutcome = errors.New("outcome already recorded for target")
)

// ReasonInterrupted is the failure reason for targets whose operation was
// terminated by an operator signal.
const ReasonInterrupted = "interrupted"

// ReasonRunInterrupted is the skip reason for targets that were still pending
// when the run was interrupted.
const ReasonRunInterrupted = "run interrupted"

// Outcome is the immutable result of processing one target.
type Outcome struct {
	Target   discover.Target
	Status   Status
	ExitCode int
	Reason   string // skip or failure reason, empty for plain success
	Err      error
}

// Session is the in-memory aggregate of one batch invocation. It owns the
// ordered outcome list and the run configuration for its lifetime and is
// mutated only by the sequential run loop.
type Session struct {
	Operation   string // label of the operation being run
	AutoRespond bool
	Mode        discover.Mode

	started  time.Time
	outcomes []Outcome
	recorded map[string]struct{}
}

// New creates a Session for a single batch invocation.
func New(operation string, mode discover.Mode, autoRespond bool) *Session {
	return &Session{
		Operation:   operation,
		AutoRespond: autoRespond,
		Mode:        mode,
		started:     time.Now(),
		recorded:    make(map[string]struct{}),
	}
}

// Record appends an outcome. Exactly one outcome may be recorded per target
// and it must carry a terminal status.
func (s *Session) Record(o Outcome) error {
	if !o.Status.Terminal() {
		return fmt.Errorf("%w: %s is %s", ErrNonTerminalOutcome, o.Target.Name, o.Status)
	}

	if _, ok := s.recorded[o.Target.Path]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateOutcome, o.Target.Name)
	}

	s.recorded[o.Target.Path] = struct{}{}
	s.outcomes = append(s.outcomes, o)

	return nil
}

// Outcomes returns the recorded outcomes in run order.
func (s *Session) Outcomes() []Outcome {
	return s.outcomes
}

// Started returns the time the session was created.
func (s *Session) Started() time.Time {
	return s.started
}
