// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package session

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/matt-FFFFFF/githerd/internal/discover"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func target(name string) discover.Target {
	return discover.Target{Name: name, Path: "/work/" + name}
}

func TestRecordRejectsNonTerminal(t *testing.T) {
	s := New("op", discover.ModeCurrent, false)

	err := s.Record(Outcome{Target: target("repoA"), Status: StatusRunning})
	require.ErrorIs(t, err, ErrNonTerminalOutcome)

	err = s.Record(Outcome{Target: target("repoA"), Status: StatusPending})
	require.ErrorIs(t, err, ErrNonTerminalOutcome)
}

func TestRecordRejectsDuplicates(t *testing.T) {
	s := New("op", discover.ModeCurrent, false)

	require.NoError(t, s.Record(Outcome{Target: target("repoA"), Status: StatusSuccess}))

	err := s.Record(Outcome{Target: target("repoA"), Status: StatusFailure})
	require.ErrorIs(t, err, ErrDuplicateOutcome)

	assert.Len(t, s.Outcomes(), 1)
}

func TestReportCounts(t *testing.T) {
	s := New("op", discover.ModeCurrent, false)

	require.NoError(t, s.Record(Outcome{Target: target("repoA"), Status: StatusSuccess}))
	require.NoError(t, s.Record(Outcome{Target: target("repoB"), Status: StatusFailure, ExitCode: 1}))
	require.NoError(t, s.Record(Outcome{Target: target("notes"), Status: StatusSkipped, Reason: discover.SkipNotARepository}))

	r := s.Report(3)

	assert.Len(t, r.Successes, 1)
	assert.Len(t, r.Failures, 1)
	assert.Len(t, r.Skips, 1)
	require.NoError(t, r.InvariantErr)
	assert.Equal(t, 1, r.ExitCode())
}

func TestReportExitCodeZero(t *testing.T) {
	s := New("op", discover.ModeCurrent, false)

	require.NoError(t, s.Record(Outcome{Target: target("repoA"), Status: StatusSuccess}))
	require.NoError(t, s.Record(Outcome{Target: target("notes"), Status: StatusSkipped, Reason: discover.SkipNotARepository}))

	r := s.Report(2)

	assert.Equal(t, 0, r.ExitCode())
}

func TestReportInvariantViolationIsLoudNotFatal(t *testing.T) {
	s := New("op", discover.ModeCurrent, false)

	require.NoError(t, s.Record(Outcome{Target: target("repoA"), Status: StatusSuccess}))

	// Total claims two targets but only one outcome was recorded.
	r := s.Report(2)
	require.Error(t, r.InvariantErr)

	buf := &bytes.Buffer{}
	require.NoError(t, r.WriteText(buf))
	assert.Contains(t, buf.String(), "report inconsistency")
	assert.Contains(t, buf.String(), "do not sum to total")
}

func TestReportWriteText(t *testing.T) {
	s := New("op", discover.ModeCurrent, false)

	require.NoError(t, s.Record(Outcome{Target: target("repoA"), Status: StatusSuccess}))
	require.NoError(t, s.Record(Outcome{Target: target("repoB"), Status: StatusFailure, ExitCode: 1, Reason: ReasonInterrupted}))
	require.NoError(t, s.Record(Outcome{Target: target("notes"), Status: StatusSkipped, Reason: discover.SkipNotARepository}))

	buf := &bytes.Buffer{}
	require.NoError(t, s.Report(3).WriteText(buf))

	out := buf.String()
	assert.Contains(t, out, "op over 3 targets")
	assert.Contains(t, out, "repoA")
	assert.Contains(t, out, "repoB (exit code: 1) interrupted")
	assert.Contains(t, out, "notes (not a repository)")
	assert.Contains(t, out, "1 succeeded")
	assert.Contains(t, out, "1 failed")
	assert.Contains(t, out, "1 skipped")
}

func TestReportWriteJSON(t *testing.T) {
	s := New("prune-merged", discover.ModeParent, true)

	require.NoError(t, s.Record(Outcome{Target: target("repoA"), Status: StatusSuccess}))

	buf := &bytes.Buffer{}
	require.NoError(t, s.Report(1).WriteJSON(buf))

	var decoded map[string]any

	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "prune-merged", decoded["operation"])
	assert.Equal(t, "parent", decoded["mode"])
	assert.Equal(t, true, decoded["autoRespond"])
	assert.InDelta(t, 1, decoded["succeeded"], 0)
}

func TestReportCarriesRunConfiguration(t *testing.T) {
	s := New("op", discover.ModeParent, true)

	r := s.Report(0)
	assert.Equal(t, discover.ModeParent, r.Mode)
	assert.True(t, r.AutoRespond)
}

func TestStatusTransitions(t *testing.T) {
	assert.True(t, StatusPending.ValidNext(StatusRunning))
	assert.True(t, StatusPending.ValidNext(StatusSkipped))
	assert.True(t, StatusRunning.ValidNext(StatusSuccess))
	assert.True(t, StatusRunning.ValidNext(StatusFailure))

	assert.False(t, StatusPending.ValidNext(StatusSuccess))
	assert.False(t, StatusRunning.ValidNext(StatusSkipped))
	assert.False(t, StatusSuccess.ValidNext(StatusRunning))
	assert.False(t, StatusSkipped.ValidNext(StatusRunning))
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "success", StatusSuccess.String())
	assert.Equal(t, "failure", StatusFailure.String())
	assert.Equal(t, "skipped", StatusSkipped.String())
	assert.Equal(t, "pending", StatusPending.String())
	assert.Equal(t, "running", StatusRunning.String())
	assert.Equal(t, "unknown", Status(99).String())
}
