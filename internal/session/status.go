// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package session

// Status represents the state of one target within a batch run.
//
// Valid transitions: Pending -> Running -> {Success, Failure}, and
// Pending -> Skipped. A target never re-enters Pending; retries are a
// future run, not a state transition.
type Status int

const (
	// StatusPending means the target has not been started yet.
	StatusPending Status = iota
	// StatusRunning means the operation is currently executing on the target.
	StatusRunning
	// StatusSuccess means the operation completed with a success exit code.
	StatusSuccess
	// StatusFailure means the operation exited non-zero or was interrupted.
	StatusFailure
	// StatusSkipped means the target was never run, with a recorded reason.
	StatusSkipped
)

const (
	statusPendingStr = "pending"
	statusRunningStr = "running"
	statusSuccessStr = "success"
	statusFailureStr = "failure"
	statusSkippedStr = "skipped"
	statusUnknownStr = "unknown"
)

// String returns the string representation of the Status.
func (s Status) String() string {
	switch s {
	case StatusPending:
		return statusPendingStr
	case StatusRunning:
		return statusRunningStr
	case StatusSuccess:
		return statusSuccessStr
	case StatusFailure:
		return statusFailureStr
	case StatusSkipped:
		return statusSkippedStr
	default:
		return statusUnknownStr
	}
}

// Terminal reports whether the status is a final outcome state.
func (s Status) Terminal() bool {
	switch s {
	case StatusSuccess, StatusFailure, StatusSkipped:
		return true
	default:
		return false
	}
}

// ValidNext reports whether a transition from s to next is allowed.
func (s Status) ValidNext(next Status) bool {
	switch s {
	case StatusPending:
		return next == StatusRunning || next == StatusSkipped
	case StatusRunning:
		return next == StatusSuccess || next == StatusFailure
	default:
		return false
	}
}
