// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package session holds the in-memory state of one batch invocation: the
// per-target outcomes, the status state machine, and the final report with
// its consistency check. A session is created at the start of a run and
// discarded at process exit.
package session
