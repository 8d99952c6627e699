// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package discover finds the repositories a batch run will operate on.
// It scans the immediate subdirectories of a root directory and records
// every qualifying repository as a target and every other subdirectory
// as a skip, so nothing disappears from the final tally.
package discover
