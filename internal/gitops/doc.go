// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package gitops implements the built-in repository operations. Each one
// shells out to git rather than reimplementing plumbing, takes interactive
// input through a prompt.Provider, and reports nothing-to-do targets so the
// batch tally stays honest.
package gitops
