// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package runner invokes the batch operation against each repository target.
//
// An executable operation runs as a child process with the target as its
// working directory. Its stdout and stderr are streamed line by line to the
// console and the batch log. Interactive input uses a line protocol: the
// child writes a line starting with "::ask::" to stderr and reads the answer
// from stdin. The runner resolves those requests through a prompt.Provider,
// so the child cannot tell a live terminal from a cached answer.
//
// Built-in operations run in process through the same surface.
package runner
