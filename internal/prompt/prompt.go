// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package prompt

import (
	"context"
	"errors"
)

// Prompt is a single request for interactive input.
type Prompt struct {
	Text    string // the question, verbatim; also the cache key
	Default string // optional value used when the operator enters an empty line
}

// Answer is a resolved prompt value.
type Answer struct {
	Value       string
	FromDefault bool // true when the value came from the prompt default
}

// Provider resolves a prompt to an answer. The caller cannot tell whether the
// answer came from a live terminal, a cache, or a script.
type Provider interface {
	Ask(ctx context.Context, p Prompt) (Answer, error)
}

// ErrNoAnswer is returned by non-interactive providers when no answer is
// available for a prompt.
var ErrNoAnswer = errors.New("no answer available for prompt")
