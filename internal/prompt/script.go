// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package prompt

import (
	"context"
	"fmt"
)

var _ Provider = (*ScriptProvider)(nil)

// ScriptProvider answers prompts from a fixed table. It backs tests and
// non-interactive runs where every answer is known up front.
type ScriptProvider struct {
	// Answers maps verbatim prompt text to the scripted answer.
	Answers map[string]string
	// UseDefaults resolves unknown prompts to their default value when one
	// is present, instead of failing.
	UseDefaults bool
}

// Ask implements the Provider interface for ScriptProvider.
func (s *ScriptProvider) Ask(_ context.Context, p Prompt) (Answer, error) {
	if v, ok := s.Answers[p.Text]; ok {
		return Answer{Value: v}, nil
	}

	if s.UseDefaults && p.Default != "" {
		return Answer{Value: p.Default, FromDefault: true}, nil
	}

	return Answer{}, fmt.Errorf("%w: %q", ErrNoAnswer, p.Text)
}
