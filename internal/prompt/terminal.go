// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package prompt

import (
	"context"
	"errors"
	"fmt"

	"github.com/matt-FFFFFF/githerd/internal/ctxlog"
	"github.com/peterh/liner"
)

// ErrPromptAborted is returned when the operator aborts a prompt with Ctrl+C.
var ErrPromptAborted = errors.New("prompt aborted")

var _ Provider = (*TerminalProvider)(nil)

// TerminalProvider reads answers from the controlling terminal using a
// line editor. An empty line resolves to the prompt default when one is
// set; an empty line with no default is an explicit empty answer.
type TerminalProvider struct{}

// NewTerminalProvider creates a TerminalProvider.
func NewTerminalProvider() *TerminalProvider {
	return &TerminalProvider{}
}

// Ask implements the Provider interface for TerminalProvider.
func (t *TerminalProvider) Ask(ctx context.Context, p Prompt) (Answer, error) {
	line := liner.NewLiner()
	defer func() {
		_ = line.Close()
	}()

	line.SetCtrlCAborts(true)

	display := p.Text
	if p.Default != "" {
		display = fmt.Sprintf("%s [%s]", p.Text, p.Default)
	}

	input, err := line.Prompt(display + " ")

	switch {
	case errors.Is(err, liner.ErrPromptAborted):
		return Answer{}, ErrPromptAborted
	case err != nil:
		return Answer{}, fmt.Errorf("failed to read terminal input: %w", err)
	}

	if input == "" && p.Default != "" {
		ctxlog.Debug(ctx, "prompt resolved to default", "prompt", p.Text, "default", p.Default)
		return Answer{Value: p.Default, FromDefault: true}, nil
	}

	line.AppendHistory(input)

	return Answer{Value: input}, nil
}
