// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runner

import (
	"strings"

	"github.com/matt-FFFFFF/githerd/internal/prompt"
)

const (
	// AskSentinel marks a stderr line as an interactive input request.
	// The format is "::ask::<prompt>" or "::ask::<prompt>::<default>".
	// The answer is written to the child's stdin, terminated by a newline.
	AskSentinel = "::ask::"

	askSeparator = "::"
)

// parseAsk decodes an ask-protocol line. It returns false when the line is
// ordinary output.
//
// The default is split off at the LAST separator so a prompt ending in a
// colon ("Branch name:::main") keeps its colon. A default value must not
// contain "::".
func parseAsk(line string) (prompt.Prompt, bool) {
	if !strings.HasPrefix(line, AskSentinel) {
		return prompt.Prompt{}, false
	}

	rest := strings.TrimPrefix(line, AskSentinel)
	if rest == "" {
		return prompt.Prompt{}, false
	}

	if i := strings.LastIndex(rest, askSeparator); i >= 0 {
		return prompt.Prompt{Text: rest[:i], Default: rest[i+len(askSeparator):]}, true
	}

	return prompt.Prompt{Text: rest}, true
}
