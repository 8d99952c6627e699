// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package prompt

import (
	"context"
	"maps"
	"strings"

	"github.com/matt-FFFFFF/githerd/internal/ctxlog"
)

// rememberPrompt asks the operator whether a fresh answer should be reused.
// It is resolved through the inner provider and is itself never cached.
const rememberPrompt = "Remember this answer for the remaining repositories? (y/n)"

var _ Provider = (*CacheProvider)(nil)

// CacheProvider memoizes answers by exact prompt text in front of another
// provider. The cache lives for one batch run. A prompt whose text differs
// per repository never matches and is asked again; that is intended, since
// the key is the verbatim prompt text.
//
// The cache is owned by a single sequential run loop, so no locking is used.
type CacheProvider struct {
	inner       Provider
	autoRespond bool
	responses   map[string]Answer
	onEvent     func(msg string)
}

// CacheOption configures a CacheProvider.
type CacheOption func(*CacheProvider)

// WithAutoRespond stores every fresh answer silently instead of asking the
// operator whether to remember it.
func WithAutoRespond() CacheOption {
	return func(c *CacheProvider) {
		c.autoRespond = true
	}
}

// WithEventFunc registers a callback invoked with progress markers, such as
// cache hits. The batch log subscribes through this.
func WithEventFunc(fn func(msg string)) CacheOption {
	return func(c *CacheProvider) {
		c.onEvent = fn
	}
}

// WithPreset seeds the cache with answers before the run starts. Presets
// behave exactly like remembered answers.
func WithPreset(answers map[string]string) CacheOption {
	return func(c *CacheProvider) {
		for k, v := range answers {
			c.responses[k] = Answer{Value: v}
		}
	}
}

// NewCacheProvider creates a CacheProvider wrapping inner.
func NewCacheProvider(inner Provider, opts ...CacheOption) *CacheProvider {
	c := &CacheProvider{
		inner:     inner,
		responses: make(map[string]Answer),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Ask implements the Provider interface for CacheProvider.
func (c *CacheProvider) Ask(ctx context.Context, p Prompt) (Answer, error) {
	if ans, ok := c.responses[p.Text]; ok {
		ctxlog.Debug(ctx, "using cached response", "prompt", p.Text)
		c.event("using cached response for " + p.Text)

		return ans, nil
	}

	ans, err := c.inner.Ask(ctx, p)
	if err != nil {
		return Answer{}, err
	}

	if c.autoRespond {
		c.responses[p.Text] = ans
		return ans, nil
	}

	remember, err := c.inner.Ask(ctx, Prompt{Text: rememberPrompt, Default: "n"})
	if err != nil {
		return Answer{}, err
	}

	if isAffirmative(remember.Value) {
		c.responses[p.Text] = ans
		c.event("remembered response for " + p.Text)
	}

	return ans, nil
}

// Responses returns a copy of the memoized answers keyed by prompt text.
func (c *CacheProvider) Responses() map[string]Answer {
	return maps.Clone(c.responses)
}

// Len returns the number of memoized answers.
func (c *CacheProvider) Len() int {
	return len(c.responses)
}

func (c *CacheProvider) event(msg string) {
	if c.onEvent == nil {
		return
	}

	c.onEvent(msg)
}

func isAffirmative(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
