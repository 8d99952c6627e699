// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package prompt resolves interactive input requests raised by batch
// operations. Providers can be composed: a caching provider in front of a
// terminal provider gives capture-and-replay of answers across repositories
// without the operation being aware of either.
package prompt
