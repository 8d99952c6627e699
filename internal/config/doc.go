// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package config loads the optional YAML run configuration: discovery
// defaults, preset prompt answers, and operation aliases. The file may be
// fetched from any go-getter source.
package config
