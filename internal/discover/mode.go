// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package discover

import "errors"

// Mode selects the directory whose children are scanned for repositories.
type Mode int

const (
	// ModeCurrent scans the immediate subdirectories of the root itself.
	ModeCurrent Mode = iota
	// ModeParent scans the siblings of the root, i.e. the children of its parent.
	ModeParent
)

const (
	modeCurrentStr = "current"
	modeParentStr  = "parent"
	modeUnknownStr = "unknown"
)

// ErrModeUnknown is returned when an unknown Mode value is encountered.
var ErrModeUnknown = errors.New("unknown discovery mode")

// String returns the string representation of the Mode.
func (m Mode) String() string {
	switch m {
	case ModeCurrent:
		return modeCurrentStr
	case ModeParent:
		return modeParentStr
	default:
		return modeUnknownStr
	}
}

// ParseMode creates a Mode from a string.
func ParseMode(s string) (Mode, error) {
	switch s {
	case modeCurrentStr, "":
		return ModeCurrent, nil
	case modeParentStr:
		return ModeParent, nil
	default:
		return Mode(-1), ErrModeUnknown
	}
}
