// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tui holds the terminal helpers of the argtree console: colors,
// terminal detection and line input for interactive arguments.
package tui

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

const (
	ColorRed    = color.FgRed
	ColorGreen  = color.FgGreen
	ColorYellow = color.FgYellow
	ColorDim    = color.FgHiBlack
)

var isTerminalFn = term.IsTerminal

// IsTerminal reports whether f is connected to a terminal.
func IsTerminal(f *os.File) bool {
	return isTerminalFn(int(f.Fd()))
}

// Colorizer paints text when Enabled.
type Colorizer struct {
	Enabled bool
}

// NewColorizer returns a Colorizer that is enabled when enabled is set and
// neither NO_COLOR nor a dumb TERM ask otherwise.
func NewColorizer(enabled bool) Colorizer {
	if !enabled {
		return Colorizer{}
	}
	if os.Getenv("NO_COLOR") != "" {
		return Colorizer{}
	}
	if t := os.Getenv("TERM"); t == "" || t == "dumb" {
		return Colorizer{}
	}
	return Colorizer{Enabled: true}
}

// Wrap returns text in the given color.
func (c Colorizer) Wrap(attr color.Attribute, text string) string {
	if !c.Enabled {
		return text
	}
	// The package default follows stdout, Enabled has already decided.
	p := color.New(attr)
	p.EnableColor()
	return p.Sprint(text)
}
