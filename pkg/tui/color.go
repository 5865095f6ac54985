// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tui provides the small terminal primitives the simulator shares:
// color gating and a progress spinner for long-running simulated work.
package tui

import (
	"io"
	"os"

	"golang.org/x/term"
)

const (
	ColorReset  = "\x1b[0m"
	ColorRed    = "\x1b[31m"
	ColorGreen  = "\x1b[32m"
	ColorYellow = "\x1b[33m"
	ColorCyan   = "\x1b[36m"
	ColorDim    = "\x1b[90m"
)

type Colorizer struct {
	Enabled bool
}

// NewColorizer decides whether out should receive ANSI color. Color is
// disabled when out is not a terminal, when NO_COLOR is set, or when TERM
// is missing or dumb.
func NewColorizer(out io.Writer) Colorizer {
	f, ok := out.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return Colorizer{}
	}
	if os.Getenv("NO_COLOR") != "" {
		return Colorizer{}
	}
	t := os.Getenv("TERM")
	if t == "" || t == "dumb" {
		return Colorizer{}
	}
	return Colorizer{Enabled: true}
}

func (c Colorizer) Wrap(code, text string) string {
	if !c.Enabled || code == "" {
		return text
	}
	return code + text + ColorReset
}
