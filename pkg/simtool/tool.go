// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package simtool implements the simulated administration tools and the
// registry the shell dispatches into. Each tool consumes a parsed command
// line and renders plausible output from the fictitious cluster model.
package simtool

import (
	"context"
	"io"

	"github.com/gpulab/gpulab/pkg/cluster"
	"github.com/gpulab/gpulab/pkg/cmdline"
	"github.com/gpulab/gpulab/pkg/content"
	"github.com/gpulab/gpulab/pkg/tui"
)

// Tool is one simulated command.
type Tool interface {
	// Name is the command users type, e.g. "nvidia-smi".
	Name() string

	// Aliases returns alternative names for the tool.
	Aliases() []string

	// Description is a one-line summary for help listings.
	Description() string

	// Schema declares the tool's known flags so the parser can resolve
	// value/boolean ambiguity. Flags outside the schema still parse,
	// heuristically.
	Schema() cmdline.FlagSchema

	// Run interprets the parsed command against env and writes output
	// to env.Out. Tools report usage problems as errors; they never
	// panic on odd input.
	Run(ctx context.Context, env *Env, cmd *cmdline.ParsedCommand) error
}

// Env is the world a tool runs against.
type Env struct {
	Cluster *cluster.Cluster
	Lessons *content.Library
	Out     io.Writer
	Color   tui.Colorizer
}
