// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package simtool

import (
	"context"
	"fmt"
	"sort"

	"github.com/gpulab/gpulab/pkg/cmdline"
)

// Registry maps command names (and aliases) to tools.
type Registry struct {
	tools   map[string]Tool
	aliases map[string]string
}

func NewRegistry() *Registry {
	return &Registry{
		tools:   make(map[string]Tool),
		aliases: make(map[string]string),
	}
}

// DefaultRegistry returns a registry with every simulated tool registered.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&NvidiaSMI{})
	r.Register(&DCGMI{})
	r.Register(&IBStat{})
	r.Register(&Learn{})
	return r
}

// Register adds a tool under its name and aliases. A name collision is a
// programming error and panics.
func (r *Registry) Register(t Tool) {
	name := t.Name()
	if _, dup := r.tools[name]; dup {
		panic(fmt.Sprintf("simtool: duplicate tool %q", name))
	}
	r.tools[name] = t
	for _, alias := range t.Aliases() {
		if alias == "" {
			continue
		}
		if _, dup := r.tools[alias]; dup {
			continue
		}
		if _, dup := r.aliases[alias]; dup {
			continue
		}
		r.aliases[alias] = name
	}
}

// Get returns the tool registered under name, resolving aliases.
func (r *Registry) Get(name string) (Tool, bool) {
	if t, ok := r.tools[name]; ok {
		return t, true
	}
	if canonical, ok := r.aliases[name]; ok {
		return r.tools[canonical], true
	}
	return nil, false
}

// Names returns the canonical tool names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.tools))
	for n := range r.tools {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Tools returns all tools ordered by name.
func (r *Registry) Tools() []Tool {
	tools := make([]Tool, 0, len(r.tools))
	for _, n := range r.Names() {
		tools = append(tools, r.tools[n])
	}
	return tools
}

// Execute parses line with the target tool's schema and runs the tool.
// The base command is extracted with a schema-less parse first; the line is
// then re-parsed with the tool's own schema so its flags resolve precisely.
func (r *Registry) Execute(ctx context.Context, env *Env, line string) error {
	base := cmdline.Parse(line, nil).BaseCommand
	if base == "" {
		return nil
	}
	tool, ok := r.Get(base)
	if !ok {
		return fmt.Errorf("unknown command: %s. Type 'help' for available commands", base)
	}
	return tool.Run(ctx, env, cmdline.Parse(line, tool.Schema()))
}
