// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package simtool

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/gpulab/gpulab/pkg/cluster"
	"github.com/gpulab/gpulab/pkg/cmdline"
	"github.com/gpulab/gpulab/pkg/tui"
)

// IBStat simulates the InfiniBand ibstat utility. A CA name may be given as
// an argument, optionally followed by a port number; bare ibstat reports
// every adapter.
type IBStat struct{}

func (*IBStat) Name() string      { return "ibstat" }
func (*IBStat) Aliases() []string { return []string{"ibstatus"} }
func (*IBStat) Description() string {
	return "InfiniBand adapter status (simulated ibstat)"
}

func (*IBStat) Schema() cmdline.FlagSchema {
	return cmdline.FlagSchema{
		"l":           {ConsumesValue: false},
		"list_of_cas": {ConsumesValue: false},
		"s":           {ConsumesValue: false},
		"short":       {ConsumesValue: false},
		"p":           {ConsumesValue: false},
		"port_list":   {ConsumesValue: false},
	}
}

func (t *IBStat) Run(ctx context.Context, env *Env, cmd *cmdline.ParsedCommand) error {
	if cmd.HasFlag("l", "list_of_cas") {
		for _, ca := range caNames(env.Cluster) {
			fmt.Fprintln(env.Out, ca)
		}
		return nil
	}

	// "ibstat mlx5_0" parses the CA name as a subcommand; a trailing port
	// number is an integer and therefore lands in the positional args.
	if len(cmd.Subcommands) > 0 {
		ca := cmd.Subcommands[0]
		ports := env.Cluster.CA(ca)
		if len(ports) == 0 {
			return fmt.Errorf("ibstat: %s: no such channel adapter", ca)
		}
		if len(cmd.PositionalArgs) > 0 {
			want, err := strconv.Atoi(cmd.PositionalArgs[0])
			if err != nil {
				return fmt.Errorf("ibstat: invalid port number %q", cmd.PositionalArgs[0])
			}
			for _, p := range ports {
				if p.Port == want {
					t.writePort(env, p)
					return nil
				}
			}
			return fmt.Errorf("ibstat: %s: port %d not found", ca, want)
		}
		if cmd.HasFlag("p", "port_list") {
			for _, p := range ports {
				fmt.Fprintln(env.Out, p.Port)
			}
			return nil
		}
		t.writeCA(env, ca, ports, cmd.HasFlag("s", "short"))
		return nil
	}

	short := cmd.HasFlag("s", "short")
	for _, ca := range caNames(env.Cluster) {
		t.writeCA(env, ca, env.Cluster.CA(ca), short)
	}
	return nil
}

func (t *IBStat) writeCA(env *Env, ca string, ports []*cluster.IBPort, short bool) {
	fmt.Fprintf(env.Out, "CA '%s'\n", ca)
	fmt.Fprintf(env.Out, "\tCA type: MT4129\n")
	fmt.Fprintf(env.Out, "\tNumber of ports: %d\n", len(ports))
	if len(ports) > 0 {
		fmt.Fprintf(env.Out, "\tNode GUID: %s\n", ports[0].GUID)
	}
	if short {
		return
	}
	for _, p := range ports {
		t.writePort(env, p)
	}
}

func (t *IBStat) writePort(env *Env, p *cluster.IBPort) {
	state := p.State
	if env.Color.Enabled {
		switch p.State {
		case "Active":
			state = env.Color.Wrap(tui.ColorGreen, p.State)
		case "Down":
			state = env.Color.Wrap(tui.ColorRed, p.State)
		default:
			state = env.Color.Wrap(tui.ColorYellow, p.State)
		}
	}
	fmt.Fprintf(env.Out, "\tPort %d:\n", p.Port)
	fmt.Fprintf(env.Out, "\t\tState: %s\n", state)
	fmt.Fprintf(env.Out, "\t\tPhysical state: %s\n", p.PhysState)
	fmt.Fprintf(env.Out, "\t\tRate: %d\n", p.RateGbps)
	fmt.Fprintf(env.Out, "\t\tBase lid: %d\n", p.LID)
	fmt.Fprintf(env.Out, "\t\tPort GUID: %s\n", p.GUID)
}

// caNames returns the distinct channel adapter names, sorted.
func caNames(c *cluster.Cluster) []string {
	seen := map[string]bool{}
	var names []string
	for _, node := range c.Nodes {
		for _, p := range node.IBPorts {
			if !seen[p.CA] {
				seen[p.CA] = true
				names = append(names, p.CA)
			}
		}
	}
	sort.Strings(names)
	return names
}
