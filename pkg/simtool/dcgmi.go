// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package simtool

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"golang.org/x/sync/errgroup"

	"github.com/gpulab/gpulab/pkg/cmdline"
	"github.com/gpulab/gpulab/pkg/tui"
)

// DCGMI simulates NVIDIA's Data Center GPU Manager CLI. It supports the
// discovery, group and diag subcommands.
type DCGMI struct{}

func (*DCGMI) Name() string      { return "dcgmi" }
func (*DCGMI) Aliases() []string { return nil }
func (*DCGMI) Description() string {
	return "GPU health and diagnostics (simulated dcgmi)"
}

func (*DCGMI) Schema() cmdline.FlagSchema {
	return cmdline.FlagSchema{
		"r": {ConsumesValue: true},
		"g": {ConsumesValue: true},
		"i": {ConsumesValue: true},
		"l": {ConsumesValue: false},
		"j": {ConsumesValue: false},
		"v": {ConsumesValue: false},
	}
}

// diag run levels, in increasing thoroughness.
var diagChecks = map[int][]string{
	1: {"Deployment"},
	2: {"Deployment", "PCIe", "SM Stress"},
	3: {"Deployment", "PCIe", "SM Stress", "Targeted Power", "Memory Bandwidth"},
}

func (t *DCGMI) Run(ctx context.Context, env *Env, cmd *cmdline.ParsedCommand) error {
	if len(cmd.Subcommands) == 0 {
		return fmt.Errorf("dcgmi: a subcommand is required (discovery, group, diag)")
	}
	switch sub := cmd.Subcommands[0]; sub {
	case "discovery":
		return t.discovery(env, cmd)
	case "group":
		return t.group(env, cmd)
	case "diag":
		return t.diag(ctx, env, cmd)
	default:
		return fmt.Errorf("dcgmi: unknown subcommand %q", sub)
	}
}

func (t *DCGMI) discovery(env *Env, cmd *cmdline.ParsedCommand) error {
	if !cmd.HasFlag("l") {
		return fmt.Errorf("dcgmi discovery: -l is required")
	}
	fmt.Fprintf(env.Out, "%d GPUs found.\n", env.Cluster.GPUCount())

	w := table.NewWriter()
	w.SetOutputMirror(env.Out)
	w.SetStyle(table.StyleLight)
	w.AppendHeader(table.Row{"GPU ID", "Device Information"})
	for _, node := range env.Cluster.Nodes {
		for _, g := range node.GPUs {
			info := fmt.Sprintf("Name: %s\nUUID: GPU-%s\nHost: %s", g.Model, g.UUID, node.Name)
			w.AppendRow(table.Row{g.Index, info})
			w.AppendSeparator()
		}
	}
	w.Render()
	return nil
}

// group treats each node as one GPU group, numbered in node order.
func (t *DCGMI) group(env *Env, cmd *cmdline.ParsedCommand) error {
	if !cmd.HasFlag("l") {
		return fmt.Errorf("dcgmi group: -l is required")
	}
	fmt.Fprintf(env.Out, "%d groups found.\n", len(env.Cluster.Nodes))
	for gi, node := range env.Cluster.Nodes {
		ids := make([]string, 0, len(node.GPUs))
		for _, g := range node.GPUs {
			ids = append(ids, strconv.Itoa(g.Index))
		}
		fmt.Fprintf(env.Out, "Group %d: %s\n", gi, node.Name)
		fmt.Fprintf(env.Out, "  GPU IDs: %s\n", strings.Join(ids, ", "))
	}
	return nil
}

type diagResult struct {
	gpuIndex int
	check    string
	pass     bool
	detail   string
}

func (t *DCGMI) diag(ctx context.Context, env *Env, cmd *cmdline.ParsedCommand) error {
	level := 1
	if v := cmd.FlagString("", "r"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || diagChecks[n] == nil {
			return fmt.Errorf("dcgmi diag: invalid run level %q (want 1-3)", v)
		}
		level = n
	}

	nodes := env.Cluster.Nodes
	if v := cmd.FlagString("", "g"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 || n >= len(nodes) {
			return fmt.Errorf("dcgmi diag: group %q not found", v)
		}
		nodes = nodes[n : n+1]
	}

	checks := diagChecks[level]
	spin := tui.NewSpinner(env.Out, env.Color)
	spin.Start(fmt.Sprintf("Running level %d diagnostic", level))

	// Each GPU runs its checks concurrently; results are collected and
	// rendered in a stable order afterwards.
	var (
		mu      sync.Mutex
		results []diagResult
	)
	eg, ctx := errgroup.WithContext(ctx)
	for _, node := range nodes {
		for _, g := range node.GPUs {
			g := g
			eg.Go(func() error {
				for _, check := range checks {
					select {
					case <-ctx.Done():
						return ctx.Err()
					case <-time.After(time.Millisecond):
					}
					res := runDiagCheck(g.Index, check, g.ECCVolatileErrors, g.TemperatureC)
					mu.Lock()
					results = append(results, res)
					mu.Unlock()
				}
				return nil
			})
		}
	}
	err := eg.Wait()
	spin.Stop()
	if err != nil {
		return err
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].gpuIndex != results[j].gpuIndex {
			return results[i].gpuIndex < results[j].gpuIndex
		}
		return checkRank(checks, results[i].check) < checkRank(checks, results[j].check)
	})

	fmt.Fprintf(env.Out, "Successfully ran diagnostic for group.\n")
	w := table.NewWriter()
	w.SetOutputMirror(env.Out)
	w.SetStyle(table.StyleLight)
	w.AppendHeader(table.Row{"GPU", "Test", "Result", "Detail"})
	for _, r := range results {
		verdict := env.Color.Wrap(tui.ColorGreen, "Pass")
		if !r.pass {
			verdict = env.Color.Wrap(tui.ColorRed, "Fail")
		}
		w.AppendRow(table.Row{r.gpuIndex, r.check, verdict, r.detail})
	}
	w.Render()
	return nil
}

// runDiagCheck derives a deterministic verdict from the device state so the
// same cluster always diagnoses the same way.
func runDiagCheck(gpuIndex int, check string, eccErrors, tempC int) diagResult {
	res := diagResult{gpuIndex: gpuIndex, check: check, pass: true}
	switch check {
	case "Memory Bandwidth":
		if eccErrors > 0 {
			res.pass = false
			res.detail = fmt.Sprintf("%d correctable ECC errors", eccErrors)
		}
	case "Targeted Power":
		if tempC >= 85 {
			res.pass = false
			res.detail = fmt.Sprintf("thermal limit at %d C", tempC)
		}
	}
	return res
}

func checkRank(checks []string, name string) int {
	for i, c := range checks {
		if c == name {
			return i
		}
	}
	return len(checks)
}
