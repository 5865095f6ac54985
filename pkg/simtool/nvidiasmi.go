// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package simtool

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/gpulab/gpulab/pkg/cluster"
	"github.com/gpulab/gpulab/pkg/cmdline"
	"github.com/gpulab/gpulab/pkg/tui"
)

// NvidiaSMI simulates the NVIDIA System Management Interface.
type NvidiaSMI struct{}

func (*NvidiaSMI) Name() string      { return "nvidia-smi" }
func (*NvidiaSMI) Aliases() []string { return []string{"smi"} }
func (*NvidiaSMI) Description() string {
	return "Show GPU device status (simulated nvidia-smi)"
}

func (*NvidiaSMI) Schema() cmdline.FlagSchema {
	return cmdline.FlagSchema{
		"i":         {ConsumesValue: true},
		"id":        {ConsumesValue: true},
		"q":         {ConsumesValue: false},
		"query":     {ConsumesValue: false},
		"L":         {ConsumesValue: false},
		"list-gpus": {ConsumesValue: false},
		"d":         {ConsumesValue: true},
		"display":   {ConsumesValue: true},
		"query-gpu": {ConsumesValue: true},
		"format":    {ConsumesValue: true},
	}
}

// gpuRef pairs a GPU with the node that hosts it.
type gpuRef struct {
	node *cluster.Node
	gpu  *cluster.GPU
}

func (t *NvidiaSMI) Run(ctx context.Context, env *Env, cmd *cmdline.ParsedCommand) error {
	gpus, err := selectGPUs(env.Cluster, cmd)
	if err != nil {
		return err
	}
	switch {
	case cmd.HasFlag("L", "list-gpus"):
		return t.list(env, gpus)
	case cmd.HasFlag("query-gpu"):
		return t.queryCSV(env, gpus, cmd)
	case cmd.HasFlag("q", "query"):
		return t.query(env, gpus, cmd)
	default:
		return t.deviceTable(env, gpus)
	}
}

// selectGPUs applies the -i/--id index filter, defaulting to every device.
func selectGPUs(c *cluster.Cluster, cmd *cmdline.ParsedCommand) ([]gpuRef, error) {
	if idx := cmd.FlagString("", "i", "id"); idx != "" {
		n, err := strconv.Atoi(idx)
		if err != nil {
			return nil, fmt.Errorf("invalid device index %q", idx)
		}
		node, gpu, ok := c.GPUByIndex(n)
		if !ok {
			return nil, fmt.Errorf("unable to determine device handle for GPU %d: not found", n)
		}
		return []gpuRef{{node: node, gpu: gpu}}, nil
	}

	var refs []gpuRef
	for _, node := range c.Nodes {
		for _, gpu := range node.GPUs {
			refs = append(refs, gpuRef{node: node, gpu: gpu})
		}
	}
	return refs, nil
}

func (t *NvidiaSMI) list(env *Env, gpus []gpuRef) error {
	for _, ref := range gpus {
		fmt.Fprintln(env.Out, ref.gpu.String())
		for _, mig := range ref.gpu.MIGDevices {
			fmt.Fprintf(env.Out, "  MIG %s     Device  %d: (UUID: MIG-%s/%d)\n",
				mig.Profile, mig.Index, ref.gpu.UUID, mig.Index)
		}
	}
	return nil
}

func (t *NvidiaSMI) deviceTable(env *Env, gpus []gpuRef) error {
	if len(gpus) == 0 {
		return fmt.Errorf("no devices were found")
	}
	first := gpus[0].node
	fmt.Fprintf(env.Out, "NVIDIA-SMI %s    Driver Version: %s    CUDA Version: %s\n",
		first.DriverVersion, first.DriverVersion, cudaSeries(first.CUDAVersion))

	w := table.NewWriter()
	w.SetOutputMirror(env.Out)
	w.SetStyle(table.StyleLight)
	w.AppendHeader(table.Row{"GPU", "Name", "Temp", "Pwr:Usage/Cap", "Memory-Usage", "GPU-Util", "MIG M."})
	for _, ref := range gpus {
		g := ref.gpu
		mig := "Disabled"
		if g.MIGEnabled {
			mig = "Enabled"
		}
		w.AppendRow(table.Row{
			g.Index,
			g.Model,
			fmt.Sprintf("%dC", g.TemperatureC),
			fmt.Sprintf("%dW / %dW", g.PowerDrawW, g.PowerLimitW),
			fmt.Sprintf("%dMiB / %dMiB", g.UsedMemoryMiB, g.MemoryMiB),
			fmt.Sprintf("%d%%", g.UtilizationPct),
			mig,
		})
	}
	w.Render()
	return nil
}

func (t *NvidiaSMI) query(env *Env, gpus []gpuRef, cmd *cmdline.ParsedCommand) error {
	migOnly := wantsMIGQuery(cmd)

	fmt.Fprintln(env.Out, "==============NVSMI LOG==============")
	fmt.Fprintln(env.Out)
	if len(gpus) > 0 {
		node := gpus[0].node
		fmt.Fprintf(env.Out, "Driver Version                  : %s\n", node.DriverVersion)
		fmt.Fprintf(env.Out, "CUDA Version                    : %s\n", cudaSeries(node.CUDAVersion))
		if err := cluster.DriverCUDACompat(node.DriverVersion, node.CUDAVersion); err != nil {
			fmt.Fprintf(env.Out, "%s\n", env.Color.Wrap(tui.ColorYellow, "WARNING: "+err.Error()))
		}
		fmt.Fprintf(env.Out, "Attached GPUs                   : %d\n", len(gpus))
	}
	fmt.Fprintln(env.Out)

	for _, ref := range gpus {
		g := ref.gpu
		fmt.Fprintf(env.Out, "GPU %d (%s)\n", g.Index, ref.node.Name)
		if migOnly {
			writeMIGSection(env, g)
			continue
		}
		fmt.Fprintf(env.Out, "    Product Name                : %s\n", g.Model)
		fmt.Fprintf(env.Out, "    GPU UUID                    : GPU-%s\n", g.UUID)
		writeMIGSection(env, g)
		fmt.Fprintf(env.Out, "    FB Memory Usage\n")
		fmt.Fprintf(env.Out, "        Total                   : %d MiB\n", g.MemoryMiB)
		fmt.Fprintf(env.Out, "        Used                    : %d MiB\n", g.UsedMemoryMiB)
		fmt.Fprintf(env.Out, "    Temperature\n")
		fmt.Fprintf(env.Out, "        GPU Current Temp        : %d C\n", g.TemperatureC)
		fmt.Fprintf(env.Out, "    Power Readings\n")
		fmt.Fprintf(env.Out, "        Power Draw              : %d W\n", g.PowerDrawW)
		fmt.Fprintf(env.Out, "        Power Limit             : %d W\n", g.PowerLimitW)
		fmt.Fprintf(env.Out, "    ECC Errors\n")
		fmt.Fprintf(env.Out, "        Volatile Correctable    : %d\n", g.ECCVolatileErrors)
	}
	return nil
}

// wantsMIGQuery reports whether the query narrows to the MIG section. With
// the tool's schema supplied, "mig" after -q stays a subcommand; without
// one it may land in positional args instead, so both are checked.
func wantsMIGQuery(cmd *cmdline.ParsedCommand) bool {
	return slices.Contains(cmd.Subcommands, "mig") ||
		slices.Contains(cmd.PositionalArgs, "mig") ||
		strings.EqualFold(cmd.FlagString("", "d", "display"), "mig")
}

func writeMIGSection(env *Env, g *cluster.GPU) {
	mode := "Disabled"
	if g.MIGEnabled {
		mode = "Enabled"
	}
	fmt.Fprintf(env.Out, "    MIG Mode\n")
	fmt.Fprintf(env.Out, "        Current                 : %s\n", mode)
	for _, mig := range g.MIGDevices {
		fmt.Fprintf(env.Out, "        Device %d                : %s (%d MiB)\n",
			mig.Index, mig.Profile, mig.MemoryMiB)
	}
}

// queryCSV implements --query-gpu=...,... --format=csv.
func (t *NvidiaSMI) queryCSV(env *Env, gpus []gpuRef, cmd *cmdline.ParsedCommand) error {
	format := cmd.FlagString("", "format")
	if !strings.Contains(format, "csv") {
		return fmt.Errorf("--format=csv is required with --query-gpu")
	}
	fields := strings.Split(cmd.FlagString("", "query-gpu"), ",")
	for i, f := range fields {
		fields[i] = strings.TrimSpace(f)
	}

	noHeader := strings.Contains(format, "noheader")
	if !noHeader {
		fmt.Fprintln(env.Out, strings.Join(fields, ", "))
	}
	for _, ref := range gpus {
		values := make([]string, 0, len(fields))
		for _, f := range fields {
			v, ok := csvField(ref, f)
			if !ok {
				return fmt.Errorf("field %q is not a valid field to query", f)
			}
			values = append(values, v)
		}
		fmt.Fprintln(env.Out, strings.Join(values, ", "))
	}
	return nil
}

func csvField(ref gpuRef, field string) (string, bool) {
	g := ref.gpu
	switch field {
	case "index":
		return strconv.Itoa(g.Index), true
	case "name":
		return g.Model, true
	case "uuid":
		return "GPU-" + g.UUID, true
	case "temperature.gpu":
		return strconv.Itoa(g.TemperatureC), true
	case "utilization.gpu":
		return fmt.Sprintf("%d %%", g.UtilizationPct), true
	case "memory.total":
		return fmt.Sprintf("%d MiB", g.MemoryMiB), true
	case "memory.used":
		return fmt.Sprintf("%d MiB", g.UsedMemoryMiB), true
	case "power.draw":
		return fmt.Sprintf("%d W", g.PowerDrawW), true
	case "power.limit":
		return fmt.Sprintf("%d W", g.PowerLimitW), true
	case "driver_version":
		return ref.node.DriverVersion, true
	default:
		return "", false
	}
}

// cudaSeries trims a full CUDA version to the major.minor form the real
// tool prints in its banner.
func cudaSeries(v string) string {
	parts := strings.SplitN(v, ".", 3)
	if len(parts) < 2 {
		return v
	}
	return parts[0] + "." + parts[1]
}
