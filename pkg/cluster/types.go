// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cluster models the fictitious GPU/InfiniBand cluster the simulated
// tools report on, and loads, validates and persists its JSON configuration.
package cluster

import "fmt"

// Cluster is the full JSON structure of a cluster configuration.
type Cluster struct {
	// DataVersion is the version of the config format, used to pick
	// migrations when loading older files.
	DataVersion int `json:",omitempty"`

	Name string

	Nodes []*Node
}

// Node is one simulated host.
type Node struct {
	Name string

	// DriverVersion is the NVIDIA driver version the node pretends to
	// run, e.g. "550.54.15".
	DriverVersion string
	// CUDAVersion is the CUDA toolkit version, e.g. "12.4.0".
	CUDAVersion string

	GPUs    []*GPU
	IBPorts []*IBPort
}

// GPU is one simulated device.
type GPU struct {
	Index int
	// UUID is the canonical device identifier, rendered by the tools
	// with the vendor's "GPU-" prefix.
	UUID  string
	Model string

	MemoryMiB      int
	UsedMemoryMiB  int
	TemperatureC   int
	PowerDrawW     int
	PowerLimitW    int
	UtilizationPct int

	// ECCVolatileErrors counts correctable ECC errors since boot.
	ECCVolatileErrors int

	MIGEnabled bool
	MIGDevices []*MIGDevice `json:",omitempty"`
}

// MIGDevice is one MIG partition of a GPU.
type MIGDevice struct {
	Index     int
	Profile   string // e.g. "1g.10gb"
	MemoryMiB int
}

// IBPort is one simulated InfiniBand channel-adapter port.
type IBPort struct {
	// CA is the channel adapter name, e.g. "mlx5_0".
	CA   string
	Port int
	// LID is the subnet-local identifier assigned by the subnet manager.
	LID       int
	State     string // "Active", "Down", "Init"
	PhysState string // "LinkUp", "Disabled", "Polling"
	RateGbps  int
	GUID      string
}

// GPUCount returns the number of GPUs across all nodes.
func (c *Cluster) GPUCount() int {
	n := 0
	for _, node := range c.Nodes {
		n += len(node.GPUs)
	}
	return n
}

// Node returns the named node.
func (c *Cluster) Node(name string) (*Node, bool) {
	for _, n := range c.Nodes {
		if n.Name == name {
			return n, true
		}
	}
	return nil, false
}

// GPUByIndex returns the GPU with the given global index, counting across
// nodes in order.
func (c *Cluster) GPUByIndex(idx int) (*Node, *GPU, bool) {
	i := 0
	for _, node := range c.Nodes {
		for _, gpu := range node.GPUs {
			if i == idx {
				return node, gpu, true
			}
			i++
		}
	}
	return nil, nil, false
}

// CA returns the channel adapter ports with the given name, across nodes.
func (c *Cluster) CA(name string) []*IBPort {
	var ports []*IBPort
	for _, node := range c.Nodes {
		for _, p := range node.IBPorts {
			if p.CA == name {
				ports = append(ports, p)
			}
		}
	}
	return ports
}

func (g *GPU) String() string {
	return fmt.Sprintf("GPU %d: %s (UUID: GPU-%s)", g.Index, g.Model, g.UUID)
}
