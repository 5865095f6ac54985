// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cluster

import (
	"fmt"

	"github.com/google/uuid"
)

// Default returns the built-in training cluster: two nodes with four H100s
// and two InfiniBand ports each. Device UUIDs are derived from the device
// path so repeated runs see the same identifiers.
func Default() *Cluster {
	c := &Cluster{
		DataVersion: CurrentDataVersion,
		Name:        "training-lab",
	}
	for n := 0; n < 2; n++ {
		node := &Node{
			Name:          fmt.Sprintf("gpu-node-%02d", n+1),
			DriverVersion: "550.54.15",
			CUDAVersion:   "12.4.0",
		}
		for g := 0; g < 4; g++ {
			idx := n*4 + g
			node.GPUs = append(node.GPUs, &GPU{
				Index:          idx,
				UUID:           deviceUUID(node.Name, "gpu", g),
				Model:          "NVIDIA H100 80GB HBM3",
				MemoryMiB:      81559,
				UsedMemoryMiB:  (idx%3 + 1) * 4096,
				TemperatureC:   33 + 3*g,
				PowerDrawW:     71 + 9*g,
				PowerLimitW:    700,
				UtilizationPct: 12 * g,
			})
		}
		for p := 0; p < 2; p++ {
			node.IBPorts = append(node.IBPorts, &IBPort{
				CA:        fmt.Sprintf("mlx5_%d", p),
				Port:      1,
				LID:       n*2 + p + 1,
				State:     "Active",
				PhysState: "LinkUp",
				RateGbps:  400,
				GUID:      fmt.Sprintf("0x%016x", 0x9a03000300000000+uint64(n*2+p)),
			})
		}
		c.Nodes = append(c.Nodes, node)
	}
	return c
}

// deviceUUID derives a stable UUID for a simulated device from its path in
// the cluster.
func deviceUUID(node, kind string, idx int) string {
	name := fmt.Sprintf("gpulab/%s/%s/%d", node, kind, idx)
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(name)).String()
}
