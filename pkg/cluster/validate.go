// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cluster

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/semver/v3"
	"github.com/google/uuid"
)

// maxLID is the top of the unicast LID range on an InfiniBand subnet.
const maxLID = 0xBFFF

// minDriverForCUDA maps a CUDA major.minor series to the oldest driver that
// supports it. Versions beyond the table validate without a compatibility
// check.
var minDriverForCUDA = map[string]string{
	"11.8": "450.80.02",
	"12.0": "525.60.13",
	"12.2": "535.54.03",
	"12.4": "550.54.14",
}

// Finding is one validator complaint. Findings are advisory: a config with
// findings still loads, the simulated tools just report nonsense.
type Finding struct {
	Path string
	Msg  string
}

func (f Finding) String() string { return fmt.Sprintf("%s: %s", f.Path, f.Msg) }

func findingf(path, format string, args ...any) Finding {
	return Finding{Path: path, Msg: fmt.Sprintf(format, args...)}
}

// ValidateConfig decodes a raw cluster configuration and validates it.
// Unknown JSON fields are rejected so typos in config files surface early.
// The error reports decode failures only; semantic problems come back as
// findings.
func ValidateConfig(data []byte) ([]Finding, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	c := new(Cluster)
	if err := dec.Decode(c); err != nil {
		return nil, fmt.Errorf("decoding cluster config: %v", err)
	}
	return Validate(c), nil
}

// Validate checks a cluster model for semantic problems: missing names,
// malformed UUIDs, duplicate or out-of-range LIDs, non-dense GPU indices,
// and driver/CUDA version mismatches.
func Validate(c *Cluster) []Finding {
	var fs []Finding
	if c.Name == "" {
		fs = append(fs, findingf("cluster", "missing name"))
	}
	if len(c.Nodes) == 0 {
		fs = append(fs, findingf("cluster", "no nodes defined"))
	}

	seenLIDs := map[int]string{}
	seenGPUIndex := map[int]string{}
	seenNodeNames := map[string]bool{}

	for ni, node := range c.Nodes {
		path := fmt.Sprintf("nodes[%d]", ni)
		if node.Name == "" {
			fs = append(fs, findingf(path, "missing name"))
		} else {
			path = "nodes/" + node.Name
			if seenNodeNames[node.Name] {
				fs = append(fs, findingf(path, "duplicate node name"))
			}
			seenNodeNames[node.Name] = true
		}

		fs = append(fs, validateVersions(path, node)...)

		for _, gpu := range node.GPUs {
			gpath := fmt.Sprintf("%s/gpu[%d]", path, gpu.Index)
			if gpu.Model == "" {
				fs = append(fs, findingf(gpath, "missing model"))
			}
			if _, err := uuid.Parse(gpu.UUID); err != nil {
				fs = append(fs, findingf(gpath, "malformed UUID %q", gpu.UUID))
			}
			if prev, dup := seenGPUIndex[gpu.Index]; dup {
				fs = append(fs, findingf(gpath, "index %d already used by %s", gpu.Index, prev))
			}
			seenGPUIndex[gpu.Index] = gpath
			if gpu.MemoryMiB <= 0 {
				fs = append(fs, findingf(gpath, "memory must be positive, got %d MiB", gpu.MemoryMiB))
			}
			if gpu.UsedMemoryMiB > gpu.MemoryMiB {
				fs = append(fs, findingf(gpath, "used memory %d MiB exceeds capacity %d MiB", gpu.UsedMemoryMiB, gpu.MemoryMiB))
			}
			if gpu.MIGEnabled && len(gpu.MIGDevices) == 0 {
				fs = append(fs, findingf(gpath, "MIG enabled but no MIG devices defined"))
			}
			if !gpu.MIGEnabled && len(gpu.MIGDevices) > 0 {
				fs = append(fs, findingf(gpath, "MIG devices defined but MIG disabled"))
			}
		}

		for _, p := range node.IBPorts {
			ppath := fmt.Sprintf("%s/%s:%d", path, p.CA, p.Port)
			if p.CA == "" {
				fs = append(fs, findingf(ppath, "missing CA name"))
			}
			if p.LID < 1 || p.LID > maxLID {
				fs = append(fs, findingf(ppath, "LID %d outside unicast range 1-0x%X", p.LID, maxLID))
			} else if prev, dup := seenLIDs[p.LID]; dup {
				fs = append(fs, findingf(ppath, "LID %d already assigned to %s", p.LID, prev))
			} else {
				seenLIDs[p.LID] = ppath
			}
		}
	}

	// GPU indices must be dense starting at zero; the tools address
	// devices by that index.
	for i := 0; i < len(seenGPUIndex); i++ {
		if _, ok := seenGPUIndex[i]; !ok {
			fs = append(fs, findingf("cluster", "GPU indices are not dense: missing index %d", i))
			break
		}
	}

	return fs
}

func validateVersions(path string, node *Node) []Finding {
	var fs []Finding
	if _, err := semver.NewVersion(node.DriverVersion); err != nil {
		fs = append(fs, findingf(path, "malformed driver version %q", node.DriverVersion))
	}
	if _, err := semver.NewVersion(node.CUDAVersion); err != nil {
		fs = append(fs, findingf(path, "malformed CUDA version %q", node.CUDAVersion))
	}
	if len(fs) > 0 {
		return fs
	}
	if err := DriverCUDACompat(node.DriverVersion, node.CUDAVersion); err != nil {
		fs = append(fs, findingf(path, "%v", err))
	}
	return fs
}

// DriverCUDACompat reports whether the driver version is new enough for the
// CUDA version, per minDriverForCUDA. Unknown CUDA series pass.
func DriverCUDACompat(driverVersion, cudaVersion string) error {
	driver, err := semver.NewVersion(driverVersion)
	if err != nil {
		return fmt.Errorf("malformed driver version %q", driverVersion)
	}
	cudaVer, err := semver.NewVersion(cudaVersion)
	if err != nil {
		return fmt.Errorf("malformed CUDA version %q", cudaVersion)
	}
	series := fmt.Sprintf("%d.%d", cudaVer.Major(), cudaVer.Minor())
	min, ok := minDriverForCUDA[series]
	if !ok {
		return nil
	}
	constraint, err := semver.NewConstraint(">= " + min)
	if err != nil {
		return err
	}
	if !constraint.Check(driver) {
		return fmt.Errorf("driver %s too old for CUDA %s (needs >= %s)", driverVersion, cudaVersion, min)
	}
	return nil
}
