// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cluster

import (
	"strings"
	"testing"
)

func findingWith(fs []Finding, substr string) bool {
	for _, f := range fs {
		if strings.Contains(f.String(), substr) {
			return true
		}
	}
	return false
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Cluster)
		wantMsg string
	}{
		{
			name:    "missing cluster name",
			mutate:  func(c *Cluster) { c.Name = "" },
			wantMsg: "missing name",
		},
		{
			name:    "no nodes",
			mutate:  func(c *Cluster) { c.Nodes = nil },
			wantMsg: "no nodes",
		},
		{
			name: "duplicate node name",
			mutate: func(c *Cluster) {
				c.Nodes[1].Name = c.Nodes[0].Name
			},
			wantMsg: "duplicate node name",
		},
		{
			name: "malformed GPU UUID",
			mutate: func(c *Cluster) {
				c.Nodes[0].GPUs[0].UUID = "not-a-uuid"
			},
			wantMsg: `malformed UUID "not-a-uuid"`,
		},
		{
			name: "duplicate GPU index",
			mutate: func(c *Cluster) {
				c.Nodes[1].GPUs[0].Index = 0
			},
			wantMsg: "index 0 already used",
		},
		{
			name: "non-dense GPU indices",
			mutate: func(c *Cluster) {
				c.Nodes[1].GPUs[3].Index = 42
			},
			wantMsg: "not dense",
		},
		{
			name: "used memory exceeds capacity",
			mutate: func(c *Cluster) {
				c.Nodes[0].GPUs[0].UsedMemoryMiB = c.Nodes[0].GPUs[0].MemoryMiB + 1
			},
			wantMsg: "exceeds capacity",
		},
		{
			name: "MIG enabled without devices",
			mutate: func(c *Cluster) {
				c.Nodes[0].GPUs[0].MIGEnabled = true
			},
			wantMsg: "no MIG devices",
		},
		{
			name: "duplicate LID",
			mutate: func(c *Cluster) {
				c.Nodes[1].IBPorts[0].LID = c.Nodes[0].IBPorts[0].LID
			},
			wantMsg: "already assigned",
		},
		{
			name: "LID out of range",
			mutate: func(c *Cluster) {
				c.Nodes[0].IBPorts[0].LID = 0xC000
			},
			wantMsg: "outside unicast range",
		},
		{
			name: "malformed driver version",
			mutate: func(c *Cluster) {
				c.Nodes[0].DriverVersion = "not.a.version.at.all"
			},
			wantMsg: "malformed driver version",
		},
		{
			name: "driver too old for CUDA",
			mutate: func(c *Cluster) {
				c.Nodes[0].DriverVersion = "535.54.03"
				c.Nodes[0].CUDAVersion = "12.4.0"
			},
			wantMsg: "too old for CUDA",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(c)
			fs := Validate(c)
			if !findingWith(fs, tt.wantMsg) {
				t.Errorf("Validate() = %v, want a finding containing %q", fs, tt.wantMsg)
			}
		})
	}
}

func TestValidateConfigRejectsUnknownFields(t *testing.T) {
	_, err := ValidateConfig([]byte(`{"Name": "x", "Bogus": true}`))
	if err == nil {
		t.Fatal("ValidateConfig() accepted an unknown field, want error")
	}
}

func TestValidateConfigReportsFindings(t *testing.T) {
	fs, err := ValidateConfig([]byte(`{"Name": ""}`))
	if err != nil {
		t.Fatalf("ValidateConfig() error = %v", err)
	}
	if !findingWith(fs, "missing name") {
		t.Errorf("findings = %v, want missing name", fs)
	}
}
