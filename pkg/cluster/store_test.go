// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cluster

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestStoreSeedsDefaultWhenMissing(t *testing.T) {
	file := filepath.Join(t.TempDir(), "cluster.json")
	s := NewStore(file)

	c, err := s.Get()
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if c.Name != "training-lab" {
		t.Errorf("Name = %q, want %q", c.Name, "training-lab")
	}
	if got, want := c.GPUCount(), 8; got != want {
		t.Errorf("GPUCount() = %d, want %d", got, want)
	}
	if c.DataVersion != CurrentDataVersion {
		t.Errorf("DataVersion = %d, want %d", c.DataVersion, CurrentDataVersion)
	}
}

func TestStoreMutatePersists(t *testing.T) {
	file := filepath.Join(t.TempDir(), "cluster.json")
	s := NewStore(file)

	_, err := s.Mutate(func(c *Cluster) error {
		c.Nodes[0].GPUs[0].TemperatureC = 99
		return nil
	})
	if err != nil {
		t.Fatalf("Mutate() error = %v", err)
	}

	// A fresh store must observe the mutation from disk.
	c, err := NewStore(file).Get()
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got := c.Nodes[0].GPUs[0].TemperatureC; got != 99 {
		t.Errorf("TemperatureC = %d, want 99", got)
	}
}

func TestStoreGetReturnsCopy(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "cluster.json"))

	a, err := s.Get()
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	a.Nodes[0].Name = "mutated"

	b, err := s.Get()
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if b.Nodes[0].Name == "mutated" {
		t.Error("mutation of a returned cluster leaked into the store")
	}
}

func TestStoreMigratesV1Config(t *testing.T) {
	file := filepath.Join(t.TempDir(), "cluster.json")
	v1 := &Cluster{
		Name: "old",
		Nodes: []*Node{{
			Name:          "n1",
			DriverVersion: "535.129.03",
			CUDAVersion:   "12.2.0",
			IBPorts: []*IBPort{
				{CA: "mlx5_0", Port: 1, LID: 7, State: "Active"},
				{CA: "mlx5_1", Port: 1, LID: 8, State: "Down"},
			},
		}},
	}
	j, err := json.Marshal(v1)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(file, j, 0644); err != nil {
		t.Fatal(err)
	}

	c, err := NewStore(file).Get()
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if c.DataVersion != CurrentDataVersion {
		t.Errorf("DataVersion = %d, want %d", c.DataVersion, CurrentDataVersion)
	}
	got := []string{c.Nodes[0].IBPorts[0].PhysState, c.Nodes[0].IBPorts[1].PhysState}
	want := []string{"LinkUp", "Disabled"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("PhysState migration mismatch (-want +got):\n%s", diff)
	}
}

func TestStoreReload(t *testing.T) {
	file := filepath.Join(t.TempDir(), "cluster.json")
	s := NewStore(file)
	if _, err := s.Get(); err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	// Rewrite the file behind the store's back.
	other := Default()
	other.Name = "rewritten"
	j, err := json.Marshal(other)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(file, j, 0644); err != nil {
		t.Fatal(err)
	}

	c, err := s.Reload()
	if err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	if c.Name != "rewritten" {
		t.Errorf("Name after Reload = %q, want %q", c.Name, "rewritten")
	}
}

func TestDefaultIsStableAndValid(t *testing.T) {
	a, b := Default(), Default()
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("Default() is not deterministic (-first +second):\n%s", diff)
	}
	if fs := Validate(a); len(fs) != 0 {
		t.Errorf("Validate(Default()) findings = %v, want none", fs)
	}
}
