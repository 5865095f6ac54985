// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shell

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gpulab/gpulab/pkg/cluster"
	"github.com/gpulab/gpulab/pkg/content"
	"github.com/gpulab/gpulab/pkg/simtool"
)

func testShell(t *testing.T) (*Shell, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	lessons, err := content.Builtin()
	require.NoError(t, err)

	store := cluster.NewStore(filepath.Join(t.TempDir(), "cluster.json"))
	out := new(bytes.Buffer)
	logBuf := new(bytes.Buffer)

	s := New(store, simtool.DefaultRegistry(), lessons, NewLogger(logBuf, true))
	s.Out = out
	return s, out, logBuf
}

func TestDispatchTool(t *testing.T) {
	s, out, _ := testShell(t)

	require.NoError(t, s.Dispatch(context.Background(), "nvidia-smi -L"))
	assert.Contains(t, out.String(), "NVIDIA H100 80GB HBM3")
}

func TestDispatchBlankLine(t *testing.T) {
	s, out, _ := testShell(t)

	require.NoError(t, s.Dispatch(context.Background(), "   "))
	assert.Empty(t, out.String())
}

func TestDispatchUnknownCommand(t *testing.T) {
	s, _, _ := testShell(t)

	err := s.Dispatch(context.Background(), "frobnicate --hard")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown command: frobnicate")
}

func TestDispatchExit(t *testing.T) {
	s, _, _ := testShell(t)

	assert.ErrorIs(t, s.Dispatch(context.Background(), "exit"), errExit)
	assert.ErrorIs(t, s.Dispatch(context.Background(), "quit"), errExit)
}

func TestDispatchHelp(t *testing.T) {
	s, out, _ := testShell(t)

	require.NoError(t, s.Dispatch(context.Background(), "help"))
	got := out.String()
	for _, want := range []string{"nvidia-smi", "dcgmi", "ibstat", "learn", "reload", "exit"} {
		assert.Contains(t, got, want)
	}
}

func TestDispatchReload(t *testing.T) {
	s, _, logBuf := testShell(t)

	// Seed the file, then rename the cluster behind the store's back.
	c, err := s.store.Mutate(func(*cluster.Cluster) error { return nil })
	require.NoError(t, err)
	c.Name = "renamed-lab"
	data, err := json.MarshalIndent(c, "", "  ")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(s.store.File(), data, 0644))

	require.NoError(t, s.Dispatch(context.Background(), "reload"))
	assert.Contains(t, logBuf.String(), "renamed-lab")

	env, err := s.env()
	require.NoError(t, err)
	assert.Equal(t, "renamed-lab", env.Cluster.Name)
}

func TestLessonCompletions(t *testing.T) {
	s, _, _ := testShell(t)

	ids := s.lessonIDs("")
	assert.Contains(t, ids, "nvidia-smi-basics")
	assert.Contains(t, ids, "ib-lids")
}

func TestWatchReloads(t *testing.T) {
	s, _, logBuf := testShell(t)

	// Materialize the file so the watcher sees a change, not a create of
	// a file it never read.
	c, err := s.store.Mutate(func(*cluster.Cluster) error { return nil })
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = Watch(ctx, s.store, s.log)
	}()

	// Give the watcher a beat to register before mutating the file.
	time.Sleep(100 * time.Millisecond)

	c.Name = "watched-lab"
	data, err := json.MarshalIndent(c, "", "  ")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(s.store.File(), data, 0644))

	require.Eventually(t, func() bool {
		cur, err := s.store.Get()
		return err == nil && cur.Name == "watched-lab"
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop on context cancellation")
	}
	assert.Contains(t, logBuf.String(), "watched-lab")
}
