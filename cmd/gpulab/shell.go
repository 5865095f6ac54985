// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gpulab/gpulab/pkg/cluster"
	"github.com/gpulab/gpulab/pkg/shell"
	"github.com/gpulab/gpulab/pkg/simtool"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start the interactive simulator shell",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runShell(cmd)
	},
}

func init() {
	rootCmd.AddCommand(shellCmd)
}

func runShell(cmd *cobra.Command) error {
	p, err := loadPrefs()
	if err != nil {
		return err
	}
	lessons, err := loadLessons(p)
	if err != nil {
		return err
	}

	store := cluster.NewStore(p.Cluster)
	log := shell.NewLogger(os.Stderr, p.Verbose)
	sh := shell.New(store, simtool.DefaultRegistry(), lessons, log)
	sh.HistoryFile = p.History

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	go func() {
		if err := shell.Watch(ctx, store, log); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("config watcher stopped: %v", err)
		}
	}()

	if err := sh.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
