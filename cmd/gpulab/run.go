// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gpulab/gpulab/pkg/cluster"
	"github.com/gpulab/gpulab/pkg/simtool"
	"github.com/gpulab/gpulab/pkg/tui"
)

var runCmd = &cobra.Command{
	Use:   "run <command line>",
	Short: "Run one simulated command and exit",
	Long: `Run a single simulated command without entering the shell, e.g.

  gpulab run "nvidia-smi -q -i 0"
  gpulab run dcgmi discovery -l

Quote the command line if its flags collide with gpulab's own.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := loadPrefs()
		if err != nil {
			return err
		}
		lessons, err := loadLessons(p)
		if err != nil {
			return err
		}
		c, err := cluster.NewStore(p.Cluster).Get()
		if err != nil {
			return err
		}

		env := &simtool.Env{
			Cluster: c,
			Lessons: lessons,
			Out:     os.Stdout,
			Color:   tui.NewColorizer(os.Stdout),
		}
		return simtool.DefaultRegistry().Execute(cmd.Context(), env, strings.Join(args, " "))
	},
}

func init() {
	runCmd.Flags().SetInterspersed(false)
	rootCmd.AddCommand(runCmd)
}
