// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// The gpulab command is an educational GPU cluster simulator. It fakes the
// administration tools of a small training cluster (nvidia-smi, dcgmi,
// ibstat) so the tools can be explored without hardware.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

// version is stamped by the build.
var version = "dev"

var (
	flagConfig  string
	flagCluster string
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "gpulab",
	Short: "Educational GPU cluster simulator",
	Long: `gpulab simulates the administration surface of a small GPU training
cluster. It fakes nvidia-smi, dcgmi and ibstat against a configurable
cluster model so the real tools can be learned safely.

Run without arguments to start the interactive shell.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runShell(cmd)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to the gpulab config file (default ~/.gpulab/config.toml)")
	rootCmd.PersistentFlags().StringVar(&flagCluster, "cluster", "", "path to the cluster model file (default ~/.gpulab/cluster.json)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "verbose shell logging")
}

func main() {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(`{{printf "gpulab version %s\n" .Version}}`)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
