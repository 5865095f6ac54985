// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gpulab/gpulab/pkg/cluster"
)

var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Validate a cluster model file",
	Long: `Check a cluster model for problems: malformed versions and UUIDs,
duplicate or out-of-range LIDs, inconsistent MIG state, and unknown
fields. Without an argument the configured cluster file is checked.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ""
		if len(args) == 1 {
			path = args[0]
		} else {
			p, err := loadPrefs()
			if err != nil {
				return err
			}
			path = p.Cluster
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		findings, err := cluster.ValidateConfig(data)
		if err != nil {
			return err
		}
		if len(findings) == 0 {
			fmt.Printf("%s: ok\n", path)
			return nil
		}
		for _, f := range findings {
			fmt.Println(f)
		}
		return fmt.Errorf("%s: %d problem(s) found", path, len(findings))
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
