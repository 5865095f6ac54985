// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var lessonsCmd = &cobra.Command{
	Use:   "lessons",
	Short: "List the available lessons",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := loadPrefs()
		if err != nil {
			return err
		}
		lessons, err := loadLessons(p)
		if err != nil {
			return err
		}

		w := table.NewWriter()
		w.SetOutputMirror(os.Stdout)
		w.SetStyle(table.StyleLight)
		w.AppendHeader(table.Row{"ID", "Title", "Commands"})
		for _, l := range lessons.All() {
			w.AppendRow(table.Row{l.ID, l.Title, strings.Join(l.Commands, ", ")})
		}
		w.Render()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(lessonsCmd)
}
