// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package simtool

import (
	"context"
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/gpulab/gpulab/pkg/cmdline"
	"github.com/gpulab/gpulab/pkg/content"
	"github.com/gpulab/gpulab/pkg/tui"
)

// Learn browses the lesson library. Bare "learn" lists lessons, optionally
// filtered by topic or command; "learn <id>" prints one lesson.
type Learn struct{}

func (*Learn) Name() string      { return "learn" }
func (*Learn) Aliases() []string { return []string{"lesson"} }
func (*Learn) Description() string {
	return "Browse lessons about the real tools being simulated"
}

func (*Learn) Schema() cmdline.FlagSchema {
	return cmdline.FlagSchema{
		"t":       {ConsumesValue: true},
		"topic":   {ConsumesValue: true},
		"c":       {ConsumesValue: true},
		"command": {ConsumesValue: true},
	}
}

func (t *Learn) Run(ctx context.Context, env *Env, cmd *cmdline.ParsedCommand) error {
	if env.Lessons == nil || env.Lessons.Len() == 0 {
		return fmt.Errorf("learn: no lessons loaded")
	}

	if len(cmd.Subcommands) > 0 {
		id := cmd.Subcommands[0]
		lesson, ok := env.Lessons.ByID(id)
		if !ok {
			return fmt.Errorf("learn: no lesson %q; run learn with no arguments to list them", id)
		}
		t.writeLesson(env, lesson)
		return nil
	}

	lessons := env.Lessons.All()
	if topic := cmd.FlagString("", "t", "topic"); topic != "" {
		lessons = env.Lessons.ForTopic(topic)
		if len(lessons) == 0 {
			return fmt.Errorf("learn: no lessons on topic %q (topics: %s)",
				topic, strings.Join(env.Lessons.Topics(), ", "))
		}
	}
	if command := cmd.FlagString("", "c", "command"); command != "" {
		lessons = intersectByCommand(lessons, command)
		if len(lessons) == 0 {
			return fmt.Errorf("learn: no lessons for command %q", command)
		}
	}

	w := table.NewWriter()
	w.SetOutputMirror(env.Out)
	w.SetStyle(table.StyleLight)
	w.AppendHeader(table.Row{"ID", "Title", "Topics"})
	for _, l := range lessons {
		w.AppendRow(table.Row{l.ID, l.Title, strings.Join(l.Topics, ", ")})
	}
	w.Render()
	fmt.Fprintln(env.Out, "Run 'learn <id>' to read a lesson.")
	return nil
}

func (t *Learn) writeLesson(env *Env, l *content.Lesson) {
	fmt.Fprintln(env.Out, env.Color.Wrap(tui.ColorCyan, l.Title))
	if len(l.Commands) > 0 {
		fmt.Fprintf(env.Out, "Commands: %s\n", strings.Join(l.Commands, ", "))
	}
	fmt.Fprintln(env.Out)
	fmt.Fprintln(env.Out, strings.TrimRight(l.Body, "\n"))
}

func intersectByCommand(lessons []*content.Lesson, command string) []*content.Lesson {
	var out []*content.Lesson
	for _, l := range lessons {
		for _, c := range l.Commands {
			if c == command {
				out = append(out, l)
				break
			}
		}
	}
	return out
}
