// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package shell implements the interactive prompt of the simulator: a
// readline loop with history and tab completion that dispatches lines to
// the simulated tools.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"

	"github.com/gpulab/gpulab/pkg/cluster"
	"github.com/gpulab/gpulab/pkg/cmdline"
	"github.com/gpulab/gpulab/pkg/content"
	"github.com/gpulab/gpulab/pkg/simtool"
	"github.com/gpulab/gpulab/pkg/tui"
)

// errExit signals a clean exit requested from inside the loop.
var errExit = errors.New("exit")

// Shell is one interactive session.
type Shell struct {
	store   *cluster.Store
	reg     *simtool.Registry
	lessons *content.Library
	log     *Logger

	// Out receives tool output. Defaults to os.Stdout.
	Out io.Writer
	// HistoryFile is the readline history path. Empty disables history.
	HistoryFile string
}

func New(store *cluster.Store, reg *simtool.Registry, lessons *content.Library, log *Logger) *Shell {
	return &Shell{
		store:   store,
		reg:     reg,
		lessons: lessons,
		log:     log,
		Out:     os.Stdout,
	}
}

// Run enters the prompt loop until EOF, an exit command, or ctx cancellation.
func (s *Shell) Run(ctx context.Context) error {
	c, err := s.store.Get()
	if err != nil {
		return fmt.Errorf("loading cluster: %w", err)
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:            s.prompt(c.Name),
		HistoryFile:       s.HistoryFile,
		AutoComplete:      s.completer(),
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
	if err != nil {
		return fmt.Errorf("initializing readline: %w", err)
	}
	defer rl.Close()

	s.log.Info("gpulab shell on cluster %q. Type 'help' for commands, TAB to complete.", c.Name)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}

		if err := s.Dispatch(ctx, line); err != nil {
			if errors.Is(err, errExit) {
				return nil
			}
			s.log.Error("%v", err)
		}
	}
}

// Dispatch runs one input line: shell builtins first, then the tool
// registry. Unknown commands come back as errors for the loop to report.
func (s *Shell) Dispatch(ctx context.Context, line string) error {
	cmd := cmdline.Parse(line, nil)
	switch cmd.BaseCommand {
	case "":
		return nil
	case "exit", "quit":
		return errExit
	case "help":
		s.help()
		return nil
	case "reload":
		c, err := s.store.Reload()
		if err != nil {
			return fmt.Errorf("reloading cluster: %w", err)
		}
		s.log.Success("cluster %q reloaded from %s", c.Name, s.store.File())
		return nil
	}

	env, err := s.env()
	if err != nil {
		return err
	}
	return s.reg.Execute(ctx, env, line)
}

func (s *Shell) env() (*simtool.Env, error) {
	c, err := s.store.Get()
	if err != nil {
		return nil, fmt.Errorf("loading cluster: %w", err)
	}
	return &simtool.Env{
		Cluster: c,
		Lessons: s.lessons,
		Out:     s.Out,
		Color:   tui.NewColorizer(s.Out),
	}, nil
}

func (s *Shell) prompt(clusterName string) string {
	return clusterName + "> "
}

func (s *Shell) help() {
	fmt.Fprintln(s.Out, "Simulated tools:")
	for _, t := range s.reg.Tools() {
		name := t.Name()
		if aliases := t.Aliases(); len(aliases) > 0 {
			name += " (" + strings.Join(aliases, ", ") + ")"
		}
		fmt.Fprintf(s.Out, "  %-24s %s\n", name, t.Description())
	}
	fmt.Fprintln(s.Out, "Shell commands:")
	fmt.Fprintf(s.Out, "  %-24s %s\n", "help", "Show this help")
	fmt.Fprintf(s.Out, "  %-24s %s\n", "reload", "Re-read the cluster config file")
	fmt.Fprintf(s.Out, "  %-24s %s\n", "exit", "Leave the shell")
}

func (s *Shell) completer() readline.AutoCompleter {
	items := []readline.PrefixCompleterInterface{
		readline.PcItem("help"),
		readline.PcItem("reload"),
		readline.PcItem("exit"),
		readline.PcItem("quit"),
	}
	for _, name := range s.reg.Names() {
		if name == "learn" {
			items = append(items, readline.PcItem(name,
				readline.PcItemDynamic(s.lessonIDs)))
			continue
		}
		items = append(items, readline.PcItem(name))
	}
	return readline.NewPrefixCompleter(items...)
}

func (s *Shell) lessonIDs(string) []string {
	if s.lessons == nil {
		return nil
	}
	var ids []string
	for _, l := range s.lessons.All() {
		ids = append(ids, l.ID)
	}
	return ids
}
