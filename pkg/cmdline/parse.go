// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmdline

import (
	"fmt"
	"sort"
	"strings"
)

// ParsedCommand is the structured form of one command line. It is an
// immutable value: Parse assembles it once and nothing mutates it afterward.
type ParsedCommand struct {
	// BaseCommand is the first token of the line (the tool name), or ""
	// for an empty or whitespace-only line.
	BaseCommand string
	// Subcommands are the plain tokens captured while subcommand capture
	// was still open, in positional order (e.g. "dcgmi group create" has
	// subcommands ["group", "create"]).
	Subcommands []string
	// Flags maps flag names (without dashes) to their resolved values.
	// A repeated flag keeps its last occurrence.
	Flags map[string]FlagValue
	// PositionalArgs are the plain tokens captured after subcommand
	// capture closed.
	PositionalArgs []string
	// RawArgs are all tokens after BaseCommand, unmodified.
	RawArgs []string
	// Raw is the original input line, untouched.
	Raw string
}

// Parse turns a command line into a ParsedCommand. schema may be nil; see
// the package documentation for the resolution precedence. Parse never
// fails: any input, however malformed, produces a best-effort result.
func Parse(line string, schema FlagSchema) *ParsedCommand {
	pc := &ParsedCommand{
		Subcommands:    []string{},
		Flags:          map[string]FlagValue{},
		PositionalArgs: []string{},
		RawArgs:        []string{},
		Raw:            line,
	}

	tokens := Tokenize(strings.TrimSpace(line))
	if len(tokens) == 0 {
		return pc
	}
	pc.BaseCommand = tokens[0]
	pc.RawArgs = tokens[1:]

	// Both states move forward exactly once and never back: subcommand
	// capture closes on the first literal flag (schema-less parses only)
	// or the first '='-bearing or numeric plain token; flag parsing stops
	// at the "--" sentinel.
	stopFlagParsing := false
	parsingSubcommands := true

	for i := 0; i < len(pc.RawArgs); i++ {
		token := pc.RawArgs[i]

		if token == "--" {
			stopFlagParsing = true
			continue
		}

		if stopFlagParsing || !IsFlag(token) {
			if parsingSubcommands && !strings.Contains(token, "=") && !isInteger(token) {
				pc.Subcommands = append(pc.Subcommands, token)
			} else {
				parsingSubcommands = false
				pc.PositionalArgs = append(pc.PositionalArgs, token)
			}
			continue
		}

		// Without a schema the first flag ends subcommand collection.
		// With one, flags and subcommands may interleave safely: the
		// schema says exactly which tokens are flag values, so a later
		// plain token can still be a subcommand.
		if schema == nil {
			parsingSubcommands = false
		}

		var next string
		hasNext := i+1 < len(pc.RawArgs)
		if hasNext {
			next = pc.RawArgs[i+1]
		}

		var (
			name         string
			value        FlagValue
			consumedNext bool
		)
		if IsLongFlag(token) {
			name, value, consumedNext = resolveLongFlag(token, next, hasNext, stopFlagParsing, schema)
		} else {
			name, value, consumedNext = resolveShortFlag(token, next, hasNext, stopFlagParsing, schema)
		}
		pc.Flags[name] = value
		if consumedNext {
			i++
		}
	}

	return pc
}

// isInteger reports whether s is an optionally-signed run of digits.
// Bare numbers are assumed to be arguments such as LIDs or counts, never
// subcommand names.
func isInteger(s string) bool {
	if strings.HasPrefix(s, "-") {
		s = s[1:]
	}
	if len(s) == 0 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// HasFlag reports whether any of the given names was parsed as a flag.
func (p *ParsedCommand) HasFlag(names ...string) bool {
	for _, n := range names {
		if _, ok := p.Flags[n]; ok {
			return true
		}
	}
	return false
}

// Flag returns the value of the first matching name.
func (p *ParsedCommand) Flag(names ...string) (FlagValue, bool) {
	for _, n := range names {
		if v, ok := p.Flags[n]; ok {
			return v, true
		}
	}
	return FlagValue{}, false
}

// FlagString returns the text value of the first matching name, or def when
// no name matched or the matched flag is boolean.
func (p *ParsedCommand) FlagString(def string, names ...string) string {
	v, ok := p.Flag(names...)
	if !ok {
		return def
	}
	if s, isText := v.Text(); isText {
		return s
	}
	return def
}

// LegacyArgs returns the flat token list after the base command, for callers
// that still expect an unstructured argument slice.
func (p *ParsedCommand) LegacyArgs() []string { return p.RawArgs }

// DebugString renders the parse result for diagnostics. The format is not a
// stable serialization.
func (p *ParsedCommand) DebugString() string {
	var b strings.Builder
	fmt.Fprintf(&b, "raw: %q\n", p.Raw)
	fmt.Fprintf(&b, "base: %q\n", p.BaseCommand)
	fmt.Fprintf(&b, "subcommands: %v\n", p.Subcommands)
	names := make([]string, 0, len(p.Flags))
	for n := range p.Flags {
		names = append(names, n)
	}
	sort.Strings(names)
	fmt.Fprintf(&b, "flags:\n")
	for _, n := range names {
		fmt.Fprintf(&b, "  %s = %s\n", n, p.Flags[n])
	}
	fmt.Fprintf(&b, "positional: %v\n", p.PositionalArgs)
	fmt.Fprintf(&b, "rawArgs: %v", p.RawArgs)
	return b.String()
}
