// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cmdline turns a raw, shell-like command line into a structured
// command without a fixed per-command grammar.
//
// The package serves dozens of simulated tools with unrelated flag
// vocabularies (nvidia-smi, dcgmi, ibstat, ...), so it cannot rely on a
// registered flag set the way a conventional CLI parser does. Instead it
// resolves argument ambiguity with a layered precedence:
//
//  1. Explicit syntax: --flag=value always yields a text value.
//  2. Schema: an optional per-command FlagSchema states whether a known
//     flag consumes the next token or is boolean.
//  3. Heuristic: an unknown flag consumes the next token when that token
//     exists and does not itself look like a flag; otherwise it is boolean.
//
// # Basic Usage
//
//	cmd := cmdline.Parse(`nvidia-smi -q mig`, nil)
//	cmd.BaseCommand        // "nvidia-smi"
//	cmd.FlagString("", "q") // "mig" (heuristic: next token consumed)
//
// With a schema the ambiguity disappears:
//
//	schema := cmdline.FlagSchema{
//	    "i": {ConsumesValue: true},
//	    "q": {ConsumesValue: false},
//	}
//	cmd = cmdline.Parse(`nvidia-smi -q mig`, schema)
//	cmd.HasFlag("q")            // true (boolean per schema)
//	cmd.Subcommands             // ["mig"]
//
// # Flag Syntax
//
//   - Long flags: --flag, --flag=value, --flag value
//   - Short flags: -f, -f value. Multi-character short flags are atomic:
//     -mig is the single flag "mig", never the bundle -m -i -g. The
//     simulated tool vocabulary uses multi-letter short flags, so
//     POSIX-style bundling is deliberately rejected.
//   - "--" permanently stops flag interpretation; later tokens are plain
//     arguments even when they begin with a dash.
//
// Quoting follows shell conventions: double quotes preserve whitespace and
// honor \" escapes, single quotes are fully literal, and a backslash in
// normal context escapes ", ' and \.
//
// Parse never fails. Malformed input (unterminated quotes, a lone trailing
// backslash, empty lines) degrades to a best-effort ParsedCommand. Flag
// legality, mutual exclusion and shell metacharacters such as pipes are
// explicitly out of scope; a pipe character is an ordinary token and
// validation belongs to the command layer consuming the result.
package cmdline
