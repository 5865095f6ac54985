// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmdline

import "strings"

// FlagValue is the value of a parsed flag: either boolean presence or
// literal text. A flag's kind is decided once, when the flag is resolved;
// within a single parse the value stored under a name is either boolean or
// text, never both.
type FlagValue struct {
	text   string
	isText bool
}

// BoolFlag returns the boolean (presence-only) flag value.
func BoolFlag() FlagValue { return FlagValue{} }

// TextFlag returns a flag value carrying the literal string s.
func TextFlag(s string) FlagValue { return FlagValue{text: s, isText: true} }

// IsBool reports whether the value is boolean presence rather than text.
func (v FlagValue) IsBool() bool { return !v.isText }

// Text returns the string value and whether the value is textual.
func (v FlagValue) Text() (string, bool) { return v.text, v.isText }

// String renders the value for display: "true" for boolean presence,
// the literal text otherwise.
func (v FlagValue) String() string {
	if v.isText {
		return v.text
	}
	return "true"
}

// FlagSpec states how a known flag consumes arguments.
type FlagSpec struct {
	// ConsumesValue is true when the flag always takes the next token as
	// its value, false when the flag is always boolean.
	ConsumesValue bool
}

// FlagSchema optionally maps flag names (without dashes) to their argument
// behavior. Flags absent from the schema fall back to heuristic resolution.
// The parser only reads from the schema; callers may share one schema across
// concurrent Parse calls.
type FlagSchema map[string]FlagSpec

// IsFlag reports whether token names an option: it starts with a dash, is
// longer than the dash alone, and is not the "--" sentinel.
func IsFlag(token string) bool {
	return strings.HasPrefix(token, "-") && len(token) > 1 && token != "--"
}

// IsLongFlag reports whether token is a long-form flag such as --query.
func IsLongFlag(token string) bool {
	return strings.HasPrefix(token, "--") && len(token) > 2
}

// IsShortFlag reports whether token is a short-form flag such as -q or -mig.
// Short flags carry exactly one leading dash; the remainder is a single
// atomic name even when it is several characters long.
func IsShortFlag(token string) bool {
	return strings.HasPrefix(token, "-") && !strings.HasPrefix(token, "--") && len(token) > 1
}

// resolveLongFlag decides the name and value of a long flag token.
// Precedence: explicit --name=value syntax, then the schema entry, then the
// heuristic fallback. consumedNext reports whether next was taken as the
// flag's value, in which case the caller must skip it.
func resolveLongFlag(token, next string, hasNext, stopFlagParsing bool, schema FlagSchema) (name string, value FlagValue, consumedNext bool) {
	name = strings.TrimPrefix(token, "--")

	// --name=value wins over any schema entry. The value may itself
	// contain '='; only the first one splits.
	if idx := strings.Index(name, "="); idx != -1 {
		return name[:idx], TextFlag(name[idx+1:]), false
	}

	return resolveNamedFlag(name, next, hasNext, stopFlagParsing, schema)
}

// resolveShortFlag decides the name and value of a short flag token. The
// whole remainder after the dash is one flag name (-mig is the flag "mig",
// not -m -i -g); short flags have no '=' form in this design, so only the
// schema and heuristic tiers apply.
func resolveShortFlag(token, next string, hasNext, stopFlagParsing bool, schema FlagSchema) (name string, value FlagValue, consumedNext bool) {
	name = strings.TrimPrefix(token, "-")
	return resolveNamedFlag(name, next, hasNext, stopFlagParsing, schema)
}

// resolveNamedFlag applies the schema and heuristic tiers shared by the long
// and short resolvers.
func resolveNamedFlag(name, next string, hasNext, stopFlagParsing bool, schema FlagSchema) (string, FlagValue, bool) {
	if spec, ok := schema[name]; ok {
		if !spec.ConsumesValue {
			// Boolean per schema: never consume, even when the next
			// token looks consumable.
			return name, BoolFlag(), false
		}
		// Value-bearing per schema, but never swallow a following
		// flag token.
		if hasNext && !IsFlag(next) {
			return name, TextFlag(next), true
		}
		return name, BoolFlag(), false
	}

	// Heuristic fallback: assume a flag with a plausible-looking next
	// token consumes it. A known source of false positives for boolean
	// flags followed by positional arguments; schema-register such flags.
	if !stopFlagParsing && hasNext && !IsFlag(next) {
		return name, TextFlag(next), true
	}
	return name, BoolFlag(), false
}
