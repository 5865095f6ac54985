// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmdline

import "strings"

// scanState is the tokenizer state. The state set is closed; every switch
// over it must handle all four states.
type scanState uint8

const (
	stateNormal scanState = iota
	stateEscape
	stateSingleQuote
	stateDoubleQuote
)

// Tokenize splits line into tokens, honoring single/double quoting and a
// limited escape syntax. An unterminated quote is not an error: scanning
// simply reaches end of input inside the quoted state and whatever
// accumulated is flushed as the final token. Empty tokens are never emitted.
func Tokenize(line string) []string {
	var (
		tokens []string
		cur    strings.Builder
		state  = stateNormal
	)

	flush := func() {
		if cur.Len() > 0 {
			tokens = append(tokens, cur.String())
			cur.Reset()
		}
	}

	for i := 0; i < len(line); i++ {
		c := line[i]
		switch state {
		case stateNormal:
			switch {
			case c == ' ' || c == '\t':
				flush()
			case c == '"':
				state = stateDoubleQuote
			case c == '\'':
				state = stateSingleQuote
			case c == '\\' && i+1 < len(line) && isEscapable(line[i+1]):
				state = stateEscape
			default:
				cur.WriteByte(c)
			}
		case stateEscape:
			cur.WriteByte(c)
			state = stateNormal
		case stateSingleQuote:
			// Single quotes are fully literal; no escape processing.
			if c == '\'' {
				state = stateNormal
			} else {
				cur.WriteByte(c)
			}
		case stateDoubleQuote:
			switch {
			case c == '"':
				state = stateNormal
			case c == '\\' && i+1 < len(line) && line[i+1] == '"':
				state = stateEscape
			default:
				cur.WriteByte(c)
			}
		}
	}

	flush()
	return tokens
}

func isEscapable(c byte) bool {
	return c == '"' || c == '\'' || c == '\\'
}
