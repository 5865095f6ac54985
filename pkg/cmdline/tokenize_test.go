// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmdline

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{
			name: "empty line",
			line: "",
			want: nil,
		},
		{
			name: "whitespace only",
			line: "   \t  ",
			want: nil,
		},
		{
			name: "plain words",
			line: "nvidia-smi -q mig",
			want: []string{"nvidia-smi", "-q", "mig"},
		},
		{
			name: "runs of whitespace collapse",
			line: "a   b\t\tc",
			want: []string{"a", "b", "c"},
		},
		{
			name: "double quotes preserve whitespace",
			line: `echo "hello world" -n`,
			want: []string{"echo", "hello world", "-n"},
		},
		{
			name: "single quotes preserve whitespace",
			line: "echo 'hello world'",
			want: []string{"echo", "hello world"},
		},
		{
			name: "quotes join with adjacent text",
			line: `--name="gpu 0"x`,
			want: []string{"--name=gpu 0x"},
		},
		{
			name: "escaped double quote in normal context",
			line: `say \"hi\"`,
			want: []string{"say", `"hi"`},
		},
		{
			name: "escaped backslash",
			line: `path c:\\temp`,
			want: []string{"path", `c:\temp`},
		},
		{
			name: "backslash before ordinary char is literal",
			line: `grep a\b`,
			want: []string{"grep", `a\b`},
		},
		{
			name: "no escape processing inside single quotes",
			line: `echo 'a\"b'`,
			want: []string{"echo", `a\"b`},
		},
		{
			name: "escaped quote inside double quotes",
			line: `echo "a\"b"`,
			want: []string{"echo", `a"b`},
		},
		{
			name: "unterminated double quote flushes remainder",
			line: `echo "unfinished business`,
			want: []string{"echo", "unfinished business"},
		},
		{
			name: "unterminated single quote flushes remainder",
			line: "echo 'oops",
			want: []string{"echo", "oops"},
		},
		{
			name: "lone trailing backslash is literal",
			line: `echo tail\`,
			want: []string{"echo", `tail\`},
		},
		{
			name: "empty quotes emit nothing",
			line: `a "" '' b`,
			want: []string{"a", "b"},
		},
		{
			name: "pipe is an ordinary token",
			line: "nvidia-smi | grep MiG",
			want: []string{"nvidia-smi", "|", "grep", "MiG"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.line)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Tokenize(%q) mismatch (-want +got):\n%s", tt.line, diff)
			}
		})
	}
}
