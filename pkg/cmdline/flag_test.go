// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmdline

import "testing"

func TestFlagClassification(t *testing.T) {
	tests := []struct {
		token   string
		isFlag  bool
		isLong  bool
		isShort bool
	}{
		{token: "-q", isFlag: true, isShort: true},
		{token: "-mig", isFlag: true, isShort: true},
		{token: "--query", isFlag: true, isLong: true},
		{token: "--", isFlag: false},
		{token: "-", isFlag: false},
		{token: "", isFlag: false},
		{token: "mig", isFlag: false},
		{token: "-5", isFlag: true, isShort: true},
		{token: "--q", isFlag: true, isLong: true},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			if got := IsFlag(tt.token); got != tt.isFlag {
				t.Errorf("IsFlag(%q) = %v, want %v", tt.token, got, tt.isFlag)
			}
			if got := IsLongFlag(tt.token); got != tt.isLong {
				t.Errorf("IsLongFlag(%q) = %v, want %v", tt.token, got, tt.isLong)
			}
			if got := IsShortFlag(tt.token); got != tt.isShort {
				t.Errorf("IsShortFlag(%q) = %v, want %v", tt.token, got, tt.isShort)
			}
		})
	}
}

func TestResolveLongFlag(t *testing.T) {
	schema := FlagSchema{
		"format": {ConsumesValue: true},
		"list":   {ConsumesValue: false},
	}

	tests := []struct {
		name         string
		token        string
		next         string
		hasNext      bool
		stop         bool
		schema       FlagSchema
		wantName     string
		wantValue    FlagValue
		wantConsumed bool
	}{
		{
			name:      "explicit value",
			token:     "--format=csv",
			wantName:  "format",
			wantValue: TextFlag("csv"),
		},
		{
			name:      "explicit value splits on first equals only",
			token:     "--opt=a=b",
			wantName:  "opt",
			wantValue: TextFlag("a=b"),
		},
		{
			name:      "explicit empty value stays text",
			token:     "--opt=",
			wantName:  "opt",
			wantValue: TextFlag(""),
		},
		{
			name:      "explicit value beats schema",
			token:     "--list=all",
			schema:    schema,
			wantName:  "list",
			wantValue: TextFlag("all"),
		},
		{
			name:         "schema value flag consumes next",
			token:        "--format",
			next:         "csv",
			hasNext:      true,
			schema:       schema,
			wantName:     "format",
			wantValue:    TextFlag("csv"),
			wantConsumed: true,
		},
		{
			name:      "schema value flag does not swallow a flag token",
			token:     "--format",
			next:      "--list",
			hasNext:   true,
			schema:    schema,
			wantName:  "format",
			wantValue: BoolFlag(),
		},
		{
			name:      "schema bool flag never consumes",
			token:     "--list",
			next:      "all",
			hasNext:   true,
			schema:    schema,
			wantName:  "list",
			wantValue: BoolFlag(),
		},
		{
			name:         "heuristic consumes plausible next token",
			token:        "--out",
			next:         "report.txt",
			hasNext:      true,
			wantName:     "out",
			wantValue:    TextFlag("report.txt"),
			wantConsumed: true,
		},
		{
			name:      "heuristic leaves following flag alone",
			token:     "--out",
			next:      "-v",
			hasNext:   true,
			wantName:  "out",
			wantValue: BoolFlag(),
		},
		{
			name:      "heuristic with no next token is boolean",
			token:     "--out",
			wantName:  "out",
			wantValue: BoolFlag(),
		},
		{
			name:      "heuristic disabled after stop",
			token:     "--out",
			next:      "report.txt",
			hasNext:   true,
			stop:      true,
			wantName:  "out",
			wantValue: BoolFlag(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, value, consumed := resolveLongFlag(tt.token, tt.next, tt.hasNext, tt.stop, tt.schema)
			if name != tt.wantName {
				t.Errorf("name = %q, want %q", name, tt.wantName)
			}
			if value != tt.wantValue {
				t.Errorf("value = %v, want %v", value, tt.wantValue)
			}
			if consumed != tt.wantConsumed {
				t.Errorf("consumedNext = %v, want %v", consumed, tt.wantConsumed)
			}
		})
	}
}

func TestResolveShortFlag(t *testing.T) {
	schema := FlagSchema{
		"i": {ConsumesValue: true},
		"q": {ConsumesValue: false},
	}

	tests := []struct {
		name         string
		token        string
		next         string
		hasNext      bool
		schema       FlagSchema
		wantName     string
		wantValue    FlagValue
		wantConsumed bool
	}{
		{
			name:         "multi-character name is atomic",
			token:        "-mig",
			next:         "1",
			hasNext:      true,
			wantName:     "mig",
			wantValue:    TextFlag("1"),
			wantConsumed: true,
		},
		{
			name:         "single character schema value flag",
			token:        "-i",
			next:         "0",
			hasNext:      true,
			schema:       schema,
			wantName:     "i",
			wantValue:    TextFlag("0"),
			wantConsumed: true,
		},
		{
			name:      "schema value flag refuses a following flag",
			token:     "-i",
			next:      "-q",
			hasNext:   true,
			schema:    schema,
			wantName:  "i",
			wantValue: BoolFlag(),
		},
		{
			name:      "schema bool flag ignores plausible value",
			token:     "-q",
			next:      "mig",
			hasNext:   true,
			schema:    schema,
			wantName:  "q",
			wantValue: BoolFlag(),
		},
		{
			name:         "heuristic consumes next",
			token:        "-q",
			next:         "mig",
			hasNext:      true,
			wantName:     "q",
			wantValue:    TextFlag("mig"),
			wantConsumed: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, value, consumed := resolveShortFlag(tt.token, tt.next, tt.hasNext, false, tt.schema)
			if name != tt.wantName {
				t.Errorf("name = %q, want %q", name, tt.wantName)
			}
			if value != tt.wantValue {
				t.Errorf("value = %v, want %v", value, tt.wantValue)
			}
			if consumed != tt.wantConsumed {
				t.Errorf("consumedNext = %v, want %v", consumed, tt.wantConsumed)
			}
		})
	}
}
