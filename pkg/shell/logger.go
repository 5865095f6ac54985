// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shell

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
)

var (
	debugColor   = color.New(color.FgHiBlack)
	errorColor   = color.New(color.FgRed)
	successColor = color.New(color.FgGreen)
)

// Logger writes the shell's own messages, as opposed to simulated tool
// output, which goes to the tool writer unstamped.
type Logger struct {
	out     io.Writer
	verbose bool
}

func NewLogger(out io.Writer, verbose bool) *Logger {
	return &Logger{out: out, verbose: verbose}
}

func (l *Logger) timestamp() string {
	return time.Now().Format("15:04:05")
}

func (l *Logger) Info(format string, args ...any) {
	fmt.Fprintf(l.out, "[%s] %s\n", l.timestamp(), fmt.Sprintf(format, args...))
}

// Debug logs only in verbose mode.
func (l *Logger) Debug(format string, args ...any) {
	if !l.verbose {
		return
	}
	fmt.Fprintf(l.out, "[%s] %s\n", l.timestamp(), debugColor.Sprintf(format, args...))
}

func (l *Logger) Error(format string, args ...any) {
	fmt.Fprintf(l.out, "[%s] %s\n", l.timestamp(), errorColor.Sprintf(format, args...))
}

func (l *Logger) Success(format string, args ...any) {
	fmt.Fprintf(l.out, "[%s] %s\n", l.timestamp(), successColor.Sprintf(format, args...))
}
