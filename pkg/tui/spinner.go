// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tui

import (
	"fmt"
	"io"
	"sync"
	"time"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner renders an in-place progress indicator while a simulated
// diagnostic runs. It stays silent when color is disabled so captured
// output (tests, pipes) contains no control sequences.
type Spinner struct {
	out      io.Writer
	color    Colorizer
	interval time.Duration

	mu      sync.Mutex
	msg     string
	idx     int
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

func NewSpinner(out io.Writer, color Colorizer) *Spinner {
	return &Spinner{
		out:      out,
		color:    color,
		interval: 120 * time.Millisecond,
	}
}

func (s *Spinner) Start(msg string) {
	s.mu.Lock()
	if s.running || !s.color.Enabled {
		s.msg = msg
		s.mu.Unlock()
		return
	}
	s.running = true
	s.msg = msg
	s.stopCh = make(chan struct{})
	s.doneCh = make(chan struct{})
	s.mu.Unlock()

	s.renderFrame(0, msg)
	go s.loop()
}

func (s *Spinner) Update(msg string) {
	s.mu.Lock()
	s.msg = msg
	running := s.running
	idx := s.idx
	s.mu.Unlock()
	if !running {
		return
	}
	s.renderFrame(idx, msg)
}

func (s *Spinner) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	stopCh := s.stopCh
	doneCh := s.doneCh
	s.running = false
	s.mu.Unlock()

	close(stopCh)
	<-doneCh
	fmt.Fprint(s.out, "\r\033[K")
}

func (s *Spinner) loop() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.tick()
		case <-s.stopCh:
			close(s.doneCh)
			return
		}
	}
}

func (s *Spinner) tick() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.idx = (s.idx + 1) % len(spinnerFrames)
	idx := s.idx
	msg := s.msg
	s.mu.Unlock()

	s.renderFrame(idx, msg)
}

func (s *Spinner) renderFrame(idx int, msg string) {
	frame := s.color.Wrap(ColorCyan, spinnerFrames[idx%len(spinnerFrames)])
	if msg != "" {
		frame += " " + msg
	}
	fmt.Fprintf(s.out, "\r\033[K%s", frame)
}
