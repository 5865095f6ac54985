// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/gpulab/gpulab/pkg/content"
)

// prefs is the ~/.gpulab/config.toml file. Every field has a working
// default; the file is optional.
type prefs struct {
	// Cluster is the path of the cluster model JSON. A missing file is
	// seeded with the built-in training cluster on first use.
	Cluster string `toml:"cluster"`
	// History is the shell history file. Empty disables history.
	History string `toml:"history"`
	// Lessons optionally names a file or directory of extra lesson packs
	// loaded on top of the built-in ones.
	Lessons string `toml:"lessons"`
	Verbose bool   `toml:"verbose"`
}

func defaultPrefs() *prefs {
	dir := gpulabDir()
	return &prefs{
		Cluster: filepath.Join(dir, "cluster.json"),
		History: filepath.Join(dir, "history"),
	}
}

func gpulabDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".gpulab"
	}
	return filepath.Join(home, ".gpulab")
}

// loadPrefs resolves configuration in increasing precedence: defaults, the
// config file, environment variables, then command-line flags.
func loadPrefs() (*prefs, error) {
	path := flagConfig
	if path == "" {
		path = os.Getenv("GPULAB_CONFIG")
	}
	explicit := path != ""
	if !explicit {
		path = filepath.Join(gpulabDir(), "config.toml")
	}

	p := defaultPrefs()
	if _, err := toml.DecodeFile(path, p); err != nil {
		if explicit || !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	if v := os.Getenv("GPULAB_CLUSTER"); v != "" {
		p.Cluster = v
	}
	if flagCluster != "" {
		p.Cluster = flagCluster
	}
	if flagVerbose {
		p.Verbose = true
	}
	return p, nil
}

// loadLessons returns the built-in lesson library, extended with the user's
// lesson packs when prefs name any.
func loadLessons(p *prefs) (*content.Library, error) {
	builtin, err := content.Builtin()
	if err != nil {
		return nil, err
	}
	if p.Lessons == "" {
		return builtin, nil
	}
	extra, err := content.Load(p.Lessons)
	if err != nil {
		return nil, fmt.Errorf("loading lessons from %s: %w", p.Lessons, err)
	}
	return content.New(append(builtin.All(), extra.All()...))
}
