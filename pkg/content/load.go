// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package content

import (
	"compress/gzip"
	"embed"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/klauspost/compress/zstd"
	"gopkg.in/yaml.v3"
)

//go:embed lessons/*.yaml
var builtinFS embed.FS

// Builtin returns the lesson library shipped with the binary.
func Builtin() (*Library, error) {
	entries, err := fs.Glob(builtinFS, "lessons/*.yaml")
	if err != nil {
		return nil, err
	}
	sort.Strings(entries)
	var lessons []*Lesson
	for _, name := range entries {
		data, err := builtinFS.ReadFile(name)
		if err != nil {
			return nil, err
		}
		batch, err := decodeLessons(name, data)
		if err != nil {
			return nil, err
		}
		lessons = append(lessons, batch...)
	}
	return New(lessons)
}

// Load reads lessons from a YAML file or a directory of YAML files.
// Files may be gzip- or zstd-compressed (.yaml.gz, .yaml.zst); lesson packs
// are distributed compressed.
func Load(path string) (*Library, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		lessons, err := loadFile(path)
		if err != nil {
			return nil, err
		}
		return New(lessons)
	}

	var lessons []*Lesson
	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isLessonFile(p) {
			return nil
		}
		batch, err := loadFile(p)
		if err != nil {
			return err
		}
		lessons = append(lessons, batch...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return New(lessons)
}

func isLessonFile(path string) bool {
	for _, suffix := range []string{".yaml", ".yml", ".yaml.gz", ".yml.gz", ".yaml.zst", ".yml.zst"} {
		if strings.HasSuffix(path, suffix) {
			return true
		}
	}
	return false
}

func loadFile(path string) ([]*Lesson, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	switch {
	case strings.HasSuffix(path, ".gz"):
		zr, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("opening %s: %v", path, err)
		}
		defer zr.Close()
		r = zr
	case strings.HasSuffix(path, ".zst"):
		zr, err := zstd.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("opening %s: %v", path, err)
		}
		defer zr.Close()
		r = zr
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %v", path, err)
	}
	return decodeLessons(path, data)
}

func decodeLessons(path string, data []byte) ([]*Lesson, error) {
	var lessons []*Lesson
	if err := yaml.Unmarshal(data, &lessons); err != nil {
		return nil, fmt.Errorf("decoding %s: %v", path, err)
	}
	return lessons, nil
}
