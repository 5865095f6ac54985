// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cluster

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Store is a JSON file-backed cluster state store.
type Store struct {
	file string

	mu sync.Mutex // protects the following
	c  *Cluster
}

// NewStore returns a new Store backed by file. The file is not read until
// the first Get.
func NewStore(file string) *Store {
	return &Store{file: file}
}

// File returns the path the store reads and writes.
func (s *Store) File() string { return s.file }

// Get returns a copy of the current cluster. If nothing is loaded yet it
// reads the backing file, seeding a default cluster when the file does not
// exist, and runs any pending migrations.
func (s *Store) Get() (*Cluster, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loadLocked(); err != nil {
		return nil, err
	}
	return s.c.clone()
}

// Reload discards the cached state and re-reads the backing file. Used by
// the shell's config watcher.
func (s *Store) Reload() (*Cluster, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.c = nil
	if err := s.loadLocked(); err != nil {
		return nil, err
	}
	return s.c.clone()
}

func (s *Store) loadLocked() error {
	if s.c != nil {
		return nil
	}
	created, err := s.readLocked()
	if err != nil {
		return err
	}
	if created {
		s.c.DataVersion = CurrentDataVersion
		return nil
	}
	migrated, err := migrate(s.c)
	if err != nil {
		return fmt.Errorf("migrating cluster config: %v", err)
	}
	if migrated {
		if err := s.saveLocked(); err != nil {
			return fmt.Errorf("saving migrated cluster config: %v", err)
		}
	}
	return nil
}

// Mutate applies f to the cluster under the lock and persists the result.
func (s *Store) Mutate(f func(*Cluster) error) (*Cluster, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loadLocked(); err != nil {
		return nil, err
	}
	if err := f(s.c); err != nil {
		return nil, fmt.Errorf("failed to mutate cluster: %v", err)
	}
	if err := s.saveLocked(); err != nil {
		return nil, fmt.Errorf("failed to save cluster: %v", err)
	}
	return s.c.clone()
}

// readLocked reads s.file into s.c, seeding a default cluster when the file
// does not exist.
func (s *Store) readLocked() (created bool, err error) {
	f, err := os.Open(s.file)
	if os.IsNotExist(err) {
		s.c = Default()
		return true, nil
	}
	if err != nil {
		return false, err
	}
	defer f.Close()
	c := new(Cluster)
	if err := json.NewDecoder(f).Decode(c); err != nil {
		return false, fmt.Errorf("decoding %s: %v", s.file, err)
	}
	s.c = c
	return false, nil
}

// saveLocked saves s.c to s.file via a temp file and rename.
func (s *Store) saveLocked() error {
	if s.c == nil {
		return nil
	}
	dir := filepath.Dir(s.file)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "cluster.json")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s.c); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.file)
}

// clone deep-copies via JSON; the config is small and this keeps copies in
// lockstep with what the file format can express.
func (c *Cluster) clone() (*Cluster, error) {
	j, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}
	out := new(Cluster)
	if err := json.Unmarshal(j, out); err != nil {
		return nil, err
	}
	return out, nil
}
