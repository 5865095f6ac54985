// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cluster

import "fmt"

const CurrentDataVersion = 2

var migrators = map[int]func(*Cluster) error{ // Start DataVersion -> NextStep
	1: addIBPhysState,
}

// addIBPhysState fills the PhysState field introduced in version 2 from the
// logical port state.
func addIBPhysState(c *Cluster) error {
	for _, node := range c.Nodes {
		for _, p := range node.IBPorts {
			if p.PhysState != "" {
				continue
			}
			switch p.State {
			case "Active":
				p.PhysState = "LinkUp"
			case "Init":
				p.PhysState = "Polling"
			default:
				p.PhysState = "Disabled"
			}
		}
	}
	return nil
}

func migrate(c *Cluster) (migrated bool, _ error) {
	if c.DataVersion == 0 {
		// Pre-versioned configs are version 1.
		c.DataVersion = 1
	}
	for c.DataVersion < CurrentDataVersion {
		migrator, ok := migrators[c.DataVersion]
		if !ok {
			return false, fmt.Errorf("no migrator for version %d", c.DataVersion)
		}
		if err := migrator(c); err != nil {
			return false, fmt.Errorf("migrating version %d: %v", c.DataVersion, err)
		}
		c.DataVersion++
		migrated = true
	}
	return migrated, nil
}
