// Mapfence - Geofence Drawing and Live Tracking State Core
// Copyright 2026 T. Krauss (tkrauss)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tkrauss/mapfence

package livestate

import (
	"sort"
	"sync"

	"github.com/tkrauss/mapfence/internal/models"
)

// MergeStats counts the records merged by one Apply call.
type MergeStats struct {
	Devices   int
	Positions int
	Geofences int
}

// Snapshot is a point-in-time copy of all three collections, sorted by
// key for deterministic output.
type Snapshot struct {
	Devices   []models.Device   `json:"devices"`
	Positions []models.Position `json:"positions"`
	Geofences []models.Geofence `json:"geofences"`
}

// Collections is the thread-safe keyed store behind the live state
// mirror. Devices and geofences are keyed by their own id; positions
// are keyed by device id, so a device has at most one live position.
type Collections struct {
	mu        sync.RWMutex
	devices   map[int64]models.Device
	positions map[int64]models.Position
	geofences map[int64]models.Geofence
}

// NewCollections creates an empty store.
func NewCollections() *Collections {
	return &Collections{
		devices:   make(map[int64]models.Device),
		positions: make(map[int64]models.Position),
		geofences: make(map[int64]models.Geofence),
	}
}

// Apply merges one update frame into the store. Every record in the
// frame is complete and replaces the stored record with the same key;
// records absent from the frame are untouched.
func (c *Collections) Apply(frame models.UpdateFrame) MergeStats {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, d := range frame.Devices {
		c.devices[d.Key()] = d
	}
	for _, p := range frame.Positions {
		c.positions[p.Key()] = p
	}
	for _, g := range frame.Geofences {
		c.geofences[g.Key()] = g
	}

	return MergeStats{
		Devices:   len(frame.Devices),
		Positions: len(frame.Positions),
		Geofences: len(frame.Geofences),
	}
}

// Snapshot copies all three collections.
func (c *Collections) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return Snapshot{
		Devices:   sortedValues(c.devices),
		Positions: sortedValues(c.positions),
		Geofences: sortedValues(c.geofences),
	}
}

// Devices returns a sorted copy of the device collection.
func (c *Collections) Devices() []models.Device {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return sortedValues(c.devices)
}

// Positions returns a sorted copy of the position collection.
func (c *Collections) Positions() []models.Position {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return sortedValues(c.positions)
}

// Geofences returns a sorted copy of the geofence collection.
func (c *Collections) Geofences() []models.Geofence {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return sortedValues(c.geofences)
}

// Geofence looks up a single geofence by id.
func (c *Collections) Geofence(id int64) (models.Geofence, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	g, ok := c.geofences[id]
	return g, ok
}

// Reset empties the store. Used when a fresh bootstrap replaces stale
// state after a long disconnect.
func (c *Collections) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.devices = make(map[int64]models.Device)
	c.positions = make(map[int64]models.Position)
	c.geofences = make(map[int64]models.Geofence)
}

func sortedValues[V any](m map[int64]V) []V {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	out := make([]V, 0, len(m))
	for _, k := range keys {
		out = append(out, m[k])
	}
	return out
}
