// Mapfence - Geofence Drawing and Live Tracking State Core
// Copyright 2026 T. Krauss (tkrauss)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tkrauss/mapfence

package livestate

import (
	"testing"

	"github.com/tkrauss/mapfence/internal/models"
)

func TestCollectionsApplyMergesByKey(t *testing.T) {
	c := NewCollections()

	stats := c.Apply(models.UpdateFrame{
		Devices: []models.Device{
			{ID: 1, Name: "truck", Status: "online"},
			{ID: 2, Name: "van", Status: "offline"},
		},
		Positions: []models.Position{
			{ID: 100, DeviceID: 1, Latitude: 52.5, Longitude: 13.4},
		},
		Geofences: []models.Geofence{
			{ID: 7, Name: "depot", Area: "CIRCLE (52.5 13.4, 200)"},
		},
	})
	if stats.Devices != 2 || stats.Positions != 1 || stats.Geofences != 1 {
		t.Fatalf("stats = %+v, want 2/1/1", stats)
	}

	// A later frame replaces records with the same key and leaves the
	// rest untouched. The new position for device 1 replaces the old
	// one even though its own id differs.
	c.Apply(models.UpdateFrame{
		Devices: []models.Device{
			{ID: 1, Name: "truck", Status: "offline"},
		},
		Positions: []models.Position{
			{ID: 101, DeviceID: 1, Latitude: 52.6, Longitude: 13.5},
		},
	})

	snap := c.Snapshot()
	if len(snap.Devices) != 2 {
		t.Fatalf("devices = %d, want 2", len(snap.Devices))
	}
	if snap.Devices[0].Status != "offline" {
		t.Errorf("device 1 status = %q, want offline", snap.Devices[0].Status)
	}
	if snap.Devices[1].Name != "van" {
		t.Errorf("device 2 = %+v, untouched record lost", snap.Devices[1])
	}
	if len(snap.Positions) != 1 {
		t.Fatalf("positions = %d, want 1 (keyed by device id)", len(snap.Positions))
	}
	if snap.Positions[0].ID != 101 || snap.Positions[0].Latitude != 52.6 {
		t.Errorf("position = %+v, want the replacement", snap.Positions[0])
	}
	if len(snap.Geofences) != 1 || snap.Geofences[0].Name != "depot" {
		t.Errorf("geofences = %+v", snap.Geofences)
	}
}

func TestCollectionsApplyEmptyFrame(t *testing.T) {
	c := NewCollections()
	c.Apply(models.UpdateFrame{Devices: []models.Device{{ID: 1}}})

	stats := c.Apply(models.UpdateFrame{})
	if stats != (MergeStats{}) {
		t.Errorf("stats = %+v, want zero", stats)
	}
	if len(c.Devices()) != 1 {
		t.Error("empty frame must not change the store")
	}
}

func TestCollectionsSnapshotSorted(t *testing.T) {
	c := NewCollections()
	c.Apply(models.UpdateFrame{
		Geofences: []models.Geofence{
			{ID: 9, Name: "c"},
			{ID: 3, Name: "a"},
			{ID: 5, Name: "b"},
		},
	})

	snap := c.Snapshot()
	want := []int64{3, 5, 9}
	for i, g := range snap.Geofences {
		if g.ID != want[i] {
			t.Fatalf("geofence order = %v", snap.Geofences)
		}
	}
}

func TestCollectionsGeofenceLookup(t *testing.T) {
	c := NewCollections()
	c.Apply(models.UpdateFrame{
		Geofences: []models.Geofence{{ID: 4, Name: "yard"}},
	})

	g, ok := c.Geofence(4)
	if !ok || g.Name != "yard" {
		t.Errorf("Geofence(4) = %+v, %v", g, ok)
	}
	if _, ok := c.Geofence(99); ok {
		t.Error("Geofence(99) found, want miss")
	}
}

func TestCollectionsReset(t *testing.T) {
	c := NewCollections()
	c.Apply(models.UpdateFrame{
		Devices:   []models.Device{{ID: 1}},
		Positions: []models.Position{{DeviceID: 1}},
		Geofences: []models.Geofence{{ID: 1}},
	})

	c.Reset()

	snap := c.Snapshot()
	if len(snap.Devices)+len(snap.Positions)+len(snap.Geofences) != 0 {
		t.Errorf("store not empty after reset: %+v", snap)
	}
}
