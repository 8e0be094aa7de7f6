// Mapfence - Geofence Drawing and Live Tracking State Core
// Copyright 2026 T. Krauss (tkrauss)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tkrauss/mapfence

package geoindex

import (
	"slices"
	"testing"

	"github.com/tkrauss/mapfence/internal/models"
)

func TestIndexUpsertAndSearch(t *testing.T) {
	ix := New()

	fences := []models.Geofence{
		{ID: 1, Name: "berlin", Area: "CIRCLE (52.52 13.4, 500)"},
		{ID: 2, Name: "helsinki", Area: "POLYGON ((60.1 24.8, 60.3 24.8, 60.3 25.1, 60.1 24.8))"},
		{ID: 3, Name: "route", Area: "LINESTRING (52.5 13.3, 52.6 13.5)"},
	}
	for _, g := range fences {
		if err := ix.Upsert(g); err != nil {
			t.Fatalf("Upsert(%d) error: %v", g.ID, err)
		}
	}
	if ix.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", ix.Len())
	}

	// Berlin viewport sees the circle and the route, not Helsinki.
	ids, err := ix.SearchViewport(52.0, 13.0, 53.0, 14.0)
	if err != nil {
		t.Fatalf("SearchViewport() error: %v", err)
	}
	if !slices.Equal(ids, []int64{1, 3}) {
		t.Errorf("SearchViewport() = %v, want [1 3]", ids)
	}

	// A point inside the Helsinki polygon's bounding box.
	ids, err = ix.SearchPoint(60.2, 24.9)
	if err != nil {
		t.Fatalf("SearchPoint() error: %v", err)
	}
	if !slices.Equal(ids, []int64{2}) {
		t.Errorf("SearchPoint() = %v, want [2]", ids)
	}
}

func TestIndexUpsertReplaces(t *testing.T) {
	ix := New()

	g := models.Geofence{ID: 1, Area: "CIRCLE (52.52 13.4, 500)"}
	if err := ix.Upsert(g); err != nil {
		t.Fatalf("Upsert() error: %v", err)
	}

	// Move the fence to Helsinki; the Berlin entry must disappear.
	g.Area = "CIRCLE (60.17 24.94, 500)"
	if err := ix.Upsert(g); err != nil {
		t.Fatalf("Upsert() error: %v", err)
	}
	if ix.Len() != 1 {
		t.Fatalf("Len() = %d, want 1 after replace", ix.Len())
	}

	ids, err := ix.SearchViewport(52.0, 13.0, 53.0, 14.0)
	if err != nil {
		t.Fatalf("SearchViewport() error: %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("old location still indexed: %v", ids)
	}

	ids, err = ix.SearchViewport(60.0, 24.0, 61.0, 26.0)
	if err != nil {
		t.Fatalf("SearchViewport() error: %v", err)
	}
	if !slices.Equal(ids, []int64{1}) {
		t.Errorf("new location not indexed: %v", ids)
	}
}

func TestIndexRejectsBadArea(t *testing.T) {
	ix := New()

	if err := ix.Upsert(models.Geofence{ID: 1, Area: "TRIANGLE (0 0)"}); err == nil {
		t.Fatal("expected error for unparseable area")
	}
	if ix.Len() != 0 {
		t.Error("failed upsert must not index anything")
	}

	// A failed update leaves the previous entry in place.
	if err := ix.Upsert(models.Geofence{ID: 2, Area: "CIRCLE (10 10, 100)"}); err != nil {
		t.Fatalf("Upsert() error: %v", err)
	}
	if err := ix.Upsert(models.Geofence{ID: 2, Area: "garbage"}); err == nil {
		t.Fatal("expected error for garbage area")
	}
	ids, err := ix.SearchPoint(10, 10)
	if err != nil {
		t.Fatalf("SearchPoint() error: %v", err)
	}
	if !slices.Equal(ids, []int64{2}) {
		t.Errorf("previous entry lost after failed update: %v", ids)
	}
}

func TestIndexRemove(t *testing.T) {
	ix := New()
	_ = ix.Upsert(models.Geofence{ID: 5, Area: "CIRCLE (1 1, 100)"})

	ix.Remove(5)
	ix.Remove(5) // second remove is a no-op

	if ix.Len() != 0 {
		t.Errorf("Len() = %d after remove, want 0", ix.Len())
	}
}
