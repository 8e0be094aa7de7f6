// Mapfence - Geofence Drawing and Live Tracking State Core
// Copyright 2026 T. Krauss (tkrauss)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tkrauss/mapfence

package geoindex

import (
	"fmt"
	"sort"
	"sync"

	"github.com/dhconnelly/rtreego"

	"github.com/tkrauss/mapfence/internal/geometry"
	"github.com/tkrauss/mapfence/internal/models"
)

const (
	dimensions  = 2
	minChildren = 25
	maxChildren = 50

	// padding keeps degenerate rects (a circle center, a single-vertex
	// geometry) valid for the R-tree.
	padding = 1e-9
)

// fenceItem wraps one geofence's bounding box for R-tree indexing.
// Rect axes are [lat, lon].
type fenceItem struct {
	id   int64
	rect *rtreego.Rect
}

func (f *fenceItem) Bounds() *rtreego.Rect { return f.rect }

// Index is a thread-safe R-tree over geofence bounding boxes.
type Index struct {
	mu    sync.RWMutex
	tree  *rtreego.Rtree
	items map[int64]*fenceItem
}

// New creates an empty geofence index.
func New() *Index {
	return &Index{
		tree:  rtreego.NewTree(dimensions, minChildren, maxChildren),
		items: make(map[int64]*fenceItem),
	}
}

// Upsert indexes a geofence by the bounding box of its parsed area,
// replacing any previous entry for the same id. A geofence whose area
// does not parse is rejected and leaves any previous entry in place.
func (ix *Index) Upsert(g models.Geofence) error {
	f, err := geometry.ParseWireFormat(g.Area)
	if err != nil {
		return fmt.Errorf("geofence %d: %w", g.ID, err)
	}

	rect, err := boundingRect(f)
	if err != nil {
		return fmt.Errorf("geofence %d: %w", g.ID, err)
	}

	ix.mu.Lock()
	defer ix.mu.Unlock()

	if old, ok := ix.items[g.ID]; ok {
		ix.tree.Delete(old)
	}
	item := &fenceItem{id: g.ID, rect: rect}
	ix.tree.Insert(item)
	ix.items[g.ID] = item
	return nil
}

// Remove drops a geofence from the index. Unknown ids are no-ops.
func (ix *Index) Remove(id int64) {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	if item, ok := ix.items[id]; ok {
		ix.tree.Delete(item)
		delete(ix.items, id)
	}
}

// Len returns the number of indexed geofences.
func (ix *Index) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.items)
}

// SearchViewport returns the ids of geofences whose bounding box
// intersects the given viewport, sorted ascending for deterministic
// responses.
func (ix *Index) SearchViewport(minLat, minLon, maxLat, maxLon float64) ([]int64, error) {
	lengths := []float64{maxLat - minLat, maxLon - minLon}
	if lengths[0] <= 0 {
		lengths[0] = padding
	}
	if lengths[1] <= 0 {
		lengths[1] = padding
	}
	bounds, err := rtreego.NewRect(rtreego.Point{minLat, minLon}, lengths)
	if err != nil {
		return nil, fmt.Errorf("invalid viewport: %w", err)
	}

	ix.mu.RLock()
	defer ix.mu.RUnlock()

	results := ix.tree.SearchIntersect(bounds)
	ids := make([]int64, 0, len(results))
	for _, r := range results {
		if item, ok := r.(*fenceItem); ok {
			ids = append(ids, item.id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

// SearchPoint returns the ids of geofences whose bounding box contains
// the given point.
func (ix *Index) SearchPoint(lat, lon float64) ([]int64, error) {
	return ix.SearchViewport(lat, lon, lat, lon)
}

// boundingRect computes the [lat, lon] bounding rect of a feature's
// vertices.
func boundingRect(f geometry.Feature) (*rtreego.Rect, error) {
	var points []geometry.Point
	switch {
	case len(f.Rings) > 0:
		points = f.Rings[0]
	default:
		points = f.Points
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("feature has no vertices")
	}

	minLat, minLon := points[0].Lat(), points[0].Lon()
	maxLat, maxLon := minLat, minLon
	for _, p := range points[1:] {
		if p.Lat() < minLat {
			minLat = p.Lat()
		}
		if p.Lat() > maxLat {
			maxLat = p.Lat()
		}
		if p.Lon() < minLon {
			minLon = p.Lon()
		}
		if p.Lon() > maxLon {
			maxLon = p.Lon()
		}
	}

	lengths := []float64{maxLat - minLat, maxLon - minLon}
	if lengths[0] <= 0 {
		lengths[0] = padding
	}
	if lengths[1] <= 0 {
		lengths[1] = padding
	}
	return rtreego.NewRect(rtreego.Point{minLat, minLon}, lengths)
}
