// Mapfence - Geofence Drawing and Live Tracking State Core
// Copyright 2026 T. Krauss (tkrauss)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tkrauss/mapfence

package geometry

import "math"

// DefaultCircleVertices is the default vertex count of the polygon
// approximation generated for circles.
const DefaultCircleVertices = 64

// Circle builds a polygon approximation of a circle centered at center
// (in [lon, lat] order) with the given radius in meters. The feature is
// tagged with center and radius properties, so the codec emits it as a
// CIRCLE regardless of the ring. The ring is closed: its first vertex is
// repeated as the last one.
//
// vertices below 3 falls back to DefaultCircleVertices.
func Circle(center Point, radiusMeters float64, vertices int) Feature {
	if vertices < 3 {
		vertices = DefaultCircleVertices
	}

	ring := make([]Point, 0, vertices+1)
	for i := 0; i < vertices; i++ {
		bearing := 2 * math.Pi * float64(i) / float64(vertices)
		ring = append(ring, destination(center, radiusMeters, bearing))
	}
	ring = append(ring, ring[0])

	c := center
	return Feature{
		Kind:       KindPolygon,
		Rings:      [][]Point{ring},
		Properties: Properties{Radius: radiusMeters, Center: &c},
	}
}
