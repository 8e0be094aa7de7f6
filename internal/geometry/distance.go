// Mapfence - Geofence Drawing and Live Tracking State Core
// Copyright 2026 T. Krauss (tkrauss)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tkrauss/mapfence

package geometry

import "math"

// earthRadiusMeters is the mean Earth radius used for geodesic math.
const earthRadiusMeters = 6371000

// Distance returns the great-circle distance in meters between two
// points, computed with the haversine formula.
func Distance(a, b Point) float64 {
	dLat := toRad(b.Lat() - a.Lat())
	dLon := toRad(b.Lon() - a.Lon())

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(a.Lat()))*math.Cos(toRad(b.Lat()))*math.Sin(dLon/2)*math.Sin(dLon/2)
	return earthRadiusMeters * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// destination returns the point reached by travelling distanceMeters
// from origin along the given bearing (radians, clockwise from north).
func destination(origin Point, distanceMeters, bearing float64) Point {
	angular := distanceMeters / earthRadiusMeters
	lat1 := toRad(origin.Lat())
	lon1 := toRad(origin.Lon())

	lat2 := math.Asin(math.Sin(lat1)*math.Cos(angular) +
		math.Cos(lat1)*math.Sin(angular)*math.Cos(bearing))
	lon2 := lon1 + math.Atan2(
		math.Sin(bearing)*math.Sin(angular)*math.Cos(lat1),
		math.Cos(angular)-math.Sin(lat1)*math.Sin(lat2))

	return Point{toDeg(lon2), toDeg(lat2)}
}

func toRad(deg float64) float64 { return deg * math.Pi / 180 }

func toDeg(rad float64) float64 { return rad * 180 / math.Pi }
