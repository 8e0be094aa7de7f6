// Mapfence - Geofence Drawing and Live Tracking State Core
// Copyright 2026 T. Krauss (tkrauss)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tkrauss/mapfence

// Package geometry converts drawn map features to and from the backend's
// textual geofence wire format.
//
// The wire format is one of:
//
//	CIRCLE (lat lon, radiusMeters)
//	LINESTRING (lat1 lon1, lat2 lon2, ...)
//	POLYGON ((lat1 lon1, lat2 lon2, ..., lat1 lon1))
//
// Features carry coordinates in GeoJSON [longitude, latitude] order; the
// wire format is latitude first. The swap happens exactly once, inside
// this package, in both directions.
//
// The package also provides the geodesic helpers the drawing subsystem
// needs: haversine distance, circle polygon approximation, and the
// human-readable radius labels shown next to the drag cursor.
package geometry
