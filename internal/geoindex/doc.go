// Mapfence - Geofence Drawing and Live Tracking State Core
// Copyright 2026 T. Krauss (tkrauss)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tkrauss/mapfence

// Package geoindex maintains an R-tree over the live geofence
// collection, keyed by geofence id and bounded by each geofence's
// parsed geometry. The map UI uses it to find the geofences visible in
// a viewport or covering a point without scanning the whole collection.
package geoindex
