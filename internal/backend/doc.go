// Mapfence - Geofence Drawing and Live Tracking State Core
// Copyright 2026 T. Krauss (tkrauss)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tkrauss/mapfence

// Package backend is the typed REST client for the tracking backend's
// resource API: current positions, geofences, and geofence updates
// carrying the textual geometry wire format.
//
// The client covers only the endpoints Mapfence consumes; the backend's
// wider CRUD surface is out of scope.
package backend
