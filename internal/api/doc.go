// Mapfence - Geofence Drawing and Live Tracking State Core
// Copyright 2026 T. Krauss (tkrauss)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tkrauss/mapfence

// Package api exposes the live state mirror and the geometry codec
// over HTTP using the Chi router.
//
// All endpoints share a standardized response envelope with a success
// flag, payload, error details and request metadata.
package api
