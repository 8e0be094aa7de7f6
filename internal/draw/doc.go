// Mapfence - Geofence Drawing and Live Tracking State Core
// Copyright 2026 T. Krauss (tkrauss)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tkrauss/mapfence

// Package draw hosts the interactive drawing subsystem: the capability
// contract a drawing mode implements against a map toolbar host, the
// two-click radius (circle) drawing mode, and the control extension that
// injects custom buttons into a generic drawing toolbar.
//
// There is no implementation inheritance anywhere in the package. Modes
// implement the Mode interface; the control wraps a base Toolbar by
// composition and delegates to it. Button active/inactive state lives in
// an explicit state map owned by the control; rendered CSS classes are a
// pure projection of that map.
//
// Everything here runs inside a UI event loop, so malformed events
// (missing coordinates, an externally deleted feature) are silent
// no-ops, never panics or returned errors.
package draw
