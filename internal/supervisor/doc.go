// Mapfence - Geofence Drawing and Live Tracking State Core
// Copyright 2026 T. Krauss (tkrauss)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tkrauss/mapfence

// Package supervisor builds the suture tree that runs the synchronizer
// and the HTTP server with restart-on-failure semantics.
package supervisor
