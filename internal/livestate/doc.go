// Mapfence - Geofence Drawing and Live Tracking State Core
// Copyright 2026 T. Krauss (tkrauss)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tkrauss/mapfence

// Package livestate maintains the in-memory mirror of the backend's
// devices, positions and geofences.
//
// The Synchronizer bootstraps the mirror over REST, then keeps it
// current from the backend's push channel. Incoming frames are partial
// and unordered batches of full records; each record replaces the
// stored record with the same key, so the mirror converges on the
// backend's state regardless of frame ordering.
package livestate
