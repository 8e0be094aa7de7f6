// Mapfence - Geofence Drawing and Live Tracking State Core
// Copyright 2026 T. Krauss (tkrauss)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tkrauss/mapfence

// Package models defines the tracking backend's record types: devices,
// positions, and geofences, plus the push-channel frame that carries
// partial batches of them.
//
// Records are always handled whole: a later record for the same key
// replaces the earlier one, never a field-by-field merge.
package models
