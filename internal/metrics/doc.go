// Mapfence - Geofence Drawing and Live Tracking State Core
// Copyright 2026 T. Krauss (tkrauss)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tkrauss/mapfence

// Package metrics provides Prometheus instrumentation for Mapfence:
// push-channel traffic, reconnect behavior, state merges, bootstrap
// latency, and geometry conversions. Metrics are exposed at /metrics by
// the HTTP surface.
package metrics
