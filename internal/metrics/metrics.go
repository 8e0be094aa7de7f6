// Mapfence - Geofence Drawing and Live Tracking State Core
// Copyright 2026 T. Krauss (tkrauss)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tkrauss/mapfence

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Push channel metrics
	SocketFramesReceived = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mapfence_socket_frames_total",
			Help: "Total push-channel frames received, by frame kind",
		},
		[]string{"kind"}, // "data", "heartbeat"
	)

	SocketParseErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mapfence_socket_parse_errors_total",
			Help: "Total push-channel frames dropped because they failed to parse",
		},
	)

	SocketReconnects = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mapfence_socket_reconnects_total",
			Help: "Total reconnect attempts scheduled after a socket close",
		},
	)

	SocketConnectionState = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "mapfence_socket_connected",
			Help: "Whether the push-channel socket is currently open (1) or not (0)",
		},
	)

	// State merge metrics
	RecordsMerged = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mapfence_records_merged_total",
			Help: "Total records merged into the live collections, by collection",
		},
		[]string{"collection"}, // "devices", "positions", "geofences"
	)

	BootstrapDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mapfence_bootstrap_duration_seconds",
			Help:    "Duration of the initial snapshot fetches before the socket opens",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"resource", "outcome"}, // resource: "positions", "geofences"; outcome: "ok", "error"
	)

	// Geometry codec metrics
	GeometryConversions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mapfence_geometry_conversions_total",
			Help: "Total geometry conversions, by direction and outcome",
		},
		[]string{"direction", "outcome"}, // direction: "encode", "decode"
	)
)

// FrameKind labels for SocketFramesReceived.
const (
	FrameKindData      = "data"
	FrameKindHeartbeat = "heartbeat"
)

// Outcome labels shared by histogram and counter vectors.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)
