// Mapfence - Geofence Drawing and Live Tracking State Core
// Copyright 2026 T. Krauss (tkrauss)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tkrauss/mapfence

// Package logging provides centralized zerolog-based structured logging
// for Mapfence.
//
// The package exposes a single global logger configured once at startup:
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//	logging.Info().Str("component", "livestate").Msg("synchronizer started")
//
// JSON output is the production default; console output is available for
// development. A slog adapter bridges libraries that require slog.Logger
// (sutureslog in particular) onto the same zerolog backend.
//
// Always terminate log chains with .Msg() or .Send(); an unterminated
// chain is silently dropped.
package logging
