// Mapfence - Geofence Drawing and Live Tracking State Core
// Copyright 2026 T. Krauss (tkrauss)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tkrauss/mapfence

// Package config provides centralized configuration for Mapfence.
//
// Configuration is loaded via Koanf v2 with layered sources, highest
// priority last:
//
//  1. Defaults: built-in sensible defaults for all optional settings
//  2. Config file: optional YAML file (config.yaml, or CONFIG_PATH)
//  3. Environment variables: BACKEND_URL, SOCKET_RECONNECT_DELAY, ...
//
// The resulting Config is validated (go-playground/validator struct tags
// plus cross-field checks) and immutable after Load, so it is safe for
// concurrent read access.
package config
