// Mapfence - Geofence Drawing and Live Tracking State Core
// Copyright 2026 T. Krauss (tkrauss)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tkrauss/mapfence

package geometry

import "fmt"

const (
	feetPerMeter = 3.28084
	feetPerMile  = 5280
)

// FormatRadiusMetric renders a radius in meters as a human-readable
// metric label: meters below 1000, kilometers at or above.
func FormatRadiusMetric(meters float64) string {
	if meters < 1000 {
		return fmt.Sprintf("%.2f m", meters)
	}
	return fmt.Sprintf("%.2f km", meters/1000)
}

// FormatRadiusImperial renders a radius in meters as a human-readable
// imperial label: feet below one mile, miles at or above.
func FormatRadiusImperial(meters float64) string {
	feet := meters * feetPerMeter
	if feet < feetPerMile {
		return fmt.Sprintf("%.2f ft", feet)
	}
	return fmt.Sprintf("%.2f mi", feet/feetPerMile)
}
