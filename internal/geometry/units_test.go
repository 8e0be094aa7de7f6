// Mapfence - Geofence Drawing and Live Tracking State Core
// Copyright 2026 T. Krauss (tkrauss)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tkrauss/mapfence

package geometry

import "testing"

func TestFormatRadiusMetric(t *testing.T) {
	tests := []struct {
		meters float64
		want   string
	}{
		{0, "0.00 m"},
		{42.5, "42.50 m"},
		{999.994, "999.99 m"},
		{1000, "1.00 km"},
		{1500, "1.50 km"},
		{123456, "123.46 km"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := FormatRadiusMetric(tt.meters); got != tt.want {
				t.Errorf("FormatRadiusMetric(%v) = %q, want %q", tt.meters, got, tt.want)
			}
		})
	}
}

func TestFormatRadiusImperial(t *testing.T) {
	tests := []struct {
		meters float64
		want   string
	}{
		{0, "0.00 ft"},
		{100, "328.08 ft"},
		{1000, "3280.84 ft"},
		{2000, "1.24 mi"},
		{16093.44, "10.00 mi"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := FormatRadiusImperial(tt.meters); got != tt.want {
				t.Errorf("FormatRadiusImperial(%v) = %q, want %q", tt.meters, got, tt.want)
			}
		})
	}
}
