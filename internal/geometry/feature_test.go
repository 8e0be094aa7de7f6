// Mapfence - Geofence Drawing and Live Tracking State Core
// Copyright 2026 T. Krauss (tkrauss)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tkrauss/mapfence

package geometry

import (
	"errors"
	"testing"

	"github.com/goccy/go-json"
)

func TestFeatureUnmarshalGeoJSON(t *testing.T) {
	data := []byte(`{
		"type": "Feature",
		"geometry": {
			"type": "Polygon",
			"coordinates": [[[0,0],[0,1],[1,1],[1,0],[0,0]]]
		},
		"properties": {"radius": 250, "center": [13.4, 52.52]}
	}`)

	var f Feature
	if err := json.Unmarshal(data, &f); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}

	if f.Kind != KindPolygon {
		t.Errorf("Kind = %q, want Polygon", f.Kind)
	}
	if len(f.Rings) != 1 || len(f.Rings[0]) != 5 {
		t.Errorf("unexpected ring shape: %v", f.Rings)
	}
	if !f.IsCircle() {
		t.Error("circle properties lost during unmarshal")
	}

	area, err := ToWireFormat(f)
	if err != nil {
		t.Fatalf("ToWireFormat() error: %v", err)
	}
	if area != "CIRCLE (52.52 13.4, 250)" {
		t.Errorf("ToWireFormat() = %q, want circle from properties", area)
	}
}

func TestFeatureUnmarshalErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want error
	}{
		{"missing geometry", `{"type":"Feature"}`, ErrInvalidFeature},
		{"null geometry", `{"type":"Feature","geometry":null}`, ErrInvalidFeature},
		{"unsupported kind", `{"type":"Feature","geometry":{"type":"MultiPoint","coordinates":[[0,0]]}}`, ErrUnsupportedGeometryKind},
		{"malformed coordinates", `{"type":"Feature","geometry":{"type":"LineString","coordinates":"nope"}}`, ErrInvalidFeature},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f Feature
			err := json.Unmarshal([]byte(tt.data), &f)
			if !errors.Is(err, tt.want) {
				t.Errorf("Unmarshal error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestFeatureMarshalRoundTrip(t *testing.T) {
	orig := Feature{
		Kind:   KindLineString,
		Points: []Point{{24.94, 60.17}, {24.95, 60.18}},
	}

	data, err := json.Marshal(orig)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}

	var back Feature
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if back.Kind != orig.Kind || len(back.Points) != 2 || back.Points[1] != orig.Points[1] {
		t.Errorf("round trip changed feature: %+v", back)
	}
}
