// Mapfence - Geofence Drawing and Live Tracking State Core
// Copyright 2026 T. Krauss (tkrauss)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tkrauss/mapfence

package geometry

import (
	"fmt"

	"github.com/goccy/go-json"
)

// Kind identifies a feature's geometry type, using GeoJSON names.
type Kind string

const (
	KindPoint      Kind = "Point"
	KindLineString Kind = "LineString"
	KindPolygon    Kind = "Polygon"
)

// Point is a coordinate pair in GeoJSON [longitude, latitude] order.
type Point [2]float64

// Lon returns the longitude component.
func (p Point) Lon() float64 { return p[0] }

// Lat returns the latitude component.
func (p Point) Lat() float64 { return p[1] }

// Properties carries circle provenance on a feature. When both Center
// and Radius are set the feature is a circle, regardless of the shape of
// its literal coordinates.
type Properties struct {
	// Radius is the circle radius in meters.
	Radius float64 `json:"radius,omitempty"`

	// Center is the circle center in [lon, lat] order.
	Center *Point `json:"center,omitempty"`
}

// Feature is a drawn geometry: a kind, coordinates whose nesting depends
// on the kind, and optional circle properties.
//
// Points holds the vertices for Point and LineString features. Rings
// holds the rings for Polygon features; Rings[0] is the outer ring and
// is expected to repeat its first vertex as the last one, matching the
// drawing host's convention.
type Feature struct {
	Kind       Kind
	Points     []Point
	Rings      [][]Point
	Properties Properties
}

// IsCircle reports whether the feature must be treated as a circle.
// This takes priority over Kind.
func (f Feature) IsCircle() bool {
	return f.Properties.Center != nil && f.Properties.Radius > 0
}

// geoJSONFeature is the GeoJSON wire shape accepted and produced by
// MarshalJSON/UnmarshalJSON.
type geoJSONFeature struct {
	Type       string          `json:"type"`
	Geometry   *geoJSONGeom    `json:"geometry"`
	Properties json.RawMessage `json:"properties,omitempty"`
}

type geoJSONGeom struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}

// MarshalJSON encodes the feature as a GeoJSON Feature object.
func (f Feature) MarshalJSON() ([]byte, error) {
	var coords any
	switch f.Kind {
	case KindPoint:
		if len(f.Points) == 0 {
			return nil, ErrInvalidFeature
		}
		coords = f.Points[0]
	case KindLineString:
		coords = f.Points
	case KindPolygon:
		coords = f.Rings
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedGeometryKind, f.Kind)
	}

	rawCoords, err := json.Marshal(coords)
	if err != nil {
		return nil, err
	}

	out := geoJSONFeature{
		Type:     "Feature",
		Geometry: &geoJSONGeom{Type: string(f.Kind), Coordinates: rawCoords},
	}
	if f.IsCircle() {
		props, err := json.Marshal(f.Properties)
		if err != nil {
			return nil, err
		}
		out.Properties = props
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes a GeoJSON Feature object. A missing or malformed
// geometry yields ErrInvalidFeature; geometry types other than Point,
// LineString, and Polygon yield ErrUnsupportedGeometryKind.
func (f *Feature) UnmarshalJSON(data []byte) error {
	var raw geoJSONFeature
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFeature, err)
	}
	if raw.Geometry == nil || len(raw.Geometry.Coordinates) == 0 {
		return ErrInvalidFeature
	}

	parsed := Feature{Kind: Kind(raw.Geometry.Type)}
	switch parsed.Kind {
	case KindPoint:
		var pt Point
		if err := json.Unmarshal(raw.Geometry.Coordinates, &pt); err != nil {
			return fmt.Errorf("%w: point coordinates: %v", ErrInvalidFeature, err)
		}
		parsed.Points = []Point{pt}
	case KindLineString:
		if err := json.Unmarshal(raw.Geometry.Coordinates, &parsed.Points); err != nil {
			return fmt.Errorf("%w: linestring coordinates: %v", ErrInvalidFeature, err)
		}
	case KindPolygon:
		if err := json.Unmarshal(raw.Geometry.Coordinates, &parsed.Rings); err != nil {
			return fmt.Errorf("%w: polygon coordinates: %v", ErrInvalidFeature, err)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedGeometryKind, raw.Geometry.Type)
	}

	if len(raw.Properties) > 0 {
		if err := json.Unmarshal(raw.Properties, &parsed.Properties); err != nil {
			return fmt.Errorf("%w: properties: %v", ErrInvalidFeature, err)
		}
	}

	*f = parsed
	return nil
}
