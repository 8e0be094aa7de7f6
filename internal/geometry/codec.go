// Mapfence - Geofence Drawing and Live Tracking State Core
// Copyright 2026 T. Krauss (tkrauss)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tkrauss/mapfence

package geometry

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrUnsupportedGeometryKind is returned for geometry kinds the wire
	// format cannot express (anything but a circle-tagged feature,
	// LineString, or Polygon).
	ErrUnsupportedGeometryKind = errors.New("unsupported geometry kind")

	// ErrInvalidFeature is returned when a feature's geometry is absent
	// or malformed.
	ErrInvalidFeature = errors.New("invalid feature")

	// ErrInvalidArea is returned when a wire-format string cannot be
	// parsed back into a feature.
	ErrInvalidArea = errors.New("invalid area string")
)

// ToWireFormat converts a feature into the backend's geometry string.
//
// Decision order:
//  1. Circle properties (center + radius) win over Kind; the emitted
//     CIRCLE uses the stored center, never the polygon ring.
//  2. LineString emits one "lat lon" pair per vertex in drawing order.
//  3. Polygon emits only the outer ring, as-is. The ring is trusted to
//     already repeat its first point last; no re-closing, no validation.
//
// Coordinate order on the wire is latitude then longitude, the reverse
// of the feature's [lon, lat] order.
func ToWireFormat(f Feature) (string, error) {
	if f.IsCircle() {
		c := *f.Properties.Center
		return fmt.Sprintf("CIRCLE (%s %s, %s)",
			formatCoord(c.Lat()), formatCoord(c.Lon()),
			formatCoord(f.Properties.Radius)), nil
	}

	switch f.Kind {
	case KindLineString:
		if len(f.Points) == 0 {
			return "", fmt.Errorf("%w: linestring without vertices", ErrInvalidFeature)
		}
		return "LINESTRING (" + joinPairs(f.Points) + ")", nil

	case KindPolygon:
		if len(f.Rings) == 0 || len(f.Rings[0]) == 0 {
			return "", fmt.Errorf("%w: polygon without an outer ring", ErrInvalidFeature)
		}
		return "POLYGON ((" + joinPairs(f.Rings[0]) + "))", nil

	case "":
		return "", ErrInvalidFeature

	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedGeometryKind, f.Kind)
	}
}

// ParseWireFormat is the inverse of ToWireFormat. A CIRCLE string parses
// into a polygon approximation tagged with center and radius properties,
// so re-serializing it reproduces the CIRCLE string exactly. Circle
// provenance is lossy in the other direction only: the original drawn
// ring is not recoverable.
func ParseWireFormat(area string) (Feature, error) {
	trimmed := strings.TrimSpace(area)

	switch {
	case strings.HasPrefix(trimmed, "CIRCLE"):
		inner, err := unwrap(trimmed, "CIRCLE", 1)
		if err != nil {
			return Feature{}, err
		}
		parts := strings.SplitN(inner, ",", 2)
		if len(parts) != 2 {
			return Feature{}, fmt.Errorf("%w: circle needs center and radius", ErrInvalidArea)
		}
		center, err := parsePair(parts[0])
		if err != nil {
			return Feature{}, err
		}
		radius, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil {
			return Feature{}, fmt.Errorf("%w: radius: %v", ErrInvalidArea, err)
		}
		return Circle(center, radius, DefaultCircleVertices), nil

	case strings.HasPrefix(trimmed, "LINESTRING"):
		inner, err := unwrap(trimmed, "LINESTRING", 1)
		if err != nil {
			return Feature{}, err
		}
		points, err := parsePairs(inner)
		if err != nil {
			return Feature{}, err
		}
		return Feature{Kind: KindLineString, Points: points}, nil

	case strings.HasPrefix(trimmed, "POLYGON"):
		inner, err := unwrap(trimmed, "POLYGON", 2)
		if err != nil {
			return Feature{}, err
		}
		ring, err := parsePairs(inner)
		if err != nil {
			return Feature{}, err
		}
		return Feature{Kind: KindPolygon, Rings: [][]Point{ring}}, nil

	default:
		return Feature{}, fmt.Errorf("%w: %q", ErrInvalidArea, truncateForError(trimmed))
	}
}

// formatCoord renders a coordinate or radius with the shortest exact
// decimal representation, so emitted strings are round-trip stable.
func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// joinPairs renders points as comma-separated "lat lon" pairs.
func joinPairs(points []Point) string {
	var b strings.Builder
	for i, p := range points {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(formatCoord(p.Lat()))
		b.WriteByte(' ')
		b.WriteString(formatCoord(p.Lon()))
	}
	return b.String()
}

// unwrap strips the keyword and depth levels of parentheses, returning
// the inner coordinate list.
func unwrap(s, keyword string, depth int) (string, error) {
	rest := strings.TrimSpace(strings.TrimPrefix(s, keyword))
	open := strings.Repeat("(", depth)
	closing := strings.Repeat(")", depth)
	if !strings.HasPrefix(rest, open) || !strings.HasSuffix(rest, closing) {
		return "", fmt.Errorf("%w: malformed %s parentheses", ErrInvalidArea, keyword)
	}
	return rest[depth : len(rest)-depth], nil
}

// parsePair parses one "lat lon" pair into a [lon, lat] point.
func parsePair(s string) (Point, error) {
	fields := strings.Fields(strings.TrimSpace(s))
	if len(fields) != 2 {
		return Point{}, fmt.Errorf("%w: expected \"lat lon\", got %q", ErrInvalidArea, s)
	}
	lat, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return Point{}, fmt.Errorf("%w: latitude: %v", ErrInvalidArea, err)
	}
	lon, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return Point{}, fmt.Errorf("%w: longitude: %v", ErrInvalidArea, err)
	}
	return Point{lon, lat}, nil
}

// parsePairs parses a comma-separated list of "lat lon" pairs.
func parsePairs(s string) ([]Point, error) {
	raw := strings.Split(s, ",")
	points := make([]Point, 0, len(raw))
	for _, pair := range raw {
		p, err := parsePair(pair)
		if err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	return points, nil
}

func truncateForError(s string) string {
	const max = 32
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}
