// Mapfence - Geofence Drawing and Live Tracking State Core
// Copyright 2026 T. Krauss (tkrauss)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tkrauss/mapfence

package draw

import (
	"github.com/tkrauss/mapfence/internal/geometry"
)

// RadiusMode draws a circle with two clicks: first the center, then a
// point on the circumference. Between the clicks the second vertex
// tracks the pointer, giving a live radius preview.
//
// The mode never errors and never panics; it runs inside the host's
// event loop where an escaped failure would abort rendering.
type RadiusMode struct {
	host Host

	// circleVertices is the density of the generated circle polygon.
	circleVertices int
}

// NewRadiusMode creates a radius drawing mode bound to a host.
// circleVertices below 3 falls back to the package default.
func NewRadiusMode(host Host, circleVertices int) *RadiusMode {
	if circleVertices < 3 {
		circleVertices = geometry.DefaultCircleVertices
	}
	return &RadiusMode{host: host, circleVertices: circleVertices}
}

// OnSetup starts a gesture: a fresh session awaiting the center click,
// with an empty in-progress line registered in the host's store.
func (m *RadiusMode) OnSetup() *Session {
	return &Session{VertexPosition: 0, Line: m.host.AddLine()}
}

// ClickAnywhere advances the gesture.
//
// At position 0 the click fixes the center: both vertices are set to the
// click location, so the line is a valid (degenerate) two-point line
// from the first click on. At position 1 the click fixes the radius
// point and hands control back to selection mode, which ends the
// gesture and triggers OnStop. Clicks in any other state are no-ops.
func (m *RadiusMode) ClickAnywhere(s *Session, e ClickEvent) {
	if s == nil || s.Line == nil || s.Line.Deleted() {
		return
	}

	switch s.VertexPosition {
	case 0:
		s.Line.SetCoordinate(0, e.LngLat)
		s.Line.SetCoordinate(1, e.LngLat)
		s.VertexPosition = 1
		m.host.Render()
	case 1:
		s.Line.SetCoordinate(1, e.LngLat)
		m.host.ChangeMode(ModeSelect)
	default:
		// Unreachable with a well-behaved host.
	}
}

// OnMouseMove retracks the radius vertex while awaiting the second
// click. Every move updates display state synchronously; there is no
// debouncing.
func (m *RadiusMode) OnMouseMove(s *Session, e MoveEvent) {
	if s == nil || s.Line == nil || s.Line.Deleted() {
		return
	}
	if s.VertexPosition != 1 {
		return
	}
	s.Line.SetCoordinate(1, e.LngLat)
	m.host.Render()
}

// OnStop finalizes the gesture when the mode exits.
//
// An externally deleted line means the gesture was already undone:
// nothing further happens. With both vertices present the line becomes a
// circle: radius is the great-circle distance from center to radius
// point, the circle polygon is tagged with center and radius properties,
// the temporary line is removed silently, and exactly one "feature
// created" event fires. An aborted gesture is discarded silently.
func (m *RadiusMode) OnStop(s *Session) {
	if s == nil || s.Line == nil || s.Line.Deleted() {
		return
	}

	coords := s.Line.Coordinates()
	if len(coords) >= 2 {
		radius := geometry.Distance(coords[0], coords[1])
		circle := geometry.Circle(coords[0], radius, m.circleVertices)
		m.host.RemoveLine(s.Line)
		m.host.FireCreated(circle)
		return
	}

	m.host.RemoveLine(s.Line)
	m.host.ChangeMode(ModeSelect)
}

// ToDisplayFeatures projects features for rendering. Features other than
// the in-progress line pass through unchanged. The in-progress line
// renders nothing until both vertices exist; after that it renders the
// center vertex marker, the raw line, a synthetic radius-label point at
// the cursor, and a live circle preview, in that order.
func (m *RadiusMode) ToDisplayFeatures(s *Session, f DisplayFeature, display func(DisplayFeature)) {
	if s == nil || s.Line == nil || f.LineID != s.Line.ID() {
		display(f)
		return
	}

	coords := s.Line.Coordinates()
	if len(coords) < 2 {
		return
	}

	center, cursor := coords[0], coords[1]
	radius := geometry.Distance(center, cursor)

	display(DisplayFeature{
		LineID:  s.Line.ID(),
		Role:    RoleVertex,
		Feature: geometry.Feature{Kind: geometry.KindPoint, Points: []geometry.Point{center}},
	})
	display(f)
	display(DisplayFeature{
		LineID:  s.Line.ID(),
		Role:    RoleRadiusLabel,
		Feature: geometry.Feature{Kind: geometry.KindPoint, Points: []geometry.Point{cursor}},
		Labels: &RadiusLabels{
			Metric:   geometry.FormatRadiusMetric(radius),
			Imperial: geometry.FormatRadiusImperial(radius),
		},
	})
	display(DisplayFeature{
		LineID:  s.Line.ID(),
		Role:    RolePreview,
		Feature: geometry.Circle(center, radius, m.circleVertices),
	})
}
