// Mapfence - Geofence Drawing and Live Tracking State Core
// Copyright 2026 T. Krauss (tkrauss)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tkrauss/mapfence

package draw

import (
	"github.com/google/uuid"

	"github.com/tkrauss/mapfence/internal/geometry"
)

// Mode names understood by drawing hosts.
const (
	// ModeSelect is the host's selection mode, entered when a drawing
	// gesture finishes or is cancelled.
	ModeSelect = "select"

	// ModeDrawRadius is the two-click circle drawing mode.
	ModeDrawRadius = "draw_radius"
)

// ClickEvent is a pointer click on the map.
type ClickEvent struct {
	LngLat geometry.Point
}

// MoveEvent is a pointer move over the map.
type MoveEvent struct {
	LngLat geometry.Point
}

// Mode is the capability contract a drawing mode implements against the
// host toolbar. One Session spans one gesture: created on activation,
// destroyed on stop.
type Mode interface {
	// OnSetup initializes a gesture and returns its session state.
	OnSetup() *Session

	// ClickAnywhere handles a map click during the gesture.
	ClickAnywhere(s *Session, e ClickEvent)

	// OnMouseMove handles pointer movement during the gesture.
	OnMouseMove(s *Session, e MoveEvent)

	// OnStop finalizes or discards the gesture when the mode exits.
	OnStop(s *Session)

	// ToDisplayFeatures projects a feature for rendering. It must call
	// display zero or more times and must not mutate persisted state.
	ToDisplayFeatures(s *Session, f DisplayFeature, display func(DisplayFeature))
}

// Host is the surface of the drawing toolbar a mode drives. It is
// implemented by the embedding map UI, not by this package.
type Host interface {
	// AddLine creates the mode's in-progress line in the host's feature
	// store and returns it.
	AddLine() *Line

	// RemoveLine deletes the line from the store without emitting a
	// delete notification.
	RemoveLine(l *Line)

	// ChangeMode switches the host to the named mode. Switching away
	// from an active mode invokes its OnStop.
	ChangeMode(name string)

	// FireCreated emits a single "feature created" event.
	FireCreated(f geometry.Feature)

	// Render requests a synchronous redraw of display state.
	Render()
}

// Session is the per-gesture state of a drawing mode.
//
// VertexPosition is 0 while awaiting the center click and 1 while
// awaiting the radius click.
type Session struct {
	VertexPosition int
	Line           *Line
}

// Line is a mutable in-progress line held in the host's feature store.
// The radius gesture uses at most two vertices: center and radius point.
type Line struct {
	id      string
	coords  []geometry.Point
	deleted bool
}

// NewLine creates an empty line with a fresh feature id. Hosts call
// this from AddLine.
func NewLine() *Line {
	return &Line{id: uuid.NewString()}
}

// ID returns the line's identity in the host's feature store.
func (l *Line) ID() string { return l.id }

// SetCoordinate sets vertex i, growing the vertex list as needed.
// Out-of-range growth beyond one past the end is ignored.
func (l *Line) SetCoordinate(i int, p geometry.Point) {
	switch {
	case i < 0 || i > len(l.coords):
		// The radius gesture only ever appends or overwrites.
	case i == len(l.coords):
		l.coords = append(l.coords, p)
	default:
		l.coords[i] = p
	}
}

// Coordinates returns the line's vertices. The slice is shared; callers
// must not mutate it.
func (l *Line) Coordinates() []geometry.Point { return l.coords }

// MarkDeleted flags the line as removed from the host's store, e.g. by
// an undo while the gesture is still open.
func (l *Line) MarkDeleted() { l.deleted = true }

// Deleted reports whether the line was removed from the host's store.
func (l *Line) Deleted() bool { return l.deleted }

// Feature renders the line as a LineString feature.
func (l *Line) Feature() geometry.Feature {
	return geometry.Feature{Kind: geometry.KindLineString, Points: l.coords}
}

// Display roles attached to projected features so the renderer can style
// them without inspecting geometry.
const (
	RoleVertex      = "vertex"
	RoleRadiusLabel = "radius_label"
	RolePreview     = "preview"
)

// RadiusLabels carries the precomputed human-readable radius strings
// shown next to the drag cursor.
type RadiusLabels struct {
	Metric   string `json:"metric"`
	Imperial string `json:"imperial"`
}

// DisplayFeature is a feature prepared for rendering: the geometry plus
// the identity and styling hints the renderer needs.
type DisplayFeature struct {
	// LineID is the host store id of the feature's source line, empty
	// for features that did not originate from an in-progress line.
	LineID string

	// Role is one of the Role constants, empty for plain geometry.
	Role string

	Feature geometry.Feature

	// Labels is set only on RoleRadiusLabel features.
	Labels *RadiusLabels
}
