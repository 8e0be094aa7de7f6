// Mapfence - Geofence Drawing and Live Tracking State Core
// Copyright 2026 T. Krauss (tkrauss)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tkrauss/mapfence

package models

import "time"

// Device is a tracked unit as reported by the backend.
type Device struct {
	ID         int64          `json:"id"`
	Name       string         `json:"name"`
	UniqueID   string         `json:"uniqueId"`
	Status     string         `json:"status"`
	Category   string         `json:"category,omitempty"`
	LastUpdate time.Time      `json:"lastUpdate"`
	PositionID int64          `json:"positionId,omitempty"`
	Attributes map[string]any `json:"attributes,omitempty"`
}

// Key returns the device's identity in a keyed collection.
func (d Device) Key() int64 { return d.ID }

// Position is the latest known location of a device. Positions are keyed
// by DeviceID, not by their own ID: a device has exactly one live position.
type Position struct {
	ID         int64          `json:"id"`
	DeviceID   int64          `json:"deviceId"`
	Latitude   float64        `json:"latitude"`
	Longitude  float64        `json:"longitude"`
	Altitude   float64        `json:"altitude,omitempty"`
	Speed      float64        `json:"speed,omitempty"`
	Course     float64        `json:"course,omitempty"`
	Valid      bool           `json:"valid"`
	FixTime    time.Time      `json:"fixTime"`
	DeviceTime time.Time      `json:"deviceTime,omitempty"`
	ServerTime time.Time      `json:"serverTime,omitempty"`
	Attributes map[string]any `json:"attributes,omitempty"`
}

// Key returns the position's identity in a keyed collection.
func (p Position) Key() int64 { return p.DeviceID }

// Geofence is a named area in the backend's textual wire format
// (CIRCLE/LINESTRING/POLYGON, latitude before longitude).
type Geofence struct {
	ID          int64          `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Area        string         `json:"area"`
	CalendarID  int64          `json:"calendarId,omitempty"`
	Attributes  map[string]any `json:"attributes,omitempty"`
}

// Key returns the geofence's identity in a keyed collection.
func (g Geofence) Key() int64 { return g.ID }

// UpdateFrame is one push-channel message: a partial, unordered batch of
// full records. Every field is optional; an empty frame is a heartbeat.
type UpdateFrame struct {
	Devices   []Device   `json:"devices,omitempty"`
	Positions []Position `json:"positions,omitempty"`
	Geofences []Geofence `json:"geofences,omitempty"`
}

// Empty reports whether the frame carries no records.
func (f UpdateFrame) Empty() bool {
	return len(f.Devices) == 0 && len(f.Positions) == 0 && len(f.Geofences) == 0
}
