// Mapfence - Geofence Drawing and Live Tracking State Core
// Copyright 2026 T. Krauss (tkrauss)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tkrauss/mapfence

package models

import (
	"testing"

	"github.com/goccy/go-json"
)

func TestPositionKeyedByDevice(t *testing.T) {
	p := Position{ID: 42, DeviceID: 7}
	if p.Key() != 7 {
		t.Errorf("Key() = %d, want the device id", p.Key())
	}
}

func TestUpdateFrameEmpty(t *testing.T) {
	if !(UpdateFrame{}).Empty() {
		t.Error("zero frame should be empty")
	}
	if (UpdateFrame{Geofences: []Geofence{{ID: 1}}}).Empty() {
		t.Error("frame with a geofence should not be empty")
	}
}

func TestUpdateFrameDecodesBackendPayload(t *testing.T) {
	payload := `{
		"devices": [{"id": 1, "uniqueId": "t-1", "status": "online"}],
		"positions": [{"id": 9, "deviceId": 1, "latitude": 52.5, "longitude": 13.4, "valid": true}]
	}`

	var frame UpdateFrame
	if err := json.Unmarshal([]byte(payload), &frame); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if frame.Empty() {
		t.Fatal("frame should carry records")
	}
	if frame.Devices[0].UniqueID != "t-1" {
		t.Errorf("uniqueId not mapped: %+v", frame.Devices[0])
	}
	if frame.Positions[0].Key() != 1 {
		t.Errorf("position key = %d, want 1", frame.Positions[0].Key())
	}
}
