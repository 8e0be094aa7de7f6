// Mapfence - Geofence Drawing and Live Tracking State Core
// Copyright 2026 T. Krauss (tkrauss)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tkrauss/mapfence

package livestate

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/tkrauss/mapfence/internal/backend"
	"github.com/tkrauss/mapfence/internal/config"
	"github.com/tkrauss/mapfence/internal/geoindex"
	"github.com/tkrauss/mapfence/internal/logging"
)

func TestMain(m *testing.M) {
	logging.Init(logging.Config{Level: "error", Output: io.Discard})
	os.Exit(m.Run())
}

func TestIsHeartbeat(t *testing.T) {
	tests := []struct {
		payload string
		want    bool
	}{
		{"{}", true},
		{"{} ", false},
		{" {}", false},
		{"{ }", false},
		{"", false},
		{`{"devices":[]}`, false},
	}
	for _, tt := range tests {
		if got := isHeartbeat([]byte(tt.payload)); got != tt.want {
			t.Errorf("isHeartbeat(%q) = %v, want %v", tt.payload, got, tt.want)
		}
	}
}

func TestHandleFrame(t *testing.T) {
	s := NewSynchronizer(nil, "", testSocketConfig(), NewCollections(), geoindex.New())

	// Heartbeat: skipped before parsing, nothing merged.
	s.handleFrame([]byte("{}"))
	if snap := s.collections.Snapshot(); len(snap.Devices) != 0 {
		t.Fatal("heartbeat must not merge anything")
	}

	// A malformed frame is dropped without affecting the store.
	s.handleFrame([]byte(`{"devices": [{`))

	// A data frame merges and indexes its geofences.
	s.handleFrame([]byte(`{
		"devices": [{"id": 1, "name": "truck", "uniqueId": "t-1", "status": "online"}],
		"positions": [{"id": 10, "deviceId": 1, "latitude": 52.5, "longitude": 13.4, "valid": true}],
		"geofences": [{"id": 3, "name": "depot", "area": "CIRCLE (52.5 13.4, 200)"}]
	}`))

	snap := s.collections.Snapshot()
	if len(snap.Devices) != 1 || len(snap.Positions) != 1 || len(snap.Geofences) != 1 {
		t.Fatalf("snapshot = %d/%d/%d records, want 1/1/1",
			len(snap.Devices), len(snap.Positions), len(snap.Geofences))
	}
	if s.index.Len() != 1 {
		t.Errorf("index.Len() = %d, want 1", s.index.Len())
	}

	// A geofence with an unparseable area still merges into the
	// collection; only the index skips it.
	s.handleFrame([]byte(`{"geofences": [{"id": 4, "name": "bad", "area": "nonsense"}]}`))
	if _, ok := s.collections.Geofence(4); !ok {
		t.Error("geofence with bad area missing from collection")
	}
	if s.index.Len() != 1 {
		t.Errorf("index.Len() = %d after bad area, want 1", s.index.Len())
	}
}

func TestSynchronizerServe(t *testing.T) {
	upgrader := websocket.Upgrader{}

	var mu sync.Mutex
	dials := 0

	mux := http.NewServeMux()
	mux.HandleFunc("/api/positions", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id": 10, "deviceId": 1, "latitude": 52.5, "longitude": 13.4, "valid": true}]`))
	})
	mux.HandleFunc("/api/geofences", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id": 3, "name": "depot", "area": "CIRCLE (52.5 13.4, 200)"}]`))
	})
	mux.HandleFunc("/api/socket", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		mu.Lock()
		dials++
		n := dials
		mu.Unlock()

		if n == 1 {
			// First connection: a heartbeat and one frame, then drop
			// the socket to force a reconnect.
			_ = conn.WriteMessage(websocket.TextMessage, []byte("{}"))
			_ = conn.WriteMessage(websocket.TextMessage,
				[]byte(`{"devices": [{"id": 1, "name": "truck", "uniqueId": "t-1", "status": "online"}]}`))
			time.Sleep(50 * time.Millisecond)
			conn.Close()
			return
		}

		// Second connection: deliver the update the client missed.
		_ = conn.WriteMessage(websocket.TextMessage,
			[]byte(`{"devices": [{"id": 1, "name": "truck", "uniqueId": "t-1", "status": "offline"}]}`))
		// Hold the connection open until the test finishes.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := backend.New(srv.URL, "", 5*time.Second)
	socketURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/socket"

	s := NewSynchronizer(client, socketURL, testSocketConfig(), NewCollections(), geoindex.New())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx) }()

	// Bootstrap data becomes visible first.
	waitFor(t, func() bool {
		snap := s.collections.Snapshot()
		return len(snap.Positions) == 1 && len(snap.Geofences) == 1
	}, "bootstrap snapshot")

	// The socket frame from the first connection merges.
	waitFor(t, func() bool {
		snap := s.collections.Snapshot()
		return len(snap.Devices) == 1 && snap.Devices[0].Status == "online"
	}, "first socket frame")

	// After the server drops the socket, the synchronizer reconnects
	// and picks up the second frame.
	waitFor(t, func() bool {
		snap := s.collections.Snapshot()
		return len(snap.Devices) == 1 && snap.Devices[0].Status == "offline"
	}, "frame after reconnect")

	mu.Lock()
	if dials < 2 {
		t.Errorf("dials = %d, want at least 2", dials)
	}
	mu.Unlock()

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}

func TestSynchronizerServeBootstrapFailure(t *testing.T) {
	// REST bootstrap fails but the socket works: the mirror starts
	// empty and still receives socket frames.
	upgrader := websocket.Upgrader{}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/positions", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "backend down", http.StatusBadGateway)
	})
	mux.HandleFunc("/api/geofences", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "backend down", http.StatusBadGateway)
	})
	mux.HandleFunc("/api/socket", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		_ = conn.WriteMessage(websocket.TextMessage,
			[]byte(`{"devices": [{"id": 1, "uniqueId": "t-1", "status": "online"}]}`))
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := backend.New(srv.URL, "", 2*time.Second)
	socketURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/socket"
	s := NewSynchronizer(client, socketURL, testSocketConfig(), NewCollections(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx) }()

	waitFor(t, func() bool {
		return len(s.collections.Devices()) == 1
	}, "socket frame despite failed bootstrap")

	snap := s.collections.Snapshot()
	if len(snap.Positions) != 0 || len(snap.Geofences) != 0 {
		t.Errorf("failed bootstrap must leave collections empty, got %d/%d",
			len(snap.Positions), len(snap.Geofences))
	}

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}

func TestSynchronizerClose(t *testing.T) {
	upgrader := websocket.Upgrader{}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/positions", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})
	mux.HandleFunc("/api/geofences", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})
	mux.HandleFunc("/api/socket", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := backend.New(srv.URL, "", 5*time.Second)
	socketURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/socket"
	s := NewSynchronizer(client, socketURL, testSocketConfig(), NewCollections(), nil)

	done := make(chan error, 1)
	go func() { done <- s.Serve(context.Background()) }()

	// Let the socket come up, then close. Serve must return without a
	// context cancel and must not schedule another dial.
	time.Sleep(200 * time.Millisecond)
	s.Close()
	s.Close() // second close is a no-op

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve() after Close = %v, want nil", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after Close")
	}
}

func testSocketConfig() config.SocketConfig {
	return config.SocketConfig{
		ReconnectDelay:   100 * time.Millisecond,
		HandshakeTimeout: 2 * time.Second,
		ReadLimit:        512 * 1024,
		PingInterval:     1 * time.Second,
	}
}

func waitFor(t *testing.T, cond func() bool, what string) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}
