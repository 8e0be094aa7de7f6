// Mapfence - Geofence Drawing and Live Tracking State Core
// Copyright 2026 T. Krauss (tkrauss)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tkrauss/mapfence

package livestate

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"

	"github.com/tkrauss/mapfence/internal/backend"
	"github.com/tkrauss/mapfence/internal/config"
	"github.com/tkrauss/mapfence/internal/geoindex"
	"github.com/tkrauss/mapfence/internal/logging"
	"github.com/tkrauss/mapfence/internal/metrics"
	"github.com/tkrauss/mapfence/internal/models"
)

const (
	pingWriteTimeout  = 10 * time.Second
	closeWriteTimeout = 1 * time.Second
)

// Synchronizer keeps the live state mirror current against the backend.
//
// On start it bootstraps positions and geofences over REST, then opens
// the backend's push channel and merges update frames as they arrive.
// The socket is re-dialed after a fixed delay whenever it closes; the
// loop runs until the context is canceled or Close is called.
//
// Frames that are exactly the two-byte heartbeat payload "{}" are
// counted and skipped before JSON parsing. Frames that fail to parse
// are dropped; the connection stays up.
type Synchronizer struct {
	client    *backend.Client
	socketURL string
	socket    config.SocketConfig

	collections *Collections
	index       *geoindex.Index

	conn     *websocket.Conn
	connMu   sync.RWMutex
	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewSynchronizer creates a synchronizer. It does not connect; call
// Serve to bootstrap and start the socket loop.
func NewSynchronizer(client *backend.Client, socketURL string, socket config.SocketConfig, collections *Collections, index *geoindex.Index) *Synchronizer {
	return &Synchronizer{
		client:      client,
		socketURL:   socketURL,
		socket:      socket,
		collections: collections,
		index:       index,
		stopChan:    make(chan struct{}),
	}
}

// String identifies the synchronizer in supervisor logs.
func (s *Synchronizer) String() string { return "livestate-synchronizer" }

// Serve bootstraps the mirror, then runs the socket loop until the
// context is canceled or Close is called.
func (s *Synchronizer) Serve(ctx context.Context) error {
	s.bootstrap(ctx)

	if err := s.connect(ctx); err != nil {
		logging.Error().Err(err).Msg("Initial socket connect failed, will retry")
	}

	s.wg.Add(1)
	go s.pingLoop(ctx)

	s.listen(ctx)
	s.closeConnection()
	s.wg.Wait()
	return ctx.Err()
}

// Close stops the socket loop and closes the connection. Safe to call
// more than once and from any goroutine.
func (s *Synchronizer) Close() {
	s.stopOnce.Do(func() { close(s.stopChan) })
	s.closeConnection()
}

// Collections exposes the store the synchronizer merges into.
func (s *Synchronizer) Collections() *Collections { return s.collections }

// bootstrap fetches the initial snapshot over REST and seeds the
// collections before the socket delivers incremental frames. A failed
// fetch leaves that collection empty; it is not retried, the socket
// frames fill it in over time.
func (s *Synchronizer) bootstrap(ctx context.Context) {
	start := time.Now()
	positions, err := s.client.Positions(ctx)
	metrics.BootstrapDuration.WithLabelValues("positions", outcomeLabel(err)).Observe(time.Since(start).Seconds())
	if err != nil {
		logging.Error().Err(err).Msg("Position bootstrap failed, starting empty")
	}

	start = time.Now()
	geofences, err := s.client.Geofences(ctx)
	metrics.BootstrapDuration.WithLabelValues("geofences", outcomeLabel(err)).Observe(time.Since(start).Seconds())
	if err != nil {
		logging.Error().Err(err).Msg("Geofence bootstrap failed, starting empty")
	}

	s.merge(models.UpdateFrame{Positions: positions, Geofences: geofences})

	logging.Info().
		Int("positions", len(positions)).
		Int("geofences", len(geofences)).
		Msg("Live state bootstrapped")
}

// connect dials the push channel. A no-op when already connected.
func (s *Synchronizer) connect(ctx context.Context) error {
	s.connMu.Lock()
	defer s.connMu.Unlock()

	if s.conn != nil {
		return nil
	}

	dialer := websocket.Dialer{
		HandshakeTimeout:  s.socket.HandshakeTimeout,
		EnableCompression: true,
	}

	conn, resp, err := dialer.DialContext(ctx, s.socketURL, nil)
	if resp != nil {
		defer resp.Body.Close()
	}
	if err != nil {
		if resp != nil {
			return fmt.Errorf("socket dial failed (HTTP %d): %w", resp.StatusCode, err)
		}
		return fmt.Errorf("socket dial: %w", err)
	}

	conn.SetReadLimit(s.socket.ReadLimit)
	s.conn = conn
	metrics.SocketConnectionState.Set(1)
	logging.Info().Msg("Push channel connected")
	return nil
}

// listen reads frames until stopped, re-dialing after a fixed delay
// whenever the connection drops.
func (s *Synchronizer) listen(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			logging.Info().Msg("Push channel listener stopping (context canceled)")
			return
		case <-s.stopChan:
			logging.Info().Msg("Push channel listener stopping (close requested)")
			return
		default:
		}

		s.connMu.RLock()
		conn := s.conn
		s.connMu.RUnlock()

		if conn == nil {
			metrics.SocketReconnects.Inc()
			logging.Info().
				Dur("delay", s.socket.ReconnectDelay).
				Msg("Push channel down, reconnecting after delay")
			select {
			case <-time.After(s.socket.ReconnectDelay):
			case <-ctx.Done():
				return
			case <-s.stopChan:
				return
			}
			if err := s.connect(ctx); err != nil {
				logging.Error().Err(err).Msg("Push channel reconnect failed")
			}
			continue
		}

		_, message, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logging.Info().Msg("Push channel closed by backend")
			} else {
				logging.Warn().Err(err).Msg("Push channel read error")
			}
			s.closeConnection()
			continue
		}

		s.handleFrame(message)
	}
}

// handleFrame merges one raw socket payload into the collections.
func (s *Synchronizer) handleFrame(data []byte) {
	if isHeartbeat(data) {
		metrics.SocketFramesReceived.WithLabelValues(metrics.FrameKindHeartbeat).Inc()
		return
	}

	var frame models.UpdateFrame
	if err := json.Unmarshal(data, &frame); err != nil {
		metrics.SocketParseErrors.Inc()
		logging.Error().Err(err).Msg("Dropping unparseable socket frame")
		return
	}

	metrics.SocketFramesReceived.WithLabelValues(metrics.FrameKindData).Inc()
	s.merge(frame)
}

// merge applies a frame to the collections and keeps the spatial index
// in step with the geofence collection.
func (s *Synchronizer) merge(frame models.UpdateFrame) {
	stats := s.collections.Apply(frame)

	if stats.Devices > 0 {
		metrics.RecordsMerged.WithLabelValues("devices").Add(float64(stats.Devices))
	}
	if stats.Positions > 0 {
		metrics.RecordsMerged.WithLabelValues("positions").Add(float64(stats.Positions))
	}
	if stats.Geofences > 0 {
		metrics.RecordsMerged.WithLabelValues("geofences").Add(float64(stats.Geofences))
	}

	if s.index == nil {
		return
	}
	for _, g := range frame.Geofences {
		if err := s.index.Upsert(g); err != nil {
			logging.Warn().Err(err).Int64("geofence", g.ID).Msg("Geofence not indexed")
		}
	}
}

// pingLoop keeps the connection alive between data frames.
func (s *Synchronizer) pingLoop(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.socket.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.connMu.RLock()
			conn := s.conn
			s.connMu.RUnlock()

			if conn == nil {
				continue
			}
			if err := conn.WriteControl(websocket.PingMessage, []byte{}, time.Now().Add(pingWriteTimeout)); err != nil {
				logging.Warn().Err(err).Msg("Push channel ping failed")
				s.closeConnection()
			}
		}
	}
}

// closeConnection closes the socket and clears the connection slot so
// the listen loop schedules a reconnect.
func (s *Synchronizer) closeConnection() {
	s.connMu.Lock()
	defer s.connMu.Unlock()

	if s.conn == nil {
		return
	}
	_ = s.conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(closeWriteTimeout),
	)
	if err := s.conn.Close(); err != nil {
		logging.Debug().Err(err).Msg("Push channel close error")
	}
	s.conn = nil
	metrics.SocketConnectionState.Set(0)
	logging.Info().Msg("Push channel connection closed")
}

// isHeartbeat reports whether the payload is the backend's keepalive
// frame: the exact two-byte literal "{}". Anything longer, including
// "{} " or a JSON object with whitespace, is a data frame.
func isHeartbeat(data []byte) bool {
	return len(data) == 2 && data[0] == '{' && data[1] == '}'
}

func outcomeLabel(err error) string {
	if err != nil {
		return metrics.OutcomeError
	}
	return metrics.OutcomeOK
}
