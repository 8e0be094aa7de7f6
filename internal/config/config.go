// Mapfence - Geofence Drawing and Live Tracking State Core
// Copyright 2026 T. Krauss (tkrauss)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tkrauss/mapfence

package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config holds all application configuration.
//
// Categories:
//   - Backend: the tracking backend Mapfence consumes (REST + push socket)
//   - Socket: push-channel connection behavior (reconnect, deadlines)
//   - Draw: drawing subsystem tuning (circle approximation)
//   - Server: the HTTP surface Mapfence itself exposes
//   - Logging: log level and format
//
// Thread safety: Config is immutable after Load() and safe for concurrent
// read access from multiple goroutines.
type Config struct {
	Backend BackendConfig `koanf:"backend"`
	Socket  SocketConfig  `koanf:"socket"`
	Draw    DrawConfig    `koanf:"draw"`
	Server  ServerConfig  `koanf:"server"`
	Logging LoggingConfig `koanf:"logging"`
}

// BackendConfig holds connection settings for the tracking backend that
// provides devices, positions, and geofences.
//
// Environment variables:
//   - BACKEND_URL: backend base URL (e.g. http://localhost:8082)
//   - BACKEND_TOKEN: short-lived access token, appended to the socket URL
//   - BACKEND_SOCKET_PATH: push channel path (default /api/socket)
//   - BACKEND_TIMEOUT: REST request timeout
type BackendConfig struct {
	URL        string        `koanf:"url" validate:"required,url"`
	Token      string        `koanf:"token"`
	SocketPath string        `koanf:"socket_path" validate:"required,startswith=/"`
	Timeout    time.Duration `koanf:"timeout" validate:"min=1s"`
}

// SocketConfig holds push-channel connection behavior.
//
// ReconnectDelay is the fixed delay before the single reconnect attempt
// scheduled after a socket close. There is no backoff and no retry cap;
// the connection belongs to a long-lived session, not a batch job.
type SocketConfig struct {
	ReconnectDelay   time.Duration `koanf:"reconnect_delay" validate:"min=100ms"`
	HandshakeTimeout time.Duration `koanf:"handshake_timeout" validate:"min=1s"`
	ReadLimit        int64         `koanf:"read_limit" validate:"min=1024"`
	PingInterval     time.Duration `koanf:"ping_interval" validate:"min=1s"`
}

// DrawConfig holds drawing subsystem tuning.
type DrawConfig struct {
	// CircleVertices is the vertex count of the polygon approximation
	// generated for drawn circles. 64 matches common map clients.
	CircleVertices int `koanf:"circle_vertices" validate:"min=8,max=1024"`
}

// ServerConfig holds the HTTP server settings for the snapshot and
// geometry endpoints Mapfence exposes.
type ServerConfig struct {
	Host    string        `koanf:"host" validate:"required"`
	Port    int           `koanf:"port" validate:"min=1,max=65535"`
	Timeout time.Duration `koanf:"timeout" validate:"min=1s"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// Validate checks the configuration for correctness. Struct tags cover
// range and format checks; cross-field rules are applied manually.
func (c *Config) Validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if ok := asValidationErrors(err, &verrs); ok && len(verrs) > 0 {
			f := verrs[0]
			return fmt.Errorf("config field %s failed %q validation", f.Namespace(), f.Tag())
		}
		return fmt.Errorf("config validation: %w", err)
	}

	// The socket URL is derived from the backend URL, so it must parse
	// into a host we can rewrite to ws/wss.
	u, err := url.Parse(c.Backend.URL)
	if err != nil {
		return fmt.Errorf("backend.url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("backend.url: unsupported scheme %q (want http or https)", u.Scheme)
	}

	return nil
}

// asValidationErrors unwraps err into validator.ValidationErrors.
func asValidationErrors(err error, target *validator.ValidationErrors) bool {
	verrs, ok := err.(validator.ValidationErrors)
	if ok {
		*target = verrs
	}
	return ok
}

// SocketURL derives the ws/wss push-channel URL from the backend URL,
// with the access token as a query-string parameter.
func (c *Config) SocketURL() (string, error) {
	u, err := url.Parse(c.Backend.URL)
	if err != nil {
		return "", fmt.Errorf("parse backend url: %w", err)
	}

	scheme := "ws"
	if u.Scheme == "https" {
		scheme = "wss"
	}

	ws := &url.URL{Scheme: scheme, Host: u.Host, Path: c.Backend.SocketPath}
	if c.Backend.Token != "" {
		q := ws.Query()
		q.Set("token", c.Backend.Token)
		ws.RawQuery = q.Encode()
	}
	return ws.String(), nil
}
