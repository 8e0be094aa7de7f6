// Mapfence - Geofence Drawing and Live Tracking State Core
// Copyright 2026 T. Krauss (tkrauss)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tkrauss/mapfence

package backend

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tkrauss/mapfence/internal/models"
)

// Client talks to the tracking backend's resource API.
//
// Thread safety: Client is immutable after New and safe for concurrent
// use; the underlying http.Client handles its own pooling.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// New creates a backend client. A zero timeout falls back to 30 seconds.
func New(baseURL, token string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: timeout},
	}
}

// Positions fetches the current position of every device.
func (c *Client) Positions(ctx context.Context) ([]models.Position, error) {
	var out []models.Position
	if err := c.getJSON(ctx, "/api/positions", &out); err != nil {
		return nil, fmt.Errorf("fetch positions: %w", err)
	}
	return out, nil
}

// Geofences fetches all geofences.
func (c *Client) Geofences(ctx context.Context) ([]models.Geofence, error) {
	var out []models.Geofence
	if err := c.getJSON(ctx, "/api/geofences", &out); err != nil {
		return nil, fmt.Errorf("fetch geofences: %w", err)
	}
	return out, nil
}

// Geofence fetches a single geofence, including its area string.
func (c *Client) Geofence(ctx context.Context, id int64) (models.Geofence, error) {
	var out models.Geofence
	if err := c.getJSON(ctx, fmt.Sprintf("/api/geofences/%d", id), &out); err != nil {
		return models.Geofence{}, fmt.Errorf("fetch geofence %d: %w", id, err)
	}
	return out, nil
}

// UpdateGeofence replaces a geofence. The Area field carries the codec's
// wire-format output verbatim.
func (c *Client) UpdateGeofence(ctx context.Context, g models.Geofence) (models.Geofence, error) {
	body, err := json.Marshal(g)
	if err != nil {
		return models.Geofence{}, fmt.Errorf("marshal geofence: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPut, fmt.Sprintf("/api/geofences/%d", g.ID), body)
	if err != nil {
		return models.Geofence{}, err
	}

	var out models.Geofence
	if err := c.do(req, &out); err != nil {
		return models.Geofence{}, fmt.Errorf("update geofence %d: %w", g.ID, err)
	}
	return out, nil
}

// getJSON performs a GET and decodes the JSON response into out.
func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) newRequest(ctx context.Context, method, path string, body []byte) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return req, nil
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Read a bounded slice of the body for the error message.
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return fmt.Errorf("backend returned %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
