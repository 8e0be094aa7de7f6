// Mapfence - Geofence Drawing and Live Tracking State Core
// Copyright 2026 T. Krauss (tkrauss)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tkrauss/mapfence

package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"

	"github.com/tkrauss/mapfence/internal/backend"
	"github.com/tkrauss/mapfence/internal/geoindex"
	"github.com/tkrauss/mapfence/internal/geometry"
	"github.com/tkrauss/mapfence/internal/livestate"
	"github.com/tkrauss/mapfence/internal/metrics"
	"github.com/tkrauss/mapfence/internal/models"
)

// Handler serves the state, geometry and geofence endpoints.
type Handler struct {
	collections *livestate.Collections
	index       *geoindex.Index
	backend     *backend.Client
	validate    *validator.Validate
}

// NewHandler creates a handler over the live state mirror. The backend
// client may be nil, which disables the geofence write endpoint.
func NewHandler(collections *livestate.Collections, index *geoindex.Index, client *backend.Client) *Handler {
	return &Handler{
		collections: collections,
		index:       index,
		backend:     client,
		validate:    validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Health reports liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(map[string]string{"status": "ok"})
}

// State returns a snapshot of all three collections.
func (h *Handler) State(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(h.collections.Snapshot())
}

// Devices returns the device collection.
func (h *Handler) Devices(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(h.collections.Devices())
}

// Positions returns the position collection.
func (h *Handler) Positions(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(h.collections.Positions())
}

// Geofences returns the geofence collection.
func (h *Handler) Geofences(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(h.collections.Geofences())
}

// encodeResponse wraps an encoded area string.
type encodeResponse struct {
	Area string `json:"area"`
}

// EncodeGeometry converts a GeoJSON feature in the request body to the
// backend's textual area format.
func (h *Handler) EncodeGeometry(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var feature geometry.Feature
	if err := json.NewDecoder(r.Body).Decode(&feature); err != nil {
		metrics.GeometryConversions.WithLabelValues("encode", metrics.OutcomeError).Inc()
		rw.BadRequest("invalid GeoJSON feature: " + err.Error())
		return
	}

	area, err := geometry.ToWireFormat(feature)
	if err != nil {
		metrics.GeometryConversions.WithLabelValues("encode", metrics.OutcomeError).Inc()
		if errors.Is(err, geometry.ErrUnsupportedGeometryKind) {
			rw.BadRequest(err.Error())
			return
		}
		rw.BadRequest("feature cannot be encoded: " + err.Error())
		return
	}

	metrics.GeometryConversions.WithLabelValues("encode", metrics.OutcomeOK).Inc()
	rw.Success(encodeResponse{Area: area})
}

// decodeRequest carries an area string to convert to GeoJSON.
type decodeRequest struct {
	Area string `json:"area" validate:"required"`
}

// DecodeGeometry converts a textual area to a GeoJSON feature.
func (h *Handler) DecodeGeometry(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req decodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rw.BadRequest("invalid request body: " + err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		rw.ValidationError("area is required", err.Error())
		return
	}

	feature, err := geometry.ParseWireFormat(req.Area)
	if err != nil {
		metrics.GeometryConversions.WithLabelValues("decode", metrics.OutcomeError).Inc()
		rw.BadRequest("area does not parse: " + err.Error())
		return
	}

	metrics.GeometryConversions.WithLabelValues("decode", metrics.OutcomeOK).Inc()
	rw.Success(feature)
}

// NearbyGeofences returns the geofences whose bounding box intersects
// the requested viewport, or contains the requested point when only
// lat and lon are given.
func (h *Handler) NearbyGeofences(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	q := r.URL.Query()
	var (
		ids []int64
		err error
	)
	switch {
	case q.Has("lat") && q.Has("lon"):
		lat, latErr := strconv.ParseFloat(q.Get("lat"), 64)
		lon, lonErr := strconv.ParseFloat(q.Get("lon"), 64)
		if latErr != nil || lonErr != nil {
			rw.BadRequest("lat and lon must be numbers")
			return
		}
		ids, err = h.index.SearchPoint(lat, lon)
	default:
		bounds := [4]float64{}
		for i, name := range []string{"min_lat", "min_lon", "max_lat", "max_lon"} {
			v, parseErr := strconv.ParseFloat(q.Get(name), 64)
			if parseErr != nil {
				rw.BadRequest("viewport requires numeric min_lat, min_lon, max_lat, max_lon")
				return
			}
			bounds[i] = v
		}
		ids, err = h.index.SearchViewport(bounds[0], bounds[1], bounds[2], bounds[3])
	}
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}

	// Resolve ids against the collection so the response carries full
	// records, skipping any fence that left the mirror since indexing.
	fences := make([]models.Geofence, 0, len(ids))
	for _, id := range ids {
		if g, ok := h.collections.Geofence(id); ok {
			fences = append(fences, g)
		}
	}
	rw.Success(fences)
}

// updateGeofenceRequest carries the editable geofence fields.
type updateGeofenceRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Area        string `json:"area" validate:"required"`
}

// UpdateGeofence pushes an edited geofence to the backend and merges
// the confirmed record back into the mirror. The area string is passed
// to the backend verbatim after a parse check.
func (h *Handler) UpdateGeofence(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	if h.backend == nil {
		rw.Error(http.StatusServiceUnavailable, ErrCodeBackendFailed, "no backend configured")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		rw.BadRequest("geofence id must be an integer")
		return
	}
	if _, ok := h.collections.Geofence(id); !ok {
		rw.NotFound("unknown geofence")
		return
	}

	var req updateGeofenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rw.BadRequest("invalid request body: " + err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		rw.ValidationError("name and area are required", err.Error())
		return
	}
	if _, err := geometry.ParseWireFormat(req.Area); err != nil {
		rw.BadRequest("area does not parse: " + err.Error())
		return
	}

	updated, err := h.backend.UpdateGeofence(r.Context(), models.Geofence{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Area:        req.Area,
	})
	if err != nil {
		rw.BackendError(err)
		return
	}

	// Merge the backend's confirmed record immediately instead of
	// waiting for it to echo over the push channel.
	h.collections.Apply(models.UpdateFrame{Geofences: []models.Geofence{updated}})
	if h.index != nil {
		if err := h.index.Upsert(updated); err != nil {
			rw.InternalError("updated geofence could not be indexed")
			return
		}
	}
	rw.Success(updated)
}
