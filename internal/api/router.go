// Mapfence - Geofence Drawing and Live Tracking State Core
// Copyright 2026 T. Krauss (tkrauss)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tkrauss/mapfence

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires the handler into a Chi router with the standard
// middleware stack.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)

	r.Get("/healthz", h.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/state", h.State)
		r.Get("/state/devices", h.Devices)
		r.Get("/state/positions", h.Positions)
		r.Get("/state/geofences", h.Geofences)

		r.Post("/geometry/encode", h.EncodeGeometry)
		r.Post("/geometry/decode", h.DecodeGeometry)

		r.Get("/geofences/nearby", h.NearbyGeofences)
		r.Put("/geofences/{id}", h.UpdateGeofence)
	})

	return r
}
