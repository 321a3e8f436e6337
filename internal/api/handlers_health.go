// Briefwire - Personalized Financial News Feed
// Copyright 2026 Briefwire Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/briefwire/briefwire

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/briefwire/briefwire/internal/cache"
	"github.com/briefwire/briefwire/internal/models"
)

// Pinger reports backing store connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	store Pinger
	cache cache.Cacher
}

// NewHealthHandler creates the health handler.
func NewHealthHandler(store Pinger, c cache.Cacher) *HealthHandler {
	return &HealthHandler{store: store, cache: c}
}

// Health handles GET /health. Reports overall status plus per-component
// detail: database connectivity and cache occupancy. A failing database
// degrades status but still returns 200; the process itself is alive
// and serving cached or empty feeds.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := "healthy"
	dbStatus := "up"
	if err := h.store.Ping(ctx); err != nil {
		status = "degraded"
		dbStatus = "down"
	}

	stats := h.cache.GetStats()

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"status":   status,
			"database": dbStatus,
			"cache": map[string]interface{}{
				"entries":  stats.Size,
				"capacity": stats.Capacity,
				"hit_rate": h.cache.HitRate(),
			},
		},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}
