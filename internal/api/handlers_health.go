// Cinematch - Movie Recommendations from Cinematic Profiles
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"net/http"
	"time"
)

const (
	statusHealthy  = "healthy"
	statusDegraded = "degraded"
)

// Health godoc
// @Summary Service health
// @Description Reports uptime, store size and the state of each upstream circuit breaker. Status is degraded while any breaker is open.
// @Tags System
// @Produce json
// @Success 200 {object} APIResponse{data=HealthStatus}
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	status := HealthStatus{
		Status:        statusHealthy,
		Version:       h.version,
		UptimeSeconds: time.Since(h.startTime).Seconds(),
		Sessions:      h.store.SessionCount(),
		Profiles:      h.store.TotalProfileCount(),
		Upstreams:     make(map[string]string, len(h.breakers)),
	}

	for name, b := range h.breakers {
		state := b.State()
		status.Upstreams[name] = state
		if state == "open" {
			status.Status = statusDegraded
		}
	}

	NewResponseWriter(w, r).Success(status)
}
