// Package http provides the HTTP surface of the news aggregator: the health
// and metrics endpoints and the shared middleware. The news endpoints live in
// the news subpackage.
package http

import (
	"net/http"
	"time"

	"market-news/internal/handler/http/respond"
)

// HealthResponse represents the JSON response for health check endpoints.
type HealthResponse struct {
	Status    string                 `json:"status"`    // "healthy" or "degraded"
	Timestamp string                 `json:"timestamp"` // ISO 8601 format
	Checks    map[string]CheckStatus `json:"checks"`    // Status of each check item
	Version   string                 `json:"version"`   // Application version
}

// CheckStatus represents the status of a single health check.
type CheckStatus struct {
	Status  string         `json:"status"`            // "healthy" or "degraded"
	Message string         `json:"message,omitempty"` // Optional status message
	Details map[string]any `json:"details,omitempty"` // Optional additional details
}

// BreakerReporter exposes per-source circuit breaker states.
type BreakerReporter interface {
	BreakerStates() map[string]string
}

// HealthHandler reports the configured feed sources and their breaker states.
// Feed outages never make the service unhealthy: /api/news still answers
// with whatever the remaining sources provide.
type HealthHandler struct {
	Version  string
	Sources  int
	Breakers BreakerReporter // optional
}

// ServeHTTP returns the application health status. It always answers 200 OK;
// open breakers only downgrade the feeds check to "degraded".
// @Summary      Health check
// @Description  Reports configured feed sources and per-source circuit breaker states.
// @Tags         health
// @Produce      json
// @Success      200 {object} HealthResponse
// @Router       /health [get]
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	checks := map[string]CheckStatus{
		"feeds": h.checkFeeds(),
	}

	status := "healthy"
	for _, c := range checks {
		if c.Status != "healthy" {
			status = "degraded"
		}
	}

	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	respond.JSON(w, http.StatusOK, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Version:   h.Version,
	})
}

func (h *HealthHandler) checkFeeds() CheckStatus {
	details := map[string]any{
		"configured_sources": h.Sources,
	}
	if h.Sources == 0 {
		return CheckStatus{Status: "degraded", Message: "no feed sources configured", Details: details}
	}
	if h.Breakers == nil {
		return CheckStatus{Status: "healthy", Details: details}
	}

	states := h.Breakers.BreakerStates()
	details["circuit_breakers"] = states

	open := 0
	for _, s := range states {
		if s == "open" {
			open++
		}
	}
	details["open_breakers"] = open

	if open > 0 {
		return CheckStatus{Status: "degraded", Message: "some feed sources are short-circuited", Details: details}
	}
	return CheckStatus{Status: "healthy", Details: details}
}

// LiveHandler handles liveness probe requests.
// It performs a lightweight check to verify the application is responsive.
type LiveHandler struct{}

// ServeHTTP always returns 200 OK if the application is running and able to respond.
func (h *LiveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, map[string]string{"status": "alive"})
}
