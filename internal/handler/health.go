package handler

import (
	"net/http"
	"time"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string  `json:"status"`
	Timestamp string  `json:"timestamp"`
	Uptime    float64 `json:"uptime"`
}

// KeepaliveResponse represents the keepalive response
type KeepaliveResponse struct {
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// RootResponse describes the API
type RootResponse struct {
	Message   string            `json:"message"`
	Endpoints map[string]string `json:"endpoints"`
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

// Root handles GET /
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	endpoints := map[string]string{
		"contact":   "POST /api/contact",
		"health":    "GET /api/health",
		"keepalive": "GET /api/keepalive",
	}
	if h.cfg.Debug.TestEmail {
		endpoints["testEmail"] = "POST /api/test-email"
	}

	writeJSON(w, http.StatusOK, RootResponse{
		Message:   h.cfg.Email.SiteName + " backend API is running!",
		Endpoints: endpoints,
	})
}

// Health handles GET /api/health. Uptime is measured on the monotonic
// clock, so it never decreases within one process.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "OK",
		Timestamp: now(),
		Uptime:    time.Since(h.started).Seconds(),
	})
}

// Keepalive handles GET /api/keepalive
func (h *Handler) Keepalive(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, KeepaliveResponse{
		Message:   "Server is awake",
		Timestamp: now(),
	})
}
