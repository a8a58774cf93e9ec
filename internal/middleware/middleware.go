package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/folio/folio/internal/config"
	"github.com/folio/folio/internal/logger"
)

// Middleware holds all HTTP middleware
type Middleware struct {
	log *logger.Logger
	cfg *config.Config
}

// New creates a new Middleware instance
func New(log *logger.Logger, cfg *config.Config) *Middleware {
	return &Middleware{
		log: log.WithComponent("http"),
		cfg: cfg,
	}
}

// writeJSON writes the {success, message} envelope used by every endpoint
func writeJSON(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"message": message,
	})
}
