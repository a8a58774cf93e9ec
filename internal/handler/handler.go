package handler

import (
	"time"

	"github.com/folio/folio/internal/config"
	"github.com/folio/folio/internal/contact"
	"github.com/folio/folio/internal/logger"
)

// Handler holds all HTTP handlers
type Handler struct {
	log     *logger.Logger
	cfg     *config.Config
	relay   *contact.Relay
	started time.Time
}

// New creates a new Handler instance
func New(log *logger.Logger, cfg *config.Config, relay *contact.Relay) *Handler {
	return &Handler{
		log:     log,
		cfg:     cfg,
		relay:   relay,
		started: time.Now(),
	}
}
