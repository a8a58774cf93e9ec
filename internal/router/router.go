package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/folio/folio/internal/handler"
	"github.com/folio/folio/internal/middleware"
)

// Options selects optional routes
type Options struct {
	// TestEmail registers POST /api/test-email
	TestEmail bool
	// Origins is the cross-origin admission policy
	Origins *middleware.OriginPolicy
}

// New creates and configures the HTTP router
func New(h *handler.Handler, mw *middleware.Middleware, opts Options) http.Handler {
	r := chi.NewRouter()

	// Request ID first so recovered panics carry it; Logger sits outside
	// Recover so a panicking request is still logged with its 500
	r.Use(mw.RequestID)
	r.Use(mw.Logger)
	r.Use(mw.Recover)
	// CORS runs before routing so pre-flights never reach the 404 handler
	r.Use(mw.CORS(opts.Origins))
	r.Use(mw.MaxBody)

	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.NotFound)

	r.Get("/", h.Root)

	r.Route("/api", func(r chi.Router) {
		// Liveness endpoints polled by the hosting platform
		r.Get("/health", h.Health)
		r.Get("/keepalive", h.Keepalive)

		r.Post("/contact", h.Contact)

		if opts.TestEmail {
			r.Post("/test-email", h.TestEmail)
		}
	})

	return r
}
