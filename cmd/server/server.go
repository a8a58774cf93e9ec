package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/folio/folio/internal/config"
	"github.com/folio/folio/internal/contact"
	"github.com/folio/folio/internal/email"
	"github.com/folio/folio/internal/handler"
	"github.com/folio/folio/internal/logger"
	"github.com/folio/folio/internal/middleware"
	"github.com/folio/folio/internal/router"
)

// newServer wires the relay and returns an unstarted HTTP server. Missing
// or unusable mail credentials do not stop startup: the server keeps
// answering health checks and rejects contact submissions.
func newServer(ctx context.Context, cfg *config.Config, log *logger.Logger) *http.Server {
	var sender email.Sender
	s, err := email.NewFromConfig(ctx, cfg.Email, log)
	switch {
	case errors.Is(err, email.ErrNotConfigured):
		log.Warn().Msg("email credentials are not set; contact submissions will be rejected")
	case err != nil:
		log.Error().Err(err).Str("provider", cfg.Email.Provider).Msg("failed to initialize email provider")
	default:
		sender = s
		log.Info().
			Str("provider", cfg.Email.Provider).
			Str("owner_domain", email.Domain(cfg.Email.Owner())).
			Dur("send_timeout", cfg.Email.SendTimeout).
			Msg("email provider initialized")
		// Checked in the background so a slow provider does not delay startup
		go verifySender(ctx, s, cfg.Email.Provider, log)
	}

	relay := contact.NewRelay(sender, cfg.Email, log)
	h := handler.New(log, cfg, relay)
	mw := middleware.New(log, cfg)

	if cfg.Debug.TestEmail {
		log.Warn().Msg("debug test-email endpoint is enabled")
	}

	r := router.New(h, mw, router.Options{
		TestEmail: cfg.Debug.TestEmail,
		Origins:   middleware.NewOriginPolicy(cfg.CORS.AllowedOrigins, cfg.CORS.AllowedSuffixes),
	})

	return &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		// A contact request waits on two sequential sends
		WriteTimeout: cfg.Email.SendTimeout*2 + 10*time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// verifySender checks connectivity and credentials once at boot so a bad
// password shows up in the logs before the first visitor hits it.
func verifySender(ctx context.Context, s email.Sender, provider string, log *logger.Logger) {
	err := email.Verify(ctx, s)
	switch {
	case errors.Is(err, email.ErrVerifyUnsupported):
		log.Debug().Str("provider", provider).Msg("email provider has no verification check")
	case err != nil:
		log.Error().Err(err).Str("provider", provider).Msg("email provider verification failed; contact submissions will fail")
	default:
		log.Info().Str("provider", provider).Msg("email provider ready to send")
	}
}
