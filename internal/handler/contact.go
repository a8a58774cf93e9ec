package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/folio/folio/internal/contact"
	"github.com/folio/folio/internal/middleware"
)

// Client-facing messages. Provider detail never reaches the caller.
const (
	msgSent          = "Message sent successfully! I'll get back to you soon."
	msgMissingFields = "Please fill in all required fields (name, email, message)"
	msgInvalidEmail  = "Please provide a valid email address"
	msgInvalidBody   = "Invalid request body"
	msgNotConfigured = "Email service is not configured"
	msgSendFailed    = "Failed to send message. Please try again later or contact me directly via email."
	msgSendTimeout   = "Sending your message timed out. Please try again later."
	msgInternal      = "Internal server error"
)

// Contact handles POST /api/contact.
// Both emails are sent before responding; the response reflects the outcome.
func (h *Handler) Contact(w http.ResponseWriter, r *http.Request) {
	log := h.log.WithRequestID(middleware.GetRequestID(r.Context()))

	sub, err := decodeSubmission(r)
	if err != nil {
		log.Debug().Err(err).Msg("unreadable contact body")
		writeFailure(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	// A client that hangs up must not abort a send already under way
	ctx := context.WithoutCancel(r.Context())

	receipt, err := h.relay.Deliver(ctx, sub)
	if err != nil {
		var (
			verr *contact.ValidationError
			serr *contact.SendError
		)
		switch {
		case errors.As(err, &verr):
			writeFailure(w, http.StatusBadRequest, validationMessage(verr))
		case errors.Is(err, contact.ErrNotConfigured):
			log.Error().Msg("contact submission rejected: email service is not configured")
			writeFailure(w, http.StatusInternalServerError, msgNotConfigured)
		case errors.As(err, &serr) && serr.Timeout():
			log.Error().Err(err).Str("reference", receipt.Reference).Str("kind", serr.Kind).Msg("contact email timed out")
			writeFailure(w, http.StatusGatewayTimeout, msgSendTimeout)
		case errors.As(err, &serr):
			log.Error().Err(err).Str("reference", receipt.Reference).Str("kind", serr.Kind).Msg("contact email failed")
			writeFailure(w, http.StatusInternalServerError, msgSendFailed)
		default:
			log.Error().Err(err).Msg("contact submission failed")
			writeFailure(w, http.StatusInternalServerError, msgInternal)
		}
		return
	}

	writeJSON(w, http.StatusOK, Response{Success: true, Message: msgSent})
}

// TestEmail handles POST /api/test-email (debug only)
func (h *Handler) TestEmail(w http.ResponseWriter, r *http.Request) {
	log := h.log.WithRequestID(middleware.GetRequestID(r.Context()))

	id, err := h.relay.SendTest(context.WithoutCancel(r.Context()))
	if err != nil {
		code := "send_failed"
		message := "Failed to send test email"
		var serr *contact.SendError
		switch {
		case errors.Is(err, contact.ErrNotConfigured):
			code, message = "not_configured", msgNotConfigured
		case errors.As(err, &serr) && serr.Timeout():
			code = "send_timeout"
		}
		log.Error().Err(err).Str("code", code).Msg("test email failed")
		writeJSON(w, http.StatusInternalServerError, Response{Success: false, Message: message, Error: code})
		return
	}

	log.Info().Str("message_id", id).Msg("test email sent")
	writeJSON(w, http.StatusOK, Response{Success: true, MessageID: id})
}

func decodeSubmission(r *http.Request) (contact.Submission, error) {
	var sub contact.Submission
	if isForm(r) {
		if err := r.ParseForm(); err != nil {
			return sub, err
		}
		sub.Name = r.PostForm.Get("name")
		sub.Email = r.PostForm.Get("email")
		sub.Subject = r.PostForm.Get("subject")
		sub.Message = r.PostForm.Get("message")
		return sub, nil
	}

	if err := readJSON(r, &sub); err != nil {
		return sub, err
	}
	return sub, nil
}

func validationMessage(err *contact.ValidationError) string {
	switch err.Reason {
	case contact.ReasonMissingFields:
		return msgMissingFields
	case contact.ReasonInvalidEmail:
		return msgInvalidEmail
	default:
		return msgInvalidBody
	}
}
