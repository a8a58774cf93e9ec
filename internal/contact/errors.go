package contact

import (
	"errors"
	"fmt"

	"github.com/folio/folio/internal/email"
)

// Validation failure reasons
const (
	ReasonMissingFields = "missing required fields"
	ReasonInvalidEmail  = "invalid email"
)

// ValidationError is bad or missing input. It is the only error whose
// detail is shown to the caller.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation: " + e.Reason
}

// ErrNotConfigured is returned when mail credentials are absent. It wraps
// email.ErrNotConfigured, so either sentinel matches.
var ErrNotConfigured = fmt.Errorf("contact: email service is not configured: %w", email.ErrNotConfigured)

// Kinds of outbound email
const (
	KindOwnerNotification = "owner_notification"
	KindAutoReply         = "auto_reply"
	KindDiagnostic        = "diagnostic"
)

// SendError is a provider rejection or timeout for one outbound email.
type SendError struct {
	Kind string
	Err  error
}

func (e *SendError) Error() string {
	return fmt.Sprintf("contact: failed to send %s: %v", e.Kind, e.Err)
}

func (e *SendError) Unwrap() error {
	return e.Err
}

// Timeout reports whether the send failed by exceeding its deadline.
func (e *SendError) Timeout() bool {
	return errors.Is(e.Err, email.ErrSendTimeout)
}
