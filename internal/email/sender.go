package email

import (
	"context"
	"errors"
	"strings"
)

// Sender is the interface that all email providers must implement.
// This abstraction allows swapping email providers (SMTP, Gmail API, etc.)
// without changing business logic.
type Sender interface {
	// Send sends an email and returns the provider's message ID.
	Send(ctx context.Context, msg Message) (string, error)
}

// Verifier is implemented by senders that can check connectivity and
// credentials without sending anything.
type Verifier interface {
	Verify(ctx context.Context) error
}

// Message represents an email message to be sent.
type Message struct {
	To       string // recipient email address
	ReplyTo  string // optional Reply-To address
	Subject  string // email subject
	HTMLBody string // HTML email body
	TextBody string // plain-text fallback body

	// Reference correlates log lines for the submission; it is not sent.
	Reference string
}

var (
	// ErrNotConfigured is returned when provider credentials are missing.
	ErrNotConfigured = errors.New("email: provider credentials are not configured")
	// ErrSendTimeout is returned when a send does not settle before its deadline.
	ErrSendTimeout = errors.New("email: send timed out")
	// ErrVerifyUnsupported is returned by Verify for senders without a check.
	ErrVerifyUnsupported = errors.New("email: sender does not support verification")
)

// Verify checks the sender's configuration if it supports verification.
func Verify(ctx context.Context, s Sender) error {
	v, ok := s.(Verifier)
	if !ok {
		return ErrVerifyUnsupported
	}
	return v.Verify(ctx)
}

// Domain returns the domain part of an address, for logging without
// recording the full address.
func Domain(addr string) string {
	if i := strings.LastIndexByte(addr, '@'); i >= 0 {
		return addr[i+1:]
	}
	return ""
}
