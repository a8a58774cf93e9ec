// Package emailtest provides an in-memory email.Sender for tests.
package emailtest

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/folio/folio/internal/email"
)

// Recorder is an email.Sender that records every attempt.
type Recorder struct {
	mu       sync.Mutex
	attempts []email.Message

	// Fail, when set, decides the error returned for a message.
	Fail func(msg email.Message) error
	// Delay blocks each send; the send still honours ctx cancellation
	// unless IgnoreContext is set.
	Delay         time.Duration
	IgnoreContext bool
	// VerifyErr is returned from Verify.
	VerifyErr error
}

// Send records msg and returns a sequential message ID.
func (r *Recorder) Send(ctx context.Context, msg email.Message) (string, error) {
	r.mu.Lock()
	r.attempts = append(r.attempts, msg)
	n := len(r.attempts)
	r.mu.Unlock()

	if r.Delay > 0 {
		if r.IgnoreContext {
			time.Sleep(r.Delay)
		} else {
			select {
			case <-time.After(r.Delay):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}
	}

	if r.Fail != nil {
		if err := r.Fail(msg); err != nil {
			return "", err
		}
	}
	return fmt.Sprintf("msg-%d", n), nil
}

// Verify returns VerifyErr.
func (r *Recorder) Verify(ctx context.Context) error {
	return r.VerifyErr
}

// Attempts returns a copy of every message passed to Send.
func (r *Recorder) Attempts() []email.Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]email.Message, len(r.attempts))
	copy(out, r.attempts)
	return out
}
