package email

import (
	"context"
	"errors"
	"time"

	"github.com/folio/folio/internal/logger"
)

// TimeoutSender bounds every send with a deadline. The wrapped send runs in
// its own goroutine and the caller takes whichever settles first: the send
// result or the deadline. A send that outlives its deadline is reported as
// ErrSendTimeout even if the provider ignores context cancellation.
type TimeoutSender struct {
	next    Sender
	timeout time.Duration
	log     *logger.Logger
}

// WithTimeout wraps next so each send is bounded by timeout.
func WithTimeout(next Sender, timeout time.Duration, log *logger.Logger) *TimeoutSender {
	return &TimeoutSender{
		next:    next,
		timeout: timeout,
		log:     log.WithComponent("email"),
	}
}

type sendResult struct {
	id  string
	err error
}

// Send races the wrapped send against the deadline.
func (t *TimeoutSender) Send(ctx context.Context, msg Message) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	start := time.Now()
	done := make(chan sendResult, 1)
	go func() {
		id, err := t.next.Send(ctx, msg)
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			t.log.LateDelivery(msg.Reference, Domain(msg.To), time.Since(start), err)
		}
		done <- sendResult{id: id, err: err}
	}()

	select {
	case res := <-done:
		if res.err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", errors.Join(ErrSendTimeout, res.err)
		}
		return res.id, res.err
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", ErrSendTimeout
		}
		return "", ctx.Err()
	}
}

// Verify runs the wrapped sender's check under the same deadline.
func (t *TimeoutSender) Verify(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- Verify(ctx, t.next) }()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return ErrSendTimeout
		}
		return ctx.Err()
	}
}
