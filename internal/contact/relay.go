package contact

import (
	"context"
	"fmt"
	"time"

	"github.com/segmentio/ksuid"

	"github.com/folio/folio/internal/config"
	"github.com/folio/folio/internal/email"
	"github.com/folio/folio/internal/logger"
)

// Receipt describes an accepted submission.
type Receipt struct {
	Reference  string
	ReceivedAt time.Time
}

// Relay validates submissions and sends the owner notification and the
// auto-reply. A nil sender means credentials are absent; every send then
// fails with ErrNotConfigured.
type Relay struct {
	sender email.Sender
	cfg    config.EmailConfig
	log    *logger.Logger
	now    func() time.Time
}

// NewRelay creates a new Relay.
func NewRelay(sender email.Sender, cfg config.EmailConfig, log *logger.Logger) *Relay {
	return &Relay{
		sender: sender,
		cfg:    cfg,
		log:    log.WithComponent("contact_relay"),
		now:    time.Now,
	}
}

// Configured reports whether the relay can send mail.
func (r *Relay) Configured() bool {
	return r.sender != nil
}

// Deliver validates sub and sends both emails, owner first. It returns
// once both sends have settled; the auto-reply is skipped if the owner
// notification fails.
func (r *Relay) Deliver(ctx context.Context, sub Submission) (Receipt, error) {
	sub = sub.Normalize()
	if err := sub.Validate(); err != nil {
		return Receipt{}, err
	}
	if !r.Configured() {
		return Receipt{}, ErrNotConfigured
	}

	receipt := Receipt{
		Reference:  ksuid.New().String(),
		ReceivedAt: r.now(),
	}

	owner, err := r.ownerNotification(sub, receipt)
	if err != nil {
		return receipt, err
	}
	if err := r.send(ctx, receipt.Reference, KindOwnerNotification, owner); err != nil {
		return receipt, err
	}

	reply, err := r.autoReply(sub)
	if err != nil {
		return receipt, err
	}
	reply.Reference = receipt.Reference
	if err := r.send(ctx, receipt.Reference, KindAutoReply, reply); err != nil {
		return receipt, err
	}

	r.log.Info().
		Str("reference", receipt.Reference).
		Str("sender_domain", email.Domain(sub.Email)).
		Msg("contact submission relayed")

	return receipt, nil
}

// SendTest sends the diagnostic email to the owner and returns the
// provider's message ID.
func (r *Relay) SendTest(ctx context.Context) (string, error) {
	if !r.Configured() {
		return "", ErrNotConfigured
	}

	data := email.DiagnosticData{
		SiteName: r.cfg.SiteName,
		Provider: r.cfg.Provider,
		SentAt:   r.now(),
	}
	body, err := email.DiagnosticHTML(data)
	if err != nil {
		return "", err
	}

	msg := email.Message{
		To:       r.cfg.Owner(),
		Subject:  fmt.Sprintf("%s contact relay: test email", r.cfg.SiteName),
		HTMLBody: body,
		TextBody: email.DiagnosticText(data),
	}

	start := time.Now()
	id, err := r.sender.Send(ctx, msg)
	r.log.Delivery("", KindDiagnostic, email.Domain(msg.To), time.Since(start), err)
	if err != nil {
		return "", &SendError{Kind: KindDiagnostic, Err: err}
	}
	return id, nil
}

func (r *Relay) send(ctx context.Context, reference, kind string, msg email.Message) error {
	start := time.Now()
	_, err := r.sender.Send(ctx, msg)
	r.log.Delivery(reference, kind, email.Domain(msg.To), time.Since(start), err)
	if err != nil {
		return &SendError{Kind: kind, Err: err}
	}
	return nil
}

func (r *Relay) ownerNotification(sub Submission, receipt Receipt) (email.Message, error) {
	data := email.ContactNotificationData{
		SiteName:   r.cfg.SiteName,
		Name:       sub.Name,
		Email:      sub.Email,
		Subject:    sub.Subject,
		Message:    sub.Message,
		ReceivedAt: receipt.ReceivedAt,
		Reference:  receipt.Reference,
	}
	body, err := email.ContactNotificationHTML(data)
	if err != nil {
		return email.Message{}, err
	}

	return email.Message{
		To:        r.cfg.Owner(),
		ReplyTo:   sub.Email,
		Subject:   sub.OwnerSubject(),
		HTMLBody:  body,
		TextBody:  email.ContactNotificationText(data),
		Reference: receipt.Reference,
	}, nil
}

func (r *Relay) autoReply(sub Submission) (email.Message, error) {
	data := email.AutoReplyData{
		SiteName:  r.cfg.SiteName,
		Name:      sub.Name,
		Message:   sub.Message,
		OwnerName: r.cfg.OwnerName,
	}
	body, err := email.AutoReplyHTML(data)
	if err != nil {
		return email.Message{}, err
	}

	return email.Message{
		To:       sub.Email,
		Subject:  "Thanks for reaching out!",
		HTMLBody: body,
		TextBody: email.AutoReplyText(data),
	}, nil
}
