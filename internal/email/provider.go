package email

import (
	"context"
	"fmt"

	"github.com/folio/folio/internal/config"
	"github.com/folio/folio/internal/logger"
)

// NewFromConfig builds the configured provider wrapped with the send
// timeout. It returns ErrNotConfigured when credentials are absent so the
// caller can keep serving and fail closed per request.
func NewFromConfig(ctx context.Context, cfg config.EmailConfig, log *logger.Logger) (*TimeoutSender, error) {
	if !cfg.Configured() {
		return nil, ErrNotConfigured
	}

	var (
		s   Sender
		err error
	)
	switch cfg.Provider {
	case config.ProviderGmail:
		s, err = NewGmailSender(ctx, GmailConfig{
			CredentialsJSON: cfg.Gmail.CredentialsJSON,
			ClientID:        cfg.Gmail.ClientID,
			ClientSecret:    cfg.Gmail.ClientSecret,
			RefreshToken:    cfg.Gmail.RefreshToken,
			SenderAddress:   cfg.Gmail.SenderAddress,
			SenderName:      cfg.Gmail.SenderName,
		})
	case config.ProviderSMTP:
		s, err = NewSMTPSender(SMTPConfig{
			Host:       cfg.SMTP.Host,
			Port:       cfg.SMTP.Port,
			Username:   cfg.SMTP.Username,
			Password:   cfg.SMTP.Password,
			SenderName: cfg.SMTP.SenderName,
		})
	default:
		return nil, fmt.Errorf("email: unknown provider %q", cfg.Provider)
	}
	if err != nil {
		return nil, err
	}

	return WithTimeout(s, cfg.SendTimeout, log), nil
}
