package notify

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"

	"github.com/autoventa/lead-intake/pkg/logging"
)

// ResendSender sends emails via the Resend API.
type ResendSender struct {
	client *resend.Client
	from   string
	logger *logging.Logger
}

// ResendConfig holds configuration for Resend.
type ResendConfig struct {
	APIKey string
	From   string // "Name <email>" or a bare address
}

// NewResendSender creates a new Resend email sender. Returns nil when
// no API key is configured.
func NewResendSender(cfg ResendConfig, logger *logging.Logger) *ResendSender {
	if cfg.APIKey == "" {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &ResendSender{
		client: resend.NewClient(cfg.APIKey),
		from:   cfg.From,
		logger: logger,
	}
}

// Send sends an email via Resend.
func (s *ResendSender) Send(ctx context.Context, msg Message) error {
	if s == nil || s.client == nil {
		return fmt.Errorf("notify: resend client not configured")
	}

	req := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Html:    msg.HTML,
		Text:    msg.Text,
	}

	sent, err := s.client.Emails.SendWithContext(ctx, req)
	if err != nil {
		s.logger.Error("resend send failed", "error", err, "to", msg.To)
		return fmt.Errorf("notify: resend send failed: %w", err)
	}

	s.logger.Info("email sent via resend", "to", msg.To, "subject", msg.Subject, "message_id", sent.Id)
	return nil
}

// Ensure interface compliance
var _ EmailSender = (*ResendSender)(nil)
