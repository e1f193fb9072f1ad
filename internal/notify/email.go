package notify

import (
	"context"

	"github.com/autoventa/lead-intake/pkg/logging"
)

// EmailSender defines the interface for sending emails.
// Implementations can be swapped (Resend, SES, SendGrid) without
// changing callers.
type EmailSender interface {
	Send(ctx context.Context, msg Message) error
}

// Message represents an email to be sent.
type Message struct {
	To      string
	Subject string
	Text    string // Plain text body
	HTML    string // Optional HTML body
}

// StubSender is a no-op sender for testing or when email is disabled.
type StubSender struct {
	logger *logging.Logger
}

// NewStubSender creates a stub email sender that logs but doesn't send.
func NewStubSender(logger *logging.Logger) *StubSender {
	if logger == nil {
		logger = logging.Default()
	}
	return &StubSender{logger: logger}
}

// Send logs the email but doesn't actually send it.
func (s *StubSender) Send(ctx context.Context, msg Message) error {
	s.logger.Info("stub email sender: would send email", "to", msg.To, "subject", msg.Subject)
	return nil
}
