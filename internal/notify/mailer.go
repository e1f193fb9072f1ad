package notify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/autoventa/lead-intake/internal/leads"
	"github.com/autoventa/lead-intake/pkg/logging"
)

// LeadMailer formats and sends the "new lead" notification email.
// Sending is best-effort: the caller logs the returned error and keeps
// going, because the lead is already durable by the time this runs.
type LeadMailer struct {
	sender EmailSender
	to     string
	logger *logging.Logger
	now    func() time.Time
}

// NewLeadMailer creates a mailer delivering lead notifications to the
// given recipient. sender may be nil when email is not configured; every
// send then fails with a configuration error.
func NewLeadMailer(sender EmailSender, to string, logger *logging.Logger) *LeadMailer {
	if logger == nil {
		logger = logging.Default()
	}
	return &LeadMailer{
		sender: sender,
		to:     to,
		logger: logger,
		now:    time.Now,
	}
}

// LeadReceived sends the notification for a stored lead.
func (m *LeadMailer) LeadReceived(ctx context.Context, lead *leads.Lead) error {
	if m.sender == nil {
		return fmt.Errorf("notify: email sender not configured")
	}
	if m.to == "" {
		return fmt.Errorf("notify: recipient not configured")
	}

	msg := Message{
		To:      m.to,
		Subject: subject(lead),
		HTML:    m.htmlBody(lead),
		Text:    textBody(lead),
	}
	return m.sender.Send(ctx, msg)
}

// subject is "New lead: <name>", with " - <car>" appended when the
// submitter named a car of interest.
func subject(lead *leads.Lead) string {
	s := "New lead: " + lead.Nombre
	if lead.CocheInteres != nil {
		s += " - " + *lead.CocheInteres
	}
	return s
}

// htmlBody renders the notification. Every user-supplied value is
// HTML-escaped before interpolation.
func (m *LeadMailer) htmlBody(lead *leads.Lead) string {
	var b strings.Builder
	b.WriteString(`<div style="font-family:Arial,sans-serif;max-width:600px;margin:0 auto">`)
	b.WriteString("<h2>New lead</h2>")
	fmt.Fprintf(&b, "<p><b>Name:</b> %s</p>", leads.EscapeHTML(lead.Nombre))
	fmt.Fprintf(&b, "<p><b>Email:</b> %s</p>", leads.EscapeHTML(lead.Email))
	if lead.Telefono != nil {
		fmt.Fprintf(&b, "<p><b>Phone:</b> %s</p>", leads.EscapeHTML(*lead.Telefono))
	}
	if lead.CocheInteres != nil {
		fmt.Fprintf(&b, "<p><b>Car:</b> %s</p>", leads.EscapeHTML(*lead.CocheInteres))
	}
	b.WriteString("<p><b>Message:</b></p>")
	fmt.Fprintf(&b, `<pre style="white-space:pre-wrap">%s</pre>`, leads.EscapeHTML(lead.Mensaje))
	b.WriteString("<hr/>")
	fmt.Fprintf(&b, "<small>%s | %s</small>",
		leads.EscapeHTML(lead.PageURL),
		m.now().UTC().Format("2006-01-02 15:04:05 MST"))
	b.WriteString("</div>")
	return b.String()
}

// textBody is the plain-text fallback for clients that reject HTML.
func textBody(lead *leads.Lead) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Name: %s\nEmail: %s\n", lead.Nombre, lead.Email)
	if lead.Telefono != nil {
		fmt.Fprintf(&b, "Phone: %s\n", *lead.Telefono)
	}
	if lead.CocheInteres != nil {
		fmt.Fprintf(&b, "Car: %s\n", *lead.CocheInteres)
	}
	fmt.Fprintf(&b, "\n%s\n", lead.Mensaje)
	return b.String()
}
