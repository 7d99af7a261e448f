package email

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"wedding-rsvp/internal/models"
)

// Notifier sends a best-effort email to the site operator when a new RSVP
// is stored. It is always invoked on a detached goroutine and never reports
// failure to the submission path; errors are logged and swallowed.
type Notifier struct {
	apiKey string
	from   string
	to     string
	log    zerolog.Logger
	send   func(*mail.SGMailV3) error
}

// NewNotifier creates a notifier. Sending is a no-op when the API key or
// recipient address is missing.
func NewNotifier(apiKey, from, to string, log zerolog.Logger) *Notifier {
	n := &Notifier{
		apiKey: apiKey,
		from:   from,
		to:     to,
		log:    log,
	}
	n.send = func(m *mail.SGMailV3) error {
		resp, err := sendgrid.NewSendClient(n.apiKey).Send(m)
		if err != nil {
			return err
		}
		if resp.StatusCode >= 400 {
			return fmt.Errorf("sendgrid responded with status %d: %s", resp.StatusCode, resp.Body)
		}
		return nil
	}
	return n
}

// Notify emails a summary of the stored RSVP to the configured operator
// address. Safe to call from a goroutine the caller never joins.
func (n *Notifier) Notify(rsvp models.RSVP) {
	if n.apiKey == "" || n.to == "" {
		n.log.Warn().Msg("email notifications not configured, skipping notification")
		return
	}

	subject := "New RSVP from " + rsvp.FullName
	plain, html := renderBodies(rsvp)

	msg := mail.NewSingleEmail(
		mail.NewEmail("Wedding RSVP", n.from),
		subject,
		mail.NewEmail("", n.to),
		plain,
		html,
	)
	msg.SetReplyTo(mail.NewEmail(rsvp.FullName, rsvp.Email))

	if err := n.send(msg); err != nil {
		n.log.Error().Err(err).Str("email", rsvp.Email).Msg("failed to send notification email")
		return
	}

	n.log.Info().Str("email", rsvp.Email).Msg("notification email sent")
}

// renderBodies formats the plain-text and HTML versions of the
// notification, keeping the two consistent.
func renderBodies(rsvp models.RSVP) (string, string) {
	attending := "No"
	if rsvp.Attending {
		attending = "Yes"
	}
	notes := rsvp.Notes
	if notes == "" {
		notes = "None"
	}

	plain := fmt.Sprintf(
		"New RSVP Received:\n\nName: %s\nEmail: %s\nAttending: %s\nNumber of Guests: %d\nNotes: %s",
		rsvp.FullName, rsvp.Email, attending, rsvp.Guests, notes,
	)
	html := fmt.Sprintf(
		"<h2>New RSVP Received</h2><p><strong>Name:</strong> %s</p><p><strong>Email:</strong> %s</p>"+
			"<p><strong>Attending:</strong> %s</p><p><strong>Number of Guests:</strong> %d</p><p><strong>Notes:</strong> %s</p>",
		rsvp.FullName, rsvp.Email, attending, rsvp.Guests, notes,
	)
	return plain, html
}
