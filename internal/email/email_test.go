package email

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wedding-rsvp/internal/models"
)

func TestNotify_SkipsWhenUnconfigured(t *testing.T) {
	cases := []struct {
		name   string
		apiKey string
		to     string
	}{
		{name: "no api key", apiKey: "", to: "ops@example.com"},
		{name: "no recipient", apiKey: "SG.key", to: ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			n := NewNotifier(tc.apiKey, "noreply@example.com", tc.to, zerolog.Nop())
			called := false
			n.send = func(*mail.SGMailV3) error {
				called = true
				return nil
			}

			n.Notify(models.RSVP{FullName: "Jamie Doe", Email: "jamie@example.com"})
			assert.False(t, called, "unconfigured notifier must not attempt a send")
		})
	}
}

func TestNotify_SendsSummary(t *testing.T) {
	n := NewNotifier("SG.key", "noreply@example.com", "ops@example.com", zerolog.Nop())
	var sent *mail.SGMailV3
	n.send = func(m *mail.SGMailV3) error {
		sent = m
		return nil
	}

	n.Notify(models.RSVP{
		FullName:  "Jamie Doe",
		Email:     "jamie@example.com",
		Attending: true,
		Guests:    2,
		Notes:     "gluten free",
	})

	require.NotNil(t, sent)
	assert.Equal(t, "New RSVP from Jamie Doe", sent.Subject)
	require.NotNil(t, sent.ReplyTo)
	assert.Equal(t, "jamie@example.com", sent.ReplyTo.Address)
}

func TestNotify_SwallowsSendFailure(t *testing.T) {
	n := NewNotifier("SG.key", "noreply@example.com", "ops@example.com", zerolog.Nop())
	n.send = func(*mail.SGMailV3) error {
		return errors.New("provider down")
	}

	// Must not panic; the caller never observes the failure.
	n.Notify(models.RSVP{FullName: "Jamie Doe", Email: "jamie@example.com"})
}

func TestRenderBodies(t *testing.T) {
	plain, html := renderBodies(models.RSVP{
		FullName:  "Jamie Doe",
		Email:     "jamie@example.com",
		Attending: true,
		Guests:    2,
		Notes:     "gluten free",
	})

	assert.Contains(t, plain, "Name: Jamie Doe")
	assert.Contains(t, plain, "Attending: Yes")
	assert.Contains(t, plain, "Number of Guests: 2")
	assert.Contains(t, plain, "Notes: gluten free")
	assert.Contains(t, html, "<strong>Attending:</strong> Yes")
	assert.Contains(t, html, "<strong>Name:</strong> Jamie Doe")
}

func TestRenderBodies_Defaults(t *testing.T) {
	plain, html := renderBodies(models.RSVP{
		FullName:  "Jamie Doe",
		Email:     "jamie@example.com",
		Attending: false,
		Guests:    1,
	})

	assert.Contains(t, plain, "Attending: No")
	assert.Contains(t, plain, "Notes: None")
	assert.Contains(t, html, "<strong>Notes:</strong> None")
}
