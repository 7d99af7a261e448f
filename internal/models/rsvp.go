package models

import "time"

// RSVP is a single guest's persisted attendance response.
type RSVP struct {
	ID        string    `json:"id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Attending bool      `json:"attending"`
	Guests    int       `json:"guests"`
	Notes     string    `json:"notes,omitempty"`
	IPAddress string    `json:"ip_address,omitempty"`
	UserAgent string    `json:"user_agent,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Submission is the inbound RSVP form payload. Attending is a pointer so a
// missing field can be told apart from an explicit "not attending".
type Submission struct {
	FullName  string `json:"full_name"`
	Email     string `json:"email"`
	Attending *bool  `json:"attending"`
	Guests    int    `json:"guests"`
	Notes     string `json:"notes"`
	Honeypot  string `json:"honeypot"`
}

// NewRecord holds the fields a store persists for an accepted submission.
// ID and CreatedAt are assigned by the store itself.
type NewRecord struct {
	FullName  string
	Email     string
	Attending bool
	Guests    int
	Notes     string
	IPAddress string
	UserAgent string
}
