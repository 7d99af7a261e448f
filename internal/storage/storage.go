package storage

import (
	"context"
	"time"

	"wedding-rsvp/internal/models"
)

// RSVPStore is the append-only record store behind the intake pipeline.
// Exactly one implementation is selected at startup and injected into the
// handler; records are never mutated or deleted once written.
type RSVPStore interface {
	// Append assigns an id and creation timestamp, persists the record and
	// returns it as stored.
	Append(ctx context.Context, rec models.NewRecord) (models.RSVP, error)

	// ListAll returns every record, newest first by creation time.
	ListAll(ctx context.Context) ([]models.RSVP, error)

	// HasRecentDuplicate reports whether a record with the same email and
	// attending flag was created at or after the given time.
	HasRecentDuplicate(ctx context.Context, email string, attending bool, since time.Time) (bool, error)
}
