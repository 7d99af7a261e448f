package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"wedding-rsvp/internal/models"
)

// PostgresStore is the remote backend, used when database credentials are
// configured at startup.
type PostgresStore struct {
	dbpool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, dbAddr string) (*PostgresStore, error) {
	const op = "storage.postgres.New"

	dbpool, err := pgxpool.New(ctx, dbAddr)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &PostgresStore{dbpool: dbpool}, nil
}

func (s *PostgresStore) Append(ctx context.Context, rec models.NewRecord) (models.RSVP, error) {
	const op = "storage.postgres.Append"

	query := `INSERT INTO rsvps(id,full_name,email,attending,guests,notes,ip_address,user_agent,created_at)
		VALUES(@id,@fullName,@email,@attending,@guests,@notes,@ipAddress,@userAgent,@createdAt)
		RETURNING id,full_name,email,attending,guests,notes,ip_address,user_agent,created_at`
	args := pgx.NamedArgs{
		"id":        uuid.NewString(),
		"fullName":  rec.FullName,
		"email":     rec.Email,
		"attending": rec.Attending,
		"guests":    rec.Guests,
		"notes":     rec.Notes,
		"ipAddress": rec.IPAddress,
		"userAgent": rec.UserAgent,
		"createdAt": time.Now().UTC(),
	}

	var rsvp models.RSVP
	err := s.dbpool.QueryRow(ctx, query, args).Scan(
		&rsvp.ID,
		&rsvp.FullName,
		&rsvp.Email,
		&rsvp.Attending,
		&rsvp.Guests,
		&rsvp.Notes,
		&rsvp.IPAddress,
		&rsvp.UserAgent,
		&rsvp.CreatedAt,
	)
	if err != nil {
		return models.RSVP{}, fmt.Errorf("%s: %w", op, err)
	}

	return rsvp, nil
}

func (s *PostgresStore) ListAll(ctx context.Context) ([]models.RSVP, error) {
	const op = "storage.postgres.ListAll"

	query := `SELECT id,full_name,email,attending,guests,notes,ip_address,user_agent,created_at
		FROM rsvps ORDER BY created_at DESC`

	rows, err := s.dbpool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	rsvps := make([]models.RSVP, 0)
	for rows.Next() {
		var rsvp models.RSVP
		if err := rows.Scan(
			&rsvp.ID,
			&rsvp.FullName,
			&rsvp.Email,
			&rsvp.Attending,
			&rsvp.Guests,
			&rsvp.Notes,
			&rsvp.IPAddress,
			&rsvp.UserAgent,
			&rsvp.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		rsvps = append(rsvps, rsvp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return rsvps, nil
}

func (s *PostgresStore) HasRecentDuplicate(ctx context.Context, email string, attending bool, since time.Time) (bool, error) {
	const op = "storage.postgres.HasRecentDuplicate"

	query := "SELECT EXISTS(SELECT 1 FROM rsvps WHERE email=$1 AND attending=$2 AND created_at>=$3)"

	var exists bool
	if err := s.dbpool.QueryRow(ctx, query, email, attending, since).Scan(&exists); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return exists, nil
}

func (s *PostgresStore) ClosePool() {
	s.dbpool.Close()
}
