package repository

import (
	"context"
	"database/sql"
	"errors"

	"storefront/internal/session/domain"
)

type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns a session repository that uses the given db for persistence.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new session with valid=true. The database assigns the id
// and timestamps; the stored representation is returned.
func (r *PostgresRepository) Create(ctx context.Context, userID, userAgent string) (*domain.Session, error) {
	const query = `
		INSERT INTO sessions (user_id, user_agent)
		VALUES ($1, $2)
		RETURNING id, user_id, valid, user_agent, created_at, updated_at`
	return scanSession(r.db.QueryRowContext(ctx, query, userID, userAgent))
}

// GetByID returns the session for id, or nil if not found.
// It returns an error only for database failures, not for missing rows.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.Session, error) {
	const query = `
		SELECT id, user_id, valid, user_agent, created_at, updated_at
		FROM sessions
		WHERE id = $1`
	return scanSession(r.db.QueryRowContext(ctx, query, id))
}

// ListByUser returns the user's sessions, newest first. With validOnly set,
// revoked sessions are filtered out.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string, validOnly bool) ([]*domain.Session, error) {
	query := `
		SELECT id, user_id, valid, user_agent, created_at, updated_at
		FROM sessions
		WHERE user_id = $1`
	if validOnly {
		query += ` AND valid`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Session
	for rows.Next() {
		var s domain.Session
		if err := rows.Scan(&s.ID, &s.UserID, &s.Valid, &s.UserAgent, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}

// Invalidate sets valid=false and bumps updated_at. A missing row is not an
// error; the caller does not need existence confirmation.
func (r *PostgresRepository) Invalidate(ctx context.Context, id string) error {
	const query = `
		UPDATE sessions
		SET valid = FALSE, updated_at = now()
		WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func scanSession(row *sql.Row) (*domain.Session, error) {
	var s domain.Session
	err := row.Scan(&s.ID, &s.UserID, &s.Valid, &s.UserAgent, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}
