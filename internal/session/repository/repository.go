package repository

import (
	"context"

	"storefront/internal/session/domain"
)

// Repository defines persistence for sessions. The store assigns ids and
// maintains timestamps on every write.
type Repository interface {
	// Create inserts a new valid session and returns the stored record,
	// including the generated id and timestamps.
	Create(ctx context.Context, userID, userAgent string) (*domain.Session, error)
	// GetByID returns the session for id, or nil if not found.
	GetByID(ctx context.Context, id string) (*domain.Session, error)
	// ListByUser returns the user's sessions, restricted to valid ones when
	// validOnly is set.
	ListByUser(ctx context.Context, userID string, validOnly bool) ([]*domain.Session, error)
	// Invalidate sets valid=false for the matching record. Missing records are
	// a no-op, not an error; invalidation is idempotent.
	Invalidate(ctx context.Context, id string) error
}
