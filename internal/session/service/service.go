// Package service orchestrates the session lifecycle: creation, listing,
// invalidation, and the silent reissuance of access tokens from refresh tokens.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront/internal/security"
	"storefront/internal/session/domain"
	sessionrepo "storefront/internal/session/repository"
	userdomain "storefront/internal/user/domain"
)

// ErrReissueRefused is returned for every reissuance decline: an invalid or
// expired refresh token, a missing session claim, a revoked or unknown
// session, or a deleted user. The cases are deliberately not distinguished so
// the caller cannot learn which check failed. Store failures are returned as
// themselves, never as a refusal.
var ErrReissueRefused = errors.New("access token reissue refused")

// UserRepo is the minimal user lookup the manager needs for reissuance.
type UserRepo interface {
	GetByID(ctx context.Context, id string) (*userdomain.User, error)
}

// Manager composes the token codec and the session store. It owns token TTL
// policy: access and refresh tokens are structurally identical and differ
// only in the lifetime the manager picks.
type Manager struct {
	sessions   sessionrepo.Repository
	users      UserRepo
	codec      *security.TokenCodec
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewManager returns a Manager with the given dependencies.
func NewManager(sessions sessionrepo.Repository, users UserRepo, codec *security.TokenCodec, accessTTL, refreshTTL time.Duration) *Manager {
	return &Manager{
		sessions:   sessions,
		users:      users,
		codec:      codec,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// CreateSession records a new login session for the user.
func (m *Manager) CreateSession(ctx context.Context, userID, userAgent string) (*domain.Session, error) {
	return m.sessions.Create(ctx, userID, userAgent)
}

// IssueTokenPair mints an access and a refresh token for the user under the
// given session. Both embed the same principal snapshot; only the TTL differs.
func (m *Manager) IssueTokenPair(u *userdomain.User, sessionID string) (accessToken, refreshToken string, err error) {
	p := principalFor(u, sessionID)
	accessToken, err = m.codec.Sign(p, m.accessTTL)
	if err != nil {
		return "", "", err
	}
	refreshToken, err = m.codec.Sign(p, m.refreshTTL)
	if err != nil {
		return "", "", err
	}
	return accessToken, refreshToken, nil
}

// ListActiveSessions returns the user's sessions that have not been invalidated.
func (m *Manager) ListActiveSessions(ctx context.Context, userID string) ([]*domain.Session, error) {
	return m.sessions.ListByUser(ctx, userID, true)
}

// InvalidateSession revokes the session. Idempotent; invalidating an unknown
// or already-invalid session is not an error. Authorization is the caller's
// concern: the session id must come from an authenticated principal.
func (m *Manager) InvalidateSession(ctx context.Context, sessionID string) error {
	return m.sessions.Invalidate(ctx, sessionID)
}

// ReissueAccessToken exchanges a live refresh token for a fresh access token.
// The user record is re-fetched so the new token reflects current claims, not
// the snapshot frozen into the refresh token at login. The new token keeps the
// original session id.
func (m *Manager) ReissueAccessToken(ctx context.Context, refreshToken string) (string, error) {
	p, err := m.codec.Verify(refreshToken)
	if err != nil {
		// An expired or invalid refresh token can never mint a new access
		// token; there is no cascading renewal.
		return "", ErrReissueRefused
	}
	if p.SessionID == "" {
		return "", ErrReissueRefused
	}

	sess, err := m.sessions.GetByID(ctx, p.SessionID)
	if err != nil {
		return "", fmt.Errorf("load session: %w", err)
	}
	if sess == nil || !sess.Valid {
		return "", ErrReissueRefused
	}

	u, err := m.users.GetByID(ctx, sess.UserID)
	if err != nil {
		return "", fmt.Errorf("load user: %w", err)
	}
	if u == nil {
		return "", ErrReissueRefused
	}

	return m.codec.Sign(principalFor(u, sess.ID), m.accessTTL)
}

func principalFor(u *userdomain.User, sessionID string) security.Principal {
	p := security.Principal{
		Email:     u.Email,
		Name:      u.Name,
		SessionID: sessionID,
	}
	p.Subject = u.ID
	return p
}
