package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/protomem/task-tracker/internal/model"
)

// SessionStore is the persistence contract for sessions. Replace must be
// atomic: delete-then-insert for the same user in one transaction.
type SessionStore interface {
	Replace(ctx context.Context, sess model.Session) error
	GetByToken(ctx context.Context, token string) (model.Session, error)
	DeleteByUser(ctx context.Context, user model.UserID) (int64, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// SessionManager is the single source of truth for "is this caller who they
// claim to be". At most one active session exists per user.
type SessionManager struct {
	store  SessionStore
	tokens *TokenMinter
	ttl    time.Duration

	now func() time.Time
}

func NewSessionManager(store SessionStore, tokens *TokenMinter, ttl time.Duration) *SessionManager {
	return &SessionManager{
		store:  store,
		tokens: tokens,
		ttl:    ttl,
		now:    time.Now,
	}
}

// Create issues a fresh session for the user, replacing any existing one.
// The prior token stops validating as soon as Create returns.
func (m *SessionManager) Create(ctx context.Context, user model.UserID) (model.Session, error) {
	sessionID := uuid.NewString()
	expiresAt := m.now().Add(m.ttl)

	token, err := m.tokens.Mint(user, sessionID, expiresAt)
	if err != nil {
		return model.Session{}, err
	}

	sess := model.Session{
		ID:        sessionID,
		User:      user,
		Token:     token,
		ExpiresAt: expiresAt,
	}

	if err := m.store.Replace(ctx, sess); err != nil {
		return model.Session{}, err
	}

	return sess, nil
}

// Validate resolves a presented token to its user. The stored row is
// authoritative: a revoked session fails here even while the token's embedded
// expiry has not elapsed. Any deterministic failure is ErrInvalidSession.
func (m *SessionManager) Validate(ctx context.Context, token string) (model.UserID, error) {
	if token == "" {
		return "", ErrInvalidSession
	}

	if _, err := m.tokens.Verify(token); err != nil {
		return "", ErrInvalidSession
	}

	sess, err := m.store.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return "", ErrInvalidSession
		}
		return "", err
	}

	if !sess.ExpiresAt.After(m.now()) {
		return "", ErrInvalidSession
	}

	return sess.User, nil
}

// Delete revokes all sessions for the user and reports whether any existed.
func (m *SessionManager) Delete(ctx context.Context, user model.UserID) (bool, error) {
	deleted, err := m.store.DeleteByUser(ctx, user)
	if err != nil {
		return false, err
	}
	return deleted > 0, nil
}

// CleanupExpired sweeps rows whose expiry is at or before now and returns the
// exact count removed.
func (m *SessionManager) CleanupExpired(ctx context.Context) (int64, error) {
	return m.store.DeleteExpired(ctx, m.now())
}
