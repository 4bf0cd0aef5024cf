package auth

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/protomem/task-tracker/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memSessionStore mirrors the DAO contract in memory, keyed by token.
type memSessionStore struct {
	mu       sync.Mutex
	sessions map[string]model.Session
}

func newMemSessionStore() *memSessionStore {
	return &memSessionStore{sessions: make(map[string]model.Session)}
}

func (s *memSessionStore) Replace(_ context.Context, sess model.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for token, existing := range s.sessions {
		if existing.User == sess.User {
			delete(s.sessions, token)
		}
	}
	s.sessions[sess.Token] = sess

	return nil
}

func (s *memSessionStore) GetByToken(_ context.Context, token string) (model.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[token]
	if !ok {
		return model.Session{}, model.NewError("session", model.ErrNotFound)
	}
	return sess, nil
}

func (s *memSessionStore) DeleteByUser(_ context.Context, user model.UserID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var deleted int64
	for token, sess := range s.sessions {
		if sess.User == user {
			delete(s.sessions, token)
			deleted++
		}
	}
	return deleted, nil
}

func (s *memSessionStore) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var deleted int64
	for token, sess := range s.sessions {
		if !sess.ExpiresAt.After(now) {
			delete(s.sessions, token)
			deleted++
		}
	}
	return deleted, nil
}

func (s *memSessionStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func newTestManager(store SessionStore, ttl time.Duration) *SessionManager {
	return NewSessionManager(store, NewTokenMinter([]byte("test-secret")), ttl)
}

func TestSessionManager_CreateReplacesPrior(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newMemSessionStore()
	manager := newTestManager(store, time.Hour)

	first, err := manager.Create(ctx, "user-a")
	require.NoError(t, err)

	second, err := manager.Create(ctx, "user-a")
	require.NoError(t, err)
	require.NotEqual(t, first.Token, second.Token)

	assert.Equal(t, 1, store.count(), "exactly one session row per user")

	_, err = manager.Validate(ctx, first.Token)
	assert.ErrorIs(t, err, ErrInvalidSession, "replaced token must stop validating")

	user, err := manager.Validate(ctx, second.Token)
	require.NoError(t, err)
	assert.Equal(t, "user-a", user)
}

func TestSessionManager_CreateIsPerUser(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newMemSessionStore()
	manager := newTestManager(store, time.Hour)

	sessA, err := manager.Create(ctx, "user-a")
	require.NoError(t, err)
	sessB, err := manager.Create(ctx, "user-b")
	require.NoError(t, err)

	assert.Equal(t, 2, store.count(), "sessions of other users survive")

	userA, err := manager.Validate(ctx, sessA.Token)
	require.NoError(t, err)
	assert.Equal(t, "user-a", userA)

	userB, err := manager.Validate(ctx, sessB.Token)
	require.NoError(t, err)
	assert.Equal(t, "user-b", userB)
}

func TestSessionManager_ValidateExpiredRow(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newMemSessionStore()
	manager := newTestManager(store, time.Hour)

	sess, err := manager.Create(ctx, "user-a")
	require.NoError(t, err)

	// Advance the manager clock past the stored expiry; the row is still
	// present until swept.
	manager.now = func() time.Time { return sess.ExpiresAt.Add(time.Minute) }

	_, err = manager.Validate(ctx, sess.Token)
	assert.ErrorIs(t, err, ErrInvalidSession)
	assert.Equal(t, 1, store.count(), "expired row remains until swept")
}

func TestSessionManager_ValidateRevoked(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newMemSessionStore()
	manager := newTestManager(store, time.Hour)

	sess, err := manager.Create(ctx, "user-a")
	require.NoError(t, err)

	deleted, err := manager.Delete(ctx, "user-a")
	require.NoError(t, err)
	assert.True(t, deleted)

	// The embedded expiry claim has not elapsed, but the row is gone.
	_, err = manager.Validate(ctx, sess.Token)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestSessionManager_ValidateGarbage(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	manager := newTestManager(newMemSessionStore(), time.Hour)

	_, err := manager.Validate(ctx, "")
	assert.ErrorIs(t, err, ErrInvalidSession)

	_, err = manager.Validate(ctx, "not.a.token")
	assert.ErrorIs(t, err, ErrInvalidSession)

	// Correctly signed by someone else's secret.
	foreign, err := NewTokenMinter([]byte("other-secret")).Mint("user-a", "s1", time.Now().Add(time.Hour))
	require.NoError(t, err)

	_, err = manager.Validate(ctx, foreign)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestSessionManager_Delete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	manager := newTestManager(newMemSessionStore(), time.Hour)

	_, err := manager.Create(ctx, "user-a")
	require.NoError(t, err)

	deleted, err := manager.Delete(ctx, "user-a")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = manager.Delete(ctx, "user-a")
	require.NoError(t, err)
	assert.False(t, deleted, "second delete finds nothing")
}

func TestSessionManager_CleanupExpired(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newMemSessionStore()
	manager := newTestManager(store, time.Hour)

	live, err := manager.Create(ctx, "user-live")
	require.NoError(t, err)

	expired := newTestManager(store, -time.Minute)
	_, err = expired.Create(ctx, "user-x")
	require.NoError(t, err)
	_, err = expired.Create(ctx, "user-y")
	require.NoError(t, err)

	count, err := manager.CleanupExpired(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	count, err = manager.CleanupExpired(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 0, count, "second sweep finds nothing")

	user, err := manager.Validate(ctx, live.Token)
	require.NoError(t, err)
	assert.Equal(t, "user-live", user)
}
