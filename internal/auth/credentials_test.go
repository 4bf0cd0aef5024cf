package auth

import (
	"context"
	"sync"
	"testing"

	"github.com/protomem/task-tracker/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memUserStore enforces the email uniqueness constraint in memory.
type memUserStore struct {
	mu    sync.Mutex
	users map[string]model.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: make(map[string]model.User)}
}

func (s *memUserStore) Insert(_ context.Context, user model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[user.Email]; exists {
		return model.NewError("user", model.ErrExists)
	}
	s.users[user.Email] = user

	return nil
}

func (s *memUserStore) GetByEmail(_ context.Context, email string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[email]
	if !ok {
		return model.User{}, model.NewError("user", model.ErrNotFound)
	}
	return user, nil
}

func TestCredentials_RegisterAuthenticate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	creds := NewCredentials(newMemUserStore())

	registered, err := creds.Register(ctx, RegisterParams{
		Email:        "a@x.com",
		Password:     "secret1",
		Nickname:     "alice",
		Gender:       "female",
		Relationship: "self",
	})
	require.NoError(t, err)
	require.NotEmpty(t, registered.ID)
	assert.NotEqual(t, "secret1", registered.PasswordHash)

	authenticated, err := creds.Authenticate(ctx, "a@x.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, authenticated.ID, "same credential resolves the same user")

	// Email lookup is case-insensitive.
	authenticated, err = creds.Authenticate(ctx, "A@X.COM", "secret1")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, authenticated.ID)
}

func TestCredentials_AuthenticateInvalid(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	creds := NewCredentials(newMemUserStore())

	_, err := creds.Register(ctx, RegisterParams{
		Email:        "a@x.com",
		Password:     "secret1",
		Nickname:     "alice",
		Gender:       "female",
		Relationship: "self",
	})
	require.NoError(t, err)

	_, err = creds.Authenticate(ctx, "a@x.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// Unknown email is indistinguishable from a wrong password.
	_, err = creds.Authenticate(ctx, "nobody@x.com", "secret1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestCredentials_RegisterDuplicateEmail(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newMemUserStore()
	creds := NewCredentials(store)

	_, err := creds.Register(ctx, RegisterParams{
		Email:        "a@x.com",
		Password:     "secret1",
		Nickname:     "alice",
		Gender:       "female",
		Relationship: "self",
	})
	require.NoError(t, err)

	_, err = creds.Register(ctx, RegisterParams{
		Email:        "A@x.com",
		Password:     "other",
		Nickname:     "impostor",
		Gender:       "male",
		Relationship: "self",
	})
	assert.ErrorIs(t, err, model.ErrExists)
	assert.Len(t, store.users, 1, "no second row created")
}
