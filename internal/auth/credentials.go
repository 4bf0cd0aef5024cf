package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/protomem/task-tracker/internal/model"
)

// UserStore is the persistence contract for member records.
type UserStore interface {
	Insert(ctx context.Context, user model.User) error
	GetByEmail(ctx context.Context, email string) (model.User, error)
}

// Credentials registers members and verifies their credentials against
// bcrypt hashes at rest.
type Credentials struct {
	store UserStore
}

func NewCredentials(store UserStore) *Credentials {
	return &Credentials{store: store}
}

type RegisterParams struct {
	Email        string
	Password     string
	Nickname     string
	Gender       string
	Birthday     *time.Time
	Relationship string
}

// Register creates a member with a generated opaque ID. A duplicate email
// surfaces as model.ErrExists; that is the only recognized conflict.
func (c *Credentials) Register(ctx context.Context, params RegisterParams) (model.User, error) {
	hash, err := HashPassword(params.Password)
	if err != nil {
		return model.User{}, err
	}

	user := model.User{
		ID:           uuid.NewString(),
		Email:        normalizeEmail(params.Email),
		PasswordHash: hash,
		Nickname:     params.Nickname,
		Gender:       params.Gender,
		Birthday:     params.Birthday,
		Relationship: params.Relationship,
	}

	if err := c.store.Insert(ctx, user); err != nil {
		return model.User{}, err
	}

	return user, nil
}

// Authenticate verifies email and password. Unknown email and wrong password
// are indistinguishable to the caller.
func (c *Credentials) Authenticate(ctx context.Context, email, password string) (model.User, error) {
	user, err := c.store.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.User{}, ErrInvalidCredentials
		}
		return model.User{}, err
	}

	if !CheckPassword(user.PasswordHash, password) {
		return model.User{}, ErrInvalidCredentials
	}

	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
