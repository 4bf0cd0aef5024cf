package model

import "time"

type (
	UserID = string
	TaskID = int64
)

type User struct {
	ID        UserID    `json:"id" db:"id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	Email        string `json:"email" db:"email"`
	PasswordHash string `json:"-" db:"password_hash"`

	Nickname     string     `json:"nickname" db:"nickname"`
	Gender       string     `json:"gender" db:"gender"`
	Birthday     *time.Time `json:"birthday,omitempty" db:"birthday"`
	Relationship string     `json:"relationship" db:"relationship"`
}

// Session associates a bearer token with a user. The token is stored verbatim:
// the stored row, not the token's embedded claims, decides validity.
type Session struct {
	ID        string    `json:"id" db:"id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`

	User      UserID    `json:"userId" db:"user_id"`
	Token     string    `json:"token" db:"token"`
	ExpiresAt time.Time `json:"expiresAt" db:"expires_at"`
}

type Task struct {
	ID        TaskID    `json:"taskId" db:"id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	User        UserID     `json:"userId" db:"user_id"`
	Name        string     `json:"taskName" db:"name"`
	Category    string     `json:"category" db:"category"`
	ScheduledAt time.Time  `json:"time" db:"scheduled_at"`
	Status      TaskStatus `json:"status" db:"status"`
}
