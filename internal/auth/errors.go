package auth

import "errors"

// Deterministic business outcomes. A missing, expired, or revoked session and
// a wrong or unknown credential are results, not server failures.
var (
	ErrInvalidSession     = errors.New("invalid session")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
