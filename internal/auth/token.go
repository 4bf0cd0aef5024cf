// Package auth implements session issuance and validation plus credential
// storage for the task-tracker API.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims embeds the owning user and session into the signed token.
// The embedded claims are defense in depth; the sessions table decides
// validity.
type TokenClaims struct {
	jwt.RegisteredClaims
	UserID    string `json:"uid"`
	SessionID string `json:"sid"`
}

type TokenMinter struct {
	secret []byte
}

func NewTokenMinter(secret []byte) *TokenMinter {
	return &TokenMinter{secret: secret}
}

func (m *TokenMinter) Mint(userID, sessionID string, expiresAt time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		UserID:    userID,
		SessionID: sessionID,
	})

	return token.SignedString(m.secret)
}

func (m *TokenMinter) Verify(tokenString string) (TokenClaims, error) {
	claims := &TokenClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return TokenClaims{}, err
	}

	if !token.Valid {
		return TokenClaims{}, errors.New("invalid token")
	}

	return *claims, nil
}
