package auth

import (
	"testing"
	"time"
)

func TestTokenMinter_MintVerify(t *testing.T) {
	t.Parallel()

	minter := NewTokenMinter([]byte("super-secret"))

	tok, err := minter.Mint("user-123", "sess-456", time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("Mint error: %v", err)
	}

	claims, err := minter.Verify(tok)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if claims.UserID != "user-123" {
		t.Errorf("UserID = %q, want \"user-123\"", claims.UserID)
	}
	if claims.SessionID != "sess-456" {
		t.Errorf("SessionID = %q, want \"sess-456\"", claims.SessionID)
	}
}

func TestTokenMinter_VerifyExpired(t *testing.T) {
	t.Parallel()

	minter := NewTokenMinter([]byte("secret"))

	tok, err := minter.Mint("u1", "s1", time.Now().Add(-time.Second))
	if err != nil {
		t.Fatalf("Mint error: %v", err)
	}

	if _, err := minter.Verify(tok); err == nil {
		t.Fatal("expected error for expired token, got nil")
	}
}

func TestTokenMinter_VerifyWrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := NewTokenMinter([]byte("right-secret")).Mint("u2", "s2", time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("Mint error: %v", err)
	}

	if _, err := NewTokenMinter([]byte("wrong-secret")).Verify(tok); err == nil {
		t.Fatal("expected error for wrong secret, got nil")
	}
}

func TestTokenMinter_VerifyMalformed(t *testing.T) {
	t.Parallel()

	if _, err := NewTokenMinter([]byte("k")).Verify("not.a.jwt"); err == nil {
		t.Fatal("expected error for malformed token, got nil")
	}
}
