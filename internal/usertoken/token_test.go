package usertoken

import (
	"strings"
	"testing"
	"time"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestSignAndVerifyRoundTrip(t *testing.T) {
	signer, err := NewSigner(testSecret, time.Hour)
	if err != nil {
		t.Fatalf("new signer: %v", err)
	}
	verifier, err := NewVerifier(testSecret, 0)
	if err != nil {
		t.Fatalf("new verifier: %v", err)
	}

	token, err := signer.Sign("user-id-1", "john_doe_fitness", "john@example.com")
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	claims, err := verifier.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.UserID != "user-id-1" {
		t.Fatalf("userId = %q, want user-id-1", claims.UserID)
	}
	if claims.Username != "john_doe_fitness" {
		t.Fatalf("username = %q", claims.Username)
	}
	if claims.Subject != "john@example.com" {
		t.Fatalf("subject = %q, want email", claims.Subject)
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	signer, _ := NewSigner(testSecret, time.Hour)
	verifier, _ := NewVerifier(strings.Repeat("x", 32), 0)

	token, err := signer.Sign("user-id-1", "u", "u@example.com")
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := verifier.Verify(token); err == nil {
		t.Fatalf("expected verification failure with wrong secret")
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	signer, _ := NewSigner(testSecret, time.Nanosecond)
	verifier, _ := NewVerifier(testSecret, time.Millisecond)

	token, err := signer.Sign("user-id-1", "u", "u@example.com")
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	time.Sleep(10 * time.Millisecond)
	if _, err := verifier.Verify(token); err == nil {
		t.Fatalf("expected expired token to be rejected")
	}
}

func TestNewSignerRequiresStrongSecret(t *testing.T) {
	if _, err := NewSigner("short", time.Hour); err == nil {
		t.Fatalf("expected error for short secret")
	}
}
