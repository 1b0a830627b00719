package auth

import "testing"

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("securePassword123")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if hash == "" || hash == "securePassword123" {
		t.Fatalf("expected non-empty hash distinct from input, got %q", hash)
	}
	if !CheckPassword("securePassword123", hash) {
		t.Fatalf("expected matching password to verify")
	}
	if CheckPassword("wrongPassword", hash) {
		t.Fatalf("expected wrong password to fail")
	}
}

func TestValidatePassword(t *testing.T) {
	if err := ValidatePassword("longEnough1"); err != nil {
		t.Fatalf("expected valid password, got: %v", err)
	}
	if err := ValidatePassword("short"); err == nil {
		t.Fatalf("expected short password to be rejected")
	}
}
