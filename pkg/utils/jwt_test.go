package utils

import (
	"testing"
	"time"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestGenerateToken_RoundTrip(t *testing.T) {
	token, err := GenerateToken(testSecret, 42, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	id, err := AccountIDFromToken(testSecret, token)
	if err != nil {
		t.Fatalf("AccountIDFromToken: %v", err)
	}
	if id != 42 {
		t.Errorf("account id = %d, want 42", id)
	}
}

func TestValidateToken_Expired(t *testing.T) {
	token, err := GenerateToken(testSecret, 1, -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if _, err := ValidateToken(testSecret, token); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

func TestValidateToken_WrongSecret(t *testing.T) {
	token, _ := GenerateToken(testSecret, 1, time.Hour)
	if _, err := ValidateToken("another-secret", token); err == nil {
		t.Fatal("expected token signed with another secret to be rejected")
	}
}

func TestAccountIDFromToken_Garbage(t *testing.T) {
	if _, err := AccountIDFromToken(testSecret, "not-a-jwt"); err == nil {
		t.Fatal("expected error for malformed token")
	}
}
