package utils

import (
	"testing"
	"time"
)

func TestSignAndParseToken(t *testing.T) {
	token, err := SignToken("test-secret", "64f1a2b3c4d5e6f708091011", "alice@example.com", AccessTokenTTL)
	if err != nil {
		t.Fatalf("SignToken: %v", err)
	}

	claims, err := ParseToken("test-secret", token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.UserID != "64f1a2b3c4d5e6f708091011" {
		t.Errorf("UserID = %q", claims.UserID)
	}
	if claims.Email != "alice@example.com" {
		t.Errorf("Email = %q", claims.Email)
	}
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, err := SignToken("secret-a", "id", "a@b.c", AccessTokenTTL)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ParseToken("secret-b", token); err == nil {
		t.Error("token signed with a different secret parsed successfully")
	}
}

func TestParseTokenExpired(t *testing.T) {
	token, err := SignToken("secret", "id", "a@b.c", -time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ParseToken("secret", token); err == nil {
		t.Error("expired token parsed successfully")
	}
}

func TestParseTokenGarbage(t *testing.T) {
	if _, err := ParseToken("secret", "not.a.jwt"); err == nil {
		t.Error("garbage token parsed successfully")
	}
}

func TestGenerateResetToken(t *testing.T) {
	a, err := GenerateResetToken()
	if err != nil {
		t.Fatal(err)
	}
	if len(a) != 64 {
		t.Errorf("token length = %d, want 64", len(a))
	}
	b, err := GenerateResetToken()
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Error("consecutive reset tokens are identical")
	}
}
