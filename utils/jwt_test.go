package utils

import (
	"PdfVault/config"
	"testing"
)

// TestTokenRoundTrip tests generation and verification of a token.
func TestTokenRoundTrip(t *testing.T) {
	config.InitConfig()

	token, err := GenerateToken(42, "alice", "admin")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	claims, err := VerifyToken(token)
	if err != nil {
		t.Fatalf("VerifyToken failed: %v", err)
	}
	if claims.UserId != 42 || claims.Username != "alice" || claims.Level != "admin" {
		t.Fatalf("claims mismatch: %+v", claims)
	}
}

// TestVerifyTokenRejectsGarbage tests invalid token handling.
func TestVerifyTokenRejectsGarbage(t *testing.T) {
	config.InitConfig()

	if _, err := VerifyToken("not-a-token"); err == nil {
		t.Fatal("garbage token must be rejected")
	}
}
