package utils

import (
	"testing"
)

func TestTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := GenerateToken("user-123", "school_coordinator")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := VerifyToken(token)
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if claims.UserID != "user-123" {
		t.Errorf("UserID = %q", claims.UserID)
	}
	if claims.Role != "school_coordinator" {
		t.Errorf("Role = %q", claims.Role)
	}
}

func TestVerifyTokenWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "first-secret")
	token, err := GenerateToken("user-123", "admin")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	t.Setenv("JWT_SECRET", "other-secret")
	if _, err := VerifyToken(token); err == nil {
		t.Fatal("token signed with a different secret must not verify")
	}
}

func TestResetTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := GenerateResetToken("user-456")
	if err != nil {
		t.Fatalf("GenerateResetToken: %v", err)
	}

	userID, err := VerifyResetToken(token)
	if err != nil {
		t.Fatalf("VerifyResetToken: %v", err)
	}
	if userID != "user-456" {
		t.Errorf("userID = %q", userID)
	}
}

func TestResetTokenIsNotLoginToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := GenerateToken("user-789", "visitor")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if _, err := VerifyResetToken(token); err == nil {
		t.Fatal("a login token must not pass as a reset token")
	}
}
