package auth

import (
	"testing"

	"foodgram/middleware"
	"foodgram/models"
)

func TestGenerateAccessTokenRoundTrip(t *testing.T) {
	user := models.User{UserID: "u42", Username: "baker"}

	token, err := generateAccessToken(user)
	if err != nil {
		t.Fatalf("token generation failed: %v", err)
	}

	claims, err := middleware.ValidateJWT("Bearer " + token)
	if err != nil {
		t.Fatalf("token should validate: %v", err)
	}
	if claims.UserID != "u42" || claims.Username != "baker" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestHashTokenDeterministic(t *testing.T) {
	a := hashToken("secret-token")
	b := hashToken("secret-token")
	if a != b {
		t.Fatal("same input should hash identically")
	}
	if a == hashToken("other-token") {
		t.Fatal("different inputs should hash differently")
	}
	if a == "secret-token" {
		t.Fatal("hash should not echo the input")
	}
}

func TestGenerateRefreshTokenUnique(t *testing.T) {
	a, err := generateRefreshToken()
	if err != nil {
		t.Fatalf("refresh token generation failed: %v", err)
	}
	b, _ := generateRefreshToken()
	if a == b {
		t.Fatal("refresh tokens should not repeat")
	}
	if len(a) < 32 {
		t.Fatalf("refresh token too short: %d chars", len(a))
	}
}
