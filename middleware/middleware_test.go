package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"foodgram/globals"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
)

func signToken(t *testing.T, userID string, ttl time.Duration) string {
	t.Helper()
	claims := &Claims{
		Username: "tester",
		UserID:   userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(globals.JwtSecret)
	if err != nil {
		t.Fatalf("signing failed: %v", err)
	}
	return token
}

func TestAuthenticatePassesUserID(t *testing.T) {
	var gotID string
	handler := Authenticate(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		gotID, _ = r.Context().Value(globals.UserIDKey).(string)
	})

	r := httptest.NewRequest("GET", "/api/users/me", nil)
	r.Header.Set("Authorization", "Bearer "+signToken(t, "u123", time.Hour))
	w := httptest.NewRecorder()
	handler(w, r, nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if gotID != "u123" {
		t.Fatalf("expected user id u123 in context, got %q", gotID)
	}
}

func TestAuthenticateRejectsMissingToken(t *testing.T) {
	handler := Authenticate(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		t.Fatal("handler should not run without a token")
	})

	r := httptest.NewRequest("GET", "/api/users/me", nil)
	w := httptest.NewRecorder()
	handler(w, r, nil)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestAuthenticateRejectsExpiredToken(t *testing.T) {
	handler := Authenticate(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		t.Fatal("handler should not run with an expired token")
	})

	r := httptest.NewRequest("GET", "/api/users/me", nil)
	r.Header.Set("Authorization", "Bearer "+signToken(t, "u123", -time.Minute))
	w := httptest.NewRecorder()
	handler(w, r, nil)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestValidateJWTRequiresBearerPrefix(t *testing.T) {
	token := signToken(t, "u123", time.Hour)

	if _, err := ValidateJWT("Bearer " + token); err != nil {
		t.Fatalf("bearer token should validate: %v", err)
	}
	if _, err := ValidateJWT(token); err == nil {
		t.Fatal("raw token without the Bearer prefix should be rejected")
	}
	if _, err := ValidateJWT(""); err == nil {
		t.Fatal("empty token should be rejected")
	}
}

func TestOptionalAuthProceedsAnonymously(t *testing.T) {
	called := false
	handler := OptionalAuth(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		called = true
		if id, ok := r.Context().Value(globals.UserIDKey).(string); ok && id != "" {
			t.Fatalf("expected no user id for anonymous request, got %q", id)
		}
	})

	r := httptest.NewRequest("GET", "/api/recipes", nil)
	w := httptest.NewRecorder()
	handler(w, r, nil)

	if !called {
		t.Fatal("anonymous request should reach the handler")
	}
}
