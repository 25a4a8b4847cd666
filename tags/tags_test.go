package tags

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func postTag(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()
	r := httptest.NewRequest("POST", "/api/tags", strings.NewReader(body))
	w := httptest.NewRecorder()
	CreateTag(w, r, nil)
	return w
}

func TestCreateTagRejectsBadColor(t *testing.T) {
	w := postTag(t, `{"name":"Breakfast","color":"green","slug":"breakfast"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-hex color, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "color") {
		t.Fatalf("expected color field error, got %s", w.Body.String())
	}
}

func TestCreateTagRejectsShortHex(t *testing.T) {
	w := postTag(t, `{"name":"Breakfast","color":"#4B6","slug":"breakfast"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for short hex color, got %d", w.Code)
	}
}

func TestCreateTagRejectsBadSlug(t *testing.T) {
	w := postTag(t, `{"name":"Breakfast","color":"#49B64E","slug":"break fast!"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid slug, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "slug") {
		t.Fatalf("expected slug field error, got %s", w.Body.String())
	}
}

func TestCreateTagRequiresName(t *testing.T) {
	w := postTag(t, `{"name":"   ","color":"#49B64E","slug":"x"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for blank name, got %d", w.Code)
	}
}

func TestCreateTagRejectsBadBody(t *testing.T) {
	w := postTag(t, `{"name":`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed body, got %d", w.Code)
	}
}
