package utils

import (
	"net/http/httptest"
	"strings"
	"testing"
)

func TestParsePageDefaults(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/recipes", nil)
	p := ParsePage(r, 6, 100)
	if p.Number != 1 || p.Limit != 6 {
		t.Fatalf("expected page 1 limit 6, got %+v", p)
	}
	if p.Skip() != 0 {
		t.Fatalf("expected skip 0, got %d", p.Skip())
	}
}

func TestParsePageCapsLimit(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/recipes?limit=1000&page=3", nil)
	p := ParsePage(r, 6, 100)
	if p.Limit != 100 {
		t.Fatalf("expected limit capped at 100, got %d", p.Limit)
	}
	if p.Skip() != 200 {
		t.Fatalf("expected skip 200 for page 3, got %d", p.Skip())
	}
}

func TestParsePageIgnoresGarbage(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/recipes?limit=-4&page=zero", nil)
	p := ParsePage(r, 6, 100)
	if p.Number != 1 || p.Limit != 6 {
		t.Fatalf("expected defaults for garbage input, got %+v", p)
	}
}

func TestEnvelopeLinks(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/recipes?page=2&limit=2", nil)
	p := ParsePage(r, 6, 100)

	env := p.Envelope(r, 5, []string{"a", "b"})
	if env["count"] != int64(5) {
		t.Fatalf("expected count 5, got %v", env["count"])
	}
	if env["next"] == nil {
		t.Fatal("expected a next link on page 2 of 3")
	}
	if env["previous"] == nil {
		t.Fatal("expected a previous link on page 2")
	}
	next, _ := env["next"].(string)
	if !strings.HasPrefix(next, "http://example.com/api/recipes?") {
		t.Fatalf("expected an absolute next link, got %q", next)
	}
	if !strings.Contains(next, "page=3") {
		t.Fatalf("expected next link to point at page 3, got %q", next)
	}

	r = httptest.NewRequest("GET", "/api/recipes?page=3&limit=2", nil)
	p = ParsePage(r, 6, 100)
	env = p.Envelope(r, 5, []string{"e"})
	if env["next"] != nil {
		t.Fatalf("expected no next link on the last page, got %v", env["next"])
	}
}
