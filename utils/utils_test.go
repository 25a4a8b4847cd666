package utils

import (
	"strings"
	"testing"
)

func TestGenerateID(t *testing.T) {
	id := GenerateID("r")
	if !strings.HasPrefix(id, "r") {
		t.Fatalf("expected prefix r, got %q", id)
	}
	if len(id) != 11 {
		t.Fatalf("expected 11 chars, got %d", len(id))
	}
	if id == GenerateID("r") {
		t.Fatal("two ids should not collide")
	}
}

func TestSanitizeFilename(t *testing.T) {
	cases := map[string]string{
		"../../etc/passwd": "passwd",
		"my photo.png":     "my_photo.png",
		"ok-name_1.jpg":    "ok-name_1.jpg",
	}
	for in, want := range cases {
		if got := SanitizeFilename(in); got != want {
			t.Fatalf("SanitizeFilename(%q) = %q, want %q", in, got, want)
		}
	}
}
