package recipes

import (
	"net/http/httptest"
	"testing"
)

// Relation filters depend on who is asking; without a user there are no
// relations to filter by, so the list stays unfiltered instead of
// matching nothing.
func TestBuildListFilterAnonymousIgnoresRelationFilters(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/recipes?is_favorited=1&is_in_shopping_cart=1", nil)

	filter, err := buildListFilter(r.Context(), r, "")
	if err != nil {
		t.Fatalf("filter build failed: %v", err)
	}
	if len(filter) != 0 {
		t.Fatalf("expected an empty filter for anonymous requester, got %v", filter)
	}
}

func TestBuildListFilterAnonymousKeepsAuthor(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/recipes?author=u42&is_favorited=1", nil)

	filter, err := buildListFilter(r.Context(), r, "")
	if err != nil {
		t.Fatalf("filter build failed: %v", err)
	}
	if filter["authorid"] != "u42" {
		t.Fatalf("expected author filter to survive, got %v", filter)
	}
	if _, ok := filter["recipeid"]; ok {
		t.Fatalf("anonymous requester should not produce a recipeid filter, got %v", filter)
	}
}
