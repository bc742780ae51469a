package utils

import (
	"net/http/httptest"
	"testing"
)

func TestGenerateID(t *testing.T) {
	id := GenerateID(14)
	if len(id) != 14 {
		t.Fatalf("expected length 14, got %d", len(id))
	}
	if GenerateID(14) == id {
		// Random collisions at 62^14 do not happen.
		t.Fatal("two generated ids were identical")
	}
}

func TestGenerateToken(t *testing.T) {
	tok := GenerateToken(6)
	if len(tok) != 6 {
		t.Fatalf("expected length 6, got %d", len(tok))
	}
	for _, r := range tok {
		if !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9') {
			t.Fatalf("token %q contains unsafe rune %q", tok, r)
		}
	}
}

func TestParsePagination(t *testing.T) {
	r := httptest.NewRequest("GET", "/x?page=3&limit=25", nil)
	page, limit := ParsePagination(r, 10)
	if page != 3 || limit != 25 {
		t.Fatalf("got page=%d limit=%d", page, limit)
	}

	r = httptest.NewRequest("GET", "/x", nil)
	page, limit = ParsePagination(r, 10)
	if page != 1 || limit != 10 {
		t.Fatalf("defaults wrong: page=%d limit=%d", page, limit)
	}

	r = httptest.NewRequest("GET", "/x?page=-1&limit=0", nil)
	page, limit = ParsePagination(r, 10)
	if page != 1 || limit != 10 {
		t.Fatalf("bad inputs not clamped: page=%d limit=%d", page, limit)
	}
}
