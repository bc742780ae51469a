package content

import (
	"testing"

	"cineadmin/structs"
)

func TestCollectionFor(t *testing.T) {
	for _, ct := range []string{"movie", "webseries", "shortfilm"} {
		if _, ok := collectionFor(ct); !ok {
			t.Fatalf("known type %q not routed", ct)
		}
	}
	for _, ct := range []string{"", "documentary", "Movie", "movies"} {
		if _, ok := collectionFor(ct); ok {
			t.Fatalf("unknown type %q accepted", ct)
		}
	}
}

func TestValidateItem(t *testing.T) {
	item := structs.ContentItem{
		Title:       structs.Bilingual{En: "Mor Chhaiya", Hi: "मोर छइयां"},
		Description: structs.Bilingual{En: "A village drama"},
	}
	if msg := validateItem(item); msg != "" {
		t.Fatalf("valid item rejected: %q", msg)
	}

	item.Title.En = ""
	if msg := validateItem(item); msg == "" {
		t.Fatal("missing english title accepted")
	}

	item.Title.En = "Mor Chhaiya"
	item.Description.En = ""
	if msg := validateItem(item); msg == "" {
		t.Fatal("missing english description accepted")
	}
}
