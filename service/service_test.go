package service

import (
	"testing"

	"cineadmin/structs"
)

func TestNormalizeSeats(t *testing.T) {
	event := structs.Event{
		TicketTiers: []structs.TicketTier{
			{Name: "Gold", Total: 100, Available: 80},
			{Name: "Silver", Total: 50, Available: 50},
		},
	}

	NormalizeSeats(&event)

	if event.TotalSeats != 150 {
		t.Fatalf("total seats: got %d, want 150", event.TotalSeats)
	}
	if event.AvailableSeats != 130 {
		t.Fatalf("available seats: got %d, want 130", event.AvailableSeats)
	}
	if event.BookedSeats != 20 {
		t.Fatalf("booked seats: got %d, want 20", event.BookedSeats)
	}
	for i, tier := range event.TicketTiers {
		if tier.TierID == "" {
			t.Fatalf("tier %d did not get an id", i)
		}
		if tier.SoldOut {
			t.Fatalf("tier %d wrongly sold out: %+v", i, tier)
		}
	}

	// IDs assigned on first save are kept on later saves.
	firstID := event.TicketTiers[0].TierID
	NormalizeSeats(&event)
	if event.TicketTiers[0].TierID != firstID {
		t.Fatal("tier id regenerated on renormalize")
	}
}

func TestNormalizeSeatsSoldOut(t *testing.T) {
	event := structs.Event{
		TicketTiers: []structs.TicketTier{
			{Name: "Gold", Total: 10, Available: 0},
		},
	}

	NormalizeSeats(&event)

	if !event.TicketTiers[0].SoldOut {
		t.Fatal("tier with no availability should be sold out")
	}
	if event.BookedSeats != 10 {
		t.Fatalf("booked seats: got %d, want 10", event.BookedSeats)
	}
}

func TestNormalizeSeatsNoTiers(t *testing.T) {
	event := structs.Event{TotalSeats: 99, AvailableSeats: 99, BookedSeats: 99}

	NormalizeSeats(&event)

	if event.TotalSeats != 0 || event.AvailableSeats != 0 || event.BookedSeats != 0 {
		t.Fatalf("stale rollups not cleared: %+v", event)
	}
}

func TestValidateEvent(t *testing.T) {
	valid := structs.Event{
		Title: structs.Bilingual{En: "Premiere Night"},
		Venue: structs.Bilingual{En: "Raj Talkies"},
		Date:  "2026-09-15",
		TicketTiers: []structs.TicketTier{
			{Name: "Gold", Total: 100, Available: 100},
		},
	}
	if err := validateEvent(valid); err != nil {
		t.Fatalf("valid event rejected: %v", err)
	}

	missingTitle := valid
	missingTitle.Title = structs.Bilingual{Hi: "only hindi"}
	if err := validateEvent(missingTitle); err == nil {
		t.Fatal("event without english title accepted")
	}

	missingVenue := valid
	missingVenue.Venue = structs.Bilingual{}
	if err := validateEvent(missingVenue); err == nil {
		t.Fatal("event without venue accepted")
	}

	missingDate := valid
	missingDate.Date = ""
	if err := validateEvent(missingDate); err == nil {
		t.Fatal("event without date accepted")
	}

	badTier := valid
	badTier.TicketTiers = []structs.TicketTier{{Name: "Gold", Total: 10, Available: 20}}
	if err := validateEvent(badTier); err == nil {
		t.Fatal("tier with available > total accepted")
	}

	negativeTier := valid
	negativeTier.TicketTiers = []structs.TicketTier{{Name: "Gold", Total: -1, Available: -1}}
	if err := validateEvent(negativeTier); err == nil {
		t.Fatal("tier with negative counts accepted")
	}
}
