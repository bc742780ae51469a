package service

import (
	"context"
	"errors"
	"time"

	"cineadmin/repository"
	"cineadmin/structs"
	"cineadmin/utils"

	"go.mongodb.org/mongo-driver/bson"
)

type EventService struct {
	EventRepo *repository.EventRepository
}

func NewEventService(repo *repository.EventRepository) *EventService {
	return &EventService{EventRepo: repo}
}

// NormalizeSeats recomputes the seat rollups from the ticket tiers. The
// store does not enforce this invariant; it is recomputed on every save:
// totalSeats = sum of tier totals, availableSeats = sum of availables,
// bookedSeats = total - available. A tier with nothing left is sold out.
func NormalizeSeats(event *structs.Event) {
	total, available := 0, 0
	for i := range event.TicketTiers {
		tier := &event.TicketTiers[i]
		if tier.TierID == "" {
			tier.TierID = utils.GenerateID(10)
		}
		tier.SoldOut = tier.Available <= 0
		total += tier.Total
		available += tier.Available
	}
	event.TotalSeats = total
	event.AvailableSeats = available
	event.BookedSeats = total - available
}

func validateEvent(event structs.Event) error {
	if event.Title.En == "" {
		return errors.New("title is required")
	}
	if event.Venue.En == "" {
		return errors.New("venue is required")
	}
	if event.Date == "" {
		return errors.New("date is required")
	}
	for _, tier := range event.TicketTiers {
		if tier.Total < 0 || tier.Available < 0 || tier.Available > tier.Total {
			return errors.New("invalid ticket tier seat counts")
		}
	}
	return nil
}

func (svc *EventService) CreateEvent(ctx context.Context, event structs.Event, userID string) (structs.Event, error) {
	if err := validateEvent(event); err != nil {
		return structs.Event{}, err
	}

	event.EventID = utils.GenerateID(14)
	event.CreatorID = userID
	if event.Status == "" {
		event.Status = "draft"
	}
	event.CreatedAt = time.Now().UTC()
	event.UpdatedAt = event.CreatedAt
	NormalizeSeats(&event)

	exists, err := svc.EventRepo.IsEventIDExists(ctx, event.EventID)
	if err != nil {
		return structs.Event{}, errors.New("failed to check event ID: " + err.Error())
	}
	if exists {
		return structs.Event{}, errors.New("event ID collision, try again")
	}

	if err := svc.EventRepo.InsertEvent(ctx, event); err != nil {
		return structs.Event{}, errors.New("error saving event")
	}

	return event, nil
}

var ErrEventNotFound = errors.New("event not found")

func (svc *EventService) EditEvent(ctx context.Context, eventID string, event structs.Event) (structs.Event, error) {
	if err := validateEvent(event); err != nil {
		return structs.Event{}, err
	}

	NormalizeSeats(&event)

	updateFields := bson.M{
		"title":           event.Title,
		"description":     event.Description,
		"venue":           event.Venue,
		"city":            event.City,
		"date":            event.Date,
		"time":            event.Time,
		"banner_url":      event.BannerURL,
		"gallery_urls":    event.GalleryURLs,
		"trailer_url":     event.TrailerURL,
		"ticket_tiers":    event.TicketTiers,
		"total_seats":     event.TotalSeats,
		"available_seats": event.AvailableSeats,
		"booked_seats":    event.BookedSeats,
		"hosts":           event.Hosts,
		"performers":      event.Performers,
		"speakers":        event.Speakers,
		"faq":             event.FAQ,
		"sponsors":        event.Sponsors,
		"media_partners":  event.MediaPartners,
		"status":          event.Status,
		"updated_at":      time.Now().UTC(),
	}

	matchedCount, err := svc.EventRepo.UpdateEvent(ctx, eventID, updateFields)
	if err != nil {
		return structs.Event{}, errors.New("failed to update event: " + err.Error())
	}
	if matchedCount == 0 {
		return structs.Event{}, ErrEventNotFound
	}

	updatedEvent, err := svc.EventRepo.FindEventByID(ctx, eventID)
	if err != nil || updatedEvent == nil {
		return structs.Event{}, errors.New("failed to retrieve updated event")
	}
	return *updatedEvent, nil
}

func (svc *EventService) GetEvent(ctx context.Context, eventID string) (*structs.Event, error) {
	return svc.EventRepo.FindEventByID(ctx, eventID)
}

func (svc *EventService) DeleteEvent(ctx context.Context, eventID string) error {
	event, err := svc.EventRepo.FindEventByID(ctx, eventID)
	if err != nil {
		return errors.New("failed to fetch event: " + err.Error())
	}
	if event == nil {
		return ErrEventNotFound
	}
	if err := svc.EventRepo.DeleteEvent(ctx, eventID); err != nil {
		return errors.New("failed to delete event: " + err.Error())
	}
	return nil
}

func (svc *EventService) GetEvents(ctx context.Context, page, limit int) ([]structs.Event, error) {
	skip := int64((page - 1) * limit)
	int64Limit := int64(limit)

	sortOrder := bson.D{{Key: "created_at", Value: -1}}

	events, err := svc.EventRepo.FindEvents(ctx, skip, int64Limit, sortOrder)
	if err != nil {
		return nil, errors.New("failed to retrieve events: " + err.Error())
	}
	if events == nil {
		events = []structs.Event{}
	}
	return events, nil
}
