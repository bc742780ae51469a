package repository

import (
	"context"
	"errors"

	"cineadmin/structs"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type EventRepository struct {
	Collection *mongo.Collection
}

func NewEventRepository(collection *mongo.Collection) *EventRepository {
	return &EventRepository{Collection: collection}
}

func (repo *EventRepository) FindEventByID(ctx context.Context, eventID string) (*structs.Event, error) {
	var event structs.Event
	err := repo.Collection.FindOne(ctx, bson.M{"eventid": eventID}).Decode(&event)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &event, nil
}

func (repo *EventRepository) IsEventIDExists(ctx context.Context, eventID string) (bool, error) {
	err := repo.Collection.FindOne(ctx, bson.M{"eventid": eventID}).Err()
	if err == nil {
		return true, nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	return false, err
}

func (repo *EventRepository) InsertEvent(ctx context.Context, event structs.Event) error {
	_, err := repo.Collection.InsertOne(ctx, event)
	return err
}

func (repo *EventRepository) UpdateEvent(ctx context.Context, eventID string, updateFields bson.M) (int64, error) {
	result, err := repo.Collection.UpdateOne(
		ctx,
		bson.M{"eventid": eventID},
		bson.M{"$set": updateFields},
	)
	if err != nil {
		return 0, err
	}
	return result.MatchedCount, nil
}

func (repo *EventRepository) DeleteEvent(ctx context.Context, eventID string) error {
	_, err := repo.Collection.DeleteOne(ctx, bson.M{"eventid": eventID})
	return err
}

func (repo *EventRepository) FindEvents(ctx context.Context, skip, limit int64, sort bson.D) ([]structs.Event, error) {
	cursor, err := repo.Collection.Find(ctx, bson.M{}, &options.FindOptions{
		Skip:  &skip,
		Limit: &limit,
		Sort:  sort,
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var events []structs.Event
	if err := cursor.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (repo *EventRepository) CountEvents(ctx context.Context) (int64, error) {
	return repo.Collection.CountDocuments(ctx, bson.M{})
}
