package db

import (
	"context"
	"log"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// CreateIndexes sets up the indexes the dashboard and log views query on.
// Failures are logged and skipped; a missing index slows queries but must
// not stop the server.
func CreateIndexes() {
	create := func(coll *mongo.Collection, model mongo.IndexModel, name string) {
		_, err := coll.Indexes().CreateOne(context.TODO(), model)
		if err != nil {
			log.Printf("Error creating %s index: %v", name, err)
		}
	}

	create(SystemLogsCollection, mongo.IndexModel{
		Keys: bson.D{{Key: "timestamp", Value: -1}},
	}, "systemLogs.timestamp")
	create(SystemLogsCollection, mongo.IndexModel{
		Keys: bson.D{{Key: "status", Value: 1}, {Key: "timestamp", Value: -1}},
	}, "systemLogs.status")
	create(ActivityLogsCollection, mongo.IndexModel{
		Keys: bson.D{{Key: "timestamp", Value: -1}},
	}, "activityLogs.timestamp")
	create(DailyStatsCollection, mongo.IndexModel{
		Keys: bson.D{{Key: "date", Value: 1}},
	}, "analyticsDaily.date")
	create(MoviesCollection, mongo.IndexModel{
		Keys: bson.D{{Key: "views", Value: -1}},
	}, "movies.views")
	create(WebseriesCollection, mongo.IndexModel{
		Keys: bson.D{{Key: "views", Value: -1}},
	}, "webseries.views")
	create(EventsCollection, mongo.IndexModel{
		Keys: bson.D{{Key: "eventid", Value: 1}},
	}, "events.eventid")
}
