package db

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	AdminsCollection        *mongo.Collection
	UsersCollection         *mongo.Collection
	MoviesCollection        *mongo.Collection
	WebseriesCollection     *mongo.Collection
	ShortfilmsCollection    *mongo.Collection
	EventsCollection        *mongo.Collection
	TransactionsCollection  *mongo.Collection
	SubscriptionsCollection *mongo.Collection
	SystemLogsCollection    *mongo.Collection
	ActivityLogsCollection  *mongo.Collection
	DailyStatsCollection    *mongo.Collection
	MonthlyStatsCollection  *mongo.Collection
	SummaryCollection       *mongo.Collection
	PerformanceCollection   *mongo.Collection
	SettingsCollection      *mongo.Collection
	Client                  *mongo.Client
)

// Connect initializes the Mongo client and the collection handles used
// across the application.
func Connect() error {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: No .env file found, using system environment variables")
	}

	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return err
	}

	Client = client
	database := client.Database("cinedb")

	AdminsCollection = database.Collection("admins")
	UsersCollection = database.Collection("users")
	MoviesCollection = database.Collection("movies")
	WebseriesCollection = database.Collection("webseries")
	ShortfilmsCollection = database.Collection("shortfilms")
	EventsCollection = database.Collection("events")
	TransactionsCollection = database.Collection("transactions")
	SubscriptionsCollection = database.Collection("subscriptions")
	SystemLogsCollection = database.Collection("systemLogs")
	ActivityLogsCollection = database.Collection("activityLogs")
	DailyStatsCollection = database.Collection("analyticsDaily")
	MonthlyStatsCollection = database.Collection("analyticsMonthly")
	SummaryCollection = database.Collection("analyticsSummary")
	PerformanceCollection = database.Collection("contentPerformance")
	SettingsCollection = database.Collection("settings")

	return nil
}

func Disconnect() {
	if Client == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := Client.Disconnect(ctx); err != nil {
		log.Printf("Error disconnecting from MongoDB: %v", err)
	}
}
