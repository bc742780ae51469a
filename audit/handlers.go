package audit

import (
	"encoding/json"
	"net/http"

	"cineadmin/db"
	"cineadmin/structs"
	"cineadmin/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func findLogs[T any](w http.ResponseWriter, r *http.Request, coll *mongo.Collection) {
	page, limit := utils.ParsePagination(r, 50)
	skip := int64((page - 1) * limit)
	int64Limit := int64(limit)

	filter := bson.M{}
	if status := r.URL.Query().Get("status"); status != "" {
		filter["status"] = status
	}
	if module := r.URL.Query().Get("module"); module != "" {
		filter["module"] = module
	}

	cursor, err := coll.Find(r.Context(), filter, &options.FindOptions{
		Skip:  &skip,
		Limit: &int64Limit,
		Sort:  bson.D{{Key: "timestamp", Value: -1}},
	})
	if err != nil {
		utils.SendErrorResponse(w, http.StatusInternalServerError, "Failed to fetch logs")
		return
	}
	defer cursor.Close(r.Context())

	var logs []T
	if err := cursor.All(r.Context(), &logs); err != nil {
		utils.SendErrorResponse(w, http.StatusInternalServerError, "Failed to decode logs")
		return
	}
	if logs == nil {
		logs = []T{}
	}

	utils.SendJSONResponse(w, http.StatusOK, logs)
}

// GetSystemLogs returns the system log, newest first.
func GetSystemLogs(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	findLogs[structs.SystemLog](w, r, db.SystemLogsCollection)
}

// GetActivityLogs returns the activity feed, newest first, each row paired
// with its UI descriptor.
func GetActivityLogs(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	page, limit := utils.ParsePagination(r, 50)
	skip := int64((page - 1) * limit)
	int64Limit := int64(limit)

	cursor, err := db.ActivityLogsCollection.Find(r.Context(), bson.M{}, &options.FindOptions{
		Skip:  &skip,
		Limit: &int64Limit,
		Sort:  bson.D{{Key: "timestamp", Value: -1}},
	})
	if err != nil {
		utils.SendErrorResponse(w, http.StatusInternalServerError, "Failed to fetch activities")
		return
	}
	defer cursor.Close(r.Context())

	var logs []structs.ActivityLog
	if err := cursor.All(r.Context(), &logs); err != nil {
		utils.SendErrorResponse(w, http.StatusInternalServerError, "Failed to decode activities")
		return
	}

	type row struct {
		structs.ActivityLog
		Descriptor Descriptor `json:"descriptor"`
	}
	rows := make([]row, 0, len(logs))
	for _, l := range logs {
		rows = append(rows, row{ActivityLog: l, Descriptor: Describe(Action(l.Action))})
	}

	utils.SendJSONResponse(w, http.StatusOK, rows)
}

// ReportError accepts a client-reported error and records it through the
// normal dual-sink path, which also feeds the alert worker.
func ReportError(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var payload struct {
		Module  string `json:"module"`
		Details string `json:"details"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if payload.Module == "" {
		payload.Module = "console"
	}

	LogError(r.Context(), payload.Module, payload.Details)

	utils.SendJSONResponse(w, http.StatusCreated, map[string]string{"message": "Error logged"})
}
