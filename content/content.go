package content

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"time"

	"cineadmin/audit"
	"cineadmin/db"
	"cineadmin/mq"
	"cineadmin/structs"
	"cineadmin/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// collectionFor routes a content type to its collection. Explicit table,
// exhaustive default — the route param decides, never string sniffing.
func collectionFor(contentType string) (*mongo.Collection, bool) {
	switch contentType {
	case "movie":
		return db.MoviesCollection, true
	case "webseries":
		return db.WebseriesCollection, true
	case "shortfilm":
		return db.ShortfilmsCollection, true
	default:
		return nil, false
	}
}

func validateItem(item structs.ContentItem) string {
	if item.Title.En == "" {
		return "Title (English) is required"
	}
	if item.Description.En == "" {
		return "Description (English) is required"
	}
	return ""
}

// CreateContent handles POST /api/content/:type.
func CreateContent(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	contentType := ps.ByName("type")
	coll, ok := collectionFor(contentType)
	if !ok {
		utils.SendErrorResponse(w, http.StatusBadRequest, "Unknown content type")
		return
	}

	var item structs.ContentItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "Invalid content data")
		return
	}
	if msg := validateItem(item); msg != "" {
		utils.SendErrorResponse(w, http.StatusBadRequest, msg)
		return
	}

	item.ContentID = utils.GenerateID(14)
	item.Type = contentType
	if item.Status == "" {
		item.Status = "draft"
	}
	// Zeroed engagement counters on create
	item.Views = 0
	item.Likes = 0
	item.Rating = 0
	item.CreatedAt = time.Now().UTC()
	item.UpdatedAt = item.CreatedAt

	if _, err := coll.InsertOne(r.Context(), item); err != nil {
		utils.SendErrorResponse(w, http.StatusInternalServerError, "Failed to create content")
		return
	}

	audit.LogContentCreate(r.Context(), contentType, item.ContentID, item.Title.En)
	m := mq.Index{EntityType: contentType, EntityId: item.ContentID, Action: "POST"}
	go mq.Emit("content-created", m)

	utils.SendJSONResponse(w, http.StatusCreated, item)
}

// GetContent handles GET /api/content/:type/:id.
func GetContent(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	coll, ok := collectionFor(ps.ByName("type"))
	if !ok {
		utils.SendErrorResponse(w, http.StatusBadRequest, "Unknown content type")
		return
	}

	var item structs.ContentItem
	err := coll.FindOne(r.Context(), bson.M{"contentid": ps.ByName("id")}).Decode(&item)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.SendErrorResponse(w, http.StatusNotFound, "Content not found")
			return
		}
		utils.SendErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	utils.SendJSONResponse(w, http.StatusOK, item)
}

// GetContents handles GET /api/content/:type with paging and an optional
// status filter.
func GetContents(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	coll, ok := collectionFor(ps.ByName("type"))
	if !ok {
		utils.SendErrorResponse(w, http.StatusBadRequest, "Unknown content type")
		return
	}

	page, limit := utils.ParsePagination(r, 20)
	skip := int64((page - 1) * limit)
	int64Limit := int64(limit)

	filter := bson.M{}
	if status := r.URL.Query().Get("status"); status != "" {
		filter["status"] = status
	}

	cursor, err := coll.Find(r.Context(), filter, &options.FindOptions{
		Skip:  &skip,
		Limit: &int64Limit,
		Sort:  bson.D{{Key: "created_at", Value: -1}},
	})
	if err != nil {
		utils.SendErrorResponse(w, http.StatusInternalServerError, "Failed to fetch content")
		return
	}
	defer cursor.Close(r.Context())

	var items []structs.ContentItem
	if err := cursor.All(r.Context(), &items); err != nil {
		utils.SendErrorResponse(w, http.StatusInternalServerError, "Failed to decode content")
		return
	}
	if items == nil {
		items = []structs.ContentItem{}
	}

	utils.SendJSONResponse(w, http.StatusOK, items)
}

// GetAllContent handles GET /api/content — the union listing across the
// three collections, newest first.
func GetAllContent(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var all []structs.ContentItem
	for _, contentType := range []string{"movie", "webseries", "shortfilm"} {
		coll, _ := collectionFor(contentType)
		items, err := listAll(r.Context(), coll)
		if err != nil {
			utils.SendErrorResponse(w, http.StatusInternalServerError, "Failed to fetch content")
			return
		}
		all = append(all, items...)
	}

	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	if all == nil {
		all = []structs.ContentItem{}
	}
	utils.SendJSONResponse(w, http.StatusOK, all)
}

func listAll(ctx context.Context, coll *mongo.Collection) ([]structs.ContentItem, error) {
	cursor, err := coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var items []structs.ContentItem
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// EditContent handles PUT /api/content/:type/:id. One read-modify-write:
// the submitted document replaces the mutable fields wholesale, nested
// sections included; updated_at is server-assigned. Last write wins.
func EditContent(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	contentType := ps.ByName("type")
	contentID := ps.ByName("id")
	coll, ok := collectionFor(contentType)
	if !ok {
		utils.SendErrorResponse(w, http.StatusBadRequest, "Unknown content type")
		return
	}

	var item structs.ContentItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "Invalid content data")
		return
	}
	if msg := validateItem(item); msg != "" {
		utils.SendErrorResponse(w, http.StatusBadRequest, msg)
		return
	}

	update := bson.M{
		"title":         item.Title,
		"description":   item.Description,
		"poster_url":    item.PosterURL,
		"thumbnail_url": item.ThumbnailURL,
		"backdrop_url":  item.BackdropURL,
		"video_url":     item.VideoURL,
		"trailer_url":   item.TrailerURL,
		"genres":        item.Genres,
		"language":      item.Language,
		"release_date":  item.ReleaseDate,
		"duration_mins": item.DurationMins,
		"premium":       item.Premium,
		"featured":      item.Featured,
		"trending":      item.Trending,
		"cast":          item.Cast,
		"crew":          item.Crew,
		"status":        item.Status,
		"updated_at":    time.Now().UTC(),
	}
	if contentType == "webseries" {
		update["seasons"] = item.Seasons
	}

	result, err := coll.UpdateOne(r.Context(), bson.M{"contentid": contentID}, bson.M{"$set": update})
	if err != nil {
		utils.SendErrorResponse(w, http.StatusInternalServerError, "Failed to update content")
		return
	}
	if result.MatchedCount == 0 {
		utils.SendErrorResponse(w, http.StatusNotFound, "Content not found")
		return
	}

	audit.LogContentUpdate(r.Context(), contentType, contentID, item.Title.En)
	m := mq.Index{EntityType: contentType, EntityId: contentID, Action: "PUT"}
	go mq.Emit("content-updated", m)

	var updated structs.ContentItem
	if err := coll.FindOne(r.Context(), bson.M{"contentid": contentID}).Decode(&updated); err != nil {
		utils.SendErrorResponse(w, http.StatusInternalServerError, "Failed to fetch updated content")
		return
	}
	utils.SendJSONResponse(w, http.StatusOK, updated)
}

// DeleteContent handles DELETE /api/content/:type/:id. A single document
// delete; the confirmation dialog lives in the console.
func DeleteContent(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	contentType := ps.ByName("type")
	contentID := ps.ByName("id")
	coll, ok := collectionFor(contentType)
	if !ok {
		utils.SendErrorResponse(w, http.StatusBadRequest, "Unknown content type")
		return
	}

	result, err := coll.DeleteOne(r.Context(), bson.M{"contentid": contentID})
	if err != nil {
		utils.SendErrorResponse(w, http.StatusInternalServerError, "Failed to delete content")
		return
	}
	if result.DeletedCount == 0 {
		utils.SendErrorResponse(w, http.StatusNotFound, "Content not found")
		return
	}

	audit.LogContentDelete(r.Context(), contentType, contentID)
	m := mq.Index{EntityType: contentType, EntityId: contentID, Action: "DELETE"}
	go mq.Emit("content-deleted", m)

	utils.SendJSONResponse(w, http.StatusOK, map[string]string{"message": "Content deleted successfully"})
}

// AddCast handles POST /api/content/:type/:id/cast.
func AddCast(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	coll, ok := collectionFor(ps.ByName("type"))
	if !ok {
		utils.SendErrorResponse(w, http.StatusBadRequest, "Unknown content type")
		return
	}
	contentID := ps.ByName("id")

	var member structs.CastMember
	if err := json.NewDecoder(r.Body).Decode(&member); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "Invalid cast data")
		return
	}
	if member.Name == "" {
		utils.SendErrorResponse(w, http.StatusBadRequest, "Name is required")
		return
	}
	member.ID = utils.GenerateID(10)

	result, err := coll.UpdateOne(r.Context(),
		bson.M{"contentid": contentID},
		bson.M{"$push": bson.M{"cast": member}, "$set": bson.M{"updated_at": time.Now().UTC()}},
	)
	if err != nil {
		utils.SendErrorResponse(w, http.StatusInternalServerError, "Failed to add cast member")
		return
	}
	if result.MatchedCount == 0 {
		utils.SendErrorResponse(w, http.StatusNotFound, "Content not found")
		return
	}

	audit.LogCastAdd(r.Context(), contentID, member.Name)

	utils.SendJSONResponse(w, http.StatusCreated, member)
}

// AddCrew handles POST /api/content/:type/:id/crew.
func AddCrew(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	coll, ok := collectionFor(ps.ByName("type"))
	if !ok {
		utils.SendErrorResponse(w, http.StatusBadRequest, "Unknown content type")
		return
	}
	contentID := ps.ByName("id")

	var member structs.CrewMember
	if err := json.NewDecoder(r.Body).Decode(&member); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "Invalid crew data")
		return
	}
	if member.Name == "" {
		utils.SendErrorResponse(w, http.StatusBadRequest, "Name is required")
		return
	}
	member.ID = utils.GenerateID(10)

	result, err := coll.UpdateOne(r.Context(),
		bson.M{"contentid": contentID},
		bson.M{"$push": bson.M{"crew": member}, "$set": bson.M{"updated_at": time.Now().UTC()}},
	)
	if err != nil {
		utils.SendErrorResponse(w, http.StatusInternalServerError, "Failed to add crew member")
		return
	}
	if result.MatchedCount == 0 {
		utils.SendErrorResponse(w, http.StatusNotFound, "Content not found")
		return
	}

	audit.LogCrewAdd(r.Context(), contentID, member.Name)

	utils.SendJSONResponse(w, http.StatusCreated, member)
}

// AddEpisode handles POST /api/content/webseries/:id/seasons/:seasonid/episodes.
func AddEpisode(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	seriesID := ps.ByName("id")
	seasonID := ps.ByName("seasonid")

	var episode structs.Episode
	if err := json.NewDecoder(r.Body).Decode(&episode); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "Invalid episode data")
		return
	}
	if episode.Title.En == "" {
		utils.SendErrorResponse(w, http.StatusBadRequest, "Episode title is required")
		return
	}
	episode.EpisodeID = utils.GenerateID(12)

	result, err := db.WebseriesCollection.UpdateOne(r.Context(),
		bson.M{"contentid": seriesID, "seasons.seasonid": seasonID},
		bson.M{
			"$push": bson.M{"seasons.$.episodes": episode},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		},
	)
	if err != nil {
		utils.SendErrorResponse(w, http.StatusInternalServerError, "Failed to add episode")
		return
	}
	if result.MatchedCount == 0 {
		utils.SendErrorResponse(w, http.StatusNotFound, "Series or season not found")
		return
	}

	audit.LogEpisodeAdd(r.Context(), seriesID, episode.EpisodeID)

	utils.SendJSONResponse(w, http.StatusCreated, episode)
}
