package cdn

import (
	"encoding/json"
	"net/http"
	"time"

	"cineadmin/audit"
	"cineadmin/db"
	"cineadmin/rdx"
	"cineadmin/structs"
	"cineadmin/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const settingsCacheTTL = 60 * time.Second

// GetCDN returns the resolved cdn settings (stored over defaults).
func GetCDN(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if cached, err := rdx.RdxGet("settings:cdn"); err == nil && cached != "" {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(cached))
		return
	}

	settings := GetCDNSettings(r.Context())

	if payload, err := json.Marshal(settings); err == nil {
		rdx.RdxSetWithTTL("settings:cdn", string(payload), settingsCacheTTL)
	}
	utils.SendJSONResponse(w, http.StatusOK, settings)
}

// UpdateCDN upserts the cdn settings document.
func UpdateCDN(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var settings structs.CDNSettings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "Invalid input")
		return
	}
	settings.UpdatedAt = time.Now().UTC()

	upsert := true
	_, err := db.SettingsCollection.UpdateOne(
		r.Context(),
		bson.M{"_id": "cdn"},
		bson.M{"$set": settings},
		&options.UpdateOptions{Upsert: &upsert},
	)
	if err != nil {
		utils.SendErrorResponse(w, http.StatusInternalServerError, "Failed to save settings")
		return
	}

	rdx.RdxDel("settings:cdn")
	audit.LogSettingsUpdate(r.Context(), "cdn")

	utils.SendJSONResponse(w, http.StatusOK, settings)
}

// GetEncoding returns the resolved encoding settings.
func GetEncoding(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if cached, err := rdx.RdxGet("settings:encoding"); err == nil && cached != "" {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(cached))
		return
	}

	settings := GetEncodingSettings(r.Context())

	if payload, err := json.Marshal(settings); err == nil {
		rdx.RdxSetWithTTL("settings:encoding", string(payload), settingsCacheTTL)
	}
	utils.SendJSONResponse(w, http.StatusOK, settings)
}

// UpdateEncoding upserts the encoding settings document.
func UpdateEncoding(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var settings structs.EncodingSettings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "Invalid input")
		return
	}
	settings.UpdatedAt = time.Now().UTC()

	upsert := true
	_, err := db.SettingsCollection.UpdateOne(
		r.Context(),
		bson.M{"_id": "encoding"},
		bson.M{"$set": settings},
		&options.UpdateOptions{Upsert: &upsert},
	)
	if err != nil {
		utils.SendErrorResponse(w, http.StatusInternalServerError, "Failed to save settings")
		return
	}

	rdx.RdxDel("settings:encoding")
	audit.LogSettingsUpdate(r.Context(), "encoding")

	utils.SendJSONResponse(w, http.StatusOK, settings)
}

// GetQuality resolves one named resolution against the configured ceiling.
func GetQuality(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	enc := GetEncodingSettings(r.Context())
	preset := GetQualitySettings(ps.ByName("resolution"), enc)
	utils.SendJSONResponse(w, http.StatusOK, preset)
}
