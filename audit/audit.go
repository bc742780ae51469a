package audit

import (
	"context"
	"fmt"
	"log"
	"time"

	"cineadmin/db"
	"cineadmin/middleware"
	"cineadmin/structs"
	"cineadmin/utils"
)

// The two sinks are independent and best-effort. Package vars so tests can
// swap them for fakes; the defaults write to Mongo.
var (
	insertSystem = func(doc structs.SystemLog) error {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_, err := db.SystemLogsCollection.InsertOne(ctx, doc)
		return err
	}
	insertActivity = func(doc structs.ActivityLog) error {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_, err := db.ActivityLogsCollection.InsertOne(ctx, doc)
		return err
	}
)

// ErrorEntries feeds error-level entries to the alerting worker. Sends are
// non-blocking; if nobody is draining, entries are dropped.
var ErrorEntries = make(chan structs.SystemLog, 64)

var anonymous = structs.Actor{UID: "anonymous", Name: "Unknown", Role: "unknown"}

func actorFromContext(ctx context.Context) structs.Actor {
	claims := middleware.ClaimsFromContext(ctx)
	if claims == nil || claims.UserID == "" {
		return anonymous
	}
	return structs.Actor{
		UID:   claims.UserID,
		Email: claims.Email,
		Name:  claims.Name,
		Role:  claims.Role,
	}
}

// Entry is one logical audit event.
type Entry struct {
	Action    Action
	Module    string
	SubModule string
	ItemID    string
	ItemType  string
	Details   string
	Status    string // success | error | warning
}

// Record writes the entry to both log collections. The writes are
// independent, unordered and best-effort: a failed insert is logged to the
// diagnostic channel and swallowed, never surfaced to the caller. No
// atomicity or deduplication between the two sinks.
func Record(ctx context.Context, e Entry) {
	if e.Status == "" {
		e.Status = "success"
	}
	actor := actorFromContext(ctx)
	now := time.Now().UTC()

	sys := structs.SystemLog{
		LogID:       utils.GenerateID(14),
		Action:      string(e.Action),
		Module:      e.Module,
		SubModule:   e.SubModule,
		PerformedBy: actor,
		Details:     e.Details,
		Status:      e.Status,
		Timestamp:   now,
	}
	act := structs.ActivityLog{
		LogID:         utils.GenerateID(14),
		Action:        string(e.Action),
		Module:        e.Module,
		ItemID:        e.ItemID,
		ItemType:      e.ItemType,
		PerformerUID:  actor.UID,
		PerformerName: actor.Name,
		Status:        e.Status,
		Timestamp:     now,
	}

	if err := insertSystem(sys); err != nil {
		log.Printf("audit: system log write failed: %v", err)
	}
	if err := insertActivity(act); err != nil {
		log.Printf("audit: activity log write failed: %v", err)
	}

	if e.Status == "error" {
		select {
		case ErrorEntries <- sys:
		default:
			log.Println("audit: alert queue full, dropping error entry")
		}
	}
}

func LogImageUpload(ctx context.Context, module, fileName, url string) {
	Record(ctx, Entry{
		Action:   ActionImageUpload,
		Module:   module,
		ItemID:   fileName,
		ItemType: "image",
		Details:  fmt.Sprintf("Uploaded image %s (%s)", fileName, url),
	})
}

func LogImageDelete(ctx context.Context, module, url string) {
	Record(ctx, Entry{
		Action:   ActionImageDelete,
		Module:   module,
		ItemID:   url,
		ItemType: "image",
		Details:  "Deleted image " + url,
	})
}

func LogVideoUpload(ctx context.Context, module, fileName, url string) {
	Record(ctx, Entry{
		Action:   ActionVideoUpload,
		Module:   module,
		ItemID:   fileName,
		ItemType: "video",
		Details:  fmt.Sprintf("Uploaded video %s (%s)", fileName, url),
	})
}

func LogContentCreate(ctx context.Context, contentType, id, title string) {
	Record(ctx, Entry{
		Action:   ActionContentCreate,
		Module:   "content",
		ItemID:   id,
		ItemType: contentType,
		Details:  fmt.Sprintf("Created %s %q", contentType, title),
	})
}

func LogContentUpdate(ctx context.Context, contentType, id, title string) {
	Record(ctx, Entry{
		Action:   ActionContentUpdate,
		Module:   "content",
		ItemID:   id,
		ItemType: contentType,
		Details:  fmt.Sprintf("Updated %s %q", contentType, title),
	})
}

func LogContentDelete(ctx context.Context, contentType, id string) {
	Record(ctx, Entry{
		Action:   ActionContentDelete,
		Module:   "content",
		ItemID:   id,
		ItemType: contentType,
		Details:  fmt.Sprintf("Deleted %s %s", contentType, id),
	})
}

func LogCastAdd(ctx context.Context, contentID, name string) {
	Record(ctx, Entry{
		Action:    ActionCastAdd,
		Module:    "content",
		SubModule: "cast",
		ItemID:    contentID,
		ItemType:  "cast",
		Details:   fmt.Sprintf("Added cast member %q to %s", name, contentID),
	})
}

func LogCrewAdd(ctx context.Context, contentID, name string) {
	Record(ctx, Entry{
		Action:    ActionCrewAdd,
		Module:    "content",
		SubModule: "crew",
		ItemID:    contentID,
		ItemType:  "crew",
		Details:   fmt.Sprintf("Added crew member %q to %s", name, contentID),
	})
}

func LogEpisodeAdd(ctx context.Context, seriesID, episodeID string) {
	Record(ctx, Entry{
		Action:    ActionEpisodeAdd,
		Module:    "content",
		SubModule: "episodes",
		ItemID:    episodeID,
		ItemType:  "episode",
		Details:   fmt.Sprintf("Added episode %s to series %s", episodeID, seriesID),
	})
}

func LogNotificationSend(ctx context.Context, notificationID, details string) {
	Record(ctx, Entry{
		Action:   ActionNotificationSend,
		Module:   "notifications",
		ItemID:   notificationID,
		ItemType: "notification",
		Details:  details,
	})
}

func LogNotificationRead(ctx context.Context, notificationID string) {
	Record(ctx, Entry{
		Action:   ActionNotificationRead,
		Module:   "notifications",
		ItemID:   notificationID,
		ItemType: "notification",
		Details:  "Notification marked read",
	})
}

func LogNotificationDelete(ctx context.Context, notificationID string) {
	Record(ctx, Entry{
		Action:   ActionNotificationDelete,
		Module:   "notifications",
		ItemID:   notificationID,
		ItemType: "notification",
		Details:  "Notification deleted",
	})
}

func LogTemplateCreate(ctx context.Context, templateID, name string) {
	Record(ctx, Entry{
		Action:    ActionTemplateCreate,
		Module:    "notifications",
		SubModule: "templates",
		ItemID:    templateID,
		ItemType:  "template",
		Details:   fmt.Sprintf("Created template %q", name),
	})
}

func LogTemplateUpdate(ctx context.Context, templateID, name string) {
	Record(ctx, Entry{
		Action:    ActionTemplateUpdate,
		Module:    "notifications",
		SubModule: "templates",
		ItemID:    templateID,
		ItemType:  "template",
		Details:   fmt.Sprintf("Updated template %q", name),
	})
}

func LogTemplateDelete(ctx context.Context, templateID string) {
	Record(ctx, Entry{
		Action:    ActionTemplateDelete,
		Module:    "notifications",
		SubModule: "templates",
		ItemID:    templateID,
		ItemType:  "template",
		Details:   "Deleted template " + templateID,
	})
}

func LogSettingsUpdate(ctx context.Context, which string) {
	Record(ctx, Entry{
		Action:    ActionSettingsUpdate,
		Module:    "settings",
		SubModule: which,
		ItemID:    which,
		ItemType:  "settings",
		Details:   "Updated " + which + " settings",
	})
}

func LogError(ctx context.Context, module, details string) {
	Record(ctx, Entry{
		Action:  ActionError,
		Module:  module,
		Details: details,
		Status:  "error",
	})
}
