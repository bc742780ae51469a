package controller

import (
	"encoding/json"
	"errors"
	"net/http"

	"cineadmin/audit"
	"cineadmin/globals"
	"cineadmin/mq"
	"cineadmin/service"
	"cineadmin/structs"
	"cineadmin/utils"

	"github.com/julienschmidt/httprouter"
)

type EventController struct {
	EventSvc *service.EventService
}

func NewEventController(eventSvc *service.EventService) *EventController {
	return &EventController{EventSvc: eventSvc}
}

func (ctrl *EventController) CreateEvent(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var event structs.Event
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "Invalid event data")
		return
	}

	requestingUserID, ok := r.Context().Value(globals.UserIDKey).(string)
	if !ok || requestingUserID == "" {
		utils.SendErrorResponse(w, http.StatusUnauthorized, "Invalid or missing user ID")
		return
	}

	created, err := ctrl.EventSvc.CreateEvent(r.Context(), event, requestingUserID)
	if err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	audit.Record(r.Context(), audit.Entry{
		Action:   audit.ActionContentCreate,
		Module:   "events",
		ItemID:   created.EventID,
		ItemType: "event",
		Details:  "Created event " + created.Title.En,
	})
	m := mq.Index{EntityType: "event", EntityId: created.EventID, Action: "POST"}
	go mq.Emit("event-created", m)

	utils.SendJSONResponse(w, http.StatusCreated, created)
}

func (ctrl *EventController) GetEvent(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	event, err := ctrl.EventSvc.GetEvent(r.Context(), ps.ByName("eventid"))
	if err != nil {
		utils.SendErrorResponse(w, http.StatusInternalServerError, "Failed to fetch event")
		return
	}
	if event == nil {
		utils.SendErrorResponse(w, http.StatusNotFound, "Event not found")
		return
	}
	utils.SendJSONResponse(w, http.StatusOK, event)
}

func (ctrl *EventController) GetEvents(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	page, limit := utils.ParsePagination(r, 20)

	events, err := ctrl.EventSvc.GetEvents(r.Context(), page, limit)
	if err != nil {
		utils.SendErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.SendJSONResponse(w, http.StatusOK, events)
}

func (ctrl *EventController) EditEvent(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	eventID := ps.ByName("eventid")

	var event structs.Event
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "Invalid event data")
		return
	}

	updated, err := ctrl.EventSvc.EditEvent(r.Context(), eventID, event)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			utils.SendErrorResponse(w, http.StatusNotFound, err.Error())
		} else {
			utils.SendErrorResponse(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	audit.Record(r.Context(), audit.Entry{
		Action:   audit.ActionContentUpdate,
		Module:   "events",
		ItemID:   eventID,
		ItemType: "event",
		Details:  "Updated event " + updated.Title.En,
	})
	m := mq.Index{EntityType: "event", EntityId: eventID, Action: "PUT"}
	go mq.Emit("event-updated", m)

	utils.SendJSONResponse(w, http.StatusOK, updated)
}

func (ctrl *EventController) DeleteEvent(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	eventID := ps.ByName("eventid")

	err := ctrl.EventSvc.DeleteEvent(r.Context(), eventID)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			utils.SendErrorResponse(w, http.StatusNotFound, err.Error())
		} else {
			utils.SendErrorResponse(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	audit.Record(r.Context(), audit.Entry{
		Action:   audit.ActionContentDelete,
		Module:   "events",
		ItemID:   eventID,
		ItemType: "event",
		Details:  "Deleted event " + eventID,
	})
	m := mq.Index{EntityType: "event", EntityId: eventID, Action: "DELETE"}
	go mq.Emit("event-deleted", m)

	utils.SendJSONResponse(w, http.StatusOK, map[string]string{"message": "Event deleted successfully"})
}
