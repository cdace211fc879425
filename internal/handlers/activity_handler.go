package handlers

import (
	"net/http"

	"github.com/Dias221467/streamify/internal/models"
	"github.com/Dias221467/streamify/internal/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ActivityHandler struct {
	Service *services.ActivityService
}

func NewActivityHandler(service *services.ActivityService) *ActivityHandler {
	return &ActivityHandler{Service: service}
}

type recordActivityRequest struct {
	Type       string                 `json:"type" validate:"required"`
	EntityType string                 `json:"entityType" validate:"required_with=EntityID"`
	EntityID   string                 `json:"entityId" validate:"omitempty,mongodb"`
	Metadata   map[string]interface{} `json:"metadata"`
}

// POST /activity
func (h *ActivityHandler) RecordActivityHandler(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	var req recordActivityRequest
	if err := decodeBody(r, &req, false); err != nil {
		respondError(w, r, err)
		return
	}

	var entity *models.EntityRef
	if req.EntityID != "" {
		id, _ := primitive.ObjectIDFromHex(req.EntityID)
		entity = models.NewEntityRef(models.EntityKind(req.EntityType), id)
	}

	if err := h.Service.Record(r.Context(), user, models.ActivityType(req.Type), entity, req.Metadata); err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusCreated, nil, "Activity recorded")
}

// GET /activity?type=&startDate=&endDate=&page=&limit=
func (h *ActivityHandler) GetActivitiesHandler(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	page, limit, err := pagination(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	start, err := queryTime(r, "startDate")
	if err != nil {
		respondError(w, r, err)
		return
	}
	end, err := queryTime(r, "endDate")
	if err != nil {
		respondError(w, r, err)
		return
	}

	filter := models.ActivityFilter{
		User:      user,
		Type:      models.ActivityType(r.URL.Query().Get("type")),
		StartDate: start,
		EndDate:   end,
	}
	res, err := h.Service.GetActivities(r.Context(), filter, page, limit)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, res, "Activities fetched successfully")
}

// GET /activity/summary?days=
func (h *ActivityHandler) GetSummaryHandler(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	days, err := queryInt(r, "days")
	if err != nil {
		respondError(w, r, err)
		return
	}

	summary, err := h.Service.GetSummary(r.Context(), user, days)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, summary, "Activity summary fetched successfully")
}

// GET /activity/types
func (h *ActivityHandler) GetTypesHandler(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, h.Service.Types(), "Activity types fetched successfully")
}

// DELETE /activity/{id}
func (h *ActivityHandler) DeleteActivityHandler(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}

	if err := h.Service.DeleteActivity(r.Context(), user, id); err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, nil, "Activity deleted")
}

// DELETE /activity?type=
func (h *ActivityHandler) PurgeActivitiesHandler(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	n, err := h.Service.PurgeActivities(r.Context(), user, models.ActivityType(r.URL.Query().Get("type")))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, map[string]int64{"deletedCount": n}, "Activities cleared")
}
