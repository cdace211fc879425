package handlers

import (
	"net/http"
	"time"

	"github.com/Dias221467/streamify/internal/models"
	"github.com/Dias221467/streamify/internal/services"
)

type WatchLaterHandler struct {
	Service *services.WatchLaterService
}

func NewWatchLaterHandler(service *services.WatchLaterService) *WatchLaterHandler {
	return &WatchLaterHandler{Service: service}
}

// reminderRequest is used by both add and reminder updates. A null or
// absent remindAt means no reminder.
type reminderRequest struct {
	RemindAt *time.Time `json:"remindAt"`
}

// POST /watchlater/{videoId}
func (h *WatchLaterHandler) AddToWatchLaterHandler(w http.ResponseWriter, r *http.Request) {
	owner, err := currentUser(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	videoID, err := pathID(r, "videoId")
	if err != nil {
		respondError(w, r, err)
		return
	}
	var req reminderRequest
	if err := decodeBody(r, &req, true); err != nil {
		respondError(w, r, err)
		return
	}

	item, err := h.Service.AddToWatchLater(r.Context(), owner, videoID, req.RemindAt)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusCreated, item, "Video added to watch later")
}

// GET /watchlater?q=&window=&sort=&page=&limit=
func (h *WatchLaterHandler) GetWatchLaterHandler(w http.ResponseWriter, r *http.Request) {
	owner, err := currentUser(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	page, limit, err := pagination(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	q := r.URL.Query()
	query := models.WatchLaterQuery{
		Search: q.Get("q"),
		Window: q.Get("window"),
		Sort:   q.Get("sort"),
	}
	res, err := h.Service.GetWatchLater(r.Context(), owner, query, page, limit)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, res, "Watch later fetched successfully")
}

// DELETE /watchlater/{videoId}
func (h *WatchLaterHandler) RemoveFromWatchLaterHandler(w http.ResponseWriter, r *http.Request) {
	owner, err := currentUser(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	videoID, err := pathID(r, "videoId")
	if err != nil {
		respondError(w, r, err)
		return
	}

	if err := h.Service.RemoveFromWatchLater(r.Context(), owner, videoID); err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, nil, "Video removed from watch later")
}

// POST /watchlater/remove
func (h *WatchLaterHandler) RemoveManyFromWatchLaterHandler(w http.ResponseWriter, r *http.Request) {
	owner, err := currentUser(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	var req removeVideosRequest
	if err := decodeBody(r, &req, false); err != nil {
		respondError(w, r, err)
		return
	}

	n, err := h.Service.RemoveManyFromWatchLater(r.Context(), owner, parseIDs(req.VideoIDs))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, map[string]int{"removedCount": n}, "Videos removed from watch later")
}

// DELETE /watchlater/clear
func (h *WatchLaterHandler) ClearWatchLaterHandler(w http.ResponseWriter, r *http.Request) {
	owner, err := currentUser(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	if err := h.Service.ClearWatchLater(r.Context(), owner); err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, nil, "Watch later cleared")
}

// PATCH /watchlater/{videoId}/reminder
func (h *WatchLaterHandler) SetReminderHandler(w http.ResponseWriter, r *http.Request) {
	owner, err := currentUser(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	videoID, err := pathID(r, "videoId")
	if err != nil {
		respondError(w, r, err)
		return
	}
	var req reminderRequest
	if err := decodeBody(r, &req, false); err != nil {
		respondError(w, r, err)
		return
	}

	entry, err := h.Service.SetReminder(r.Context(), owner, videoID, req.RemindAt)
	if err != nil {
		respondError(w, r, err)
		return
	}
	message := "Reminder set"
	if req.RemindAt == nil {
		message = "Reminder cleared"
	}
	respond(w, http.StatusOK, entry, message)
}
