package handlers

import (
	"net/http"

	"github.com/Dias221467/streamify/internal/services"
)

type HistoryHandler struct {
	Service *services.HistoryService
}

func NewHistoryHandler(service *services.HistoryService) *HistoryHandler {
	return &HistoryHandler{Service: service}
}

type watchRequest struct {
	PlaybackTimestamp *float64 `json:"playbackTimestamp" validate:"omitempty,gte=0"`
	VideoDuration     *float64 `json:"videoDuration" validate:"omitempty,gte=0"`
}

// removeVideosRequest is shared by the history and watch-later bulk removals.
type removeVideosRequest struct {
	VideoIDs []string `json:"videoIds" validate:"required,min=1,max=1000,dive,mongodb"`
}

// POST /history/add/{videoId}
func (h *HistoryHandler) AddToHistoryHandler(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	videoID, err := pathID(r, "videoId")
	if err != nil {
		respondError(w, r, err)
		return
	}
	var req watchRequest
	if err := decodeBody(r, &req, true); err != nil {
		respondError(w, r, err)
		return
	}

	item, err := h.Service.AddToHistory(r.Context(), user, videoID, services.WatchInput{
		PlaybackTimestamp: req.PlaybackTimestamp,
		VideoDuration:     req.VideoDuration,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, item, "Video added to history")
}

// GET /history?page=&limit=
func (h *HistoryHandler) GetHistoryHandler(w http.ResponseWriter, r *http.Request) {
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

	res, err := h.Service.GetHistory(r.Context(), user, page, limit)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, res, "Watch history fetched successfully")
}

// DELETE /history/{videoId}
func (h *HistoryHandler) RemoveFromHistoryHandler(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	videoID, err := pathID(r, "videoId")
	if err != nil {
		respondError(w, r, err)
		return
	}

	if err := h.Service.RemoveFromHistory(r.Context(), user, videoID); err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, nil, "Video removed from history")
}

// POST /history/remove
func (h *HistoryHandler) RemoveManyFromHistoryHandler(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	var req removeVideosRequest
	if err := decodeBody(r, &req, false); err != nil {
		respondError(w, r, err)
		return
	}

	n, err := h.Service.RemoveManyFromHistory(r.Context(), user, parseIDs(req.VideoIDs))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, map[string]int{"removedCount": n}, "Videos removed from history")
}

// DELETE /history
func (h *HistoryHandler) ClearHistoryHandler(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	if err := h.Service.ClearHistory(r.Context(), user); err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, nil, "Watch history cleared")
}
