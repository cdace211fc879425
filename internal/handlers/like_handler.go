package handlers

import (
	"net/http"

	"github.com/Dias221467/streamify/internal/services"
)

type LikeHandler struct {
	Service *services.LikeService
}

func NewLikeHandler(service *services.LikeService) *LikeHandler {
	return &LikeHandler{Service: service}
}

// POST /likes/tweets/{tweetId}/toggle
func (h *LikeHandler) ToggleTweetLikeHandler(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	tweetID, err := pathID(r, "tweetId")
	if err != nil {
		respondError(w, r, err)
		return
	}

	res, err := h.Service.ToggleTweetLike(r.Context(), user, tweetID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	message := "Tweet unliked"
	if res.Active {
		message = "Tweet liked"
	}
	respond(w, http.StatusOK, map[string]interface{}{
		"isLiked":    res.Active,
		"likesCount": res.Count,
	}, message)
}
