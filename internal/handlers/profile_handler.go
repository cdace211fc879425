package handlers

import (
	"net/http"

	"github.com/Dias221467/streamify/internal/apperrors"
	"github.com/Dias221467/streamify/internal/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ProfileHandler struct {
	Service *services.ProfileService
}

func NewProfileHandler(service *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{Service: service}
}

// GET /users/{userId}/profile
func (h *ProfileHandler) GetProfileHandler(w http.ResponseWriter, r *http.Request) {
	viewer, err := currentUser(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	userID, err := pathID(r, "userId")
	if err != nil {
		respondError(w, r, err)
		return
	}

	profile, err := h.Service.GetProfile(r.Context(), viewer, userID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, profile, "Profile fetched successfully")
}

// GET /tweets?owner=&page=&limit=
func (h *ProfileHandler) GetTweetsHandler(w http.ResponseWriter, r *http.Request) {
	viewer, err := currentUser(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	page, limit, err := pagination(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	var owner *primitive.ObjectID
	if raw := r.URL.Query().Get("owner"); raw != "" {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			respondError(w, r, apperrors.Validation("Invalid owner",
				apperrors.FieldError{Field: "owner", Message: "must be a valid id"}))
			return
		}
		owner = &id
	}

	res, err := h.Service.ListTweets(r.Context(), viewer, owner, page, limit)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, res, "Tweets fetched successfully")
}

// GET /tweets/{tweetId}
func (h *ProfileHandler) GetTweetHandler(w http.ResponseWriter, r *http.Request) {
	viewer, err := currentUser(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	tweetID, err := pathID(r, "tweetId")
	if err != nil {
		respondError(w, r, err)
		return
	}

	tweet, err := h.Service.GetTweet(r.Context(), viewer, tweetID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, tweet, "Tweet fetched successfully")
}
