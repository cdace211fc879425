package handlers

import (
	"net/http"

	"github.com/Dias221467/streamify/internal/models"
	"github.com/Dias221467/streamify/internal/services"
)

type FollowHandler struct {
	Service *services.RelationshipService
}

func NewFollowHandler(service *services.RelationshipService) *FollowHandler {
	return &FollowHandler{Service: service}
}

// POST /follows/{userId}/toggle
func (h *FollowHandler) ToggleFollowHandler(w http.ResponseWriter, r *http.Request) {
	actor, err := currentUser(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	target, err := pathID(r, "userId")
	if err != nil {
		respondError(w, r, err)
		return
	}

	res, err := h.Service.Toggle(r.Context(), actor, target)
	if err != nil {
		respondError(w, r, err)
		return
	}

	message := "User unfollowed successfully"
	if res.Active {
		message = "User followed successfully"
	}
	respond(w, http.StatusOK, map[string]interface{}{
		"isFollowing":    res.Active,
		"followersCount": res.Count,
	}, message)
}

// GET /follows/check/{userId}
func (h *FollowHandler) CheckFollowHandler(w http.ResponseWriter, r *http.Request) {
	actor, err := currentUser(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	target, err := pathID(r, "userId")
	if err != nil {
		respondError(w, r, err)
		return
	}

	ok, err := h.Service.Check(r.Context(), actor, target)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, map[string]bool{"isFollowing": ok}, "Follow status fetched")
}

// GET /follows/{userId}/followers
func (h *FollowHandler) GetFollowersHandler(w http.ResponseWriter, r *http.Request) {
	listConnections(w, r, h.Service, "userId", models.Inbound, "Followers fetched successfully")
}

// GET /follows/{userId}/following
func (h *FollowHandler) GetFollowingHandler(w http.ResponseWriter, r *http.Request) {
	listConnections(w, r, h.Service, "userId", models.Outbound, "Following fetched successfully")
}

type SubscriptionHandler struct {
	Service *services.RelationshipService
}

func NewSubscriptionHandler(service *services.RelationshipService) *SubscriptionHandler {
	return &SubscriptionHandler{Service: service}
}

// POST /subscriptions/{channelId}/toggle
func (h *SubscriptionHandler) ToggleSubscriptionHandler(w http.ResponseWriter, r *http.Request) {
	actor, err := currentUser(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	channel, err := pathID(r, "channelId")
	if err != nil {
		respondError(w, r, err)
		return
	}

	res, err := h.Service.Toggle(r.Context(), actor, channel)
	if err != nil {
		respondError(w, r, err)
		return
	}

	message := "Unsubscribed successfully"
	if res.Active {
		message = "Subscribed successfully"
	}
	respond(w, http.StatusOK, map[string]interface{}{
		"isSubscribed":     res.Active,
		"subscribersCount": res.Count,
	}, message)
}

// GET /subscriptions/check/{channelId}
func (h *SubscriptionHandler) CheckSubscriptionHandler(w http.ResponseWriter, r *http.Request) {
	actor, err := currentUser(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	channel, err := pathID(r, "channelId")
	if err != nil {
		respondError(w, r, err)
		return
	}

	ok, err := h.Service.Check(r.Context(), actor, channel)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, map[string]bool{"isSubscribed": ok}, "Subscription status fetched")
}

// GET /subscriptions/{channelId}/subscribers
func (h *SubscriptionHandler) GetSubscribersHandler(w http.ResponseWriter, r *http.Request) {
	listConnections(w, r, h.Service, "channelId", models.Inbound, "Subscribers fetched successfully")
}

// GET /subscriptions/{userId}/channels
func (h *SubscriptionHandler) GetSubscribedChannelsHandler(w http.ResponseWriter, r *http.Request) {
	listConnections(w, r, h.Service, "userId", models.Outbound, "Subscribed channels fetched successfully")
}

func listConnections(w http.ResponseWriter, r *http.Request, svc *services.RelationshipService, param string, dir models.Direction, message string) {
	subject, err := pathID(r, param)
	if err != nil {
		respondError(w, r, err)
		return
	}
	page, limit, err := pagination(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	res, err := svc.List(r.Context(), subject, dir, page, limit)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, res, message)
}
