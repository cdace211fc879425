package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

// Handlers groups every HTTP handler the API serves.
type Handlers struct {
	Follow       *FollowHandler
	Subscription *SubscriptionHandler
	Activity     *ActivityHandler
	Notification *NotificationHandler
	History      *HistoryHandler
	WatchLater   *WatchLaterHandler
	Like         *LikeHandler
	Profile      *ProfileHandler
}

// RegisterRoutes mounts the API on router. auth guards every route it
// registers; literal paths are registered before their {id} siblings.
func RegisterRoutes(router *mux.Router, h *Handlers, auth mux.MiddlewareFunc) {
	followRoutes := router.PathPrefix("/follows").Subrouter()
	followRoutes.Use(auth)
	followRoutes.HandleFunc("/check/{userId}", h.Follow.CheckFollowHandler).Methods("GET")
	followRoutes.HandleFunc("/{userId}/toggle", h.Follow.ToggleFollowHandler).Methods("POST")
	followRoutes.HandleFunc("/{userId}/followers", h.Follow.GetFollowersHandler).Methods("GET")
	followRoutes.HandleFunc("/{userId}/following", h.Follow.GetFollowingHandler).Methods("GET")

	subscriptionRoutes := router.PathPrefix("/subscriptions").Subrouter()
	subscriptionRoutes.Use(auth)
	subscriptionRoutes.HandleFunc("/check/{channelId}", h.Subscription.CheckSubscriptionHandler).Methods("GET")
	subscriptionRoutes.HandleFunc("/{channelId}/toggle", h.Subscription.ToggleSubscriptionHandler).Methods("POST")
	subscriptionRoutes.HandleFunc("/{channelId}/subscribers", h.Subscription.GetSubscribersHandler).Methods("GET")
	subscriptionRoutes.HandleFunc("/{userId}/channels", h.Subscription.GetSubscribedChannelsHandler).Methods("GET")

	activityRoutes := router.PathPrefix("/activity").Subrouter()
	activityRoutes.Use(auth)
	activityRoutes.HandleFunc("", h.Activity.GetActivitiesHandler).Methods("GET")
	activityRoutes.HandleFunc("", h.Activity.RecordActivityHandler).Methods("POST")
	activityRoutes.HandleFunc("", h.Activity.PurgeActivitiesHandler).Methods("DELETE")
	activityRoutes.HandleFunc("/summary", h.Activity.GetSummaryHandler).Methods("GET")
	activityRoutes.HandleFunc("/types", h.Activity.GetTypesHandler).Methods("GET")
	activityRoutes.HandleFunc("/{id}", h.Activity.DeleteActivityHandler).Methods("DELETE")

	notificationRoutes := router.PathPrefix("/notifications").Subrouter()
	notificationRoutes.Use(auth)
	notificationRoutes.HandleFunc("", h.Notification.GetUserNotificationsHandler).Methods("GET")
	notificationRoutes.HandleFunc("", h.Notification.ClearNotificationsHandler).Methods("DELETE")
	notificationRoutes.HandleFunc("/read-all", h.Notification.MarkAllAsReadHandler).Methods("PATCH")
	notificationRoutes.HandleFunc("/{id}/read", h.Notification.MarkAsReadHandler).Methods("PATCH")
	notificationRoutes.HandleFunc("/{id}", h.Notification.DeleteNotificationHandler).Methods("DELETE")

	historyRoutes := router.PathPrefix("/history").Subrouter()
	historyRoutes.Use(auth)
	historyRoutes.HandleFunc("", h.History.GetHistoryHandler).Methods("GET")
	historyRoutes.HandleFunc("", h.History.ClearHistoryHandler).Methods("DELETE")
	historyRoutes.HandleFunc("/add/{videoId}", h.History.AddToHistoryHandler).Methods("POST")
	historyRoutes.HandleFunc("/remove", h.History.RemoveManyFromHistoryHandler).Methods("POST")
	historyRoutes.HandleFunc("/{videoId}", h.History.RemoveFromHistoryHandler).Methods("DELETE")

	watchLaterRoutes := router.PathPrefix("/watchlater").Subrouter()
	watchLaterRoutes.Use(auth)
	watchLaterRoutes.HandleFunc("", h.WatchLater.GetWatchLaterHandler).Methods("GET")
	watchLaterRoutes.HandleFunc("/clear", h.WatchLater.ClearWatchLaterHandler).Methods("DELETE")
	watchLaterRoutes.HandleFunc("/remove", h.WatchLater.RemoveManyFromWatchLaterHandler).Methods("POST")
	watchLaterRoutes.HandleFunc("/{videoId}", h.WatchLater.AddToWatchLaterHandler).Methods("POST")
	watchLaterRoutes.HandleFunc("/{videoId}", h.WatchLater.RemoveFromWatchLaterHandler).Methods("DELETE")
	watchLaterRoutes.HandleFunc("/{videoId}/reminder", h.WatchLater.SetReminderHandler).Methods("PATCH")

	likeRoutes := router.PathPrefix("/likes").Subrouter()
	likeRoutes.Use(auth)
	likeRoutes.HandleFunc("/tweets/{tweetId}/toggle", h.Like.ToggleTweetLikeHandler).Methods("POST")

	userRoutes := router.PathPrefix("/users").Subrouter()
	userRoutes.Use(auth)
	userRoutes.HandleFunc("/{userId}/profile", h.Profile.GetProfileHandler).Methods("GET")

	tweetRoutes := router.PathPrefix("/tweets").Subrouter()
	tweetRoutes.Use(auth)
	tweetRoutes.HandleFunc("", h.Profile.GetTweetsHandler).Methods("GET")
	tweetRoutes.HandleFunc("/{tweetId}", h.Profile.GetTweetHandler).Methods("GET")
}

// HealthHandler answers liveness probes.
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}
