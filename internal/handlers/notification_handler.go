package handlers

import (
	"net/http"
	"strconv"

	"github.com/Dias221467/streamify/internal/apperrors"
	"github.com/Dias221467/streamify/internal/models"
	"github.com/Dias221467/streamify/internal/services"
)

type NotificationHandler struct {
	Service *services.NotificationService
}

func NewNotificationHandler(service *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{Service: service}
}

func notificationFilter(r *http.Request) (models.NotificationFilter, error) {
	var f models.NotificationFilter
	q := r.URL.Query()
	if raw := q.Get("type"); raw != "" {
		t := models.NotificationType(raw)
		f.Type = &t
	}
	if raw := q.Get("read"); raw != "" {
		read, err := strconv.ParseBool(raw)
		if err != nil {
			return f, apperrors.Validation("Invalid read filter",
				apperrors.FieldError{Field: "read", Message: "must be true or false"})
		}
		f.Read = &read
	}
	return f, nil
}

// GET /notifications?type=&read=&page=&limit=
func (h *NotificationHandler) GetUserNotificationsHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	page, limit, err := pagination(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	filter, err := notificationFilter(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	notifications, err := h.Service.GetUserNotifications(r.Context(), userID, filter, page, limit)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, notifications, "Notifications fetched successfully")
}

// PATCH /notifications/{id}/read
func (h *NotificationHandler) MarkAsReadHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	notifID, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}

	if err := h.Service.MarkNotificationAsRead(r.Context(), userID, notifID); err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, nil, "Notification marked as read")
}

// PATCH /notifications/read-all
func (h *NotificationHandler) MarkAllAsReadHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	n, err := h.Service.MarkAllAsRead(r.Context(), userID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, map[string]int64{"modifiedCount": n}, "All notifications marked as read")
}

// DELETE /notifications/{id}
func (h *NotificationHandler) DeleteNotificationHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	notifID, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}

	if err := h.Service.DeleteNotification(r.Context(), userID, notifID); err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, nil, "Notification deleted")
}

// DELETE /notifications
func (h *NotificationHandler) ClearNotificationsHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	n, err := h.Service.ClearNotifications(r.Context(), userID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, map[string]int64{"deletedCount": n}, "Notifications cleared")
}
