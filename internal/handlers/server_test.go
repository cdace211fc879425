package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Dias221467/streamify/internal/apperrors"
	"github.com/Dias221467/streamify/internal/models"
	"github.com/Dias221467/streamify/internal/repository/memstore"
	"github.com/Dias221467/streamify/internal/services"
	"github.com/Dias221467/streamify/pkg/jwt"
	"github.com/Dias221467/streamify/pkg/middleware"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
)

const testSecret = "handler-test-secret"

type testServer struct {
	t      *testing.T
	db     *memstore.DB
	router *mux.Router
}

// envelope decodes both the success and the failure response shapes.
type envelope struct {
	StatusCode int                    `json:"statusCode"`
	Data       json.RawMessage        `json:"data"`
	Message    string                 `json:"message"`
	Errors     []apperrors.FieldError `json:"errors"`
	Success    bool                   `json:"success"`
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	db := memstore.New()

	notifications := services.NewNotificationService(db.Notifications())
	outbox := services.NewOutbox(notifications, 0, 0)
	activity := services.NewActivityService(db.Activities(), db.Entities())

	h := &Handlers{
		Follow:       NewFollowHandler(services.NewFollowService(db.Follows(), db.Users(), outbox, activity)),
		Subscription: NewSubscriptionHandler(services.NewSubscriptionService(db.Subscriptions(), db.Users(), outbox, activity)),
		Activity:     NewActivityHandler(activity),
		Notification: NewNotificationHandler(notifications),
		History:      NewHistoryHandler(services.NewHistoryService(db.Histories(), db.Videos(), activity)),
		WatchLater:   NewWatchLaterHandler(services.NewWatchLaterService(db.WatchLater(), db.Videos(), outbox, activity)),
		Like:         NewLikeHandler(services.NewLikeService(db.TweetLikes(), db.Tweets(), db.Users(), outbox, activity)),
		Profile:      NewProfileHandler(services.NewProfileService(db.Profiles())),
	}

	router := mux.NewRouter()
	router.HandleFunc("/healthz", HealthHandler).Methods("GET")
	RegisterRoutes(router, h, middleware.AuthMiddleware(testSecret))
	router.Use(middleware.SessionMiddleware)

	return &testServer{t: t, db: db, router: router}
}

func (s *testServer) user(name string) models.User {
	return s.db.AddUser(models.User{Username: name, FullName: name, Email: name + "@example.com"})
}

func (s *testServer) video(title string, duration float64) models.Video {
	return s.db.AddVideo(models.Video{Title: title, Duration: duration, IsPublished: true, CreatedAt: time.Now().UTC()})
}

// request sends an authenticated request as the given user; a nil user
// sends no token. body is JSON encoded unless it is a string.
func (s *testServer) request(method, path string, as *models.User, body interface{}, headers ...string) (*httptest.ResponseRecorder, envelope) {
	s.t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if as != nil {
		token, err := jwt.GenerateToken(as.ID.Hex(), as.Email, as.Username, "user", testSecret, time.Hour)
		require.NoError(s.t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	var env envelope
	require.NoError(s.t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec, env
}

func decodeData(t *testing.T, env envelope, dst interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(env.Data, dst), string(env.Data))
}

func fieldNames(errs []apperrors.FieldError) []string {
	out := make([]string, len(errs))
	for i, e := range errs {
		out[i] = e.Field
	}
	return out
}
