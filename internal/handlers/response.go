package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/Dias221467/streamify/internal/apperrors"
	"github.com/Dias221467/streamify/pkg/logger"
	"github.com/Dias221467/streamify/pkg/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// APIResponse is the success envelope every endpoint answers with.
type APIResponse struct {
	StatusCode int         `json:"statusCode"`
	Data       interface{} `json:"data"`
	Message    string      `json:"message"`
	Success    bool        `json:"success"`
}

// APIError is the failure envelope.
type APIError struct {
	StatusCode int                    `json:"statusCode"`
	Message    string                 `json:"message"`
	Errors     []apperrors.FieldError `json:"errors,omitempty"`
	Success    bool                   `json:"success"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report field errors under their JSON names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Log.WithError(err).Error("Failed to encode response")
	}
}

func respond(w http.ResponseWriter, status int, data interface{}, message string) {
	writeJSON(w, status, APIResponse{StatusCode: status, Data: data, Message: message, Success: true})
}

// respondError renders any error. Internal causes are logged, never sent.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := apperrors.StatusCode(err)
	entry := logger.Log.WithFields(logrus.Fields{
		"method": r.Method,
		"path":   r.URL.Path,
		"status": status,
	})
	if status >= http.StatusInternalServerError {
		entry.WithError(err).Error("Request failed")
	} else {
		entry.Debugf("Request rejected: %v", err)
	}

	writeJSON(w, status, APIError{
		StatusCode: status,
		Message:    apperrors.PublicMessage(err),
		Errors:     apperrors.FieldErrors(err),
		Success:    false,
	})
}

// currentUser returns the authenticated caller's id.
func currentUser(r *http.Request) (primitive.ObjectID, error) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		return primitive.NilObjectID, apperrors.Unauthorized("Unauthorized request")
	}
	id, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return primitive.NilObjectID, apperrors.Unauthorized("Invalid token subject")
	}
	return id, nil
}

// pathID parses a hex ObjectID route variable.
func pathID(r *http.Request, name string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)[name])
	if err != nil {
		return primitive.NilObjectID, apperrors.Validation("Invalid "+name,
			apperrors.FieldError{Field: name, Message: "must be a valid id"})
	}
	return id, nil
}

// pagination reads ?page and ?limit. Missing values fall through to the
// service defaults; malformed ones are rejected.
func pagination(r *http.Request) (page, limit int, err error) {
	if page, err = queryInt(r, "page"); err != nil {
		return 0, 0, err
	}
	if limit, err = queryInt(r, "limit"); err != nil {
		return 0, 0, err
	}
	return page, limit, nil
}

func queryInt(r *http.Request, key string) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, apperrors.Validation("Invalid "+key,
			apperrors.FieldError{Field: key, Message: "must be a non-negative integer"})
	}
	return n, nil
}

// queryTime accepts RFC 3339 timestamps or plain YYYY-MM-DD dates (UTC).
func queryTime(r *http.Request, key string) (time.Time, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	return time.Time{}, apperrors.Validation("Invalid "+key,
		apperrors.FieldError{Field: key, Message: "must be an RFC 3339 timestamp or YYYY-MM-DD date"})
}

// decodeBody decodes and validates a JSON body. An empty body is accepted
// when optional is set and leaves dst untouched.
func decodeBody(r *http.Request, dst interface{}, optional bool) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if optional && errors.Is(err, io.EOF) {
			return nil
		}
		return apperrors.Validation("Invalid request body")
	}
	if err := validate.Struct(dst); err != nil {
		return validationError(err)
	}
	return nil
}

func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperrors.Validation("Invalid request body")
	}
	fields := make([]apperrors.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, apperrors.FieldError{Field: fe.Field(), Message: describeTag(fe)})
	}
	return apperrors.Validation("Validation failed", fields...)
}

func describeTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "required_with":
		return "is required with " + fe.Param()
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	case "min":
		return "must contain at least " + fe.Param() + " item(s)"
	case "max":
		return "must contain at most " + fe.Param() + " item(s)"
	case "mongodb":
		return "must be a valid id"
	default:
		return "is invalid"
	}
}

// parseIDs converts validated hex strings to ObjectIDs.
func parseIDs(raw []string) []primitive.ObjectID {
	ids := make([]primitive.ObjectID, 0, len(raw))
	for _, s := range raw {
		if id, err := primitive.ObjectIDFromHex(s); err == nil {
			ids = append(ids, id)
		}
	}
	return ids
}
