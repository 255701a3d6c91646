// Package response renders JSON responses and is the single place where
// typed service errors become HTTP status codes.
package response

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/shashiranjanraj/vypar/pkg/apperr"
	"github.com/shashiranjanraj/vypar/pkg/logger"
	"github.com/shashiranjanraj/vypar/pkg/orm"
)

type envelope struct {
	Status int         `json:"status"`
	Data   interface{} `json:"data,omitempty"`
}

// errorBody is the wire shape of every error response.
type errorBody struct {
	Timestamp time.Time `json:"timestamp"`
	Status    int       `json:"status"`
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Path      string    `json:"path"`
	Errors    []string  `json:"errors,omitempty"` // "field: message" list, validation only
}

func write(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body) //nolint:errcheck
}

// Success sends a 200 JSON response with data.
func Success(w http.ResponseWriter, data interface{}) {
	write(w, http.StatusOK, envelope{Status: http.StatusOK, Data: data})
}

// Created sends a 201 JSON response with data.
func Created(w http.ResponseWriter, data interface{}) {
	write(w, http.StatusCreated, envelope{Status: http.StatusCreated, Data: data})
}

// NoContent sends an empty 204 response.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// Paginated sends a 200 response with data and pagination metadata.
func Paginated(w http.ResponseWriter, data interface{}, pagination orm.Pagination) {
	body := map[string]interface{}{
		"items":      data,
		"pagination": pagination,
	}
	write(w, http.StatusOK, envelope{Status: http.StatusOK, Data: body})
}

// AppError translates a typed service error into the standard error body.
// Every error path in every controller funnels through here; unrecognized
// errors render as 500 and are logged with their cause.
func AppError(w http.ResponseWriter, r *http.Request, err error) {
	e := apperr.From(err)

	if e.Status() >= http.StatusInternalServerError {
		logger.WithCtx(r.Context()).Error("request failed",
			"path", r.URL.Path,
			"error", e.Error(),
		)
	}

	write(w, e.Status(), errorBody{
		Timestamp: time.Now().UTC(),
		Status:    e.Status(),
		Error:     e.Name(),
		Message:   e.Message,
		Path:      r.URL.Path,
		Errors:    e.Fields,
	})
}

// Error sends a JSON error response with an explicit status and message.
// Prefer AppError for service errors; this exists for middleware that fails
// before any typed error is available.
func Error(w http.ResponseWriter, status int, message string) {
	write(w, status, errorBody{
		Timestamp: time.Now().UTC(),
		Status:    status,
		Error:     http.StatusText(status),
		Message:   message,
	})
}

// Unauthorized sends a 401.
func Unauthorized(w http.ResponseWriter, message string) {
	Error(w, http.StatusUnauthorized, message)
}

// Forbidden sends a 403.
func Forbidden(w http.ResponseWriter) {
	Error(w, http.StatusForbidden, "Forbidden")
}

// NotFound sends a 404.
func NotFound(w http.ResponseWriter) {
	Error(w, http.StatusNotFound, "Not found")
}
