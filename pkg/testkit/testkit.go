// Package testkit provides helpers for exercising HTTP handlers in tests:
// JSON request construction, handler execution against a recorder, and
// testify-based assertions on the standard response shapes.
package testkit

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Request builds an *http.Request with body marshalled as JSON.
// A nil body produces an empty request.
func Request(t *testing.T, method, target string, body interface{}) *http.Request {
	t.Helper()

	if body == nil {
		return httptest.NewRequest(method, target, nil)
	}

	data, err := json.Marshal(body)
	require.NoError(t, err, "marshal request body")

	req := httptest.NewRequest(method, target, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// WithBearer sets the Authorization header.
func WithBearer(req *http.Request, token string) *http.Request {
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

// Exec runs the handler against a fresh recorder and returns it.
func Exec(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// AssertStatus checks the recorded status code.
func AssertStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	assert.Equal(t, want, rec.Code, "HTTP status mismatch\nbody: %s", rec.Body.String())
}

// DecodeBody unmarshals the recorded body into dest.
func DecodeBody(t *testing.T, rec *httptest.ResponseRecorder, dest interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dest),
		"response is not valid JSON\nbody: %s", rec.Body.String())
}

// AssertErrorBody checks the standard error shape: status and error name
// must match, and timestamp/path must be present.
func AssertErrorBody(t *testing.T, rec *httptest.ResponseRecorder, status int, errorName string) {
	t.Helper()

	var body struct {
		Timestamp string   `json:"timestamp"`
		Status    int      `json:"status"`
		Error     string   `json:"error"`
		Message   string   `json:"message"`
		Path      string   `json:"path"`
		Errors    []string `json:"errors"`
	}
	DecodeBody(t, rec, &body)

	assert.Equal(t, status, rec.Code)
	assert.Equal(t, status, body.Status)
	assert.Equal(t, errorName, body.Error)
	assert.NotEmpty(t, body.Timestamp)
}
