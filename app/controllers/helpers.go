// Package controllers holds the HTTP handlers. Controllers bind and
// validate input, call one service method, and render the result; every
// error funnels through response.AppError.
package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/shashiranjanraj/vypar/pkg/apperr"
	"github.com/shashiranjanraj/vypar/pkg/auth"
)

// pathID parses a numeric URL parameter.
func pathID(r *http.Request, name string) (uint, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, apperr.Validation([]string{name + ": must be a positive integer"})
	}
	return uint(id), nil
}

// pageParams reads ?page= and ?limit= with zero meaning "use defaults".
func pageParams(r *http.Request) (page, limit int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	return page, limit
}

// identity returns the authenticated identity. Routes behind rbac.Authorize
// always have one; the error covers misconfigured routes.
func identity(r *http.Request) (auth.Identity, error) {
	id, ok := auth.IdentityFromCtx(r.Context())
	if !ok {
		return auth.Identity{}, apperr.Unauthenticated("authentication required")
	}
	return id, nil
}
