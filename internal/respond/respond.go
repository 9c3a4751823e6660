// Package respond writes JSON responses and maps classified errors to them.
package respond

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/hlog"

	"github.com/AnshRaj112/journal-backend/internal/apperr"
)

// ErrorResponse is the failure body on resource routes.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// AuthErrorResponse is the failure body on /auth routes.
type AuthErrorResponse struct {
	Error string `json:"error"`
}

// JSON writes v with the given status code.
func JSON(w http.ResponseWriter, r *http.Request, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("failed to encode JSON response")
	}
}

// Error writes err as {success:false, error}. Errors that are not
// classified become a 500 carrying fallback.
func Error(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	e := classify(r, err, fallback)
	JSON(w, r, e.HTTPStatus(), ErrorResponse{Success: false, Error: e.Message})
}

// AuthError writes err as {error}.
func AuthError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	e := classify(r, err, fallback)
	JSON(w, r, e.HTTPStatus(), AuthErrorResponse{Error: e.Message})
}

// classify resolves err and logs the full cause of internal failures. The
// cause never reaches the response body.
func classify(r *http.Request, err error, fallback string) *apperr.Error {
	e := apperr.From(err, fallback)
	if e.Kind == apperr.KindInternal {
		hlog.FromRequest(r).Error().Err(e.Err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg(e.Message)
	}
	return e
}
