// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/canonical/tenant-session-service/internal/types"
)

// ErrorResponse is the body returned on every failed request
type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// StatusFor maps the session error taxonomy to an HTTP status code, anything
// not part of it is an internal failure
func StatusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, types.ErrInvalidCredentials),
		errors.Is(err, types.ErrUnauthenticated),
		errors.Is(err, types.ErrTenantSessionExpired):
		return http.StatusUnauthorized
	case errors.Is(err, types.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, types.ErrMissingTenantContext):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// MessageFor returns the user facing message for err, internal failures never
// leak their cause
func MessageFor(err error) string {
	for _, known := range []error{
		types.ErrInvalidCredentials,
		types.ErrUnauthenticated,
		types.ErrForbidden,
		types.ErrTenantSessionExpired,
		types.ErrMissingTenantContext,
	} {
		if errors.Is(err, known) {
			return known.Error()
		}
	}

	return http.StatusText(http.StatusInternalServerError)
}

func WriteJSON(w http.ResponseWriter, status int, body interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	return json.NewEncoder(w).Encode(body)
}

// WriteError writes err using the shared error body shape
func WriteError(w http.ResponseWriter, err error) error {
	status := StatusFor(err)

	return WriteJSON(w, status, ErrorResponse{Status: status, Message: MessageFor(err)})
}

// WriteErrorMessage writes a failure with an explicit status and message
func WriteErrorMessage(w http.ResponseWriter, status int, message string) error {
	return WriteJSON(w, status, ErrorResponse{Status: status, Message: message})
}
