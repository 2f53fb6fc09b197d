// Package controllers contains the HTTP handlers. Each handler is a closure
// over its service dependencies and translates between JSON requests and
// service calls.
package controllers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	domainerrors "property-listing-service/errors"
	"property-listing-service/models"
)

type ContextKey string

// UserIDKey carries the authenticated caller's id through the request
// context.
const UserIDKey = ContextKey("userID")

// CallerID extracts the authenticated caller's id from the request context.
func CallerID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(UserIDKey).(string)
	return id, ok
}

// WriteJSON writes an enveloped JSON response.
func WriteJSON(w http.ResponseWriter, status int, body models.APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeError maps a domain error to its HTTP status and envelope. Dependency
// and internal failures are logged; client errors are not.
func writeError(w http.ResponseWriter, log *slog.Logger, err error) {
	var domainErr *domainerrors.Error
	if domainerrors.As(err, &domainErr) {
		if domainErr.HTTPStatus() >= http.StatusInternalServerError {
			log.Error("request failed", "code", domainErr.Code, "error", err)
		}
		WriteJSON(w, domainErr.HTTPStatus(), models.APIResponse{
			Success: false,
			Message: domainErr.Message,
			Errors:  domainErr.Details,
		})
		return
	}

	log.Error("unhandled error", "error", err)
	WriteJSON(w, http.StatusInternalServerError, models.APIResponse{
		Success: false,
		Message: "internal server error",
	})
}

// decodeJSON decodes the request body into dest, rejecting unknown fields.
func decodeJSON(r *http.Request, dest any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dest); err != nil {
		return domainerrors.Validation("invalid request body")
	}
	return nil
}

func unauthorized(w http.ResponseWriter) {
	WriteJSON(w, http.StatusUnauthorized, models.APIResponse{
		Success: false,
		Message: "missing caller identity",
	})
}
