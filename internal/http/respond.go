package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/cloudbr34k84/travel-app-sub000/internal/repository"
	"github.com/cloudbr34k84/travel-app-sub000/internal/service/auth"
	"github.com/cloudbr34k84/travel-app-sub000/internal/service/share"
	"github.com/cloudbr34k84/travel-app-sub000/internal/service/travel"
)

// writeJSON writes a JSON response with status code.
func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeMessage sends a `{message}` body.
func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

// decodeJSON parses a request body into dst, rejecting unknown fields so
// malformed payloads fail before any business logic runs.
func decodeJSON(req *http.Request, dst any) error {
	dec := json.NewDecoder(req.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// writeServiceError maps service-layer errors onto the HTTP error taxonomy.
// Validation and conflict failures carry detail; credential failures stay
// deliberately generic; anything unclassified becomes a logged 500 with no
// internals leaked.
func (r *Router) writeServiceError(w http.ResponseWriter, req *http.Request, err error) {
	var verr *auth.ValidationError
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"message": "Validation failed",
			"errors":  verr.Errors,
		})
		return
	}
	var conflict *auth.ConflictError
	if errors.As(err, &conflict) {
		// Kept at 400 to match the original API contract; see DESIGN.md.
		writeMessage(w, http.StatusBadRequest, conflict.Message)
		return
	}
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		writeMessage(w, http.StatusUnauthorized, auth.ErrInvalidCredentials.Error())
	case errors.Is(err, auth.ErrNotAuthenticated):
		writeMessage(w, http.StatusUnauthorized, auth.ErrNotAuthenticated.Error())
	case errors.Is(err, travel.ErrInvalidInput):
		writeMessage(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, share.ErrInvalidLink):
		writeMessage(w, http.StatusNotFound, share.ErrInvalidLink.Error())
	case errors.Is(err, repository.ErrNotFound):
		writeMessage(w, http.StatusNotFound, "Not found")
	default:
		r.logger.Error("request failed", "error", err, "path", req.URL.Path)
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
	}
}
