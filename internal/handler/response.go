package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/templui/goaltracker/internal/ctxkeys"
	"github.com/templui/goaltracker/internal/repository"
	"github.com/templui/goaltracker/internal/service"
)

const maxBodyBytes = 1 << 20

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error apiError `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// WriteError writes the JSON error envelope used by every API response.
func WriteError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: apiError{Code: code, Message: message}})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	err := dec.Decode(dst)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid JSON body: "+err.Error())
		return false
	}
	return true
}

// writeServiceError maps service and repository errors to HTTP responses.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, repository.ErrGoalNotFound):
		WriteError(w, http.StatusNotFound, "NOT_FOUND", "Goal not found")
	case errors.Is(err, service.ErrInvalidGoal), errors.Is(err, service.ErrInvalidTemplate):
		WriteError(w, http.StatusBadRequest, "VALIDATION", err.Error())
	case errors.Is(err, service.ErrGoalNotInProgress):
		WriteError(w, http.StatusConflict, "CONFLICT", err.Error())
	case errors.Is(err, service.ErrStorageNotConfigured):
		WriteError(w, http.StatusServiceUnavailable, "STORAGE_NOT_CONFIGURED", err.Error())
	case errors.Is(err, service.ErrNotInitialized):
		WriteError(w, http.StatusServiceUnavailable, "NOT_READY", "Achievement engine is not ready")
	default:
		slog.Error("request failed",
			"error", err,
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", ctxkeys.RequestID(r.Context()),
		)
		WriteError(w, http.StatusInternalServerError, "INTERNAL", "Internal server error")
	}
}
