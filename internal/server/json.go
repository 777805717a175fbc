package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/umendra-pardhi/Sports-Management-Platform/internal/sports"
	"github.com/umendra-pardhi/Sports-Management-Platform/internal/store"
	"github.com/umendra-pardhi/Sports-Management-Platform/internal/telemetry"
)

// ErrorResponse is returned for all error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusResponse acknowledges writes that return no record.
type StatusResponse struct {
	Status string `json:"status"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func readJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

func writeOK(w http.ResponseWriter) {
	writeJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}

// writeServiceError maps the domain error taxonomy onto HTTP statuses.
// Anything unexpected is logged, reported and hidden behind a 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	var ve *sports.ValidationError
	var nf *sports.NotFoundError

	switch {
	case errors.As(err, &ve):
		writeError(w, http.StatusBadRequest, ve.Error())
	case errors.As(err, &nf):
		writeError(w, http.StatusNotFound, nf.Error())
	case store.IsConflict(err):
		writeError(w, http.StatusConflict, "already exists")
	default:
		reqID := middleware.GetReqID(r.Context())
		logger.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", reqID,
			"error", err,
		)
		telemetry.CaptureError(err, map[string]string{
			"method":     r.Method,
			"path":       r.URL.Path,
			"request_id": reqID,
		})
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
