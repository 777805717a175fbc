package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/umendra-pardhi/Sports-Management-Platform/internal/admin"
)

func handleAdminListMatches(logger *slog.Logger, svc *admin.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matches, err := svc.ListMatches(r.Context())
		if err != nil {
			writeServiceError(w, r, logger, err)
			return
		}
		writeJSON(w, http.StatusOK, matches)
	}
}

func handleAdminScheduleMatch(logger *slog.Logger, svc *admin.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req admin.MatchInput
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		m, err := svc.ScheduleMatch(r.Context(), req)
		if err != nil {
			writeServiceError(w, r, logger, err)
			return
		}
		writeJSON(w, http.StatusCreated, m)
	}
}

func handleAdminUpdateMatch(logger *slog.Logger, svc *admin.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req admin.MatchUpdate
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		m, err := svc.UpdateMatch(r.Context(), chi.URLParam(r, "id"), req)
		if err != nil {
			writeServiceError(w, r, logger, err)
			return
		}
		writeJSON(w, http.StatusOK, m)
	}
}

func handleAdminDeleteMatch(logger *slog.Logger, svc *admin.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.DeleteMatch(r.Context(), chi.URLParam(r, "id")); err != nil {
			writeServiceError(w, r, logger, err)
			return
		}
		writeOK(w)
	}
}

func handleAdminRecordScores(logger *slog.Logger, svc *admin.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req admin.ScoresInput
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		scores, err := svc.RecordScores(r.Context(), chi.URLParam(r, "id"), req)
		if err != nil {
			writeServiceError(w, r, logger, err)
			return
		}
		writeJSON(w, http.StatusOK, scores)
	}
}
