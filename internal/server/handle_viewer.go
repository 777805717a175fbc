package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/umendra-pardhi/Sports-Management-Platform/internal/views"
)

func handleLiveBoard(logger *slog.Logger, loader *views.Loader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := loader.LiveBoard(r.Context())
		if err != nil {
			writeServiceError(w, r, logger, err)
			return
		}
		writeJSON(w, http.StatusOK, v)
	}
}

func handleCompleted(logger *slog.Logger, loader *views.Loader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := loader.Completed(r.Context(), r.URL.Query().Get("game_id"))
		if err != nil {
			writeServiceError(w, r, logger, err)
			return
		}
		writeJSON(w, http.StatusOK, v)
	}
}

func handleLeaderboard(logger *slog.Logger, loader *views.Loader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := loader.Leaderboard(r.Context())
		if err != nil {
			writeServiceError(w, r, logger, err)
			return
		}
		writeJSON(w, http.StatusOK, v)
	}
}

func handleRoster(logger *slog.Logger, loader *views.Loader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := loader.Roster(r.Context(), r.URL.Query().Get("team_id"))
		if err != nil {
			writeServiceError(w, r, logger, err)
			return
		}
		writeJSON(w, http.StatusOK, v)
	}
}

func handleMatchOutcome(logger *slog.Logger, loader *views.Loader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		card, err := loader.Outcome(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeServiceError(w, r, logger, err)
			return
		}
		writeJSON(w, http.StatusOK, card)
	}
}
