package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/umendra-pardhi/Sports-Management-Platform/internal/admin"
	"github.com/umendra-pardhi/Sports-Management-Platform/internal/sports"
)

// SeedResponse lists the catalog games a seed request inserted.
type SeedResponse struct {
	Inserted []sports.Game `json:"inserted"`
}

func handleListGames(logger *slog.Logger, svc *admin.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		games, err := svc.ListGames(r.Context())
		if err != nil {
			writeServiceError(w, r, logger, err)
			return
		}
		writeJSON(w, http.StatusOK, games)
	}
}

func handleAdminCreateGame(logger *slog.Logger, svc *admin.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req admin.GameInput
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		g, err := svc.CreateGame(r.Context(), req)
		if err != nil {
			writeServiceError(w, r, logger, err)
			return
		}
		writeJSON(w, http.StatusCreated, g)
	}
}

func handleAdminSeedGames(logger *slog.Logger, svc *admin.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		inserted, err := svc.SeedDefaultGames(r.Context())
		if err != nil {
			writeServiceError(w, r, logger, err)
			return
		}
		writeJSON(w, http.StatusOK, SeedResponse{Inserted: inserted})
	}
}

func handleAdminUpdateGame(logger *slog.Logger, svc *admin.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req admin.GameInput
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		g, err := svc.UpdateGame(r.Context(), chi.URLParam(r, "id"), req)
		if err != nil {
			writeServiceError(w, r, logger, err)
			return
		}
		writeJSON(w, http.StatusOK, g)
	}
}

func handleAdminDeleteGame(logger *slog.Logger, svc *admin.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.DeleteGame(r.Context(), chi.URLParam(r, "id")); err != nil {
			writeServiceError(w, r, logger, err)
			return
		}
		writeOK(w)
	}
}
