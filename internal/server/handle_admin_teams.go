package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/umendra-pardhi/Sports-Management-Platform/internal/admin"
)

func handleListTeams(logger *slog.Logger, svc *admin.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		teams, err := svc.ListTeams(r.Context())
		if err != nil {
			writeServiceError(w, r, logger, err)
			return
		}
		writeJSON(w, http.StatusOK, teams)
	}
}

func handleAdminCreateTeam(logger *slog.Logger, svc *admin.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req admin.TeamInput
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		t, err := svc.CreateTeam(r.Context(), req)
		if err != nil {
			writeServiceError(w, r, logger, err)
			return
		}
		writeJSON(w, http.StatusCreated, t)
	}
}

func handleAdminUpdateTeam(logger *slog.Logger, svc *admin.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req admin.TeamInput
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		t, err := svc.UpdateTeam(r.Context(), chi.URLParam(r, "id"), req)
		if err != nil {
			writeServiceError(w, r, logger, err)
			return
		}
		writeJSON(w, http.StatusOK, t)
	}
}

func handleAdminDeleteTeam(logger *slog.Logger, svc *admin.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.DeleteTeam(r.Context(), chi.URLParam(r, "id")); err != nil {
			writeServiceError(w, r, logger, err)
			return
		}
		writeOK(w)
	}
}

func handleListMembers(logger *slog.Logger, svc *admin.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		members, err := svc.ListMembers(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeServiceError(w, r, logger, err)
			return
		}
		writeJSON(w, http.StatusOK, members)
	}
}

func handleAdminAddMember(logger *slog.Logger, svc *admin.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req admin.MemberInput
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		m, err := svc.AddMember(r.Context(), chi.URLParam(r, "id"), req)
		if err != nil {
			writeServiceError(w, r, logger, err)
			return
		}
		writeJSON(w, http.StatusCreated, m)
	}
}

func handleAdminRemoveMember(logger *slog.Logger, svc *admin.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.RemoveMember(r.Context(), chi.URLParam(r, "id")); err != nil {
			writeServiceError(w, r, logger, err)
			return
		}
		writeOK(w)
	}
}
