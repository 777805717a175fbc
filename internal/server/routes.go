package server

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/swaggest/swgui/v5emb"

	"github.com/umendra-pardhi/Sports-Management-Platform/internal/metrics"
)

func addRoutes(r chi.Router, logger *slog.Logger, deps Deps) {
	svc, loader := deps.Admin, deps.Loader

	r.Get("/openapi.json", handleOpenAPI())
	r.Mount("/docs", v5emb.New("Sports Management API", "/openapi.json", "/docs"))
	r.Handle("/metrics", metrics.Handler())
	if deps.Health != nil {
		r.Mount("/healthz", deps.Health)
	}

	// Viewer routes, read-only.
	r.Route("/api", func(r chi.Router) {
		r.Get("/games", handleListGames(logger, svc))
		r.Get("/teams", handleListTeams(logger, svc))
		r.Get("/teams/{id}/members", handleListMembers(logger, svc))
		r.Get("/matches/live", handleLiveBoard(logger, loader))
		r.Get("/matches/completed", handleCompleted(logger, loader))
		r.Get("/matches/{id}/outcome", handleMatchOutcome(logger, loader))
		r.Get("/leaderboard", handleLeaderboard(logger, loader))
		r.Get("/roster", handleRoster(logger, loader))
		r.Get("/events", handleEvents(logger, deps))
	})
	r.Get("/ws/live", handleWSLive(logger, deps))

	r.Route("/api/admin", func(r chi.Router) {
		r.Route("/games", func(r chi.Router) {
			r.Get("/", handleListGames(logger, svc))
			r.Post("/", handleAdminCreateGame(logger, svc))
			r.Post("/seed", handleAdminSeedGames(logger, svc))
			r.Put("/{id}", handleAdminUpdateGame(logger, svc))
			r.Delete("/{id}", handleAdminDeleteGame(logger, svc))
		})

		r.Route("/teams", func(r chi.Router) {
			r.Get("/", handleListTeams(logger, svc))
			r.Post("/", handleAdminCreateTeam(logger, svc))
			r.Put("/{id}", handleAdminUpdateTeam(logger, svc))
			r.Delete("/{id}", handleAdminDeleteTeam(logger, svc))
			r.Get("/{id}/members", handleListMembers(logger, svc))
			r.Post("/{id}/members", handleAdminAddMember(logger, svc))
		})
		r.Delete("/members/{id}", handleAdminRemoveMember(logger, svc))

		r.Route("/matches", func(r chi.Router) {
			r.Get("/", handleAdminListMatches(logger, svc))
			r.Post("/", handleAdminScheduleMatch(logger, svc))
			r.Put("/{id}", handleAdminUpdateMatch(logger, svc))
			r.Delete("/{id}", handleAdminDeleteMatch(logger, svc))
			r.Put("/{id}/scores", handleAdminRecordScores(logger, svc))
		})
	})

	if deps.SPADir != "" {
		if info, err := os.Stat(deps.SPADir); err == nil && info.IsDir() {
			logger.Info("serving SPA", "dir", deps.SPADir)
			r.NotFound(handleSPA(deps.SPADir))
		}
	}
}
