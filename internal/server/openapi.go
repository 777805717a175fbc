package server

import (
	"encoding/json"
	"net/http"

	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi3"

	"github.com/umendra-pardhi/Sports-Management-Platform/internal/admin"
	"github.com/umendra-pardhi/Sports-Management-Platform/internal/handler/health"
	"github.com/umendra-pardhi/Sports-Management-Platform/internal/sports"
	"github.com/umendra-pardhi/Sports-Management-Platform/internal/views"
)

type operation struct {
	method, path, summary, description string
	req                                any
	resp                               any
	status                             int
	errors                             []int
	contentType                        string
}

var operations = []operation{
	{method: http.MethodGet, path: "/healthz", summary: "Health check",
		description: "Reports the status of the database and change feed.",
		resp:        health.Response{}, status: http.StatusOK, errors: []int{http.StatusServiceUnavailable}},

	// Viewer
	{method: http.MethodGet, path: "/api/games", summary: "List games",
		resp: []sports.Game{}, status: http.StatusOK},
	{method: http.MethodGet, path: "/api/teams", summary: "List teams",
		resp: []sports.Team{}, status: http.StatusOK},
	{method: http.MethodGet, path: "/api/teams/{id}/members", summary: "List team members",
		resp: []sports.TeamMember{}, status: http.StatusOK},
	{method: http.MethodGet, path: "/api/matches/live", summary: "Live board",
		description: "Scheduled and ongoing matches with current scores, earliest first.",
		resp:        views.LiveBoard{}, status: http.StatusOK},
	{method: http.MethodGet, path: "/api/matches/completed", summary: "Completed matches",
		description: "Completed matches with outcomes, newest first. Filter with game_id.",
		resp:        views.Completed{}, status: http.StatusOK},
	{method: http.MethodGet, path: "/api/matches/{id}/outcome", summary: "Match outcome",
		resp: views.MatchCard{}, status: http.StatusOK, errors: []int{http.StatusNotFound}},
	{method: http.MethodGet, path: "/api/leaderboard", summary: "Leaderboard",
		description: "Teams ranked by points over completed matches.",
		resp:        views.Leaderboard{}, status: http.StatusOK},
	{method: http.MethodGet, path: "/api/roster", summary: "Team roster",
		description: "All teams plus the members of team_id, or of the first team by name.",
		resp:        views.Roster{}, status: http.StatusOK},
	{method: http.MethodGet, path: "/api/events", summary: "View event stream",
		description: "Server-Sent Events carrying a snapshot of view (live, completed, leaderboard, roster) after every change.",
		status:      http.StatusOK, errors: []int{http.StatusBadRequest}, contentType: "text/event-stream"},
	{method: http.MethodGet, path: "/ws/live", summary: "View websocket",
		description: "Websocket pushing the same snapshots as /api/events.",
		status:      http.StatusSwitchingProtocols, errors: []int{http.StatusBadRequest}, contentType: "text/plain"},

	// Admin games
	{method: http.MethodGet, path: "/api/admin/games", summary: "List games",
		resp: []sports.Game{}, status: http.StatusOK},
	{method: http.MethodPost, path: "/api/admin/games", summary: "Create game",
		req: admin.GameInput{}, resp: sports.Game{}, status: http.StatusCreated,
		errors: []int{http.StatusBadRequest, http.StatusConflict}},
	{method: http.MethodPost, path: "/api/admin/games/seed", summary: "Seed default games",
		description: "Inserts the catalog games whose names are not present yet.",
		resp:        SeedResponse{}, status: http.StatusOK},
	{method: http.MethodPut, path: "/api/admin/games/{id}", summary: "Update game",
		req: admin.GameInput{}, resp: sports.Game{}, status: http.StatusOK,
		errors: []int{http.StatusBadRequest, http.StatusNotFound, http.StatusConflict}},
	{method: http.MethodDelete, path: "/api/admin/games/{id}", summary: "Delete game",
		description: "Deletes the game and its matches.",
		resp:        StatusResponse{}, status: http.StatusOK},

	// Admin teams
	{method: http.MethodGet, path: "/api/admin/teams", summary: "List teams",
		resp: []sports.Team{}, status: http.StatusOK},
	{method: http.MethodPost, path: "/api/admin/teams", summary: "Create team",
		req: admin.TeamInput{}, resp: sports.Team{}, status: http.StatusCreated,
		errors: []int{http.StatusBadRequest}},
	{method: http.MethodPut, path: "/api/admin/teams/{id}", summary: "Update team",
		req: admin.TeamInput{}, resp: sports.Team{}, status: http.StatusOK,
		errors: []int{http.StatusBadRequest, http.StatusNotFound}},
	{method: http.MethodDelete, path: "/api/admin/teams/{id}", summary: "Delete team",
		description: "Deletes the team with its members, matches and scores.",
		resp:        StatusResponse{}, status: http.StatusOK},
	{method: http.MethodGet, path: "/api/admin/teams/{id}/members", summary: "List members",
		resp: []sports.TeamMember{}, status: http.StatusOK},
	{method: http.MethodPost, path: "/api/admin/teams/{id}/members", summary: "Add member",
		req: admin.MemberInput{}, resp: sports.TeamMember{}, status: http.StatusCreated,
		errors: []int{http.StatusBadRequest, http.StatusNotFound}},
	{method: http.MethodDelete, path: "/api/admin/members/{id}", summary: "Remove member",
		resp: StatusResponse{}, status: http.StatusOK},

	// Admin matches
	{method: http.MethodGet, path: "/api/admin/matches", summary: "List matches",
		resp: []sports.Match{}, status: http.StatusOK},
	{method: http.MethodPost, path: "/api/admin/matches", summary: "Schedule match",
		req: admin.MatchInput{}, resp: sports.Match{}, status: http.StatusCreated,
		errors: []int{http.StatusBadRequest}},
	{method: http.MethodPut, path: "/api/admin/matches/{id}", summary: "Update match",
		description: "Changes status or scheduled date. Omitted fields are left alone.",
		req:         admin.MatchUpdate{}, resp: sports.Match{}, status: http.StatusOK,
		errors: []int{http.StatusBadRequest, http.StatusNotFound}},
	{method: http.MethodDelete, path: "/api/admin/matches/{id}", summary: "Delete match",
		resp: StatusResponse{}, status: http.StatusOK},
	{method: http.MethodPut, path: "/api/admin/matches/{id}/scores", summary: "Record scores",
		description: "Writes both team scores. Existing records are replaced.",
		req:         admin.ScoresInput{}, resp: []sports.MatchScore{}, status: http.StatusOK,
		errors: []int{http.StatusBadRequest, http.StatusNotFound}},
}

func newOpenAPISpec() *openapi3.Spec {
	r := openapi3.NewReflector()
	r.Spec.Info.Title = "Sports Management API"
	r.Spec.Info.Version = "0.1.0"
	r.Spec.Info.WithDescription("Admin and viewer API for the sports event dashboard.")

	for _, op := range operations {
		oc, err := r.NewOperationContext(op.method, op.path)
		if err != nil {
			continue
		}
		oc.SetSummary(op.summary)
		if op.description != "" {
			oc.SetDescription(op.description)
		}
		if op.req != nil {
			oc.AddReqStructure(op.req)
		}
		if op.contentType != "" {
			oc.AddRespStructure(nil, openapi.WithHTTPStatus(op.status), openapi.WithContentType(op.contentType))
		} else {
			oc.AddRespStructure(op.resp, openapi.WithHTTPStatus(op.status))
		}
		for _, code := range op.errors {
			oc.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(code))
		}
		if op.status != http.StatusSwitchingProtocols {
			oc.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusInternalServerError))
		}
		_ = r.AddOperation(oc)
	}

	return r.Spec
}

func handleOpenAPI() http.HandlerFunc {
	spec := newOpenAPISpec()
	data, _ := json.MarshalIndent(spec, "", "  ")

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}
