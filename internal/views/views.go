// Package views builds the read models the dashboard screens show: the live
// board, the completed gallery, the leaderboard and the team roster.
package views

import (
	"context"
	"fmt"
	"time"

	"github.com/umendra-pardhi/Sports-Management-Platform/internal/outcome"
	"github.com/umendra-pardhi/Sports-Management-Platform/internal/sports"
	"github.com/umendra-pardhi/Sports-Management-Platform/internal/store"
)

// MatchCard is one match with names and scores resolved. Names of deleted
// games or teams render as "".
type MatchCard struct {
	ID            string             `json:"id"`
	GameID        string             `json:"game_id"`
	GameName      string             `json:"game_name"`
	Team1ID       string             `json:"team1_id"`
	Team1Name     string             `json:"team1_name"`
	Team1Score    int                `json:"team1_score"`
	Team2ID       string             `json:"team2_id"`
	Team2Name     string             `json:"team2_name"`
	Team2Score    int                `json:"team2_score"`
	ScheduledDate time.Time          `json:"scheduled_date"`
	Status        sports.MatchStatus `json:"status"`
	Outcome       outcome.Outcome    `json:"outcome"`
}

type LiveBoard struct {
	Matches []MatchCard `json:"matches"`
}

type Completed struct {
	GameID  string        `json:"game_id,omitempty"`
	Games   []sports.Game `json:"games"`
	Matches []MatchCard   `json:"matches"`
}

type Leaderboard struct {
	Entries []sports.LeaderboardEntry `json:"entries"`
}

type Roster struct {
	Teams   []sports.Team       `json:"teams"`
	TeamID  string              `json:"team_id,omitempty"`
	Members []sports.TeamMember `json:"members"`
}

// Loader fetches full state from the gateway and computes each view. It
// keeps nothing between calls.
type Loader struct {
	gw     *store.Gateway
	points outcome.Points
}

func NewLoader(gw *store.Gateway, points outcome.Points) *Loader {
	return &Loader{gw: gw, points: points}
}

// LiveBoard lists every match that is not completed, soonest first.
func (l *Loader) LiveBoard(ctx context.Context) (LiveBoard, error) {
	matches, err := l.gw.Matches.List(ctx, store.Query{}.
		NotEq("status", string(sports.MatchCompleted)).
		Asc("scheduled_date"))
	if err != nil {
		return LiveBoard{}, fmt.Errorf("listing live matches: %w", err)
	}

	cards, err := l.cards(ctx, matches)
	if err != nil {
		return LiveBoard{}, err
	}
	return LiveBoard{Matches: cards}, nil
}

// Completed lists completed matches, latest first, optionally for one game.
func (l *Loader) Completed(ctx context.Context, gameID string) (Completed, error) {
	q := store.Query{}.Eq("status", string(sports.MatchCompleted))
	if gameID != "" {
		q = q.Eq("game_id", gameID)
	}
	matches, err := l.gw.Matches.List(ctx, q.Desc("scheduled_date"))
	if err != nil {
		return Completed{}, fmt.Errorf("listing completed matches: %w", err)
	}

	games, err := l.gw.Games.List(ctx, store.Query{}.Asc("name"))
	if err != nil {
		return Completed{}, fmt.Errorf("listing games: %w", err)
	}

	cards, err := l.cards(ctx, matches)
	if err != nil {
		return Completed{}, err
	}
	return Completed{GameID: gameID, Games: games, Matches: cards}, nil
}

// Leaderboard ranks every team over completed matches only.
func (l *Loader) Leaderboard(ctx context.Context) (Leaderboard, error) {
	teams, err := l.gw.Teams.List(ctx, store.Query{})
	if err != nil {
		return Leaderboard{}, fmt.Errorf("listing teams: %w", err)
	}
	matches, err := l.gw.Matches.List(ctx, store.Query{}.Eq("status", string(sports.MatchCompleted)))
	if err != nil {
		return Leaderboard{}, fmt.Errorf("listing completed matches: %w", err)
	}
	scores, err := l.scoresFor(ctx, matches)
	if err != nil {
		return Leaderboard{}, err
	}

	results := make([]outcome.Result, len(matches))
	for i, m := range matches {
		results[i] = outcome.Result{Match: m, Outcome: outcome.Determine(m, scores)}
	}
	return Leaderboard{Entries: outcome.Rank(teams, results, l.points)}, nil
}

// Roster lists teams by name and the members of teamID, or of the first
// team when teamID is empty or unknown.
func (l *Loader) Roster(ctx context.Context, teamID string) (Roster, error) {
	teams, err := l.gw.Teams.List(ctx, store.Query{}.Asc("name"))
	if err != nil {
		return Roster{}, fmt.Errorf("listing teams: %w", err)
	}

	selected := ""
	for _, t := range teams {
		if t.ID == teamID {
			selected = t.ID
			break
		}
	}
	if selected == "" && len(teams) > 0 {
		selected = teams[0].ID
	}

	members := []sports.TeamMember{}
	if selected != "" {
		members, err = l.gw.Members.List(ctx, store.Query{}.Eq("team_id", selected).Asc("name"))
		if err != nil {
			return Roster{}, fmt.Errorf("listing members: %w", err)
		}
	}
	return Roster{Teams: teams, TeamID: selected, Members: members}, nil
}

// Outcome determines the result of a single match.
func (l *Loader) Outcome(ctx context.Context, matchID string) (MatchCard, error) {
	m, err := l.gw.Matches.Get(ctx, matchID)
	if err != nil {
		return MatchCard{}, err
	}
	cards, err := l.cards(ctx, []sports.Match{m})
	if err != nil {
		return MatchCard{}, err
	}
	return cards[0], nil
}

func (l *Loader) scoresFor(ctx context.Context, matches []sports.Match) ([]sports.MatchScore, error) {
	if len(matches) == 0 {
		return nil, nil
	}
	ids := make([]string, len(matches))
	for i, m := range matches {
		ids[i] = m.ID
	}
	scores, err := l.gw.Scores.List(ctx, store.Query{}.Eq("match_id", ids))
	if err != nil {
		return nil, fmt.Errorf("listing scores: %w", err)
	}
	return scores, nil
}

func (l *Loader) cards(ctx context.Context, matches []sports.Match) ([]MatchCard, error) {
	cards := make([]MatchCard, 0, len(matches))
	if len(matches) == 0 {
		return cards, nil
	}

	scores, err := l.scoresFor(ctx, matches)
	if err != nil {
		return nil, err
	}
	games, err := l.gw.Games.List(ctx, store.Query{})
	if err != nil {
		return nil, fmt.Errorf("listing games: %w", err)
	}
	teams, err := l.gw.Teams.List(ctx, store.Query{})
	if err != nil {
		return nil, fmt.Errorf("listing teams: %w", err)
	}

	gameNames := make(map[string]string, len(games))
	for _, g := range games {
		gameNames[g.ID] = g.Name
	}
	teamNames := make(map[string]string, len(teams))
	for _, t := range teams {
		teamNames[t.ID] = t.Name
	}

	for _, m := range matches {
		cards = append(cards, MatchCard{
			ID:            m.ID,
			GameID:        m.GameID,
			GameName:      gameNames[m.GameID],
			Team1ID:       m.Team1ID,
			Team1Name:     teamNames[m.Team1ID],
			Team1Score:    outcome.TeamScore(m, m.Team1ID, scores),
			Team2ID:       m.Team2ID,
			Team2Name:     teamNames[m.Team2ID],
			Team2Score:    outcome.TeamScore(m, m.Team2ID, scores),
			ScheduledDate: m.ScheduledDate,
			Status:        m.Status,
			Outcome:       outcome.Determine(m, scores),
		})
	}
	return cards, nil
}
