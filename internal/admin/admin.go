// Package admin validates administrator input and turns it into gateway
// writes.
package admin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/umendra-pardhi/Sports-Management-Platform/internal/seed"
	"github.com/umendra-pardhi/Sports-Management-Platform/internal/sports"
	"github.com/umendra-pardhi/Sports-Management-Platform/internal/store"
)

// Limits caps team and roster sizes. The check counts then inserts, so two
// concurrent creates can both pass it.
type Limits struct {
	Enforce           bool
	MaxTeams          int
	MaxMembersPerTeam int
}

type Service struct {
	gw     *store.Gateway
	limits Limits
	logger *slog.Logger
}

func New(gw *store.Gateway, limits Limits, logger *slog.Logger) *Service {
	return &Service{gw: gw, limits: limits, logger: logger}
}

func invalid(field, msg string) error {
	return &sports.ValidationError{Field: field, Message: msg}
}

func required(field, v string) (string, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", invalid(field, "is required")
	}
	return v, nil
}

// ── Games ─────────────────────────────────────────────────────────────────────

type GameInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (in *GameInput) validate() error {
	var err error
	in.Name, err = required("name", in.Name)
	in.Description = strings.TrimSpace(in.Description)
	return err
}

func (s *Service) ListGames(ctx context.Context) ([]sports.Game, error) {
	return s.gw.Games.List(ctx, store.Query{}.Asc("name"))
}

func (s *Service) CreateGame(ctx context.Context, in GameInput) (sports.Game, error) {
	if err := in.validate(); err != nil {
		return sports.Game{}, err
	}
	return s.gw.Games.Create(ctx, store.GameFields(in.Name, in.Description))
}

func (s *Service) UpdateGame(ctx context.Context, id string, in GameInput) (sports.Game, error) {
	if err := in.validate(); err != nil {
		return sports.Game{}, err
	}
	if err := s.gw.Games.Update(ctx, id, store.GameFields(in.Name, in.Description)); err != nil {
		return sports.Game{}, err
	}
	return s.gw.Games.Get(ctx, id)
}

func (s *Service) DeleteGame(ctx context.Context, id string) error {
	return s.gw.Games.Delete(ctx, id)
}

// SeedDefaultGames inserts every catalog game whose name is not taken yet
// and returns what it inserted. Inserts are independent: a failure part-way
// leaves the earlier ones in place.
func (s *Service) SeedDefaultGames(ctx context.Context) ([]sports.Game, error) {
	existing, err := s.gw.Games.List(ctx, store.Query{})
	if err != nil {
		return nil, fmt.Errorf("listing games: %w", err)
	}
	names := make([]string, len(existing))
	for i, g := range existing {
		names[i] = g.Name
	}

	plan := seed.Plan(names, seed.Catalog)
	inserted := make([]sports.Game, 0, len(plan))
	for _, e := range plan {
		g, err := s.gw.Games.Create(ctx, store.GameFields(e.Name, e.Description))
		if err != nil {
			return inserted, fmt.Errorf("seeding %q: %w", e.Name, err)
		}
		inserted = append(inserted, g)
	}
	if len(inserted) > 0 {
		s.logger.Info("seeded default games", "count", len(inserted))
	}
	return inserted, nil
}

// ── Teams ─────────────────────────────────────────────────────────────────────

type TeamInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (in *TeamInput) validate() error {
	var err error
	in.Name, err = required("name", in.Name)
	in.Description = strings.TrimSpace(in.Description)
	return err
}

func (s *Service) ListTeams(ctx context.Context) ([]sports.Team, error) {
	return s.gw.Teams.List(ctx, store.Query{}.Asc("name"))
}

func (s *Service) CreateTeam(ctx context.Context, in TeamInput) (sports.Team, error) {
	if err := in.validate(); err != nil {
		return sports.Team{}, err
	}
	if s.limits.Enforce && s.limits.MaxTeams > 0 {
		n, err := s.gw.Teams.Count(ctx, store.Query{})
		if err != nil {
			return sports.Team{}, err
		}
		if n >= s.limits.MaxTeams {
			return sports.Team{}, invalid("", fmt.Sprintf("team limit reached (%d/%d)", n, s.limits.MaxTeams))
		}
	}
	return s.gw.Teams.Create(ctx, store.TeamFields(in.Name, in.Description))
}

func (s *Service) UpdateTeam(ctx context.Context, id string, in TeamInput) (sports.Team, error) {
	if err := in.validate(); err != nil {
		return sports.Team{}, err
	}
	if err := s.gw.Teams.Update(ctx, id, store.TeamFields(in.Name, in.Description)); err != nil {
		return sports.Team{}, err
	}
	return s.gw.Teams.Get(ctx, id)
}

// DeleteTeam removes the team. Its members, matches and scores go with it.
func (s *Service) DeleteTeam(ctx context.Context, id string) error {
	return s.gw.Teams.Delete(ctx, id)
}

// ── Members ───────────────────────────────────────────────────────────────────

type MemberInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (in *MemberInput) validate() error {
	var err error
	if in.Name, err = required("name", in.Name); err != nil {
		return err
	}
	in.Email = strings.TrimSpace(in.Email)
	if in.Email != "" {
		addr, err := mail.ParseAddress(in.Email)
		if err != nil || addr.Address != in.Email {
			return invalid("email", "must be a valid address")
		}
	}
	return nil
}

func (s *Service) ListMembers(ctx context.Context, teamID string) ([]sports.TeamMember, error) {
	if _, err := s.gw.Teams.Get(ctx, teamID); err != nil {
		return nil, err
	}
	return s.gw.Members.List(ctx, store.Query{}.Eq("team_id", teamID).Asc("name"))
}

func (s *Service) AddMember(ctx context.Context, teamID string, in MemberInput) (sports.TeamMember, error) {
	if err := in.validate(); err != nil {
		return sports.TeamMember{}, err
	}
	if _, err := s.gw.Teams.Get(ctx, teamID); err != nil {
		return sports.TeamMember{}, err
	}
	if s.limits.Enforce && s.limits.MaxMembersPerTeam > 0 {
		n, err := s.gw.Members.Count(ctx, store.Query{}.Eq("team_id", teamID))
		if err != nil {
			return sports.TeamMember{}, err
		}
		if n >= s.limits.MaxMembersPerTeam {
			return sports.TeamMember{}, invalid("", fmt.Sprintf("member limit reached (%d/%d)", n, s.limits.MaxMembersPerTeam))
		}
	}
	return s.gw.Members.Create(ctx, store.MemberFields(teamID, in.Name, in.Email))
}

func (s *Service) RemoveMember(ctx context.Context, id string) error {
	return s.gw.Members.Delete(ctx, id)
}

// ── Matches ───────────────────────────────────────────────────────────────────

type MatchInput struct {
	GameID        string `json:"game_id"`
	Team1ID       string `json:"team1_id"`
	Team2ID       string `json:"team2_id"`
	ScheduledDate string `json:"scheduled_date"`
	Status        string `json:"status,omitempty"`
}

// dateLayouts are tried in order. Layouts without a zone read as UTC.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

func parseDate(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}, invalid("scheduled_date", "is required")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, invalid("scheduled_date", "must be an ISO-8601 date-time")
}

func parseStatus(v string, fallback sports.MatchStatus) (sports.MatchStatus, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback, nil
	}
	st := sports.MatchStatus(v)
	if !st.Valid() {
		return "", invalid("status", "must be scheduled, ongoing, or completed")
	}
	return st, nil
}

func (s *Service) ListMatches(ctx context.Context) ([]sports.Match, error) {
	return s.gw.Matches.List(ctx, store.Query{}.Desc("scheduled_date"))
}

// ScheduleMatch creates a match after checking that both teams differ and
// that the game and teams exist.
func (s *Service) ScheduleMatch(ctx context.Context, in MatchInput) (sports.Match, error) {
	var err error
	if in.GameID, err = required("game_id", in.GameID); err != nil {
		return sports.Match{}, err
	}
	if in.Team1ID, err = required("team1_id", in.Team1ID); err != nil {
		return sports.Match{}, err
	}
	if in.Team2ID, err = required("team2_id", in.Team2ID); err != nil {
		return sports.Match{}, err
	}
	if in.Team1ID == in.Team2ID {
		return sports.Match{}, invalid("team2_id", "teams must be different")
	}
	at, err := parseDate(in.ScheduledDate)
	if err != nil {
		return sports.Match{}, err
	}
	status, err := parseStatus(in.Status, sports.MatchScheduled)
	if err != nil {
		return sports.Match{}, err
	}

	_, err = s.gw.Games.Get(ctx, in.GameID)
	if err := referenced("game_id", err); err != nil {
		return sports.Match{}, err
	}
	for _, ref := range [][2]string{{"team1_id", in.Team1ID}, {"team2_id", in.Team2ID}} {
		_, err := s.gw.Teams.Get(ctx, ref[1])
		if err := referenced(ref[0], err); err != nil {
			return sports.Match{}, err
		}
	}

	return s.gw.Matches.Create(ctx, store.MatchFields(in.GameID, in.Team1ID, in.Team2ID, at, status))
}

// referenced turns a NotFoundError for a referenced record into a
// validation failure on field.
func referenced(field string, err error) error {
	var nf *sports.NotFoundError
	if errors.As(err, &nf) {
		return invalid(field, strings.TrimSuffix(string(nf.Kind), "s")+" not found")
	}
	return err
}

// MatchUpdate changes the status and/or the scheduled date of a match. Any
// status may follow any other.
type MatchUpdate struct {
	Status        *string `json:"status,omitempty"`
	ScheduledDate *string `json:"scheduled_date,omitempty"`
}

func (s *Service) UpdateMatch(ctx context.Context, id string, in MatchUpdate) (sports.Match, error) {
	f := store.Fields{}
	if in.Status != nil {
		st, err := parseStatus(*in.Status, "")
		if err != nil {
			return sports.Match{}, err
		}
		if st == "" {
			return sports.Match{}, invalid("status", "must be scheduled, ongoing, or completed")
		}
		f["status"] = string(st)
	}
	if in.ScheduledDate != nil {
		at, err := parseDate(*in.ScheduledDate)
		if err != nil {
			return sports.Match{}, err
		}
		f["scheduled_date"] = store.FormatTime(at)
	}
	if len(f) == 0 {
		return sports.Match{}, invalid("", "nothing to update")
	}

	if err := s.gw.Matches.Update(ctx, id, f); err != nil {
		return sports.Match{}, err
	}
	return s.gw.Matches.Get(ctx, id)
}

func (s *Service) SetMatchStatus(ctx context.Context, id string, status sports.MatchStatus) (sports.Match, error) {
	v := string(status)
	return s.UpdateMatch(ctx, id, MatchUpdate{Status: &v})
}

// DeleteMatch removes the match and its scores.
func (s *Service) DeleteMatch(ctx context.Context, id string) error {
	return s.gw.Matches.Delete(ctx, id)
}

// ── Scores ────────────────────────────────────────────────────────────────────

type ScoresInput struct {
	Team1Score int `json:"team1_score"`
	Team2Score int `json:"team2_score"`
}

// RecordScores stores both teams' scores for a match. Each score is an
// atomic upsert; the pair is not a transaction and last write wins.
func (s *Service) RecordScores(ctx context.Context, matchID string, in ScoresInput) ([]sports.MatchScore, error) {
	if in.Team1Score < 0 {
		return nil, invalid("team1_score", "must not be negative")
	}
	if in.Team2Score < 0 {
		return nil, invalid("team2_score", "must not be negative")
	}

	m, err := s.gw.Matches.Get(ctx, matchID)
	if err != nil {
		return nil, err
	}

	out := make([]sports.MatchScore, 0, 2)
	for _, p := range []struct {
		team  string
		score int
	}{{m.Team1ID, in.Team1Score}, {m.Team2ID, in.Team2Score}} {
		sc, err := s.gw.Scores.Upsert(ctx, store.ScoreFields(m.ID, p.team, p.score), store.ScoreConflict...)
		if err != nil {
			return out, fmt.Errorf("recording score for team %s: %w", p.team, err)
		}
		out = append(out, sc)
	}
	return out, nil
}
