package store

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/umendra-pardhi/Sports-Management-Platform/internal/database"
	"github.com/umendra-pardhi/Sports-Management-Platform/internal/sports"
)

// Timestamps are stored as RFC 3339 UTC text in both dialects so lexical
// order is chronological order.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// FormatTime renders t the way the store persists it. Use it for filter
// values on timestamp columns and for writes through Fields.
func FormatTime(t time.Time) string { return formatTime(t) }

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing timestamp %q: %w", s, err)
	}
	return t, nil
}

// nullable stores "" as NULL.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

var GameSchema = Schema[sports.Game]{
	Kind:    sports.KindGames,
	Columns: []string{"id", "name", "description", "created_at"},
	Stamp:   "created_at",
	Scan: func(row rowScanner) (sports.Game, error) {
		var g sports.Game
		var desc sql.NullString
		var created string
		if err := row.Scan(&g.ID, &g.Name, &desc, &created); err != nil {
			return g, err
		}
		g.Description = desc.String
		var err error
		g.CreatedAt, err = parseTime(created)
		return g, err
	},
}

var TeamSchema = Schema[sports.Team]{
	Kind:    sports.KindTeams,
	Columns: []string{"id", "name", "description", "created_at"},
	Stamp:   "created_at",
	Scan: func(row rowScanner) (sports.Team, error) {
		var t sports.Team
		var desc sql.NullString
		var created string
		if err := row.Scan(&t.ID, &t.Name, &desc, &created); err != nil {
			return t, err
		}
		t.Description = desc.String
		var err error
		t.CreatedAt, err = parseTime(created)
		return t, err
	},
}

var MemberSchema = Schema[sports.TeamMember]{
	Kind:    sports.KindMembers,
	Columns: []string{"id", "team_id", "name", "email", "created_at"},
	Stamp:   "created_at",
	Scan: func(row rowScanner) (sports.TeamMember, error) {
		var m sports.TeamMember
		var email sql.NullString
		var created string
		if err := row.Scan(&m.ID, &m.TeamID, &m.Name, &email, &created); err != nil {
			return m, err
		}
		m.Email = email.String
		var err error
		m.CreatedAt, err = parseTime(created)
		return m, err
	},
}

var MatchSchema = Schema[sports.Match]{
	Kind:    sports.KindMatches,
	Columns: []string{"id", "game_id", "team1_id", "team2_id", "scheduled_date", "status", "created_at"},
	Stamp:   "created_at",
	Scan: func(row rowScanner) (sports.Match, error) {
		var m sports.Match
		var scheduled, created, status string
		if err := row.Scan(&m.ID, &m.GameID, &m.Team1ID, &m.Team2ID, &scheduled, &status, &created); err != nil {
			return m, err
		}
		m.Status = sports.MatchStatus(status)
		var err error
		if m.ScheduledDate, err = parseTime(scheduled); err != nil {
			return m, err
		}
		m.CreatedAt, err = parseTime(created)
		return m, err
	},
}

var ScoreSchema = Schema[sports.MatchScore]{
	Kind:    sports.KindScores,
	Columns: []string{"id", "match_id", "team_id", "score", "updated_at"},
	Stamp:   "updated_at",
	Scan: func(row rowScanner) (sports.MatchScore, error) {
		var s sports.MatchScore
		var updated string
		if err := row.Scan(&s.ID, &s.MatchID, &s.TeamID, &s.Score, &updated); err != nil {
			return s, err
		}
		var err error
		s.UpdatedAt, err = parseTime(updated)
		return s, err
	},
}

// Gateway bundles one repository per record kind.
type Gateway struct {
	Games   *Repository[sports.Game]
	Teams   *Repository[sports.Team]
	Members *Repository[sports.TeamMember]
	Matches *Repository[sports.Match]
	Scores  *Repository[sports.MatchScore]
}

func NewGateway(db *sql.DB, dialect database.Dialect, n Notifier, logger *slog.Logger) *Gateway {
	return &Gateway{
		Games:   NewRepository(db, dialect, GameSchema, n, logger),
		Teams:   NewRepository(db, dialect, TeamSchema, n, logger),
		Members: NewRepository(db, dialect, MemberSchema, n, logger),
		Matches: NewRepository(db, dialect, MatchSchema, n, logger),
		Scores:  NewRepository(db, dialect, ScoreSchema, n, logger),
	}
}
