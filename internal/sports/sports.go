// Package sports defines the core domain types shared by the store, the
// outcome engine and the views.
package sports

import "time"

// Kind names a record kind. It doubles as the table name and as the
// change-feed topic for that kind.
type Kind string

const (
	KindGames   Kind = "games"
	KindTeams   Kind = "teams"
	KindMembers Kind = "team_members"
	KindMatches Kind = "matches"
	KindScores  Kind = "match_scores"
)

// Kinds lists every record kind.
var Kinds = []Kind{KindGames, KindTeams, KindMembers, KindMatches, KindScores}

func (k Kind) Valid() bool {
	switch k {
	case KindGames, KindTeams, KindMembers, KindMatches, KindScores:
		return true
	}
	return false
}

type Game struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type Team struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type TeamMember struct {
	ID        string    `json:"id"`
	TeamID    string    `json:"team_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type MatchStatus string

const (
	MatchScheduled MatchStatus = "scheduled"
	MatchOngoing   MatchStatus = "ongoing"
	MatchCompleted MatchStatus = "completed"
)

// Valid reports whether s is one of the three match statuses. Any status may
// be set from any other; there are no automatic transitions.
func (s MatchStatus) Valid() bool {
	switch s {
	case MatchScheduled, MatchOngoing, MatchCompleted:
		return true
	}
	return false
}

type Match struct {
	ID            string      `json:"id"`
	GameID        string      `json:"game_id"`
	Team1ID       string      `json:"team1_id"`
	Team2ID       string      `json:"team2_id"`
	ScheduledDate time.Time   `json:"scheduled_date"`
	Status        MatchStatus `json:"status"`
	CreatedAt     time.Time   `json:"created_at"`
}

// MatchScore is one team's score in one match. The store keeps at most one
// per (MatchID, TeamID).
type MatchScore struct {
	ID        string    `json:"id"`
	MatchID   string    `json:"match_id"`
	TeamID    string    `json:"team_id"`
	Score     int       `json:"score"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LeaderboardEntry is derived on every ranking pass and never stored.
type LeaderboardEntry struct {
	Rank        int    `json:"rank"`
	TeamID      string `json:"id"`
	Name        string `json:"name"`
	Wins        int    `json:"wins"`
	Draws       int    `json:"draws"`
	Losses      int    `json:"losses"`
	TotalPoints int    `json:"total_points"`
}
