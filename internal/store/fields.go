package store

import (
	"time"

	"github.com/umendra-pardhi/Sports-Management-Platform/internal/sports"
)

// GameFields, TeamFields and friends build insert rows for each kind so
// callers never spell column names.

func GameFields(name, description string) Fields {
	return Fields{"name": name, "description": nullable(description)}
}

func TeamFields(name, description string) Fields {
	return Fields{"name": name, "description": nullable(description)}
}

func MemberFields(teamID, name, email string) Fields {
	return Fields{"team_id": teamID, "name": name, "email": nullable(email)}
}

func MatchFields(gameID, team1ID, team2ID string, scheduled time.Time, status sports.MatchStatus) Fields {
	return Fields{
		"game_id":        gameID,
		"team1_id":       team1ID,
		"team2_id":       team2ID,
		"scheduled_date": formatTime(scheduled),
		"status":         string(status),
	}
}

func ScoreFields(matchID, teamID string, score int) Fields {
	return Fields{"match_id": matchID, "team_id": teamID, "score": score}
}

// ScoreConflict is the uniqueness key for match scores.
var ScoreConflict = []string{"match_id", "team_id"}

// Nullable is exported for partial updates of optional text columns.
func Nullable(s string) any { return nullable(s) }
