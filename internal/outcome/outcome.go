// Package outcome decides match results from score records and ranks teams
// by the points those results earn. Everything here is pure: no I/O, no
// clocks, no shared state.
package outcome

import (
	"fmt"

	"github.com/umendra-pardhi/Sports-Management-Platform/internal/sports"
)

type Kind int

const (
	Undetermined Kind = iota
	Winner
	Draw
)

func (k Kind) String() string {
	switch k {
	case Winner:
		return "winner"
	case Draw:
		return "draw"
	default:
		return "undetermined"
	}
}

func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *Kind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "undetermined":
		*k = Undetermined
	case "winner":
		*k = Winner
	case "draw":
		*k = Draw
	default:
		return fmt.Errorf("unknown outcome %q", b)
	}
	return nil
}

// Outcome of a single match. WinnerID is set only when Kind is Winner.
type Outcome struct {
	Kind     Kind   `json:"kind"`
	WinnerID string `json:"winner_id,omitempty"`
}

// Determine derives the outcome of m from scores. Records belonging to other
// matches are ignored. Fewer than two distinct teams with a record yields
// Undetermined; otherwise the first record for each side counts and a missing
// side scores 0.
func Determine(m sports.Match, scores []sports.MatchScore) Outcome {
	seen := make(map[string]struct{}, 2)
	var s1, s2 int
	var has1, has2 bool

	for _, s := range scores {
		if s.MatchID != m.ID {
			continue
		}
		seen[s.TeamID] = struct{}{}
		switch {
		case s.TeamID == m.Team1ID && !has1:
			s1, has1 = s.Score, true
		case s.TeamID == m.Team2ID && !has2:
			s2, has2 = s.Score, true
		}
	}

	if len(seen) < 2 {
		return Outcome{Kind: Undetermined}
	}

	switch {
	case s1 > s2:
		return Outcome{Kind: Winner, WinnerID: m.Team1ID}
	case s2 > s1:
		return Outcome{Kind: Winner, WinnerID: m.Team2ID}
	default:
		return Outcome{Kind: Draw}
	}
}

// TeamScore returns the first score recorded for teamID in match m, or 0.
func TeamScore(m sports.Match, teamID string, scores []sports.MatchScore) int {
	for _, s := range scores {
		if s.MatchID == m.ID && s.TeamID == teamID {
			return s.Score
		}
	}
	return 0
}
