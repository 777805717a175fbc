package outcome

import (
	"cmp"
	"slices"

	"github.com/umendra-pardhi/Sports-Management-Platform/internal/sports"
)

// Points is the per-result scoring policy.
type Points struct {
	Win  int
	Draw int
	Loss int
}

var DefaultPoints = Points{Win: 3, Draw: 1, Loss: 0}

// Result pairs a match with its determined outcome.
type Result struct {
	Match   sports.Match
	Outcome Outcome
}

// Rank tallies wins, draws and losses for every team in teams and orders
// them by total points, then wins, then name, then id. Undetermined results
// and results involving unknown teams contribute nothing.
func Rank(teams []sports.Team, results []Result, p Points) []sports.LeaderboardEntry {
	idx := make(map[string]int, len(teams))
	entries := make([]sports.LeaderboardEntry, 0, len(teams))
	for _, t := range teams {
		if _, dup := idx[t.ID]; dup {
			continue
		}
		idx[t.ID] = len(entries)
		entries = append(entries, sports.LeaderboardEntry{TeamID: t.ID, Name: t.Name})
	}

	tally := func(teamID string, f func(e *sports.LeaderboardEntry)) {
		if i, ok := idx[teamID]; ok {
			f(&entries[i])
		}
	}

	for _, r := range results {
		m := r.Match
		switch r.Outcome.Kind {
		case Winner:
			loser := m.Team1ID
			if r.Outcome.WinnerID == m.Team1ID {
				loser = m.Team2ID
			}
			tally(r.Outcome.WinnerID, func(e *sports.LeaderboardEntry) { e.Wins++ })
			tally(loser, func(e *sports.LeaderboardEntry) { e.Losses++ })
		case Draw:
			tally(m.Team1ID, func(e *sports.LeaderboardEntry) { e.Draws++ })
			tally(m.Team2ID, func(e *sports.LeaderboardEntry) { e.Draws++ })
		}
	}

	for i := range entries {
		e := &entries[i]
		e.TotalPoints = e.Wins*p.Win + e.Draws*p.Draw + e.Losses*p.Loss
	}

	slices.SortFunc(entries, func(a, b sports.LeaderboardEntry) int {
		return cmp.Or(
			cmp.Compare(b.TotalPoints, a.TotalPoints),
			cmp.Compare(b.Wins, a.Wins),
			cmp.Compare(a.Name, b.Name),
			cmp.Compare(a.TeamID, b.TeamID),
		)
	})

	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}
