package outcome

import (
	"encoding/json"
	"testing"

	"github.com/umendra-pardhi/Sports-Management-Platform/internal/sports"
)

func match(id, t1, t2 string) sports.Match {
	return sports.Match{ID: id, GameID: "chess", Team1ID: t1, Team2ID: t2, Status: sports.MatchCompleted}
}

func score(matchID, teamID string, v int) sports.MatchScore {
	return sports.MatchScore{ID: matchID + "-" + teamID, MatchID: matchID, TeamID: teamID, Score: v}
}

func TestDetermine(t *testing.T) {
	m := match("m1", "a", "b")

	tests := []struct {
		name   string
		scores []sports.MatchScore
		want   Outcome
	}{
		{
			name:   "team1 ahead",
			scores: []sports.MatchScore{score("m1", "a", 5), score("m1", "b", 3)},
			want:   Outcome{Kind: Winner, WinnerID: "a"},
		},
		{
			name:   "team2 ahead",
			scores: []sports.MatchScore{score("m1", "a", 1), score("m1", "b", 2)},
			want:   Outcome{Kind: Winner, WinnerID: "b"},
		},
		{
			name:   "level",
			scores: []sports.MatchScore{score("m1", "a", 4), score("m1", "b", 4)},
			want:   Outcome{Kind: Draw},
		},
		{
			name:   "level at zero",
			scores: []sports.MatchScore{score("m1", "a", 0), score("m1", "b", 0)},
			want:   Outcome{Kind: Draw},
		},
		{
			name:   "no scores",
			scores: nil,
			want:   Outcome{Kind: Undetermined},
		},
		{
			name:   "one side only",
			scores: []sports.MatchScore{score("m1", "a", 9)},
			want:   Outcome{Kind: Undetermined},
		},
		{
			name:   "other match ignored",
			scores: []sports.MatchScore{score("m1", "a", 2), score("m2", "b", 7)},
			want:   Outcome{Kind: Undetermined},
		},
		{
			name:   "duplicate rows for one team are one team",
			scores: []sports.MatchScore{score("m1", "a", 2), score("m1", "a", 7)},
			want:   Outcome{Kind: Undetermined},
		},
		{
			name: "first record wins on duplicates",
			scores: []sports.MatchScore{
				score("m1", "a", 2), score("m1", "b", 1), score("m1", "a", 0),
			},
			want: Outcome{Kind: Winner, WinnerID: "a"},
		},
		{
			name:   "stray team counts as missing side",
			scores: []sports.MatchScore{score("m1", "a", 1), score("m1", "z", 5)},
			want:   Outcome{Kind: Winner, WinnerID: "a"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Determine(m, tt.scores); got != tt.want {
				t.Errorf("Determine() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestDetermineSlotSwap(t *testing.T) {
	pairs := [][2]int{{0, 0}, {1, 0}, {0, 1}, {3, 3}, {10, 7}, {2, 11}}

	for _, p := range pairs {
		scores := []sports.MatchScore{score("m1", "a", p[0]), score("m1", "b", p[1])}
		fwd := Determine(match("m1", "a", "b"), scores)
		rev := Determine(match("m1", "b", "a"), scores)
		if fwd != rev {
			t.Errorf("scores %v: a-vs-b = %+v, b-vs-a = %+v", p, fwd, rev)
		}
	}
}

func TestTeamScore(t *testing.T) {
	m := match("m1", "a", "b")
	scores := []sports.MatchScore{score("m2", "a", 8), score("m1", "a", 3)}

	if got := TeamScore(m, "a", scores); got != 3 {
		t.Errorf("TeamScore(a) = %d, want 3", got)
	}
	if got := TeamScore(m, "b", scores); got != 0 {
		t.Errorf("TeamScore(b) = %d, want 0", got)
	}
}

func TestOutcomeJSON(t *testing.T) {
	data, err := json.Marshal(Outcome{Kind: Winner, WinnerID: "a"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"kind":"winner","winner_id":"a"}` {
		t.Errorf("got %s", data)
	}

	var o Outcome
	if err := json.Unmarshal([]byte(`{"kind":"draw"}`), &o); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if o.Kind != Draw {
		t.Errorf("kind = %v, want draw", o.Kind)
	}

	if err := json.Unmarshal([]byte(`{"kind":"forfeit"}`), &o); err == nil {
		t.Error("expected error for unknown kind")
	}
}
