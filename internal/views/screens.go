package views

import (
	"context"
	"log/slog"

	"github.com/umendra-pardhi/Sports-Management-Platform/internal/feed"
	"github.com/umendra-pardhi/Sports-Management-Platform/internal/sports"
)

// Record kinds each view depends on.
var (
	LiveBoardKinds   = []sports.Kind{sports.KindMatches, sports.KindScores, sports.KindTeams, sports.KindGames}
	CompletedKinds   = []sports.Kind{sports.KindMatches, sports.KindScores, sports.KindGames, sports.KindTeams}
	LeaderboardKinds = []sports.Kind{sports.KindMatches, sports.KindScores, sports.KindTeams}
	RosterKinds      = []sports.Kind{sports.KindTeams, sports.KindMembers}
)

func NewLiveBoardScreen(l *Loader, feedL *feed.Listener, logger *slog.Logger) *Screen[LiveBoard] {
	return NewScreen("live", feedL, LiveBoardKinds, l.LiveBoard, logger)
}

func NewCompletedScreen(l *Loader, feedL *feed.Listener, gameID string, logger *slog.Logger) *Screen[Completed] {
	return NewScreen("completed", feedL, CompletedKinds, func(ctx context.Context) (Completed, error) {
		return l.Completed(ctx, gameID)
	}, logger)
}

func NewLeaderboardScreen(l *Loader, feedL *feed.Listener, logger *slog.Logger) *Screen[Leaderboard] {
	return NewScreen("leaderboard", feedL, LeaderboardKinds, l.Leaderboard, logger)
}

func NewRosterScreen(l *Loader, feedL *feed.Listener, teamID string, logger *slog.Logger) *Screen[Roster] {
	return NewScreen("roster", feedL, RosterKinds, func(ctx context.Context) (Roster, error) {
		return l.Roster(ctx, teamID)
	}, logger)
}
