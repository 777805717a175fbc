package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/umendra-pardhi/Sports-Management-Platform/internal/sports"
	"github.com/umendra-pardhi/Sports-Management-Platform/internal/views"
)

// liveView is a mounted screen whose snapshots are pushed to one client.
type liveView interface {
	Name() string
	Activate(ctx context.Context) error
	Deactivate()
	Updates() <-chan struct{}
	snapshotJSON() ([]byte, bool, error)
}

type jsonScreen[T any] struct {
	*views.Screen[T]
}

func (s jsonScreen[T]) snapshotJSON() ([]byte, bool, error) {
	v, ok := s.Snapshot()
	if !ok {
		return nil, false, nil
	}
	data, err := json.Marshal(v)
	return data, true, err
}

// openStream builds the screen named by the view query parameter. Each
// connection gets its own screen so unsubscribing on disconnect only
// affects that client.
func openStream(r *http.Request, deps Deps, logger *slog.Logger) (liveView, error) {
	q := r.URL.Query()
	switch view := q.Get("view"); view {
	case "", "live":
		return jsonScreen[views.LiveBoard]{views.NewLiveBoardScreen(deps.Loader, deps.Listener, logger)}, nil
	case "completed":
		return jsonScreen[views.Completed]{views.NewCompletedScreen(deps.Loader, deps.Listener, q.Get("game_id"), logger)}, nil
	case "leaderboard":
		return jsonScreen[views.Leaderboard]{views.NewLeaderboardScreen(deps.Loader, deps.Listener, logger)}, nil
	case "roster":
		return jsonScreen[views.Roster]{views.NewRosterScreen(deps.Loader, deps.Listener, q.Get("team_id"), logger)}, nil
	default:
		return nil, &sports.ValidationError{Field: "view", Message: "unknown view " + view}
	}
}
