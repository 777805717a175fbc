package views_test

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umendra-pardhi/Sports-Management-Platform/internal/feed"
	"github.com/umendra-pardhi/Sports-Management-Platform/internal/sports"
	"github.com/umendra-pardhi/Sports-Management-Platform/internal/store"
	"github.com/umendra-pardhi/Sports-Management-Platform/internal/views"
)

func waitUpdate[T any](t *testing.T, s *views.Screen[T]) T {
	t.Helper()
	select {
	case <-s.Updates():
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for view update")
	}
	v, ok := s.Snapshot()
	require.True(t, ok)
	return v
}

func TestScreenRefreshesOnChange(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	chess := f.game(t, "Chess")
	a, b := f.team(t, "A"), f.team(t, "B")
	m := f.match(t, chess, a, b, base, sports.MatchOngoing)

	s := views.NewLiveBoardScreen(f.loader, f.listener, slog.Default())
	require.NoError(t, s.Activate(ctx))
	defer s.Deactivate()

	board := waitUpdate(t, s)
	require.Len(t, board.Matches, 1)
	assert.Equal(t, 0, board.Matches[0].Team1Score)

	f.score(t, m, a, 7)
	require.Eventually(t, func() bool {
		select {
		case <-s.Updates():
		default:
		}
		v, _ := s.Snapshot()
		return len(v.Matches) == 1 && v.Matches[0].Team1Score == 7
	}, 5*time.Second, 10*time.Millisecond)

	require.NoError(t, f.gw.Matches.Update(ctx, m.ID, store.Fields{"status": string(sports.MatchCompleted)}))
	require.Eventually(t, func() bool {
		v, _ := s.Snapshot()
		return len(v.Matches) == 0
	}, 5*time.Second, 10*time.Millisecond)
}

func TestScreenDeactivateReleasesSubscriptions(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	screens := []interface {
		Activate(context.Context) error
		Deactivate()
	}{
		views.NewLiveBoardScreen(f.loader, f.listener, slog.Default()),
		views.NewCompletedScreen(f.loader, f.listener, "", slog.Default()),
		views.NewLeaderboardScreen(f.loader, f.listener, slog.Default()),
		views.NewRosterScreen(f.loader, f.listener, "", slog.Default()),
	}

	for _, s := range screens {
		require.NoError(t, s.Activate(ctx))
	}
	want := len(views.LiveBoardKinds) + len(views.CompletedKinds) + len(views.LeaderboardKinds) + len(views.RosterKinds)
	assert.Equal(t, want, f.listener.Count())

	for _, s := range screens {
		s.Deactivate()
		s.Deactivate()
	}
	assert.Zero(t, f.listener.Count())
}

func TestScreenActivateTwice(t *testing.T) {
	f := setup(t)
	s := views.NewLeaderboardScreen(f.loader, f.listener, slog.Default())

	require.NoError(t, s.Activate(context.Background()))
	defer s.Deactivate()
	assert.ErrorIs(t, s.Activate(context.Background()), views.ErrActive)
}

func TestScreenReactivate(t *testing.T) {
	f := setup(t)
	s := views.NewRosterScreen(f.loader, f.listener, "", slog.Default())

	require.NoError(t, s.Activate(context.Background()))
	waitUpdate(t, s)
	s.Deactivate()

	f.team(t, "Owls")
	require.NoError(t, s.Activate(context.Background()))
	defer s.Deactivate()

	r := waitUpdate(t, s)
	require.Len(t, r.Teams, 1)
	assert.Equal(t, "Owls", r.Teams[0].Name)
}

func TestScreenDiscardsLateLoad(t *testing.T) {
	l := feed.NewListener()
	release := make(chan struct{})
	var calls atomic.Int32

	s := views.NewScreen("slow", l, []sports.Kind{sports.KindGames}, func(ctx context.Context) (int, error) {
		calls.Add(1)
		<-release
		return 42, nil
	}, slog.Default())

	require.NoError(t, s.Activate(context.Background()))
	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 5*time.Millisecond)

	go func() {
		time.Sleep(20 * time.Millisecond)
		close(release)
	}()
	s.Deactivate()

	_, ok := s.Snapshot()
	assert.False(t, ok, "load finishing after deactivation must be discarded")
}

func TestScreenKeepsSnapshotOnError(t *testing.T) {
	l := feed.NewListener()
	var fail atomic.Bool

	s := views.NewScreen("flaky", l, []sports.Kind{sports.KindTeams}, func(ctx context.Context) (string, error) {
		if fail.Load() {
			return "", errors.New("store unavailable")
		}
		return "v1", nil
	}, slog.Default())

	require.NoError(t, s.Activate(context.Background()))
	defer s.Deactivate()
	assert.Equal(t, "v1", waitUpdate(t, s))

	fail.Store(true)
	l.Dispatch(sports.KindTeams)
	time.Sleep(50 * time.Millisecond)

	v, ok := s.Snapshot()
	assert.True(t, ok)
	assert.Equal(t, "v1", v)
}

func TestScreenCoalescesBursts(t *testing.T) {
	l := feed.NewListener()
	gate := make(chan struct{})
	var calls atomic.Int32

	s := views.NewScreen("burst", l, []sports.Kind{sports.KindScores}, func(ctx context.Context) (int32, error) {
		n := calls.Add(1)
		if n == 1 {
			<-gate
		}
		return n, nil
	}, slog.Default())

	require.NoError(t, s.Activate(context.Background()))
	defer s.Deactivate()
	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 5*time.Millisecond)

	for range 50 {
		l.Dispatch(sports.KindScores)
	}
	close(gate)

	require.Eventually(t, func() bool { return calls.Load() == 2 }, time.Second, 5*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	assert.EqualValues(t, 2, calls.Load(), "50 notifications during one load collapse into one reload")
}
