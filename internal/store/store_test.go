package store_test

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umendra-pardhi/Sports-Management-Platform/internal/database"
	"github.com/umendra-pardhi/Sports-Management-Platform/internal/migrations"
	"github.com/umendra-pardhi/Sports-Management-Platform/internal/sports"
	"github.com/umendra-pardhi/Sports-Management-Platform/internal/store"
)

type recorder struct {
	mu    sync.Mutex
	kinds []sports.Kind
	err   error
}

func (r *recorder) Publish(_ context.Context, kind sports.Kind) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.kinds = append(r.kinds, kind)
	return r.err
}

func (r *recorder) published() []sports.Kind {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]sports.Kind(nil), r.kinds...)
}

func setupGateway(t *testing.T) (*store.Gateway, *recorder) {
	t.Helper()
	ctx := context.Background()

	db, dialect, err := database.Open(ctx, "libsql", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, migrations.Run(db, dialect))

	rec := &recorder{}
	return store.NewGateway(db, dialect, rec, slog.Default()), rec
}

func TestCreateAndGet(t *testing.T) {
	gw, rec := setupGateway(t)
	ctx := context.Background()

	g, err := gw.Games.Create(ctx, store.GameFields("Chess", "Strategic chess game"))
	require.NoError(t, err)
	assert.NotEmpty(t, g.ID)
	assert.Equal(t, "Chess", g.Name)
	assert.Equal(t, "Strategic chess game", g.Description)
	assert.WithinDuration(t, time.Now(), g.CreatedAt, time.Minute)

	got, err := gw.Games.Get(ctx, g.ID)
	require.NoError(t, err)
	assert.Equal(t, g, got)

	assert.Equal(t, []sports.Kind{sports.KindGames}, rec.published())
}

func TestGetMissing(t *testing.T) {
	gw, _ := setupGateway(t)

	_, err := gw.Teams.Get(context.Background(), "nope")
	var nf *sports.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, sports.KindTeams, nf.Kind)
	assert.Equal(t, "nope", nf.ID)
}

func TestOptionalColumnsStoreNull(t *testing.T) {
	gw, _ := setupGateway(t)
	ctx := context.Background()

	team, err := gw.Teams.Create(ctx, store.TeamFields("Lions", ""))
	require.NoError(t, err)
	m, err := gw.Members.Create(ctx, store.MemberFields(team.ID, "Asha", ""))
	require.NoError(t, err)

	assert.Empty(t, team.Description)
	assert.Empty(t, m.Email)
}

func TestListFilterAndOrder(t *testing.T) {
	gw, _ := setupGateway(t)
	ctx := context.Background()

	game, err := gw.Games.Create(ctx, store.GameFields("Chess", ""))
	require.NoError(t, err)
	a, err := gw.Teams.Create(ctx, store.TeamFields("A", ""))
	require.NoError(t, err)
	b, err := gw.Teams.Create(ctx, store.TeamFields("B", ""))
	require.NoError(t, err)

	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	statuses := []sports.MatchStatus{sports.MatchCompleted, sports.MatchScheduled, sports.MatchOngoing, sports.MatchCompleted}
	for i, st := range statuses {
		_, err := gw.Matches.Create(ctx, store.MatchFields(game.ID, a.ID, b.ID, base.Add(time.Duration(3-i)*time.Hour), st))
		require.NoError(t, err)
	}

	live, err := gw.Matches.List(ctx, store.Query{}.NotEq("status", string(sports.MatchCompleted)).Asc("scheduled_date"))
	require.NoError(t, err)
	require.Len(t, live, 2)
	assert.Equal(t, sports.MatchOngoing, live[0].Status)
	assert.Equal(t, sports.MatchScheduled, live[1].Status)

	done, err := gw.Matches.List(ctx, store.Query{}.Eq("status", string(sports.MatchCompleted)).Desc("scheduled_date"))
	require.NoError(t, err)
	require.Len(t, done, 2)
	assert.True(t, done[0].ScheduledDate.After(done[1].ScheduledDate))

	n, err := gw.Matches.Count(ctx, store.Query{}.Eq("game_id", game.ID))
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	none, err := gw.Matches.List(ctx, store.Query{}.Eq("id", []string{}))
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestQueryDoesNotAlias(t *testing.T) {
	gw, _ := setupGateway(t)
	ctx := context.Background()

	for _, n := range []string{"Carrom", "Chess"} {
		_, err := gw.Games.Create(ctx, store.GameFields(n, ""))
		require.NoError(t, err)
	}

	base := store.Query{}.Asc("name")
	chess, err := gw.Games.List(ctx, base.Eq("name", "Chess"))
	require.NoError(t, err)
	all, err := gw.Games.List(ctx, base)
	require.NoError(t, err)

	assert.Len(t, chess, 1)
	assert.Len(t, all, 2)
}

func TestUpdate(t *testing.T) {
	gw, rec := setupGateway(t)
	ctx := context.Background()

	team, err := gw.Teams.Create(ctx, store.TeamFields("Lions", ""))
	require.NoError(t, err)

	require.NoError(t, gw.Teams.Update(ctx, team.ID, store.Fields{"name": "Tigers"}))
	got, err := gw.Teams.Get(ctx, team.ID)
	require.NoError(t, err)
	assert.Equal(t, "Tigers", got.Name)
	assert.Equal(t, team.CreatedAt, got.CreatedAt)

	err = gw.Teams.Update(ctx, "missing", store.Fields{"name": "X"})
	assert.True(t, sports.IsNotFound(err))

	assert.Equal(t, []sports.Kind{sports.KindTeams, sports.KindTeams}, rec.published())
}

func TestDeleteIdempotent(t *testing.T) {
	gw, rec := setupGateway(t)
	ctx := context.Background()

	g, err := gw.Games.Create(ctx, store.GameFields("Chess", ""))
	require.NoError(t, err)

	require.NoError(t, gw.Games.Delete(ctx, g.ID))
	require.NoError(t, gw.Games.Delete(ctx, g.ID))

	_, err = gw.Games.Get(ctx, g.ID)
	assert.True(t, sports.IsNotFound(err))
	assert.Len(t, rec.published(), 2, "second delete must not publish")
}

func TestUpsertScores(t *testing.T) {
	gw, rec := setupGateway(t)
	ctx := context.Background()

	game, err := gw.Games.Create(ctx, store.GameFields("Chess", ""))
	require.NoError(t, err)
	a, err := gw.Teams.Create(ctx, store.TeamFields("A", ""))
	require.NoError(t, err)
	b, err := gw.Teams.Create(ctx, store.TeamFields("B", ""))
	require.NoError(t, err)
	m, err := gw.Matches.Create(ctx, store.MatchFields(game.ID, a.ID, b.ID, time.Now(), sports.MatchOngoing))
	require.NoError(t, err)

	first, err := gw.Scores.Upsert(ctx, store.ScoreFields(m.ID, a.ID, 2), store.ScoreConflict...)
	require.NoError(t, err)
	second, err := gw.Scores.Upsert(ctx, store.ScoreFields(m.ID, a.ID, 5), store.ScoreConflict...)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 5, second.Score)

	scores, err := gw.Scores.List(ctx, store.Query{}.Eq("match_id", m.ID))
	require.NoError(t, err)
	require.Len(t, scores, 1)
	assert.Equal(t, 5, scores[0].Score)

	published := rec.published()
	assert.Equal(t, sports.KindScores, published[len(published)-1])
}

func TestConcurrentUpsertsNeverDuplicate(t *testing.T) {
	gw, _ := setupGateway(t)
	ctx := context.Background()

	game, err := gw.Games.Create(ctx, store.GameFields("Chess", ""))
	require.NoError(t, err)
	a, err := gw.Teams.Create(ctx, store.TeamFields("A", ""))
	require.NoError(t, err)
	b, err := gw.Teams.Create(ctx, store.TeamFields("B", ""))
	require.NoError(t, err)
	m, err := gw.Matches.Create(ctx, store.MatchFields(game.ID, a.ID, b.ID, time.Now(), sports.MatchOngoing))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := gw.Scores.Upsert(ctx, store.ScoreFields(m.ID, a.ID, i), store.ScoreConflict...)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	n, err := gw.Scores.Count(ctx, store.Query{}.Eq("match_id", m.ID).Eq("team_id", a.ID))
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestUniqueGameNameIsConflict(t *testing.T) {
	gw, _ := setupGateway(t)
	ctx := context.Background()

	_, err := gw.Games.Create(ctx, store.GameFields("Chess", ""))
	require.NoError(t, err)
	_, err = gw.Games.Create(ctx, store.GameFields("Chess", ""))

	var se *sports.StoreError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "create", se.Op)
	assert.True(t, store.IsConflict(err))
}

func TestIsConflict(t *testing.T) {
	assert.False(t, store.IsConflict(nil))
	assert.False(t, store.IsConflict(errors.New("connection refused")))
	assert.True(t, store.IsConflict(errors.New("UNIQUE constraint failed: games.name")))
}

func TestPublishFailureDoesNotFailWrite(t *testing.T) {
	gw, rec := setupGateway(t)
	rec.err = errors.New("redis down")

	_, err := gw.Games.Create(context.Background(), store.GameFields("Chess", ""))
	assert.NoError(t, err)
}

func TestCascadeDelete(t *testing.T) {
	gw, _ := setupGateway(t)
	ctx := context.Background()

	team, err := gw.Teams.Create(ctx, store.TeamFields("Lions", ""))
	require.NoError(t, err)
	_, err = gw.Members.Create(ctx, store.MemberFields(team.ID, "Asha", "asha@example.com"))
	require.NoError(t, err)

	require.NoError(t, gw.Teams.Delete(ctx, team.ID))

	n, err := gw.Members.Count(ctx, store.Query{}.Eq("team_id", team.ID))
	require.NoError(t, err)
	assert.Zero(t, n)
}
