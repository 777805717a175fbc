package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/umendra-pardhi/Sports-Management-Platform/internal/admin"
	"github.com/umendra-pardhi/Sports-Management-Platform/internal/database"
	"github.com/umendra-pardhi/Sports-Management-Platform/internal/feed"
	"github.com/umendra-pardhi/Sports-Management-Platform/internal/migrations"
	"github.com/umendra-pardhi/Sports-Management-Platform/internal/outcome"
	"github.com/umendra-pardhi/Sports-Management-Platform/internal/store"
	"github.com/umendra-pardhi/Sports-Management-Platform/internal/views"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func setupDeps(t *testing.T) Deps {
	t.Helper()
	ctx := context.Background()

	db, dialect, err := database.Open(ctx, "libsql", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, migrations.Run(db, dialect))

	listener := feed.NewListener()
	gw := store.NewGateway(db, dialect, feed.NewMemory(listener), testLogger)

	return Deps{
		Admin:    admin.New(gw, admin.Limits{Enforce: true, MaxTeams: 3, MaxMembersPerTeam: 7}, testLogger),
		Loader:   views.NewLoader(gw, outcome.DefaultPoints),
		Listener: listener,
	}
}

func testRouter(t *testing.T) (chi.Router, Deps) {
	t.Helper()
	deps := setupDeps(t)
	return newRouter(testLogger, deps), deps
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = bytes.NewBufferString(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		r = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, r)
	if r != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), "body: %s", rec.Body.String())
	return v
}

func errorOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[ErrorResponse](t, rec).Error
}
