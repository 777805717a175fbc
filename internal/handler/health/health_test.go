package health_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/umendra-pardhi/Sports-Management-Platform/internal/handler/health"
)

type mockChecker struct{ err error }

func (m mockChecker) Check(_ context.Context) error { return m.err }

func TestHandler(t *testing.T) {
	tests := []struct {
		name       string
		checks     map[string]health.Checker
		wantStatus int
		wantOver   string
		wantBody   map[string]string
	}{
		{
			name: "all healthy",
			checks: map[string]health.Checker{
				"database": mockChecker{},
				"redis":    mockChecker{},
			},
			wantStatus: http.StatusOK,
			wantOver:   "ok",
			wantBody:   map[string]string{"database": "ok", "redis": "ok"},
		},
		{
			name: "database down",
			checks: map[string]health.Checker{
				"database": mockChecker{err: errors.New("locked")},
				"redis":    mockChecker{},
			},
			wantStatus: http.StatusServiceUnavailable,
			wantOver:   "degraded",
			wantBody:   map[string]string{"database": "error", "redis": "ok"},
		},
		{
			name: "redis down",
			checks: map[string]health.Checker{
				"database": mockChecker{},
				"redis":    mockChecker{err: errors.New("refused")},
			},
			wantStatus: http.StatusServiceUnavailable,
			wantOver:   "degraded",
			wantBody:   map[string]string{"database": "ok", "redis": "error"},
		},
		{
			name:       "no dependencies",
			checks:     map[string]health.Checker{},
			wantStatus: http.StatusOK,
			wantOver:   "ok",
			wantBody:   map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := health.NewHandler(slog.Default(), tt.checks)

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			h.Routes().ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}

			var body health.Response
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("decoding response: %v", err)
			}
			if body.Status != tt.wantOver {
				t.Errorf("overall = %q, want %q", body.Status, tt.wantOver)
			}
			for name, want := range tt.wantBody {
				if got := body.Checks[name].Status; got != want {
					t.Errorf("%s status = %q, want %q", name, got, want)
				}
			}
		})
	}
}

func TestChecksRunConcurrently(t *testing.T) {
	slow := health.CheckFunc(func(ctx context.Context) error {
		select {
		case <-time.After(200 * time.Millisecond):
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	})
	h := health.NewHandler(slog.Default(), map[string]health.Checker{"a": slow, "b": slow, "c": slow})

	start := time.Now()
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if d := time.Since(start); d > 500*time.Millisecond {
		t.Errorf("checks took %v; expected them to overlap", d)
	}
}
