package health

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"
)

// Checker verifies that an infrastructure dependency is reachable.
type Checker interface {
	Check(ctx context.Context) error
}

// CheckFunc adapts a plain function to Checker.
type CheckFunc func(ctx context.Context) error

func (f CheckFunc) Check(ctx context.Context) error { return f(ctx) }

type Handler struct {
	checks  map[string]Checker
	logger  *slog.Logger
	timeout time.Duration
}

func NewHandler(logger *slog.Logger, checks map[string]Checker) *Handler {
	return &Handler{checks: checks, logger: logger, timeout: 3 * time.Second}
}

func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.check)
	return r
}

// Result is the outcome of one dependency check.
type Result struct {
	Status     string `json:"status"`
	DurationMS int64  `json:"duration_ms"`
}

// Response is the /healthz body.
type Response struct {
	Status string            `json:"status"`
	Checks map[string]Result `json:"checks"`
}

// check runs every checker concurrently under one shared timeout.
func (h *Handler) check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var mu sync.Mutex
	resp := Response{Status: "ok", Checks: make(map[string]Result, len(h.checks))}

	var g errgroup.Group
	for name, c := range h.checks {
		g.Go(func() error {
			start := time.Now()
			err := c.Check(ctx)
			res := Result{Status: "ok", DurationMS: time.Since(start).Milliseconds()}
			if err != nil {
				h.logger.Error("health check failed", "name", name, "error", err)
				res.Status = "error"
			}

			mu.Lock()
			resp.Checks[name] = res
			if err != nil {
				resp.Status = "degraded"
			}
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	status := http.StatusOK
	if resp.Status != "ok" {
		status = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}
