package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/umendra-pardhi/Sports-Management-Platform/internal/admin"
	"github.com/umendra-pardhi/Sports-Management-Platform/internal/feed"
	"github.com/umendra-pardhi/Sports-Management-Platform/internal/metrics"
	"github.com/umendra-pardhi/Sports-Management-Platform/internal/views"
)

// Deps are the collaborators the HTTP layer serves.
type Deps struct {
	Admin    *admin.Service
	Loader   *views.Loader
	Listener *feed.Listener
	// Health is mounted at /healthz when set.
	Health http.Handler
	SPADir string
}

type Server struct {
	srv    *http.Server
	logger *slog.Logger
}

func New(addr string, logger *slog.Logger, deps Deps) *Server {
	return &Server{
		srv: &http.Server{
			Addr:              addr,
			Handler:           newRouter(logger, deps),
			ReadHeaderTimeout: 5 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
		logger: logger,
	}
}

func newRouter(logger *slog.Logger, deps Deps) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(newStructuredLogger(logger))
	r.Use(metrics.Middleware)
	r.Use(reportPanics(logger))

	addRoutes(r, logger, deps)
	return r
}

func (s *Server) Run(_ context.Context) error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.srv.Addr, err)
	}

	err = s.srv.Serve(ln)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return s.srv.Shutdown(ctx)
}
