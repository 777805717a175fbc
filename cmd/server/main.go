package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/umendra-pardhi/Sports-Management-Platform/internal/admin"
	"github.com/umendra-pardhi/Sports-Management-Platform/internal/config"
	"github.com/umendra-pardhi/Sports-Management-Platform/internal/database"
	"github.com/umendra-pardhi/Sports-Management-Platform/internal/feed"
	"github.com/umendra-pardhi/Sports-Management-Platform/internal/handler/health"
	"github.com/umendra-pardhi/Sports-Management-Platform/internal/migrations"
	"github.com/umendra-pardhi/Sports-Management-Platform/internal/outcome"
	"github.com/umendra-pardhi/Sports-Management-Platform/internal/server"
	"github.com/umendra-pardhi/Sports-Management-Platform/internal/store"
	"github.com/umendra-pardhi/Sports-Management-Platform/internal/telemetry"
	"github.com/umendra-pardhi/Sports-Management-Platform/internal/views"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, stdout io.Writer) error {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := newLogger(stdout, cfg)

	if ok, err := telemetry.InitSentry(cfg.SentryDSN, "sports-api", cfg.Env, cfg.Release); err != nil {
		logger.Warn("sentry disabled", "error", err)
	} else if ok {
		logger.Info("sentry enabled")
		defer telemetry.Flush()
	}

	// --- Database ---
	if err := ensureDataDir(cfg.DBDriver, cfg.DatabaseURL); err != nil {
		return err
	}
	db, dialect, err := database.Open(ctx, cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer db.Close()

	if err := migrations.Run(db, dialect); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	logger.Info("connected to database", "dialect", dialect)

	checks := map[string]health.Checker{"database": dbChecker{db}}

	// --- Change feed ---
	listener := feed.NewListener()
	var backend feed.Backend
	switch cfg.FeedBackend {
	case "redis":
		rdb, err := openRedis(ctx, cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("connecting to redis: %w", err)
		}
		defer rdb.Close()
		checks["redis"] = redisChecker{rdb}
		backend = feed.NewRedis(rdb, cfg.RedisChannel, listener, logger)
	case "postgres":
		backend = feed.NewPostgres(cfg.DatabaseURL, listener, logger)
	default:
		backend = feed.NewMemory(listener)
	}
	logger.Info("change feed ready", "backend", cfg.FeedBackend)

	// --- Services ---
	gw := store.NewGateway(db, dialect, backend, logger)
	svc := admin.New(gw, admin.Limits{
		Enforce:           cfg.EnforceTeamLimits,
		MaxTeams:          cfg.MaxTeams,
		MaxMembersPerTeam: cfg.MaxMembersPerTeam,
	}, logger)
	loader := views.NewLoader(gw, outcome.Points{
		Win:  cfg.PointsWin,
		Draw: cfg.PointsDraw,
		Loss: cfg.PointsLoss,
	})

	if cfg.SeedDefaultGames {
		inserted, err := svc.SeedDefaultGames(ctx)
		if err != nil {
			return fmt.Errorf("seeding default games: %w", err)
		}
		logger.Info("seeded default games", "inserted", len(inserted))
	}

	// --- HTTP Server ---
	srv := server.New(cfg.HTTPAddr, logger, server.Deps{
		Admin:    svc,
		Loader:   loader,
		Listener: listener,
		Health:   health.NewHandler(logger, checks).Routes(),
		SPADir:   cfg.SPADir,
	})

	// --- Run ---
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting http server", "addr", cfg.HTTPAddr)
		return srv.Run(gctx)
	})

	g.Go(func() error {
		return backend.Run(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down http server")
		return srv.Shutdown(context.Background())
	})

	return g.Wait()
}

func newLogger(w io.Writer, cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	if cfg.LogFormat == "text" {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

// ensureDataDir creates the parent directory of a local SQLite file.
func ensureDataDir(driver, dsn string) error {
	if driver != "libsql" || dsn == ":memory:" || strings.Contains(dsn, "://") {
		return nil
	}
	path, _, _ := strings.Cut(strings.TrimPrefix(dsn, "file:"), "?")
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating data dir %s: %w", dir, err)
	}
	return nil
}

func openRedis(ctx context.Context, rawURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}
	return rdb, nil
}

// dbChecker adapts *sql.DB to health.Checker.
type dbChecker struct{ db *sql.DB }

func (d dbChecker) Check(ctx context.Context) error { return d.db.PingContext(ctx) }

// redisChecker adapts *redis.Client to health.Checker.
type redisChecker struct{ client *redis.Client }

func (r redisChecker) Check(ctx context.Context) error { return r.client.Ping(ctx).Err() }
