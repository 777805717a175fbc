package config

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	HTTPAddr  string     `env:"HTTP_ADDR" envDefault:":8080"`
	LogLevel  slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`
	LogFormat string     `env:"LOG_FORMAT" envDefault:"json"`
	SPADir    string     `env:"SPA_DIR" envDefault:"../web/dist"`
	Env       string     `env:"APP_ENV" envDefault:"development"`

	DBDriver    string `env:"DB_DRIVER" envDefault:"libsql"`
	DatabaseURL string `env:"DATABASE_URL" envDefault:"data/sports.db"`

	FeedBackend  string `env:"FEED_BACKEND" envDefault:"memory"`
	RedisURL     string `env:"REDIS_URL"`
	RedisChannel string `env:"REDIS_CHANNEL" envDefault:"sports:changes"`

	SeedDefaultGames  bool `env:"SEED_DEFAULT_GAMES" envDefault:"false"`
	EnforceTeamLimits bool `env:"ENFORCE_TEAM_LIMITS" envDefault:"true"`
	MaxTeams          int  `env:"MAX_TEAMS" envDefault:"3"`
	MaxMembersPerTeam int  `env:"MAX_MEMBERS_PER_TEAM" envDefault:"7"`

	PointsWin  int `env:"POINTS_WIN" envDefault:"3"`
	PointsDraw int `env:"POINTS_DRAW" envDefault:"1"`
	PointsLoss int `env:"POINTS_LOSS" envDefault:"0"`

	SentryDSN string `env:"SENTRY_DSN"`
	Release   string `env:"RELEASE" envDefault:"dev"`
}

func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	var errs []error

	switch c.DBDriver {
	case "libsql", "pgx":
	default:
		errs = append(errs, fmt.Errorf("DB_DRIVER must be libsql or pgx, got %q", c.DBDriver))
	}

	switch c.FeedBackend {
	case "memory":
	case "redis":
		if c.RedisURL == "" {
			errs = append(errs, errors.New("FEED_BACKEND=redis requires REDIS_URL"))
		}
	case "postgres":
		if c.DBDriver != "pgx" {
			errs = append(errs, errors.New("FEED_BACKEND=postgres requires DB_DRIVER=pgx"))
		}
	default:
		errs = append(errs, fmt.Errorf("FEED_BACKEND must be memory, redis or postgres, got %q", c.FeedBackend))
	}

	switch c.LogFormat {
	case "json", "text":
	default:
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be json or text, got %q", c.LogFormat))
	}

	if c.MaxTeams < 0 || c.MaxMembersPerTeam < 0 {
		errs = append(errs, errors.New("team limits must not be negative"))
	}

	return errors.Join(errs...)
}
