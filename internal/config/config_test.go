package config

import (
	"log/slog"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.HTTPAddr != ":8080" {
		t.Errorf("HTTPAddr = %q, want :8080", cfg.HTTPAddr)
	}
	if cfg.DBDriver != "libsql" || cfg.FeedBackend != "memory" {
		t.Errorf("driver/feed = %s/%s, want libsql/memory", cfg.DBDriver, cfg.FeedBackend)
	}
	if cfg.PointsWin != 3 || cfg.PointsDraw != 1 || cfg.PointsLoss != 0 {
		t.Errorf("points = %d/%d/%d, want 3/1/0", cfg.PointsWin, cfg.PointsDraw, cfg.PointsLoss)
	}
	if !cfg.EnforceTeamLimits || cfg.MaxTeams != 3 || cfg.MaxMembersPerTeam != 7 {
		t.Errorf("limits = %v %d %d", cfg.EnforceTeamLimits, cfg.MaxTeams, cfg.MaxMembersPerTeam)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v, want INFO", cfg.LogLevel)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("DB_DRIVER", "pgx")
	t.Setenv("DATABASE_URL", "postgres://localhost/sports")
	t.Setenv("FEED_BACKEND", "postgres")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("POINTS_WIN", "2")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("LogLevel = %v, want DEBUG", cfg.LogLevel)
	}
	if cfg.PointsWin != 2 {
		t.Errorf("PointsWin = %d, want 2", cfg.PointsWin)
	}
}

func TestLoadRejects(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown driver", map[string]string{"DB_DRIVER": "mysql"}},
		{"unknown feed", map[string]string{"FEED_BACKEND": "kafka"}},
		{"redis without url", map[string]string{"FEED_BACKEND": "redis"}},
		{"postgres feed on sqlite", map[string]string{"FEED_BACKEND": "postgres"}},
		{"bad log format", map[string]string{"LOG_FORMAT": "xml"}},
		{"negative limit", map[string]string{"MAX_TEAMS": "-1"}},
		{"bad number", map[string]string{"POINTS_WIN": "three"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := Load(); err == nil {
				t.Error("expected error")
			}
		})
	}
}
