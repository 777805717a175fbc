package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/tursodatabase/go-libsql"
)

// Dialect identifies the SQL flavour behind an opened *sql.DB.
type Dialect string

const (
	SQLite   Dialect = "sqlite"
	Postgres Dialect = "postgres"
)

// Placeholder is the bind-parameter format squirrel should emit.
func (d Dialect) Placeholder() sq.PlaceholderFormat {
	if d == Postgres {
		return sq.Dollar
	}
	return sq.Question
}

// Goose returns the goose dialect name.
func (d Dialect) Goose() string {
	if d == Postgres {
		return "postgres"
	}
	return "sqlite3"
}

// Open connects using driver ("libsql" or "pgx") and returns the pool with
// its dialect.
func Open(ctx context.Context, driver, dsn string) (*sql.DB, Dialect, error) {
	switch driver {
	case "libsql", "sqlite":
		db, err := openSQLite(ctx, dsn)
		return db, SQLite, err
	case "pgx", "postgres":
		db, err := openPostgres(ctx, dsn)
		return db, Postgres, err
	default:
		return nil, "", fmt.Errorf("unsupported database driver %q", driver)
	}
}

// openSQLite creates a SQLite connection via libSQL and configures it for
// concurrent use: WAL journal mode, 5 s busy timeout, foreign keys enabled.
func openSQLite(ctx context.Context, path string) (*sql.DB, error) {
	dsn := path
	if !strings.Contains(path, ":") || path == ":memory:" {
		dsn = "file:" + path
	}

	db, err := sql.Open("libsql", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Every pooled connection to :memory: is a separate database.
	if strings.Contains(path, ":memory:") {
		db.SetMaxOpenConns(1)
	}

	// libSQL rejects Exec for PRAGMAs that return rows, but some PRAGMAs
	// (like foreign_keys=ON) return nothing. Use QueryContext and drain rows
	// to handle both cases uniformly.
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=ON",
	}
	for _, p := range pragmas {
		rows, err := db.QueryContext(ctx, p)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("executing %s: %w", p, err)
		}
		rows.Close()
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return db, nil
}

func openPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	db.SetMaxOpenConns(15)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return db, nil
}
