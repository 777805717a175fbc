package migrations

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/umendra-pardhi/Sports-Management-Platform/internal/database"
)

//go:embed sqlite/*.sql postgres/*.sql
var fs embed.FS

// Run applies all pending migrations for dialect against db. Postgres also
// gets the triggers that feed LISTEN/NOTIFY.
func Run(db *sql.DB, dialect database.Dialect) error {
	goose.SetBaseFS(fs)

	if err := goose.SetDialect(dialect.Goose()); err != nil {
		return fmt.Errorf("setting dialect: %w", err)
	}
	if err := goose.Up(db, string(dialect)); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	return nil
}
