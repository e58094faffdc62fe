package database

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	pgxmigrate "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	sqlitemigrate "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrate brings the snapshot schema up to date on the given connection.
// The migration SQL is dialect-neutral and shared by both backends.
func Migrate(db *sql.DB, backend string) error {
	var (
		driver database.Driver
		err    error
	)

	switch backend {
	case BackendSQLite:
		driver, err = sqlitemigrate.WithInstance(db, &sqlitemigrate.Config{})
	case BackendPostgres:
		driver, err = pgxmigrate.WithInstance(db, &pgxmigrate.Config{})
	default:
		return fmt.Errorf("unsupported migration backend %q", backend)
	}

	if err != nil {
		return fmt.Errorf("creating %s migration driver: %w", backend, err)
	}

	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("creating migration source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, backend, driver)
	if err != nil {
		return fmt.Errorf("creating migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("running migrations: %w", err)
	}

	return nil
}
