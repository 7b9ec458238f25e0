// internal/database/migrate.go
//
// Embedded schema migrations.
//
// Context
// -------
// The identity schema (site, site_alias, slug) plus the content tables are
// versioned as plain SQL files under migrations/ and compiled into the
// binary with go:embed.  Migrate() is called once during bootstrap, after
// the pool is open, so a fresh deployment needs no out-of-band schema step.
//
// Notes
// -----
// • migrate.ErrNoChange is not an error; an up-to-date schema is the
//   common case.
// • Oxford commas, two spaces after periods.
package database

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrate applies any pending schema migrations to db.
func Migrate(db *sqlx.DB) error {
	driver, err := mysql.WithInstance(db.DB, &mysql.Config{})
	if err != nil {
		return fmt.Errorf("migration driver: %w", err)
	}

	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("migration source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "mysql", driver)
	if err != nil {
		return fmt.Errorf("migrator: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}

	v, _, _ := m.Version()
	zap.S().Infow("schema migrations applied", "version", v)
	return nil
}
