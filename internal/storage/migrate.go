package storage

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	applog "horas/internal/log"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// RunMigrations brings the load journal schema at dbPath up to date, creating
// the parent directory when missing, and returns the schema version.
//
// Migrations use their own connection: closing the migrate instance closes
// the database handle it was given.
func RunMigrations(dbPath string, logger *applog.Logger) (uint, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return 0, fmt.Errorf("create journal directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return 0, fmt.Errorf("open journal database: %w", err)
	}
	defer db.Close()

	driver, err := sqlite.WithInstance(db, &sqlite.Config{})
	if err != nil {
		return 0, fmt.Errorf("create sqlite driver: %w", err)
	}
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return 0, fmt.Errorf("load embedded migrations: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return 0, fmt.Errorf("create migrate instance: %w", err)
	}
	defer m.Close()

	applied := true
	if err := m.Up(); err != nil {
		if !errors.Is(err, migrate.ErrNoChange) {
			return 0, fmt.Errorf("apply journal migrations: %w", err)
		}
		applied = false
	}

	version, dirty, err := m.Version()
	if err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	if dirty {
		return version, fmt.Errorf("journal schema version %d is dirty", version)
	}

	if logger != nil {
		logger.Info("Load journal schema ready",
			"db_path", dbPath,
			"version", version,
			"applied", applied)
	}
	return version, nil
}
