// filepath: internal/repository/schema.go
package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"voicejournal/internal/db/migrations"
	"voicejournal/internal/logging"

	"github.com/pressly/goose/v3"
)

// The embedded FS holds the migrations at its root.
const migrationsDir = "."

var gooseSetup sync.Once
var gooseSetupErr error

func configureGoose() error {
	gooseSetup.Do(func() {
		goose.SetBaseFS(migrations.FS)
		goose.SetLogger(logging.Log)
		gooseSetupErr = goose.SetDialect("sqlite3")
	})
	return gooseSetupErr
}

// LatestSchemaVersion returns the version of the newest embedded migration.
func LatestSchemaVersion() (int64, error) {
	if err := configureGoose(); err != nil {
		return 0, err
	}
	all, err := goose.CollectMigrations(migrationsDir, 0, goose.MaxVersion)
	if err != nil {
		return 0, fmt.Errorf("failed to collect migrations: %w", err)
	}
	last, err := all.Last()
	if err != nil {
		return 0, fmt.Errorf("no migrations embedded: %w", err)
	}
	return last.Version, nil
}

// EnsureSchemaBootstrapped migrates a brand-new database to the latest version.
// Databases that already carry a goose version table are left alone so that
// upgrades stay an explicit "migrate up".
func (s *Repository) EnsureSchemaBootstrapped() error {
	var name string
	err := s.DB.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='goose_db_version'").Scan(&name)
	if err == nil {
		logging.Log.Debug("Schema version table found; skipping bootstrap.")
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("failed to inspect schema: %w", err)
	}

	logging.Log.Info("Fresh database detected. Applying migrations...")
	return s.MigrateUp()
}

// ValidateSchema fails if the database is behind the embedded migrations.
func (s *Repository) ValidateSchema() error {
	if err := configureGoose(); err != nil {
		return err
	}
	latest, err := LatestSchemaVersion()
	if err != nil {
		return err
	}
	current, err := goose.GetDBVersion(s.DB)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if current < latest {
		return fmt.Errorf("database schema is outdated (version %d, expected %d); run 'voicejournal migrate up'", current, latest)
	}
	return nil
}

// MigrateUp applies all pending migrations.
func (s *Repository) MigrateUp() error {
	if err := configureGoose(); err != nil {
		return err
	}
	return goose.Up(s.DB, migrationsDir)
}

// MigrateDown rolls back the most recent migration.
func (s *Repository) MigrateDown() error {
	if err := configureGoose(); err != nil {
		return err
	}
	return goose.Down(s.DB, migrationsDir)
}

// MigrateStatus logs the state of every migration.
func (s *Repository) MigrateStatus() error {
	if err := configureGoose(); err != nil {
		return err
	}
	return goose.Status(s.DB, migrationsDir)
}
