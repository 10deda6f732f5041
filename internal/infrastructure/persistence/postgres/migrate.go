package postgres

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	pgxmigrate "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	// File system migration source, registered for migrate.NewWithDatabaseInstance.
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/stdlib"
)

// Migrator applies the SQL files under a directory to the database.
type Migrator struct {
	db     *DB
	path   string
	dbName string
	logger *slog.Logger
}

func NewMigrator(db *DB, migrationsPath, dbName string, logger *slog.Logger) *Migrator {
	return &Migrator{
		db:     db,
		path:   migrationsPath,
		dbName: dbName,
		logger: logger,
	}
}

// Up applies every pending migration. Having nothing to apply is not an error.
func (m *Migrator) Up() error {
	return m.run("up", func(mg *migrate.Migrate) error { return mg.Up() })
}

// Down rolls back the given number of migrations.
func (m *Migrator) Down(steps int) error {
	if steps <= 0 {
		return fmt.Errorf("steps must be positive, got %d", steps)
	}
	return m.run("down", func(mg *migrate.Migrate) error { return mg.Steps(-steps) })
}

// Version reports the applied version and whether it is dirty.
func (m *Migrator) Version() (uint, bool, error) {
	var (
		version uint
		dirty   bool
	)
	err := m.with(func(mg *migrate.Migrate) error {
		var err error
		version, dirty, err = mg.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			return nil
		}
		return err
	})
	return version, dirty, err
}

func (m *Migrator) run(direction string, step func(*migrate.Migrate) error) error {
	err := m.with(step)
	if err == nil {
		m.logger.Info("migrations applied", "direction", direction, "path", m.path)
		return nil
	}

	if errors.Is(err, migrate.ErrNoChange) {
		m.logger.Info("no new migrations found, skipping", "direction", direction)
		return nil
	}

	var dirtyErr migrate.ErrDirty
	if errors.As(err, &dirtyErr) {
		m.logger.Error("migration failed with dirty version", "version", dirtyErr.Version)
		return fmt.Errorf("migration failed: dirty database version %d", dirtyErr.Version)
	}

	m.logger.Error("migration failed", "direction", direction, "error", err)
	return fmt.Errorf("migration failed: %w", err)
}

func (m *Migrator) with(fn func(*migrate.Migrate) error) error {
	sourceURL, err := m.sourceURL()
	if err != nil {
		return err
	}

	sqlDB := stdlib.OpenDBFromPool(m.db.Pool)
	defer sqlDB.Close()

	driver, err := pgxmigrate.WithInstance(sqlDB, &pgxmigrate.Config{DatabaseName: m.dbName})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	mg, err := migrate.NewWithDatabaseInstance(sourceURL, m.dbName, driver)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}
	defer mg.Close()

	return fn(mg)
}

func (m *Migrator) sourceURL() (string, error) {
	abs, err := filepath.Abs(m.path)
	if err != nil {
		return "", fmt.Errorf("resolve migrations path: %w", err)
	}
	if _, err := os.Stat(abs); err != nil {
		return "", fmt.Errorf("migrations path %s: %w", abs, err)
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
	return u.String(), nil
}
