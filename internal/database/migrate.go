package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var embedded embed.FS

// Migrate applies migrations from dir when it is a directory on disk and
// falls back to the migrations compiled into the binary otherwise.
func Migrate(db *sql.DB, dir string) error {
	if st, err := os.Stat(dir); dir == "" || err != nil || !st.IsDir() {
		dir = ""
	}
	return RunMigrationsWithDB(db, dir)
}

// RunMigrationsWithDB applies migrations through an already open handle.
// An empty migrationsPath uses the migrations compiled into the binary.
// The handle stays open.
func RunMigrationsWithDB(db *sql.DB, migrationsPath string) error {
	driver, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	if err != nil {
		return fmt.Errorf("migrate driver: %w", err)
	}
	var m *migrate.Migrate
	if migrationsPath == "" {
		src, err := iofs.New(embedded, "migrations")
		if err != nil {
			return fmt.Errorf("embedded migrations: %w", err)
		}
		m, err = migrate.NewWithInstance("iofs", src, "sqlite3", driver)
		if err != nil {
			return fmt.Errorf("migrate init: %w", err)
		}
	} else {
		src, err := sourceURL(migrationsPath)
		if err != nil {
			return err
		}
		m, err = migrate.NewWithDatabaseInstance(src, "sqlite3", driver)
		if err != nil {
			return fmt.Errorf("migrate init: %w", err)
		}
	}
	return up(m)
}

func up(m *migrate.Migrate) error {
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate up: %w", err)
	}
	return nil
}

func sourceURL(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("migrations path: %w", err)
	}
	return "file://" + filepath.ToSlash(abs), nil
}
