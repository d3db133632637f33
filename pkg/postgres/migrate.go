package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres" // register postgres driver
	_ "github.com/golang-migrate/migrate/v4/source/file"       // register file source driver
)

// RunMigrations applies pending migrations from dir, which may be a plain path
// or a file:// URL. No pending migrations is not an error.
func RunMigrations(dsn, dir string) error {
	m, err := migrate.New(sourceURL(dir), dsn)
	if err != nil {
		return fmt.Errorf("postgres: create migrator: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("postgres: run migrations up: %w", err)
	}
	return nil
}

func sourceURL(dir string) string {
	if strings.Contains(dir, "://") {
		return dir
	}
	return "file://" + dir
}
