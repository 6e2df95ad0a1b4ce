package infra

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// RunMigrations applies all pending migrations for the active dialect.
// Migration sets are maintained per dialect because the two schemas differ
// in identifier casing, not just syntax.
func RunMigrations(dialect, dsn string, logger *slog.Logger) error {
	migrationDir := findMigrationDir(dialect)
	sourceURL := fmt.Sprintf("file://%s", migrationDir)

	if dialect == "mysql" {
		dsn = "mysql://" + dsn
	}

	m, err := migrate.New(sourceURL, dsn)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("migrate up: %w", err)
	}

	version, dirty, _ := m.Version()
	logger.Info("migrations applied", "dialect", dialect, "version", version, "dirty", dirty)

	return nil
}

// findMigrationDir walks up from cwd looking for db/migrations/<dialect>.
func findMigrationDir(dialect string) string {
	fallback := "db/migrations/" + dialect
	dir, err := os.Getwd()
	if err != nil {
		return fallback
	}
	for dir != "" && dir != "/" {
		candidate := dir + "/db/migrations/" + dialect
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate
		}
		i := len(dir) - 1
		for i > 0 && dir[i] != '/' {
			i--
		}
		dir = dir[:i]
	}
	return fallback
}
