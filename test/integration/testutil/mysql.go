//go:build integration

package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/guttakrutt/guildsite/internal/infra"
	"github.com/guttakrutt/guildsite/internal/repository"
)

const (
	TestMySQLHost = "localhost"
	TestMySQLPort = 3307
	TestMySQLUser = "guttakrutt"
	TestMySQLPass = "guttakrutt"
	TestMySQLName = "guildsite_test"
)

var (
	sharedMyStore repository.Store
	sharedMyDB    *sql.DB
	myStoreOnce   sync.Once
	myStoreErr    error
)

func mysqlTestConfig() *infra.Config {
	return &infra.Config{
		DBType:        "mysql",
		MySQLHost:     TestMySQLHost,
		MySQLPort:     TestMySQLPort,
		MySQLUser:     TestMySQLUser,
		MySQLPassword: TestMySQLPass,
		MySQLDatabase: TestMySQLName,
	}
}

func ensureMySQLTestDB() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// No database in the DSN: the test database may not exist yet.
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/", TestMySQLUser, TestMySQLPass, TestMySQLHost, TestMySQLPort)
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return fmt.Errorf("connect bootstrap mysql: %w", err)
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, "CREATE DATABASE IF NOT EXISTS "+TestMySQLName); err != nil {
		return fmt.Errorf("create mysql test db: %w", err)
	}
	return nil
}

// GetMySQLStore returns the shared MySQL-backed store plus a raw handle for
// seeding and assertions, migrating the schema on first use. Tests built on
// this hit a real MySQL server, so the write-then-re-select protocol and the
// identifier normalization run for real instead of through the Postgres path.
func GetMySQLStore(t *testing.T) (repository.Store, *sql.DB) {
	t.Helper()
	myStoreOnce.Do(func() {
		if err := ensureMySQLTestDB(); err != nil {
			myStoreErr = err
			return
		}

		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
		cfg := mysqlTestConfig()

		if err := infra.RunMigrations("mysql", cfg.MySQLDSN(), logger); err != nil {
			myStoreErr = fmt.Errorf("run mysql migrations: %w", err)
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		store, err := repository.NewStore(ctx, cfg, logger)
		if err != nil {
			myStoreErr = fmt.Errorf("connect mysql store: %w", err)
			return
		}

		db, err := sql.Open("mysql", cfg.MySQLDSN())
		if err != nil {
			myStoreErr = fmt.Errorf("open raw mysql handle: %w", err)
			store.Close()
			return
		}

		sharedMyStore = store
		sharedMyDB = db
	})

	if myStoreErr != nil {
		t.Fatalf("failed to initialize mysql test store: %v", myStoreErr)
	}
	return sharedMyStore, sharedMyDB
}

// CleanMySQL truncates every table so each test starts from an empty schema.
// TRUNCATE needs the foreign key checks off; ordering alone does not satisfy
// InnoDB here.
func CleanMySQL(t *testing.T, db *sql.DB) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	tables := []string{
		"web_logs",
		"user_characters",
		"users",
		"application_comments",
		"applications",
		"raid_bosses",
		"raid_tiers",
		"expansions",
		"characters",
		"guilds",
		"admin_users",
		"media_files",
	}

	if _, err := db.ExecContext(ctx, "SET FOREIGN_KEY_CHECKS = 0"); err != nil {
		t.Fatalf("disable fk checks: %v", err)
	}
	for _, table := range tables {
		if _, err := db.ExecContext(ctx, "TRUNCATE TABLE "+table); err != nil {
			t.Fatalf("truncate %s: %v", table, err)
		}
	}
	if _, err := db.ExecContext(ctx, "SET FOREIGN_KEY_CHECKS = 1"); err != nil {
		t.Fatalf("enable fk checks: %v", err)
	}
}
