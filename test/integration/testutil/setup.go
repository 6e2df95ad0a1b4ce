//go:build integration

package testutil

import (
	"context"
	"fmt"
	"log/slog"
	"net/http/httptest"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/guttakrutt/guildsite/internal/app"
	"github.com/guttakrutt/guildsite/internal/auth"
	"github.com/guttakrutt/guildsite/internal/infra"
	"github.com/guttakrutt/guildsite/internal/repository"
	"github.com/guttakrutt/guildsite/internal/session"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	TestJWTSecret = "integration-test-secret"
	TestDBHost    = "localhost"
	TestDBPort    = 5434
	TestDBUser    = "guttakrutt"
	TestDBPass    = "guttakrutt"
	TestDBName    = "guildsite_test"
)

// TestEnv holds all resources for an integration test.
type TestEnv struct {
	Server *httptest.Server
	Store  repository.Store
	Pool   *pgxpool.Pool
	JWTMgr *auth.JWTManager
	t      *testing.T
}

var (
	sharedStore repository.Store
	sharedPool  *pgxpool.Pool
	storeOnce   sync.Once
	storeErr    error
)

func testDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		TestDBUser, TestDBPass, TestDBHost, TestDBPort, TestDBName)
}

func bootstrapDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		TestDBUser, TestDBPass, TestDBHost, TestDBPort, "guttakrutt")
}

func ensureTestDB() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	bPool, err := pgxpool.New(ctx, bootstrapDSN())
	if err != nil {
		return fmt.Errorf("connect bootstrap db: %w", err)
	}
	defer bPool.Close()

	var exists bool
	err = bPool.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)", TestDBName).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check db exists: %w", err)
	}

	if !exists {
		_, err = bPool.Exec(ctx, fmt.Sprintf("CREATE DATABASE %s", TestDBName))
		if err != nil {
			return fmt.Errorf("create test db: %w", err)
		}
	}

	return nil
}

func getSharedStore(t *testing.T) (repository.Store, *pgxpool.Pool) {
	t.Helper()
	storeOnce.Do(func() {
		if err := ensureTestDB(); err != nil {
			storeErr = err
			return
		}

		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

		if err := infra.RunMigrations("postgres", testDSN(), logger); err != nil {
			storeErr = fmt.Errorf("run migrations: %w", err)
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		cfg := &infra.Config{DBType: "postgres", DatabaseURL: testDSN()}
		store, err := repository.NewStore(ctx, cfg, logger)
		if err != nil {
			storeErr = fmt.Errorf("connect store: %w", err)
			return
		}

		pooler, ok := store.(interface{ Pool() *pgxpool.Pool })
		if !ok {
			storeErr = fmt.Errorf("store does not expose a pgx pool")
			store.Close()
			return
		}

		sharedStore = store
		sharedPool = pooler.Pool()
	})

	if storeErr != nil {
		t.Fatalf("failed to initialize test store: %v", storeErr)
	}
	return sharedStore, sharedPool
}

// NewTestEnv creates a test environment with an httptest.Server backed by the
// real router and test DB.
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	store, pool := getSharedStore(t)

	jwtMgr := auth.NewJWTManager(TestJWTSecret, 24*time.Hour, 8*time.Hour)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	sessions := session.NewStore(context.Background(), store.Dialect(), pool, logger)
	producer := infra.NewAuditProducer("localhost:9092", "guildsite.audit.test", false, logger)

	deps := app.RouterDeps{
		Store:      store,
		Sessions:   sessions,
		JWTMgr:     jwtMgr,
		Producer:   producer,
		Logger:     logger,
		CORSOrigin: "*",
	}
	svcs := app.NewServices(deps)
	router := app.NewRouter(deps, svcs)

	server := httptest.NewServer(router)

	env := &TestEnv{
		Server: server,
		Store:  store,
		Pool:   pool,
		JWTMgr: jwtMgr,
		t:      t,
	}

	t.Cleanup(func() {
		server.Close()
		env.CleanAll()
	})

	// Clean before test to ensure isolation
	env.CleanAll()

	return env
}
