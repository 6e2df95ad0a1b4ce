package repository

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/guttakrutt/guildsite/internal/infra"
)

// Dialect identifies which database engine a deployment runs on.
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectMySQL    Dialect = "mysql"
)

// ResolveDialect maps the DB_TYPE configuration value to a Dialect.
// Anything that is not "mysql" falls back to Postgres, matching the
// deployment default.
func ResolveDialect(dbType string) Dialect {
	if strings.EqualFold(dbType, "mysql") {
		return DialectMySQL
	}
	return DialectPostgres
}

// NewStore resolves the dialect from config and connects the matching store.
// This runs once per process; a connection failure here is fatal at startup
// and is not retried.
func NewStore(ctx context.Context, cfg *infra.Config, logger *slog.Logger) (Store, error) {
	switch ResolveDialect(cfg.DBType) {
	case DialectMySQL:
		db, err := infra.NewMySQLPool(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("connect mysql: %w", err)
		}
		logger.Info("connected to mysql", "host", cfg.MySQLHost, "database", cfg.MySQLDatabase)
		return newMySQLStore(db, logger), nil
	default:
		pool, err := infra.NewPostgresPool(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		logger.Info("connected to postgres", "host", cfg.PGHost, "database", cfg.PGDatabase)
		return newPostgresStore(pool, logger), nil
	}
}
