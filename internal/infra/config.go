package infra

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Config holds all application configuration parsed from environment variables.
type Config struct {
	// Database dialect selector: "postgres" (default) or "mysql".
	DBType string `env:"DB_TYPE" envDefault:"postgres"`

	// Postgres
	DatabaseURL string `env:"DATABASE_URL"`
	PGHost      string `env:"PGHOST" envDefault:"localhost"`
	PGPort      int    `env:"PGPORT" envDefault:"5432"`
	PGUser      string `env:"PGUSER" envDefault:"guttakrutt"`
	PGPassword  string `env:"PGPASSWORD" envDefault:"guttakrutt"`
	PGDatabase  string `env:"PGDATABASE" envDefault:"guttakrutt"`

	// MySQL
	MySQLHost     string `env:"MYSQL_HOST" envDefault:"localhost"`
	MySQLPort     int    `env:"MYSQL_PORT" envDefault:"3306"`
	MySQLUser     string `env:"MYSQL_USER" envDefault:"guttakrutt"`
	MySQLPassword string `env:"MYSQL_PASSWORD" envDefault:"guttakrutt"`
	MySQLDatabase string `env:"MYSQL_DATABASE" envDefault:"guttakrutt"`

	// JWT
	JWTSecret      string `env:"JWT_SECRET" envDefault:"change-me-in-production"`
	JWTUserExpiry  string `env:"JWT_USER_EXPIRY" envDefault:"24h"`
	JWTAdminExpiry string `env:"JWT_ADMIN_EXPIRY" envDefault:"8h"`

	// Server
	APIPort int `env:"API_PORT" envDefault:"3001"`

	// Kafka audit stream
	KafkaBrokers string `env:"KAFKA_BROKERS" envDefault:"localhost:9092"`
	KafkaEnabled bool   `env:"KAFKA_ENABLED" envDefault:"false"`
	AuditTopic   string `env:"AUDIT_TOPIC" envDefault:"guttakrutt.audit"`

	// Web log retention
	WebLogRetention string `env:"WEBLOG_RETENTION" envDefault:"720h"`

	// CORS
	CORSAllowedOrigins string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*"`

	// Dev
	AllowInsecureDefaults bool `env:"ALLOW_INSECURE_DEFAULTS" envDefault:"false"`
}

// LoadConfig parses environment variables into a Config struct.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Validate checks for unsupported or insecure configuration.
// Set ALLOW_INSECURE_DEFAULTS=true to bypass the secret checks (local dev only).
func (c *Config) Validate() error {
	switch strings.ToLower(c.DBType) {
	case "postgres", "mysql":
	default:
		return fmt.Errorf("unsupported DB_TYPE %q (want postgres or mysql)", c.DBType)
	}
	if c.AllowInsecureDefaults {
		return nil
	}
	if c.JWTSecret == "change-me-in-production" {
		return fmt.Errorf("JWT_SECRET is set to the insecure default; set a strong secret or set ALLOW_INSECURE_DEFAULTS=true for local dev")
	}
	if len(c.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET is too short (%d chars); minimum 32 characters required", len(c.JWTSecret))
	}
	return nil
}

// PostgresDSN returns the PostgreSQL connection string, preferring DATABASE_URL if set.
func (c *Config) PostgresDSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.PGUser, c.PGPassword, c.PGHost, c.PGPort, c.PGDatabase)
}

// MySQLDSN returns the go-sql-driver connection string. parseTime is required
// so DATETIME columns scan into time.Time; clientFoundRows makes UPDATE report
// matched rows rather than changed rows, matching Postgres RowsAffected
// semantics that the repositories rely on.
func (c *Config) MySQLDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&clientFoundRows=true&multiStatements=true",
		c.MySQLUser, c.MySQLPassword, c.MySQLHost, c.MySQLPort, c.MySQLDatabase)
}
