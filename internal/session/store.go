// Package session supplies the session-storage backend for the web layer.
// On Postgres sessions live in a table and survive restarts; on MySQL no
// table-backed adapter is wired up, so an in-process memory store stands in.
// Memory sessions are lost on restart, which is an accepted tradeoff for the
// fallback.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/guttakrutt/guildsite/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Session is one logged-in browser session.
type Session struct {
	Token     string
	UserID    *int64
	AdminID   *int64
	ExpiresAt time.Time
}

// Expired reports whether the session is past its expiry.
func (s *Session) Expired() bool { return time.Now().After(s.ExpiresAt) }

// NewToken returns a fresh opaque session token.
func NewToken() string { return uuid.New().String() }

// Store is the session backend selected per dialect.
type Store interface {
	Get(ctx context.Context, token string) (*Session, error)
	Put(ctx context.Context, s *Session) error
	Delete(ctx context.Context, token string) error
}

// NewStore picks the backend for the active dialect. pool may be nil for
// MySQL deployments; it is only consulted on Postgres.
func NewStore(ctx context.Context, dialect repository.Dialect, pool *pgxpool.Pool, logger *slog.Logger) Store {
	if dialect == repository.DialectPostgres && pool != nil {
		return &PgStore{pool: pool}
	}
	logger.Info("using in-memory session store", "dialect", dialect)
	ms := NewMemoryStore(5 * time.Minute)
	ms.StartJanitor(ctx)
	return ms
}

// PgStore keeps sessions in the sessions table.
type PgStore struct {
	pool *pgxpool.Pool
}

func (s *PgStore) Get(ctx context.Context, token string) (*Session, error) {
	sess := &Session{}
	err := s.pool.QueryRow(ctx,
		`SELECT "token", "userId", "adminId", "expiresAt" FROM sessions WHERE "token" = $1`, token).
		Scan(&sess.Token, &sess.UserID, &sess.AdminID, &sess.ExpiresAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan session: %w", err)
	}
	if sess.Expired() {
		return nil, nil
	}
	return sess, nil
}

func (s *PgStore) Put(ctx context.Context, sess *Session) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO sessions ("token", "userId", "adminId", "expiresAt")
		VALUES ($1, $2, $3, $4)
		ON CONFLICT ("token") DO UPDATE SET "userId" = $2, "adminId" = $3, "expiresAt" = $4`,
		sess.Token, sess.UserID, sess.AdminID, sess.ExpiresAt)
	if err != nil {
		return fmt.Errorf("upsert session: %w", err)
	}
	return nil
}

func (s *PgStore) Delete(ctx context.Context, token string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM sessions WHERE "token" = $1`, token)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// MemoryStore holds sessions in a mutex-guarded map and prunes expired
// entries on a fixed interval.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
	interval time.Duration
}

// NewMemoryStore creates a memory store with the given janitor interval.
func NewMemoryStore(interval time.Duration) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]Session),
		interval: interval,
	}
}

// StartJanitor prunes expired sessions until ctx is cancelled.
func (s *MemoryStore) StartJanitor(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.Prune()
			}
		}
	}()
}

// Prune removes expired sessions and reports how many went.
func (s *MemoryStore) Prune() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	now := time.Now()
	for token, sess := range s.sessions {
		if now.After(sess.ExpiresAt) {
			delete(s.sessions, token)
			n++
		}
	}
	return n
}

func (s *MemoryStore) Get(_ context.Context, token string) (*Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[token]
	s.mu.RUnlock()

	if !ok || sess.Expired() {
		return nil, nil
	}
	out := sess
	return &out, nil
}

func (s *MemoryStore) Put(_ context.Context, sess *Session) error {
	s.mu.Lock()
	s.sessions[sess.Token] = *sess
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
	return nil
}
