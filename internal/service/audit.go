package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/guttakrutt/guildsite/internal/domain"
	"github.com/guttakrutt/guildsite/internal/infra"
	"github.com/guttakrutt/guildsite/internal/repository"
)

// AuditService writes operational log rows and mirrors them onto the audit
// stream when Kafka is enabled. Audit writes never fail a caller's operation.
type AuditService struct {
	store    repository.Store
	producer *infra.AuditProducer
	logger   *slog.Logger
}

// NewAuditService creates an AuditService.
func NewAuditService(store repository.Store, producer *infra.AuditProducer, logger *slog.Logger) *AuditService {
	return &AuditService{store: store, producer: producer, logger: logger}
}

// Record appends one log row and publishes it to the audit stream. Failures
// are logged, not returned; recording must never fail the calling operation.
func (s *AuditService) Record(ctx context.Context, operation, status, detail string, userID, adminID *int64) {
	row := &domain.WebLog{
		Operation: operation,
		Status:    status,
		Detail:    detail,
		UserID:    userID,
		AdminID:   adminID,
	}

	inserted, err := s.store.WebLogs().Insert(ctx, row)
	if err != nil {
		s.logger.Error("insert web log", "operation", operation, "error", err)
		return
	}

	payload, err := json.Marshal(inserted)
	if err != nil {
		s.logger.Error("marshal audit event", "operation", operation, "error", err)
		return
	}
	if err := s.producer.Publish(ctx, []byte(operation), payload); err != nil {
		s.logger.Error("publish audit event", "operation", operation, "error", err)
	}
}

// Recent returns the newest log rows. Read failures degrade to an empty list.
func (s *AuditService) Recent(ctx context.Context, limit int) []domain.WebLog {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	out, err := s.store.WebLogs().ListRecent(ctx, limit)
	if err != nil {
		s.logger.Error("list web logs", "error", err)
		return []domain.WebLog{}
	}
	return out
}

// DeleteLog removes a single log row.
func (s *AuditService) DeleteLog(ctx context.Context, id int64) error {
	removed, err := s.store.WebLogs().Delete(ctx, id)
	if err != nil {
		return wrapWrite("delete web log", err)
	}
	if !removed {
		return domain.ErrNotFound("web log", itoa(id))
	}
	return nil
}

// Prune deletes log rows older than the retention window and reports the count.
func (s *AuditService) Prune(ctx context.Context, retention time.Duration) (int64, error) {
	n, err := s.store.WebLogs().PruneBefore(ctx, time.Now().Add(-retention))
	if err != nil {
		return 0, wrapWrite("prune web logs", err)
	}
	return n, nil
}

// StartPruner prunes aged log rows on the given interval until ctx is
// cancelled.
func (s *AuditService) StartPruner(ctx context.Context, interval, retention time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				n, err := s.Prune(ctx, retention)
				if err != nil {
					s.logger.Error("prune web logs", "error", err)
					continue
				}
				if n > 0 {
					s.logger.Info("pruned web logs", "count", n)
				}
			}
		}
	}()
}
