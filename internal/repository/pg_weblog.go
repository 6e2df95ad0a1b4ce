package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/guttakrutt/guildsite/internal/domain"
	"github.com/jackc/pgx/v5"
)

type pgWebLogRepo struct{ db DBTX }

const pgWebLogCols = `"id", "operation", "status", "detail", "userId", "adminId", "createdAt"`

func scanPgWebLog(row pgx.Row) (*domain.WebLog, error) {
	l := &domain.WebLog{}
	err := row.Scan(&l.ID, &l.Operation, &l.Status, &l.Detail, &l.UserID, &l.AdminID, &l.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan web log: %w", err)
	}
	return l, nil
}

func (r *pgWebLogRepo) Insert(ctx context.Context, l *domain.WebLog) (*domain.WebLog, error) {
	return scanPgWebLog(r.db.QueryRow(ctx, `
		INSERT INTO web_logs ("operation", "status", "detail", "userId", "adminId")
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+pgWebLogCols,
		l.Operation, l.Status, l.Detail, l.UserID, l.AdminID))
}

func (r *pgWebLogRepo) ListRecent(ctx context.Context, limit int) ([]domain.WebLog, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+pgWebLogCols+` FROM web_logs ORDER BY "createdAt" DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("query web logs: %w", err)
	}
	defer rows.Close()

	var out []domain.WebLog
	for rows.Next() {
		l, err := scanPgWebLog(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *l)
	}
	return out, rows.Err()
}

func (r *pgWebLogRepo) PruneBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM web_logs WHERE "createdAt" < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("prune web logs: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *pgWebLogRepo) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM web_logs WHERE "id" = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete web log: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
