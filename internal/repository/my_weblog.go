package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/guttakrutt/guildsite/internal/domain"
)

type myWebLogRepo struct{ s *myStore }

const myWebLogCols = "id, operation, status, detail, user_id, admin_id, created_at"

func scanMyWebLog(row rowScanner) (*domain.WebLog, error) {
	l := &domain.WebLog{}
	err := row.Scan(&l.ID, &l.Operation, &l.Status, &l.Detail, &l.UserID, &l.AdminID, &l.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan web log: %w", err)
	}
	return l, nil
}

func (r *myWebLogRepo) Insert(ctx context.Context, l *domain.WebLog) (*domain.WebLog, error) {
	var out *domain.WebLog
	err := r.s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			INSERT INTO web_logs (operation, status, detail, user_id, admin_id)
			VALUES (?, ?, ?, ?, ?)`,
			l.Operation, l.Status, l.Detail, l.UserID, l.AdminID)
		if err != nil {
			return fmt.Errorf("insert web log: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("insert web log id: %w", err)
		}
		out, err = scanMyWebLog(tx.QueryRowContext(ctx,
			`SELECT `+myWebLogCols+` FROM web_logs WHERE id = ?`, id))
		if err != nil {
			return err
		}
		if out == nil {
			return domain.ErrWriteVerify("web log", nil)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *myWebLogRepo) ListRecent(ctx context.Context, limit int) ([]domain.WebLog, error) {
	rows, err := r.s.db.QueryContext(ctx,
		`SELECT `+myWebLogCols+` FROM web_logs ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query web logs: %w", err)
	}
	defer rows.Close()

	var out []domain.WebLog
	for rows.Next() {
		l, err := scanMyWebLog(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *l)
	}
	return out, rows.Err()
}

func (r *myWebLogRepo) PruneBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.s.db.ExecContext(ctx, `DELETE FROM web_logs WHERE created_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("prune web logs: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("prune web logs: %w", err)
	}
	return n, nil
}

func (r *myWebLogRepo) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.s.db.ExecContext(ctx, `DELETE FROM web_logs WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete web log: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete web log: %w", err)
	}
	return n > 0, nil
}
