package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/guttakrutt/guildsite/internal/domain"
)

const myApplicationCols = "id, character_name, realm, class, spec, item_level, battle_tag, about_text, raid_experience, availability, status, reviewed_by, review_notes, reviewed_at, created_at, updated_at"

type myApplicationRepo struct{ s *myStore }

func scanMyApplication(row rowScanner) (*domain.Application, error) {
	a := &domain.Application{}
	err := row.Scan(&a.ID, &a.CharacterName, &a.Realm, &a.Class, &a.Spec, &a.ItemLevel,
		&a.BattleTag, &a.AboutText, &a.RaidExperience, &a.Availability, &a.Status,
		&a.ReviewedBy, &a.ReviewNotes, &a.ReviewedAt, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan application: %w", err)
	}
	return a, nil
}

func (r *myApplicationRepo) FindByID(ctx context.Context, id int64) (*domain.Application, error) {
	return scanMyApplication(r.s.db.QueryRowContext(ctx,
		`SELECT `+myApplicationCols+` FROM applications WHERE id = ?`, id))
}

func (r *myApplicationRepo) List(ctx context.Context) ([]domain.Application, error) {
	return r.list(ctx, `SELECT `+myApplicationCols+` FROM applications ORDER BY created_at DESC`)
}

func (r *myApplicationRepo) ListByStatus(ctx context.Context, status string) ([]domain.Application, error) {
	return r.list(ctx,
		`SELECT `+myApplicationCols+` FROM applications WHERE status = ? ORDER BY created_at DESC`,
		status)
}

func (r *myApplicationRepo) list(ctx context.Context, query string, args ...interface{}) ([]domain.Application, error) {
	rows, err := r.s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query applications: %w", err)
	}
	defer rows.Close()

	var out []domain.Application
	for rows.Next() {
		a, err := scanMyApplication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

func (r *myApplicationRepo) Create(ctx context.Context, a *domain.Application) (*domain.Application, error) {
	var out *domain.Application
	err := r.s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			INSERT INTO applications (character_name, realm, class, spec, item_level, battle_tag, about_text, raid_experience, availability, status)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, 'pending')`,
			a.CharacterName, a.Realm, a.Class, a.Spec, a.ItemLevel,
			a.BattleTag, a.AboutText, a.RaidExperience, a.Availability)
		if err != nil {
			return fmt.Errorf("insert application: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("insert application id: %w", err)
		}
		out, err = scanMyApplication(tx.QueryRowContext(ctx,
			`SELECT `+myApplicationCols+` FROM applications WHERE id = ?`, id))
		if err != nil {
			return err
		}
		if out == nil {
			return domain.ErrWriteVerify("application", nil)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *myApplicationRepo) ChangeStatus(ctx context.Context, id int64, status string, reviewerID int64, notes string) (*domain.Application, error) {
	var out *domain.Application
	err := r.s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			UPDATE applications
			SET status = ?, reviewed_by = ?, review_notes = ?, reviewed_at = NOW(), updated_at = NOW()
			WHERE id = ?`,
			status, reviewerID, notes, id)
		if err != nil {
			return fmt.Errorf("update application status: %w", err)
		}
		out, err = scanMyApplication(tx.QueryRowContext(ctx,
			`SELECT `+myApplicationCols+` FROM applications WHERE id = ?`, id))
		if err != nil {
			return err
		}
		if out == nil {
			return domain.ErrWriteVerify("application", nil)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *myApplicationRepo) AddComment(ctx context.Context, c *domain.ApplicationComment) (*domain.ApplicationComment, error) {
	out := &domain.ApplicationComment{}
	err := r.s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO application_comments (application_id, admin_id, comment) VALUES (?, ?, ?)`,
			c.ApplicationID, c.AdminID, c.Comment)
		if err != nil {
			return fmt.Errorf("insert comment: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("insert comment id: %w", err)
		}
		err = tx.QueryRowContext(ctx,
			`SELECT id, application_id, admin_id, comment, created_at FROM application_comments WHERE id = ?`, id).
			Scan(&out.ID, &out.ApplicationID, &out.AdminID, &out.Comment, &out.CreatedAt)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrWriteVerify("comment", nil)
		}
		if err != nil {
			return fmt.Errorf("scan comment: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *myApplicationRepo) ListComments(ctx context.Context, applicationID int64) ([]domain.ApplicationComment, error) {
	rows, err := r.s.db.QueryContext(ctx, `
		SELECT id, application_id, admin_id, comment, created_at
		FROM application_comments WHERE application_id = ? ORDER BY created_at ASC`,
		applicationID)
	if err != nil {
		return nil, fmt.Errorf("query comments: %w", err)
	}
	defer rows.Close()

	var out []domain.ApplicationComment
	for rows.Next() {
		var c domain.ApplicationComment
		if err := rows.Scan(&c.ID, &c.ApplicationID, &c.AdminID, &c.Comment, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
