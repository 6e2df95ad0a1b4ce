package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/guttakrutt/guildsite/internal/domain"
	"github.com/jackc/pgx/v5"
)

const pgApplicationCols = `"id", "characterName", "realm", "class", "spec", "itemLevel", "battleTag", "aboutText", "raidExperience", "availability", "status", "reviewedBy", "reviewNotes", "reviewedAt", "createdAt", "updatedAt"`

type pgApplicationRepo struct{ db DBTX }

func scanPgApplication(row pgx.Row) (*domain.Application, error) {
	a := &domain.Application{}
	err := row.Scan(&a.ID, &a.CharacterName, &a.Realm, &a.Class, &a.Spec, &a.ItemLevel,
		&a.BattleTag, &a.AboutText, &a.RaidExperience, &a.Availability, &a.Status,
		&a.ReviewedBy, &a.ReviewNotes, &a.ReviewedAt, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan application: %w", err)
	}
	return a, nil
}

func (r *pgApplicationRepo) FindByID(ctx context.Context, id int64) (*domain.Application, error) {
	return scanPgApplication(r.db.QueryRow(ctx,
		`SELECT `+pgApplicationCols+` FROM applications WHERE "id" = $1`, id))
}

func (r *pgApplicationRepo) List(ctx context.Context) ([]domain.Application, error) {
	return r.list(ctx, `SELECT `+pgApplicationCols+` FROM applications ORDER BY "createdAt" DESC`)
}

func (r *pgApplicationRepo) ListByStatus(ctx context.Context, status string) ([]domain.Application, error) {
	return r.list(ctx,
		`SELECT `+pgApplicationCols+` FROM applications WHERE "status" = $1 ORDER BY "createdAt" DESC`,
		status)
}

func (r *pgApplicationRepo) list(ctx context.Context, query string, args ...interface{}) ([]domain.Application, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query applications: %w", err)
	}
	defer rows.Close()

	var out []domain.Application
	for rows.Next() {
		a, err := scanPgApplication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

func (r *pgApplicationRepo) Create(ctx context.Context, a *domain.Application) (*domain.Application, error) {
	return scanPgApplication(r.db.QueryRow(ctx, `
		INSERT INTO applications ("characterName", "realm", "class", "spec", "itemLevel", "battleTag", "aboutText", "raidExperience", "availability", "status")
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 'pending')
		RETURNING `+pgApplicationCols,
		a.CharacterName, a.Realm, a.Class, a.Spec, a.ItemLevel,
		a.BattleTag, a.AboutText, a.RaidExperience, a.Availability))
}

func (r *pgApplicationRepo) ChangeStatus(ctx context.Context, id int64, status string, reviewerID int64, notes string) (*domain.Application, error) {
	return scanPgApplication(r.db.QueryRow(ctx, `
		UPDATE applications
		SET "status" = $1, "reviewedBy" = $2, "reviewNotes" = $3, "reviewedAt" = now(), "updatedAt" = now()
		WHERE "id" = $4
		RETURNING `+pgApplicationCols,
		status, reviewerID, notes, id))
}

func (r *pgApplicationRepo) AddComment(ctx context.Context, c *domain.ApplicationComment) (*domain.ApplicationComment, error) {
	out := &domain.ApplicationComment{}
	err := r.db.QueryRow(ctx, `
		INSERT INTO application_comments ("applicationId", "adminId", "comment")
		VALUES ($1, $2, $3)
		RETURNING "id", "applicationId", "adminId", "comment", "createdAt"`,
		c.ApplicationID, c.AdminID, c.Comment).
		Scan(&out.ID, &out.ApplicationID, &out.AdminID, &out.Comment, &out.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert comment: %w", err)
	}
	return out, nil
}

func (r *pgApplicationRepo) ListComments(ctx context.Context, applicationID int64) ([]domain.ApplicationComment, error) {
	rows, err := r.db.Query(ctx, `
		SELECT "id", "applicationId", "adminId", "comment", "createdAt"
		FROM application_comments WHERE "applicationId" = $1 ORDER BY "createdAt" ASC`,
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
