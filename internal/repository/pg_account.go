package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/guttakrutt/guildsite/internal/domain"
	"github.com/jackc/pgx/v5"
)

type pgAdminUserRepo struct{ db DBTX }

const pgAdminUserCols = `"id", "username", "passwordHash", "lastLoginAt", "createdAt"`

func scanPgAdminUser(row pgx.Row) (*domain.AdminUser, error) {
	u := &domain.AdminUser{}
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.LastLoginAt, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan admin user: %w", err)
	}
	return u, nil
}

func (r *pgAdminUserRepo) FindByID(ctx context.Context, id int64) (*domain.AdminUser, error) {
	return scanPgAdminUser(r.db.QueryRow(ctx,
		`SELECT `+pgAdminUserCols+` FROM admin_users WHERE "id" = $1`, id))
}

func (r *pgAdminUserRepo) FindByUsername(ctx context.Context, username string) (*domain.AdminUser, error) {
	return scanPgAdminUser(r.db.QueryRow(ctx,
		`SELECT `+pgAdminUserCols+` FROM admin_users WHERE LOWER("username") = LOWER($1)`, username))
}

func (r *pgAdminUserRepo) List(ctx context.Context) ([]domain.AdminUser, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+pgAdminUserCols+` FROM admin_users ORDER BY "username" ASC`)
	if err != nil {
		return nil, fmt.Errorf("query admin users: %w", err)
	}
	defer rows.Close()

	var out []domain.AdminUser
	for rows.Next() {
		u, err := scanPgAdminUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *u)
	}
	return out, rows.Err()
}

func (r *pgAdminUserRepo) Create(ctx context.Context, u *domain.AdminUser) (*domain.AdminUser, error) {
	return scanPgAdminUser(r.db.QueryRow(ctx, `
		INSERT INTO admin_users ("username", "passwordHash") VALUES ($1, $2)
		RETURNING `+pgAdminUserCols,
		u.Username, u.PasswordHash))
}

func (r *pgAdminUserRepo) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE admin_users SET "passwordHash" = $1 WHERE "id" = $2`, passwordHash, id)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound("admin user", fmt.Sprint(id))
	}
	return nil
}

func (r *pgAdminUserRepo) TouchLastLogin(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx,
		`UPDATE admin_users SET "lastLoginAt" = now() WHERE "id" = $1`, id)
	if err != nil {
		return fmt.Errorf("touch last login: %w", err)
	}
	return nil
}

func (r *pgAdminUserRepo) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM admin_users WHERE "id" = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete admin user: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

type pgUserRepo struct{ db DBTX }

const pgUserCols = `"id", "battleNetId", "battleTag", "accessToken", "refreshToken", "tokenExpiresAt", "isGuildMember", "createdAt", "updatedAt"`

func scanPgUser(row pgx.Row) (*domain.User, error) {
	u := &domain.User{}
	err := row.Scan(&u.ID, &u.BattleNetID, &u.BattleTag, &u.AccessToken, &u.RefreshToken,
		&u.TokenExpiresAt, &u.IsGuildMember, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return u, nil
}

func (r *pgUserRepo) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	return scanPgUser(r.db.QueryRow(ctx,
		`SELECT `+pgUserCols+` FROM users WHERE "id" = $1`, id))
}

func (r *pgUserRepo) FindByBattleNetID(ctx context.Context, battleNetID int64) (*domain.User, error) {
	return scanPgUser(r.db.QueryRow(ctx,
		`SELECT `+pgUserCols+` FROM users WHERE "battleNetId" = $1`, battleNetID))
}

func (r *pgUserRepo) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	return scanPgUser(r.db.QueryRow(ctx, `
		INSERT INTO users ("battleNetId", "battleTag", "accessToken", "refreshToken", "tokenExpiresAt", "isGuildMember")
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+pgUserCols,
		u.BattleNetID, u.BattleTag, u.AccessToken, u.RefreshToken, u.TokenExpiresAt, u.IsGuildMember))
}

func (r *pgUserRepo) UpdateTokens(ctx context.Context, id int64, accessToken, refreshToken string, expiresAt time.Time) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE users SET "accessToken" = $1, "refreshToken" = $2, "tokenExpiresAt" = $3, "updatedAt" = now()
		WHERE "id" = $4`,
		accessToken, refreshToken, expiresAt, id)
	if err != nil {
		return fmt.Errorf("update tokens: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound("user", fmt.Sprint(id))
	}
	return nil
}

func (r *pgUserRepo) SetGuildMember(ctx context.Context, id int64, member bool) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE users SET "isGuildMember" = $1, "updatedAt" = now() WHERE "id" = $2`, member, id)
	if err != nil {
		return fmt.Errorf("set guild member: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound("user", fmt.Sprint(id))
	}
	return nil
}

type pgUserCharacterRepo struct{ db DBTX }

const pgUserCharacterCols = `"id", "userId", "characterId", "isMain", "verified", "createdAt"`

func scanPgUserCharacter(row pgx.Row) (*domain.UserCharacter, error) {
	uc := &domain.UserCharacter{}
	err := row.Scan(&uc.ID, &uc.UserID, &uc.CharacterID, &uc.IsMain, &uc.Verified, &uc.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan user character: %w", err)
	}
	return uc, nil
}

func (r *pgUserCharacterRepo) Link(ctx context.Context, uc *domain.UserCharacter) (*domain.UserCharacter, error) {
	return scanPgUserCharacter(r.db.QueryRow(ctx, `
		INSERT INTO user_characters ("userId", "characterId", "isMain", "verified")
		VALUES ($1, $2, $3, $4)
		RETURNING `+pgUserCharacterCols,
		uc.UserID, uc.CharacterID, uc.IsMain, uc.Verified))
}

func (r *pgUserCharacterRepo) Unlink(ctx context.Context, userID, characterID int64) (bool, error) {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM user_characters WHERE "userId" = $1 AND "characterId" = $2`, userID, characterID)
	if err != nil {
		return false, fmt.Errorf("unlink character: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *pgUserCharacterRepo) ListByUser(ctx context.Context, userID int64) ([]domain.UserCharacter, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+pgUserCharacterCols+` FROM user_characters WHERE "userId" = $1 ORDER BY "createdAt" ASC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("query user characters: %w", err)
	}
	defer rows.Close()

	var out []domain.UserCharacter
	for rows.Next() {
		uc, err := scanPgUserCharacter(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *uc)
	}
	return out, rows.Err()
}

// SetMain sets the flag on the target link and clears it on every other link
// of the same user in one statement.
func (r *pgUserCharacterRepo) SetMain(ctx context.Context, userID, characterID int64) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE user_characters SET "isMain" = ("characterId" = $1) WHERE "userId" = $2`,
		characterID, userID)
	if err != nil {
		return fmt.Errorf("set main character: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound("user character link", fmt.Sprint(characterID))
	}
	return nil
}

func (r *pgUserCharacterRepo) FindMain(ctx context.Context, userID int64) (*domain.UserCharacter, error) {
	return scanPgUserCharacter(r.db.QueryRow(ctx,
		`SELECT `+pgUserCharacterCols+` FROM user_characters WHERE "userId" = $1 AND "isMain" = true LIMIT 1`,
		userID))
}

func (r *pgUserCharacterRepo) SetVerified(ctx context.Context, id int64, verified bool) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE user_characters SET "verified" = $1 WHERE "id" = $2`, verified, id)
	if err != nil {
		return fmt.Errorf("set verified: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound("user character link", fmt.Sprint(id))
	}
	return nil
}

type pgMediaRepo struct{ db DBTX }

const pgMediaCols = `"id", "fileName", "filePath", "mimeType", "sizeBytes", "uploadedBy", "createdAt"`

func scanPgMedia(row pgx.Row) (*domain.MediaFile, error) {
	m := &domain.MediaFile{}
	err := row.Scan(&m.ID, &m.FileName, &m.FilePath, &m.MimeType, &m.SizeBytes, &m.UploadedBy, &m.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan media file: %w", err)
	}
	return m, nil
}

func (r *pgMediaRepo) FindByID(ctx context.Context, id int64) (*domain.MediaFile, error) {
	return scanPgMedia(r.db.QueryRow(ctx,
		`SELECT `+pgMediaCols+` FROM media_files WHERE "id" = $1`, id))
}

func (r *pgMediaRepo) List(ctx context.Context) ([]domain.MediaFile, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+pgMediaCols+` FROM media_files ORDER BY "createdAt" DESC`)
	if err != nil {
		return nil, fmt.Errorf("query media files: %w", err)
	}
	defer rows.Close()

	var out []domain.MediaFile
	for rows.Next() {
		m, err := scanPgMedia(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *m)
	}
	return out, rows.Err()
}

func (r *pgMediaRepo) Create(ctx context.Context, m *domain.MediaFile) (*domain.MediaFile, error) {
	return scanPgMedia(r.db.QueryRow(ctx, `
		INSERT INTO media_files ("fileName", "filePath", "mimeType", "sizeBytes", "uploadedBy")
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+pgMediaCols,
		m.FileName, m.FilePath, m.MimeType, m.SizeBytes, m.UploadedBy))
}

func (r *pgMediaRepo) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM media_files WHERE "id" = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete media file: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
