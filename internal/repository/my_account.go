package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/guttakrutt/guildsite/internal/domain"
)

type myAdminUserRepo struct{ s *myStore }

const myAdminUserCols = "id, username, password_hash, last_login_at, created_at"

func scanMyAdminUser(row rowScanner) (*domain.AdminUser, error) {
	u := &domain.AdminUser{}
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.LastLoginAt, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan admin user: %w", err)
	}
	return u, nil
}

func (r *myAdminUserRepo) FindByID(ctx context.Context, id int64) (*domain.AdminUser, error) {
	return scanMyAdminUser(r.s.db.QueryRowContext(ctx,
		`SELECT `+myAdminUserCols+` FROM admin_users WHERE id = ?`, id))
}

func (r *myAdminUserRepo) FindByUsername(ctx context.Context, username string) (*domain.AdminUser, error) {
	return scanMyAdminUser(r.s.db.QueryRowContext(ctx,
		`SELECT `+myAdminUserCols+` FROM admin_users WHERE LOWER(username) = LOWER(?)`, username))
}

func (r *myAdminUserRepo) List(ctx context.Context) ([]domain.AdminUser, error) {
	rows, err := r.s.db.QueryContext(ctx,
		`SELECT `+myAdminUserCols+` FROM admin_users ORDER BY username ASC`)
	if err != nil {
		return nil, fmt.Errorf("query admin users: %w", err)
	}
	defer rows.Close()

	var out []domain.AdminUser
	for rows.Next() {
		u, err := scanMyAdminUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *u)
	}
	return out, rows.Err()
}

func (r *myAdminUserRepo) Create(ctx context.Context, u *domain.AdminUser) (*domain.AdminUser, error) {
	var out *domain.AdminUser
	err := r.s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO admin_users (username, password_hash) VALUES (?, ?)`,
			u.Username, u.PasswordHash)
		if err != nil {
			return fmt.Errorf("insert admin user: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("insert admin user id: %w", err)
		}
		out, err = scanMyAdminUser(tx.QueryRowContext(ctx,
			`SELECT `+myAdminUserCols+` FROM admin_users WHERE id = ?`, id))
		if err != nil {
			return err
		}
		if out == nil {
			return domain.ErrWriteVerify("admin user", nil)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *myAdminUserRepo) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	res, err := r.s.db.ExecContext(ctx,
		`UPDATE admin_users SET password_hash = ? WHERE id = ?`, passwordHash, id)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound("admin user", fmt.Sprint(id))
	}
	return nil
}

func (r *myAdminUserRepo) TouchLastLogin(ctx context.Context, id int64) error {
	_, err := r.s.db.ExecContext(ctx,
		`UPDATE admin_users SET last_login_at = NOW() WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("touch last login: %w", err)
	}
	return nil
}

func (r *myAdminUserRepo) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.s.db.ExecContext(ctx, `DELETE FROM admin_users WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete admin user: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete admin user: %w", err)
	}
	return n > 0, nil
}

type myUserRepo struct{ s *myStore }

const myUserCols = "id, battle_net_id, battle_tag, access_token, refresh_token, token_expires_at, is_guild_member, created_at, updated_at"

func scanMyUser(row rowScanner) (*domain.User, error) {
	u := &domain.User{}
	err := row.Scan(&u.ID, &u.BattleNetID, &u.BattleTag, &u.AccessToken, &u.RefreshToken,
		&u.TokenExpiresAt, &u.IsGuildMember, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return u, nil
}

func (r *myUserRepo) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	return scanMyUser(r.s.db.QueryRowContext(ctx,
		`SELECT `+myUserCols+` FROM users WHERE id = ?`, id))
}

func (r *myUserRepo) FindByBattleNetID(ctx context.Context, battleNetID int64) (*domain.User, error) {
	return scanMyUser(r.s.db.QueryRowContext(ctx,
		`SELECT `+myUserCols+` FROM users WHERE battle_net_id = ?`, battleNetID))
}

func (r *myUserRepo) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	var out *domain.User
	err := r.s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			INSERT INTO users (battle_net_id, battle_tag, access_token, refresh_token, token_expires_at, is_guild_member)
			VALUES (?, ?, ?, ?, ?, ?)`,
			u.BattleNetID, u.BattleTag, u.AccessToken, u.RefreshToken, u.TokenExpiresAt, u.IsGuildMember)
		if err != nil {
			return fmt.Errorf("insert user: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("insert user id: %w", err)
		}
		out, err = scanMyUser(tx.QueryRowContext(ctx,
			`SELECT `+myUserCols+` FROM users WHERE id = ?`, id))
		if err != nil {
			return err
		}
		if out == nil {
			return domain.ErrWriteVerify("user", nil)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *myUserRepo) UpdateTokens(ctx context.Context, id int64, accessToken, refreshToken string, expiresAt time.Time) error {
	res, err := r.s.db.ExecContext(ctx, `
		UPDATE users SET access_token = ?, refresh_token = ?, token_expires_at = ?, updated_at = NOW()
		WHERE id = ?`,
		accessToken, refreshToken, expiresAt, id)
	if err != nil {
		return fmt.Errorf("update tokens: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update tokens: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound("user", fmt.Sprint(id))
	}
	return nil
}

func (r *myUserRepo) SetGuildMember(ctx context.Context, id int64, member bool) error {
	res, err := r.s.db.ExecContext(ctx,
		`UPDATE users SET is_guild_member = ?, updated_at = NOW() WHERE id = ?`, member, id)
	if err != nil {
		return fmt.Errorf("set guild member: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("set guild member: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound("user", fmt.Sprint(id))
	}
	return nil
}

type myUserCharacterRepo struct{ s *myStore }

const myUserCharacterCols = "id, user_id, character_id, is_main, verified, created_at"

func scanMyUserCharacter(row rowScanner) (*domain.UserCharacter, error) {
	uc := &domain.UserCharacter{}
	err := row.Scan(&uc.ID, &uc.UserID, &uc.CharacterID, &uc.IsMain, &uc.Verified, &uc.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan user character: %w", err)
	}
	return uc, nil
}

func (r *myUserCharacterRepo) Link(ctx context.Context, uc *domain.UserCharacter) (*domain.UserCharacter, error) {
	var out *domain.UserCharacter
	err := r.s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO user_characters (user_id, character_id, is_main, verified) VALUES (?, ?, ?, ?)`,
			uc.UserID, uc.CharacterID, uc.IsMain, uc.Verified)
		if err != nil {
			return fmt.Errorf("insert user character: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("insert user character id: %w", err)
		}
		out, err = scanMyUserCharacter(tx.QueryRowContext(ctx,
			`SELECT `+myUserCharacterCols+` FROM user_characters WHERE id = ?`, id))
		if err != nil {
			return err
		}
		if out == nil {
			return domain.ErrWriteVerify("user character link", nil)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *myUserCharacterRepo) Unlink(ctx context.Context, userID, characterID int64) (bool, error) {
	res, err := r.s.db.ExecContext(ctx,
		`DELETE FROM user_characters WHERE user_id = ? AND character_id = ?`, userID, characterID)
	if err != nil {
		return false, fmt.Errorf("unlink character: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("unlink character: %w", err)
	}
	return n > 0, nil
}

func (r *myUserCharacterRepo) ListByUser(ctx context.Context, userID int64) ([]domain.UserCharacter, error) {
	rows, err := r.s.db.QueryContext(ctx,
		`SELECT `+myUserCharacterCols+` FROM user_characters WHERE user_id = ? ORDER BY created_at ASC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("query user characters: %w", err)
	}
	defer rows.Close()

	var out []domain.UserCharacter
	for rows.Next() {
		uc, err := scanMyUserCharacter(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *uc)
	}
	return out, rows.Err()
}

func (r *myUserCharacterRepo) SetMain(ctx context.Context, userID, characterID int64) error {
	res, err := r.s.db.ExecContext(ctx,
		`UPDATE user_characters SET is_main = (character_id = ?) WHERE user_id = ?`,
		characterID, userID)
	if err != nil {
		return fmt.Errorf("set main character: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("set main character: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound("user character link", fmt.Sprint(characterID))
	}
	return nil
}

func (r *myUserCharacterRepo) FindMain(ctx context.Context, userID int64) (*domain.UserCharacter, error) {
	return scanMyUserCharacter(r.s.db.QueryRowContext(ctx,
		`SELECT `+myUserCharacterCols+` FROM user_characters WHERE user_id = ? AND is_main = 1 LIMIT 1`,
		userID))
}

func (r *myUserCharacterRepo) SetVerified(ctx context.Context, id int64, verified bool) error {
	res, err := r.s.db.ExecContext(ctx,
		`UPDATE user_characters SET verified = ? WHERE id = ?`, verified, id)
	if err != nil {
		return fmt.Errorf("set verified: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("set verified: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound("user character link", fmt.Sprint(id))
	}
	return nil
}

type myMediaRepo struct{ s *myStore }

const myMediaCols = "id, file_name, file_path, mime_type, size_bytes, uploaded_by, created_at"

func scanMyMedia(row rowScanner) (*domain.MediaFile, error) {
	m := &domain.MediaFile{}
	err := row.Scan(&m.ID, &m.FileName, &m.FilePath, &m.MimeType, &m.SizeBytes, &m.UploadedBy, &m.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan media file: %w", err)
	}
	return m, nil
}

func (r *myMediaRepo) FindByID(ctx context.Context, id int64) (*domain.MediaFile, error) {
	return scanMyMedia(r.s.db.QueryRowContext(ctx,
		`SELECT `+myMediaCols+` FROM media_files WHERE id = ?`, id))
}

func (r *myMediaRepo) List(ctx context.Context) ([]domain.MediaFile, error) {
	rows, err := r.s.db.QueryContext(ctx,
		`SELECT `+myMediaCols+` FROM media_files ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query media files: %w", err)
	}
	defer rows.Close()

	var out []domain.MediaFile
	for rows.Next() {
		m, err := scanMyMedia(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *m)
	}
	return out, rows.Err()
}

func (r *myMediaRepo) Create(ctx context.Context, m *domain.MediaFile) (*domain.MediaFile, error) {
	var out *domain.MediaFile
	err := r.s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			INSERT INTO media_files (file_name, file_path, mime_type, size_bytes, uploaded_by)
			VALUES (?, ?, ?, ?, ?)`,
			m.FileName, m.FilePath, m.MimeType, m.SizeBytes, m.UploadedBy)
		if err != nil {
			return fmt.Errorf("insert media file: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("insert media file id: %w", err)
		}
		out, err = scanMyMedia(tx.QueryRowContext(ctx,
			`SELECT `+myMediaCols+` FROM media_files WHERE id = ?`, id))
		if err != nil {
			return err
		}
		if out == nil {
			return domain.ErrWriteVerify("media file", nil)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *myMediaRepo) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.s.db.ExecContext(ctx, `DELETE FROM media_files WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete media file: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete media file: %w", err)
	}
	return n > 0, nil
}
