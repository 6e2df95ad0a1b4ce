package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/guttakrutt/guildsite/internal/auth"
	"github.com/guttakrutt/guildsite/internal/domain"
	"github.com/guttakrutt/guildsite/internal/guard"
	"github.com/guttakrutt/guildsite/internal/repository"
	"github.com/guttakrutt/guildsite/internal/session"
	"golang.org/x/crypto/bcrypt"
)

// AdminService handles panel accounts and admin login.
type AdminService struct {
	store    repository.Store
	jwtMgr   *auth.JWTManager
	lockout  *guard.Lockout
	sessions session.Store
	audit    *AuditService
	logger   *slog.Logger
}

// NewAdminService creates an AdminService.
func NewAdminService(store repository.Store, jwtMgr *auth.JWTManager, lockout *guard.Lockout, sessions session.Store, audit *AuditService, logger *slog.Logger) *AdminService {
	return &AdminService{store: store, jwtMgr: jwtMgr, lockout: lockout, sessions: sessions, audit: audit, logger: logger}
}

// LoginInput holds admin login request fields.
type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResult is returned on successful admin login. SessionToken identifies
// the server-side session record; deleting it on logout revokes the login
// even while the JWT is still unexpired.
type LoginResult struct {
	Token        string `json:"token"`
	SessionToken string `json:"session_token"`
	AdminID      int64  `json:"admin_id"`
	Username     string `json:"username"`
}

// Login authenticates an admin with bcrypt, enforcing the failed-attempt
// lockout. Unknown usernames and bad passwords get the same response.
func (s *AdminService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" || input.Password == "" {
		return nil, domain.ErrValidation("username and password are required")
	}

	key := strings.ToLower(username) + ":" + string(auth.RealmAdmin)
	if err := s.lockout.CheckLocked(key); err != nil {
		return nil, err
	}

	admin, err := s.store.AdminUsers().FindByUsername(ctx, username)
	if err != nil {
		return nil, domain.ErrInternal("load admin user", err)
	}
	if admin == nil {
		s.lockout.RecordFailure(key)
		return nil, domain.ErrUnauthorized("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(input.Password)); err != nil {
		s.lockout.RecordFailure(key)
		s.audit.Record(ctx, "admin.login", domain.LogStatusError, username, nil, nil)
		return nil, domain.ErrUnauthorized("invalid credentials")
	}

	s.lockout.RecordSuccess(key)

	if err := s.store.AdminUsers().TouchLastLogin(ctx, admin.ID); err != nil {
		s.logger.Error("touch last login", "admin_id", admin.ID, "error", err)
	}

	token, err := s.jwtMgr.GenerateToken(auth.RealmAdmin, admin.ID, admin.Username)
	if err != nil {
		return nil, domain.ErrInternal("generate token", err)
	}

	sess := &session.Session{
		Token:     session.NewToken(),
		AdminID:   &admin.ID,
		ExpiresAt: time.Now().Add(s.jwtMgr.Expiry(auth.RealmAdmin)),
	}
	if err := s.sessions.Put(ctx, sess); err != nil {
		s.logger.Error("store admin session", "admin_id", admin.ID, "error", err)
	}

	s.audit.Record(ctx, "admin.login", domain.LogStatusOK, username, nil, &admin.ID)
	return &LoginResult{Token: token, SessionToken: sess.Token, AdminID: admin.ID, Username: admin.Username}, nil
}

// Logout deletes the server-side session record.
func (s *AdminService) Logout(ctx context.Context, sessionToken string) error {
	if sessionToken == "" {
		return domain.ErrValidation("session token is required")
	}
	if err := s.sessions.Delete(ctx, sessionToken); err != nil {
		return wrapWrite("delete session", err)
	}
	return nil
}

// ListAdmins returns all panel accounts. Read failures degrade to empty.
func (s *AdminService) ListAdmins(ctx context.Context) []domain.AdminUser {
	out, err := s.store.AdminUsers().List(ctx)
	if err != nil {
		s.logger.Error("list admin users", "error", err)
		return []domain.AdminUser{}
	}
	return out
}

// CreateAdmin creates a panel account with a bcrypt password hash.
func (s *AdminService) CreateAdmin(ctx context.Context, username, password string) (*domain.AdminUser, error) {
	username = strings.TrimSpace(username)
	if len(username) < 3 {
		return nil, domain.ErrValidation("username must be at least 3 characters")
	}
	if len(password) < 8 {
		return nil, domain.ErrValidation("password must be at least 8 characters")
	}

	existing, err := s.store.AdminUsers().FindByUsername(ctx, username)
	if err != nil {
		return nil, domain.ErrInternal("check existing admin", err)
	}
	if existing != nil {
		return nil, domain.ErrConflict("username already taken")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, domain.ErrInternal("hash password", err)
	}

	created, err := s.store.AdminUsers().Create(ctx, &domain.AdminUser{
		Username:     username,
		PasswordHash: string(hash),
	})
	if err != nil {
		return nil, wrapWrite("create admin user", err)
	}
	return created, nil
}

// ChangePassword replaces an admin's password hash.
func (s *AdminService) ChangePassword(ctx context.Context, id int64, newPassword string) error {
	if len(newPassword) < 8 {
		return domain.ErrValidation("password must be at least 8 characters")
	}

	admin, err := s.store.AdminUsers().FindByID(ctx, id)
	if err != nil {
		return domain.ErrInternal("load admin user", err)
	}
	if admin == nil {
		return domain.ErrNotFound("admin user", itoa(id))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return domain.ErrInternal("hash password", err)
	}

	if err := s.store.AdminUsers().UpdatePassword(ctx, id, string(hash)); err != nil {
		return wrapWrite("update admin password", err)
	}
	return nil
}

// DeleteAdmin removes a panel account.
func (s *AdminService) DeleteAdmin(ctx context.Context, id, callerID int64) error {
	if id == callerID {
		return domain.ErrValidation("cannot delete your own account")
	}

	removed, err := s.store.AdminUsers().Delete(ctx, id)
	if err != nil {
		return wrapWrite("delete admin user", err)
	}
	if !removed {
		return domain.ErrNotFound("admin user", itoa(id))
	}
	return nil
}

// DashboardStats returns the admin dashboard counters. Read failures degrade
// to an empty map.
func (s *AdminService) DashboardStats(ctx context.Context) map[string]interface{} {
	stats, err := s.store.DashboardStats(ctx)
	if err != nil {
		s.logger.Error("load dashboard stats", "error", err)
		return map[string]interface{}{}
	}
	return stats
}

// ListMedia returns uploaded-media records. Read failures degrade to empty.
func (s *AdminService) ListMedia(ctx context.Context) []domain.MediaFile {
	out, err := s.store.Media().List(ctx)
	if err != nil {
		s.logger.Error("list media", "error", err)
		return []domain.MediaFile{}
	}
	return out
}

// CreateMedia records metadata for an uploaded file.
func (s *AdminService) CreateMedia(ctx context.Context, m *domain.MediaFile) (*domain.MediaFile, error) {
	if m.FileName == "" || m.FilePath == "" {
		return nil, domain.ErrValidation("file name and path are required")
	}
	created, err := s.store.Media().Create(ctx, m)
	if err != nil {
		return nil, wrapWrite("create media record", err)
	}
	return created, nil
}

// DeleteMedia removes a media record.
func (s *AdminService) DeleteMedia(ctx context.Context, id int64) error {
	removed, err := s.store.Media().Delete(ctx, id)
	if err != nil {
		return wrapWrite("delete media record", err)
	}
	if !removed {
		return domain.ErrNotFound("media file", itoa(id))
	}
	return nil
}
