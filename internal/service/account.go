package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/guttakrutt/guildsite/internal/domain"
	"github.com/guttakrutt/guildsite/internal/repository"
)

// AccountService handles end-user accounts and their character links.
type AccountService struct {
	store  repository.Store
	logger *slog.Logger
}

// NewAccountService creates an AccountService.
func NewAccountService(store repository.Store, logger *slog.Logger) *AccountService {
	return &AccountService{store: store, logger: logger}
}

// UpsertBattleNetUser finds or creates the user for a Battle.net identity and
// stores the latest tokens.
func (s *AccountService) UpsertBattleNetUser(ctx context.Context, battleNetID int64, battleTag, accessToken, refreshToken string, expiresAt time.Time) (*domain.User, error) {
	if err := domain.ValidateBattleTag(battleTag); err != nil {
		return nil, domain.ErrValidation(err.Error())
	}

	existing, err := s.store.Users().FindByBattleNetID(ctx, battleNetID)
	if err != nil {
		return nil, domain.ErrInternal("load user", err)
	}

	if existing != nil {
		if err := s.store.Users().UpdateTokens(ctx, existing.ID, accessToken, refreshToken, expiresAt); err != nil {
			return nil, wrapWrite("update user tokens", err)
		}
		return existing, nil
	}

	created, err := s.store.Users().Create(ctx, &domain.User{
		BattleNetID:    &battleNetID,
		BattleTag:      &battleTag,
		AccessToken:    &accessToken,
		RefreshToken:   &refreshToken,
		TokenExpiresAt: &expiresAt,
	})
	if err != nil {
		return nil, wrapWrite("create user", err)
	}
	return created, nil
}

// LinkCharacter links a roster character to a user account.
func (s *AccountService) LinkCharacter(ctx context.Context, userID, characterID int64) (*domain.UserCharacter, error) {
	c, err := s.store.Characters().FindByID(ctx, characterID)
	if err != nil {
		return nil, domain.ErrInternal("load character", err)
	}
	if c == nil {
		return nil, domain.ErrNotFound("character", itoa(characterID))
	}

	linked, err := s.store.UserCharacters().Link(ctx, &domain.UserCharacter{
		UserID:      userID,
		CharacterID: characterID,
	})
	if err != nil {
		return nil, wrapWrite("link character", err)
	}
	return linked, nil
}

// UnlinkCharacter removes a user-character link.
func (s *AccountService) UnlinkCharacter(ctx context.Context, userID, characterID int64) error {
	removed, err := s.store.UserCharacters().Unlink(ctx, userID, characterID)
	if err != nil {
		return wrapWrite("unlink character", err)
	}
	if !removed {
		return domain.ErrNotFound("character link", itoa(characterID))
	}
	return nil
}

// Characters returns a user's linked characters. Read failures degrade to
// empty.
func (s *AccountService) Characters(ctx context.Context, userID int64) []domain.UserCharacter {
	out, err := s.store.UserCharacters().ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("list user characters", "user_id", userID, "error", err)
		return []domain.UserCharacter{}
	}
	return out
}

// SetMain marks one linked character as the user's main. The repository does
// this in a single conditional update so concurrent calls settle on exactly
// one main.
func (s *AccountService) SetMain(ctx context.Context, userID, characterID int64) error {
	links, err := s.store.UserCharacters().ListByUser(ctx, userID)
	if err != nil {
		return domain.ErrInternal("list user characters", err)
	}

	found := false
	for _, l := range links {
		if l.CharacterID == characterID {
			found = true
			break
		}
	}
	if !found {
		return domain.ErrNotFound("character link", itoa(characterID))
	}

	if err := s.store.UserCharacters().SetMain(ctx, userID, characterID); err != nil {
		return wrapWrite("set main character", err)
	}
	return nil
}

// SetGuildMember flags whether the user is a current guild member.
func (s *AccountService) SetGuildMember(ctx context.Context, userID int64, member bool) error {
	if err := s.store.Users().SetGuildMember(ctx, userID, member); err != nil {
		return wrapWrite("set guild member flag", err)
	}
	return nil
}
