package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/guttakrutt/guildsite/internal/domain"
	"github.com/guttakrutt/guildsite/internal/repository"
)

// fakeStore is an in-memory Store for service tests. Setting readErr or
// writeErr makes every read or write fail, which is how the degrade/throw
// split is exercised.
type fakeStore struct {
	readErr  error
	writeErr error

	nextID       int64
	guilds       map[int64]domain.Guild
	characters   map[int64]domain.Character
	bosses       map[int64]domain.RaidBoss
	applications map[int64]domain.Application
	comments     map[int64]domain.ApplicationComment
	admins       map[int64]domain.AdminUser
	users        map[int64]domain.User
	links        map[int64]domain.UserCharacter
	logs         map[int64]domain.WebLog
	expansions   map[int64]domain.Expansion
	tiers        map[int64]domain.RaidTier
	media        map[int64]domain.MediaFile
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		guilds:       make(map[int64]domain.Guild),
		characters:   make(map[int64]domain.Character),
		bosses:       make(map[int64]domain.RaidBoss),
		applications: make(map[int64]domain.Application),
		comments:     make(map[int64]domain.ApplicationComment),
		admins:       make(map[int64]domain.AdminUser),
		users:        make(map[int64]domain.User),
		links:        make(map[int64]domain.UserCharacter),
		logs:         make(map[int64]domain.WebLog),
		expansions:   make(map[int64]domain.Expansion),
		tiers:        make(map[int64]domain.RaidTier),
		media:        make(map[int64]domain.MediaFile),
	}
}

func (f *fakeStore) id() int64 {
	f.nextID++
	return f.nextID
}

func (f *fakeStore) Dialect() repository.Dialect { return repository.DialectPostgres }
func (f *fakeStore) Ping(context.Context) error { return nil }
func (f *fakeStore) Close()                      {}

func (f *fakeStore) Guilds() repository.GuildRepository { return fakeGuilds{f} }
func (f *fakeStore) Characters() repository.CharacterRepository { return fakeCharacters{f} }
func (f *fakeStore) RaidBosses() repository.RaidBossRepository { return fakeBosses{f} }
func (f *fakeStore) Applications() repository.ApplicationRepository { return fakeApplications{f} }
func (f *fakeStore) AdminUsers() repository.AdminUserRepository { return fakeAdmins{f} }
func (f *fakeStore) Users() repository.UserRepository { return fakeUsers{f} }
func (f *fakeStore) UserCharacters() repository.UserCharacterRepository { return fakeLinks{f} }
func (f *fakeStore) WebLogs() repository.WebLogRepository { return fakeLogs{f} }
func (f *fakeStore) Content() repository.ContentRepository { return fakeContent{f} }
func (f *fakeStore) Media() repository.MediaRepository { return fakeMedia{f} }

func (f *fakeStore) DashboardStats(context.Context) (map[string]interface{}, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	return map[string]interface{}{
		"rosterCount":      len(f.characters),
		"applicationCount": len(f.applications),
	}, nil
}

type fakeGuilds struct{ f *fakeStore }

func (r fakeGuilds) FindByID(_ context.Context, id int64) (*domain.Guild, error) {
	if r.f.readErr != nil {
		return nil, r.f.readErr
	}
	if g, ok := r.f.guilds[id]; ok {
		return &g, nil
	}
	return nil, nil
}

func (r fakeGuilds) FindDefault(_ context.Context) (*domain.Guild, error) {
	if r.f.readErr != nil {
		return nil, r.f.readErr
	}
	var ids []int64
	for id := range r.f.guilds {
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil, nil
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	g := r.f.guilds[ids[0]]
	return &g, nil
}

func (r fakeGuilds) FindByNameRealm(_ context.Context, name, realm string) (*domain.Guild, error) {
	if r.f.readErr != nil {
		return nil, r.f.readErr
	}
	for _, g := range r.f.guilds {
		if g.Name == name && g.Realm == realm {
			out := g
			return &out, nil
		}
	}
	return nil, nil
}

func (r fakeGuilds) Create(_ context.Context, g *domain.Guild) (*domain.Guild, error) {
	if r.f.writeErr != nil {
		return nil, r.f.writeErr
	}
	out := *g
	out.ID = r.f.id()
	out.CreatedAt = time.Now()
	out.UpdatedAt = out.CreatedAt
	r.f.guilds[out.ID] = out
	return &out, nil
}

func (r fakeGuilds) Update(_ context.Context, id int64, fields map[string]interface{}) (*domain.Guild, error) {
	if r.f.writeErr != nil {
		return nil, r.f.writeErr
	}
	g, ok := r.f.guilds[id]
	if !ok {
		return nil, nil
	}
	if v, ok := fields["memberCount"]; ok {
		g.MemberCount = v.(int)
	}
	if v, ok := fields["faction"]; ok {
		g.Faction = v.(string)
	}
	g.UpdatedAt = time.Now()
	r.f.guilds[id] = g
	return &g, nil
}

type fakeCharacters struct{ f *fakeStore }

func (r fakeCharacters) FindByID(_ context.Context, id int64) (*domain.Character, error) {
	if r.f.readErr != nil {
		return nil, r.f.readErr
	}
	if c, ok := r.f.characters[id]; ok {
		return &c, nil
	}
	return nil, nil
}

func (r fakeCharacters) FindByNameRealm(_ context.Context, guildID int64, name, realm string) (*domain.Character, error) {
	if r.f.readErr != nil {
		return nil, r.f.readErr
	}
	for _, c := range r.f.characters {
		if c.GuildID == guildID && c.Name == name && c.Realm == realm {
			out := c
			return &out, nil
		}
	}
	return nil, nil
}

func (r fakeCharacters) ListByGuild(_ context.Context, guildID int64) ([]domain.Character, error) {
	if r.f.readErr != nil {
		return nil, r.f.readErr
	}
	var out []domain.Character
	for _, c := range r.f.characters {
		if c.GuildID == guildID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Rank != out[j].Rank {
			return out[i].Rank < out[j].Rank
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (r fakeCharacters) CountByGuild(_ context.Context, guildID int64) (int, error) {
	if r.f.readErr != nil {
		return 0, r.f.readErr
	}
	n := 0
	for _, c := range r.f.characters {
		if c.GuildID == guildID {
			n++
		}
	}
	return n, nil
}

func (r fakeCharacters) Create(_ context.Context, c *domain.Character) (*domain.Character, error) {
	if r.f.writeErr != nil {
		return nil, r.f.writeErr
	}
	out := *c
	out.ID = r.f.id()
	out.CreatedAt = time.Now()
	out.UpdatedAt = out.CreatedAt
	r.f.characters[out.ID] = out
	return &out, nil
}

func (r fakeCharacters) Update(_ context.Context, id int64, fields map[string]interface{}) (*domain.Character, error) {
	if r.f.writeErr != nil {
		return nil, r.f.writeErr
	}
	c, ok := r.f.characters[id]
	if !ok {
		return nil, nil
	}
	if v, ok := fields["rank"]; ok {
		c.Rank = v.(int)
	}
	if v, ok := fields["itemLevel"]; ok {
		c.ItemLevel = v.(int)
	}
	c.UpdatedAt = time.Now()
	r.f.characters[id] = c
	return &c, nil
}

func (r fakeCharacters) Delete(_ context.Context, id int64) (bool, error) {
	if r.f.writeErr != nil {
		return false, r.f.writeErr
	}
	if _, ok := r.f.characters[id]; !ok {
		return false, nil
	}
	delete(r.f.characters, id)
	return true, nil
}

func (r fakeCharacters) RemoveFromRoster(_ context.Context, id int64) error {
	if r.f.writeErr != nil {
		return r.f.writeErr
	}
	c, ok := r.f.characters[id]
	if !ok {
		return domain.ErrNotFound("character", "?")
	}
	c.Rank = domain.RankRemoved
	r.f.characters[id] = c
	return nil
}

type fakeBosses struct{ f *fakeStore }

func (r fakeBosses) FindByID(_ context.Context, id int64) (*domain.RaidBoss, error) {
	if r.f.readErr != nil {
		return nil, r.f.readErr
	}
	if b, ok := r.f.bosses[id]; ok {
		return &b, nil
	}
	return nil, nil
}

func (r fakeBosses) Find(_ context.Context, guildID int64, name, raidName, difficulty string) (*domain.RaidBoss, error) {
	if r.f.readErr != nil {
		return nil, r.f.readErr
	}
	for _, b := range r.f.bosses {
		if b.GuildID == guildID && b.Name == name && b.RaidName == raidName && b.Difficulty == difficulty {
			out := b
			return &out, nil
		}
	}
	return nil, nil
}

func (r fakeBosses) ListByGuild(_ context.Context, guildID int64) ([]domain.RaidBoss, error) {
	if r.f.readErr != nil {
		return nil, r.f.readErr
	}
	var out []domain.RaidBoss
	for _, b := range r.f.bosses {
		if b.GuildID == guildID {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r fakeBosses) ListByRaid(_ context.Context, guildID int64, raidName, difficulty string) ([]domain.RaidBoss, error) {
	if r.f.readErr != nil {
		return nil, r.f.readErr
	}
	var out []domain.RaidBoss
	for _, b := range r.f.bosses {
		if b.GuildID == guildID && b.RaidName == raidName && b.Difficulty == difficulty {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r fakeBosses) Create(_ context.Context, b *domain.RaidBoss) (*domain.RaidBoss, error) {
	if r.f.writeErr != nil {
		return nil, r.f.writeErr
	}
	out := *b
	out.ID = r.f.id()
	out.CreatedAt = time.Now()
	out.UpdatedAt = out.CreatedAt
	r.f.bosses[out.ID] = out
	return &out, nil
}

func (r fakeBosses) Update(_ context.Context, id int64, fields map[string]interface{}) (*domain.RaidBoss, error) {
	if r.f.writeErr != nil {
		return nil, r.f.writeErr
	}
	b, ok := r.f.bosses[id]
	if !ok {
		return nil, nil
	}
	if v, ok := fields["defeated"]; ok {
		b.Defeated = v.(bool)
	}
	if v, ok := fields["pullCount"]; ok {
		b.PullCount = v.(int)
	}
	b.UpdatedAt = time.Now()
	r.f.bosses[id] = b
	return &b, nil
}

func (r fakeBosses) Delete(_ context.Context, id int64) (bool, error) {
	if r.f.writeErr != nil {
		return false, r.f.writeErr
	}
	if _, ok := r.f.bosses[id]; !ok {
		return false, nil
	}
	delete(r.f.bosses, id)
	return true, nil
}

type fakeApplications struct{ f *fakeStore }

func (r fakeApplications) FindByID(_ context.Context, id int64) (*domain.Application, error) {
	if r.f.readErr != nil {
		return nil, r.f.readErr
	}
	if a, ok := r.f.applications[id]; ok {
		return &a, nil
	}
	return nil, nil
}

func (r fakeApplications) List(_ context.Context) ([]domain.Application, error) {
	if r.f.readErr != nil {
		return nil, r.f.readErr
	}
	var out []domain.Application
	for _, a := range r.f.applications {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r fakeApplications) ListByStatus(_ context.Context, status string) ([]domain.Application, error) {
	if r.f.readErr != nil {
		return nil, r.f.readErr
	}
	var out []domain.Application
	for _, a := range r.f.applications {
		if a.Status == status {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r fakeApplications) Create(_ context.Context, a *domain.Application) (*domain.Application, error) {
	if r.f.writeErr != nil {
		return nil, r.f.writeErr
	}
	out := *a
	out.ID = r.f.id()
	out.CreatedAt = time.Now()
	out.UpdatedAt = out.CreatedAt
	r.f.applications[out.ID] = out
	return &out, nil
}

func (r fakeApplications) ChangeStatus(_ context.Context, id int64, status string, reviewerID int64, notes string) (*domain.Application, error) {
	if r.f.writeErr != nil {
		return nil, r.f.writeErr
	}
	a, ok := r.f.applications[id]
	if !ok {
		return nil, nil
	}
	now := time.Now()
	a.Status = status
	a.ReviewedBy = &reviewerID
	a.ReviewNotes = notes
	a.ReviewedAt = &now
	a.UpdatedAt = now
	r.f.applications[id] = a
	return &a, nil
}

func (r fakeApplications) AddComment(_ context.Context, c *domain.ApplicationComment) (*domain.ApplicationComment, error) {
	if r.f.writeErr != nil {
		return nil, r.f.writeErr
	}
	out := *c
	out.ID = r.f.id()
	out.CreatedAt = time.Now()
	r.f.comments[out.ID] = out
	return &out, nil
}

func (r fakeApplications) ListComments(_ context.Context, applicationID int64) ([]domain.ApplicationComment, error) {
	if r.f.readErr != nil {
		return nil, r.f.readErr
	}
	var out []domain.ApplicationComment
	for _, c := range r.f.comments {
		if c.ApplicationID == applicationID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type fakeAdmins struct{ f *fakeStore }

func (r fakeAdmins) FindByID(_ context.Context, id int64) (*domain.AdminUser, error) {
	if r.f.readErr != nil {
		return nil, r.f.readErr
	}
	if a, ok := r.f.admins[id]; ok {
		return &a, nil
	}
	return nil, nil
}

func (r fakeAdmins) FindByUsername(_ context.Context, username string) (*domain.AdminUser, error) {
	if r.f.readErr != nil {
		return nil, r.f.readErr
	}
	for _, a := range r.f.admins {
		if strings.EqualFold(a.Username, username) {
			out := a
			return &out, nil
		}
	}
	return nil, nil
}

func (r fakeAdmins) List(_ context.Context) ([]domain.AdminUser, error) {
	if r.f.readErr != nil {
		return nil, r.f.readErr
	}
	var out []domain.AdminUser
	for _, a := range r.f.admins {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r fakeAdmins) Create(_ context.Context, u *domain.AdminUser) (*domain.AdminUser, error) {
	if r.f.writeErr != nil {
		return nil, r.f.writeErr
	}
	out := *u
	out.ID = r.f.id()
	out.CreatedAt = time.Now()
	r.f.admins[out.ID] = out
	return &out, nil
}

func (r fakeAdmins) UpdatePassword(_ context.Context, id int64, passwordHash string) error {
	if r.f.writeErr != nil {
		return r.f.writeErr
	}
	a, ok := r.f.admins[id]
	if !ok {
		return domain.ErrNotFound("admin user", "?")
	}
	a.PasswordHash = passwordHash
	r.f.admins[id] = a
	return nil
}

func (r fakeAdmins) TouchLastLogin(_ context.Context, id int64) error {
	if r.f.writeErr != nil {
		return r.f.writeErr
	}
	a, ok := r.f.admins[id]
	if !ok {
		return domain.ErrNotFound("admin user", "?")
	}
	now := time.Now()
	a.LastLoginAt = &now
	r.f.admins[id] = a
	return nil
}

func (r fakeAdmins) Delete(_ context.Context, id int64) (bool, error) {
	if r.f.writeErr != nil {
		return false, r.f.writeErr
	}
	if _, ok := r.f.admins[id]; !ok {
		return false, nil
	}
	delete(r.f.admins, id)
	return true, nil
}

type fakeUsers struct{ f *fakeStore }

func (r fakeUsers) FindByID(_ context.Context, id int64) (*domain.User, error) {
	if r.f.readErr != nil {
		return nil, r.f.readErr
	}
	if u, ok := r.f.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (r fakeUsers) FindByBattleNetID(_ context.Context, battleNetID int64) (*domain.User, error) {
	if r.f.readErr != nil {
		return nil, r.f.readErr
	}
	for _, u := range r.f.users {
		if u.BattleNetID != nil && *u.BattleNetID == battleNetID {
			out := u
			return &out, nil
		}
	}
	return nil, nil
}

func (r fakeUsers) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	if r.f.writeErr != nil {
		return nil, r.f.writeErr
	}
	out := *u
	out.ID = r.f.id()
	out.CreatedAt = time.Now()
	out.UpdatedAt = out.CreatedAt
	r.f.users[out.ID] = out
	return &out, nil
}

func (r fakeUsers) UpdateTokens(_ context.Context, id int64, accessToken, refreshToken string, expiresAt time.Time) error {
	if r.f.writeErr != nil {
		return r.f.writeErr
	}
	u, ok := r.f.users[id]
	if !ok {
		return domain.ErrNotFound("user", "?")
	}
	u.AccessToken = &accessToken
	u.RefreshToken = &refreshToken
	u.TokenExpiresAt = &expiresAt
	r.f.users[id] = u
	return nil
}

func (r fakeUsers) SetGuildMember(_ context.Context, id int64, member bool) error {
	if r.f.writeErr != nil {
		return r.f.writeErr
	}
	u, ok := r.f.users[id]
	if !ok {
		return domain.ErrNotFound("user", "?")
	}
	u.IsGuildMember = member
	r.f.users[id] = u
	return nil
}

type fakeLinks struct{ f *fakeStore }

func (r fakeLinks) Link(_ context.Context, uc *domain.UserCharacter) (*domain.UserCharacter, error) {
	if r.f.writeErr != nil {
		return nil, r.f.writeErr
	}
	out := *uc
	out.ID = r.f.id()
	out.CreatedAt = time.Now()
	r.f.links[out.ID] = out
	return &out, nil
}

func (r fakeLinks) Unlink(_ context.Context, userID, characterID int64) (bool, error) {
	if r.f.writeErr != nil {
		return false, r.f.writeErr
	}
	for id, l := range r.f.links {
		if l.UserID == userID && l.CharacterID == characterID {
			delete(r.f.links, id)
			return true, nil
		}
	}
	return false, nil
}

func (r fakeLinks) ListByUser(_ context.Context, userID int64) ([]domain.UserCharacter, error) {
	if r.f.readErr != nil {
		return nil, r.f.readErr
	}
	var out []domain.UserCharacter
	for _, l := range r.f.links {
		if l.UserID == userID {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r fakeLinks) SetMain(_ context.Context, userID, characterID int64) error {
	if r.f.writeErr != nil {
		return r.f.writeErr
	}
	touched := false
	for id, l := range r.f.links {
		if l.UserID != userID {
			continue
		}
		l.IsMain = l.CharacterID == characterID
		r.f.links[id] = l
		touched = true
	}
	if !touched {
		return domain.ErrNotFound("user character link", "?")
	}
	return nil
}

func (r fakeLinks) FindMain(_ context.Context, userID int64) (*domain.UserCharacter, error) {
	if r.f.readErr != nil {
		return nil, r.f.readErr
	}
	for _, l := range r.f.links {
		if l.UserID == userID && l.IsMain {
			out := l
			return &out, nil
		}
	}
	return nil, nil
}

func (r fakeLinks) SetVerified(_ context.Context, id int64, verified bool) error {
	if r.f.writeErr != nil {
		return r.f.writeErr
	}
	l, ok := r.f.links[id]
	if !ok {
		return domain.ErrNotFound("user character link", "?")
	}
	l.Verified = verified
	r.f.links[id] = l
	return nil
}

type fakeLogs struct{ f *fakeStore }

func (r fakeLogs) Insert(_ context.Context, l *domain.WebLog) (*domain.WebLog, error) {
	if r.f.writeErr != nil {
		return nil, r.f.writeErr
	}
	out := *l
	out.ID = r.f.id()
	if out.CreatedAt.IsZero() {
		out.CreatedAt = time.Now()
	}
	r.f.logs[out.ID] = out
	return &out, nil
}

func (r fakeLogs) ListRecent(_ context.Context, limit int) ([]domain.WebLog, error) {
	if r.f.readErr != nil {
		return nil, r.f.readErr
	}
	var out []domain.WebLog
	for _, l := range r.f.logs {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r fakeLogs) PruneBefore(_ context.Context, cutoff time.Time) (int64, error) {
	if r.f.writeErr != nil {
		return 0, r.f.writeErr
	}
	var n int64
	for id, l := range r.f.logs {
		if l.CreatedAt.Before(cutoff) {
			delete(r.f.logs, id)
			n++
		}
	}
	return n, nil
}

func (r fakeLogs) Delete(_ context.Context, id int64) (bool, error) {
	if r.f.writeErr != nil {
		return false, r.f.writeErr
	}
	if _, ok := r.f.logs[id]; !ok {
		return false, nil
	}
	delete(r.f.logs, id)
	return true, nil
}

type fakeContent struct{ f *fakeStore }

func (r fakeContent) ListExpansions(_ context.Context) ([]domain.Expansion, error) {
	if r.f.readErr != nil {
		return nil, r.f.readErr
	}
	var out []domain.Expansion
	for _, e := range r.f.expansions {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out, nil
}

func (r fakeContent) CreateExpansion(_ context.Context, e *domain.Expansion) (*domain.Expansion, error) {
	if r.f.writeErr != nil {
		return nil, r.f.writeErr
	}
	out := *e
	out.ID = r.f.id()
	r.f.expansions[out.ID] = out
	return &out, nil
}

func (r fakeContent) SetActiveExpansion(_ context.Context, id int64) error {
	if r.f.writeErr != nil {
		return r.f.writeErr
	}
	if _, ok := r.f.expansions[id]; !ok {
		return domain.ErrNotFound("expansion", itoa(id))
	}
	for eid, e := range r.f.expansions {
		e.IsActive = eid == id
		r.f.expansions[eid] = e
	}
	return nil
}

func (r fakeContent) FindActiveExpansion(_ context.Context) (*domain.Expansion, error) {
	if r.f.readErr != nil {
		return nil, r.f.readErr
	}
	for _, e := range r.f.expansions {
		if e.IsActive {
			out := e
			return &out, nil
		}
	}
	return nil, nil
}

func (r fakeContent) ListTiers(_ context.Context, expansionID int64) ([]domain.RaidTier, error) {
	if r.f.readErr != nil {
		return nil, r.f.readErr
	}
	var out []domain.RaidTier
	for _, t := range r.f.tiers {
		if t.ExpansionID == expansionID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r fakeContent) CreateTier(_ context.Context, t *domain.RaidTier) (*domain.RaidTier, error) {
	if r.f.writeErr != nil {
		return nil, r.f.writeErr
	}
	out := *t
	out.ID = r.f.id()
	r.f.tiers[out.ID] = out
	return &out, nil
}

func (r fakeContent) SetCurrentTier(_ context.Context, id int64) error {
	if r.f.writeErr != nil {
		return r.f.writeErr
	}
	if _, ok := r.f.tiers[id]; !ok {
		return domain.ErrNotFound("raid tier", itoa(id))
	}
	for tid, t := range r.f.tiers {
		t.IsCurrent = tid == id
		r.f.tiers[tid] = t
	}
	return nil
}

func (r fakeContent) FindCurrentTier(_ context.Context) (*domain.RaidTier, error) {
	if r.f.readErr != nil {
		return nil, r.f.readErr
	}
	for _, t := range r.f.tiers {
		if t.IsCurrent {
			out := t
			return &out, nil
		}
	}
	return nil, nil
}

type fakeMedia struct{ f *fakeStore }

func (r fakeMedia) FindByID(_ context.Context, id int64) (*domain.MediaFile, error) {
	if r.f.readErr != nil {
		return nil, r.f.readErr
	}
	if m, ok := r.f.media[id]; ok {
		return &m, nil
	}
	return nil, nil
}

func (r fakeMedia) List(_ context.Context) ([]domain.MediaFile, error) {
	if r.f.readErr != nil {
		return nil, r.f.readErr
	}
	var out []domain.MediaFile
	for _, m := range r.f.media {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r fakeMedia) Create(_ context.Context, m *domain.MediaFile) (*domain.MediaFile, error) {
	if r.f.writeErr != nil {
		return nil, r.f.writeErr
	}
	out := *m
	out.ID = r.f.id()
	out.CreatedAt = time.Now()
	r.f.media[out.ID] = out
	return &out, nil
}

func (r fakeMedia) Delete(_ context.Context, id int64) (bool, error) {
	if r.f.writeErr != nil {
		return false, r.f.writeErr
	}
	if _, ok := r.f.media[id]; !ok {
		return false, nil
	}
	delete(r.f.media, id)
	return true, nil
}
