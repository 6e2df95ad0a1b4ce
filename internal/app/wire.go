package app

import (
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/guttakrutt/guildsite/internal/auth"
	"github.com/guttakrutt/guildsite/internal/guard"
	"github.com/guttakrutt/guildsite/internal/handler"
	adminhandler "github.com/guttakrutt/guildsite/internal/handler/admin"
	"github.com/guttakrutt/guildsite/internal/infra"
	"github.com/guttakrutt/guildsite/internal/repository"
	"github.com/guttakrutt/guildsite/internal/service"
	"github.com/guttakrutt/guildsite/internal/session"
)

// RouterDeps holds all dependencies needed by NewRouter.
type RouterDeps struct {
	Store      repository.Store
	Sessions   session.Store
	JWTMgr     *auth.JWTManager
	Producer   *infra.AuditProducer
	Logger     *slog.Logger
	CORSOrigin string
}

// Services bundles the assembled service layer so main can reach the pieces
// that run background work.
type Services struct {
	Guilds      *service.GuildService
	Progress    *service.ProgressService
	Recruitment *service.RecruitmentService
	Admins      *service.AdminService
	Accounts    *service.AccountService
	Audit       *service.AuditService
}

// NewServices assembles the service layer.
func NewServices(deps RouterDeps) *Services {
	audit := service.NewAuditService(deps.Store, deps.Producer, deps.Logger)
	return &Services{
		Guilds:      service.NewGuildService(deps.Store, deps.Logger),
		Progress:    service.NewProgressService(deps.Store, deps.Logger),
		Recruitment: service.NewRecruitmentService(deps.Store, audit, deps.Logger),
		Admins:      service.NewAdminService(deps.Store, deps.JWTMgr, guard.NewLockout(), deps.Sessions, audit, deps.Logger),
		Accounts:    service.NewAccountService(deps.Store, deps.Logger),
		Audit:       audit,
	}
}

// NewRouter assembles the chi.Router with all routes and middleware.
func NewRouter(deps RouterDeps, svcs *Services) chi.Router {
	guildHandler := handler.NewGuildHandler(svcs.Guilds, svcs.Progress)
	recruitmentHandler := handler.NewRecruitmentHandler(svcs.Recruitment)
	authHandler := handler.NewAuthHandler(svcs.Admins)
	accountHandler := handler.NewAccountHandler(svcs.Accounts)

	applicationsAdmin := adminhandler.NewApplicationsHandler(svcs.Recruitment)
	rosterAdmin := adminhandler.NewRosterHandler(svcs.Guilds)
	progressAdmin := adminhandler.NewProgressHandler(svcs.Progress)
	accountsAdmin := adminhandler.NewAccountsHandler(svcs.Admins)
	logsAdmin := adminhandler.NewLogsHandler(svcs.Audit, svcs.Admins)

	loginLimiter := guard.NewRateLimiter(10, time.Minute)

	r := chi.NewRouter()

	// Global middleware (order matters)
	r.Use(handler.Recovery(deps.Logger))
	r.Use(handler.RequestID)
	r.Use(handler.RequestLogger(deps.Logger))
	r.Use(handler.CORS(deps.CORSOrigin))
	r.Use(handler.JSONContentType)

	// Health (no auth)
	r.Get("/health", handler.HealthHandler(deps.Store))

	// Public site routes
	r.Route("/api", func(r chi.Router) {
		r.Get("/guild", guildHandler.GetSummary)
		r.Get("/roster", guildHandler.GetRoster)
		r.Get("/progress", guildHandler.GetProgress)
		r.Post("/applications", recruitmentHandler.Submit)

		// User-authenticated routes. Tokens come from the Battle.net OAuth
		// callback, which lives outside this service.
		r.Route("/me", func(r chi.Router) {
			r.Use(auth.AuthenticateUser(deps.JWTMgr))

			r.Get("/characters", accountHandler.ListCharacters)
			r.Post("/characters/{id}/link", accountHandler.LinkCharacter)
			r.Delete("/characters/{id}", accountHandler.UnlinkCharacter)
			r.Post("/characters/{id}/main", accountHandler.SetMain)
		})
	})

	// Admin login (rate limited, no auth)
	r.With(handler.RateLimit(loginLimiter)).Post("/admin/login", authHandler.Login)

	// Admin-authenticated routes
	r.Route("/admin", func(r chi.Router) {
		r.Use(auth.AuthenticateAdmin(deps.JWTMgr))

		r.Get("/dashboard", accountsAdmin.Dashboard)
		r.Post("/logout", authHandler.Logout)

		r.Route("/applications", func(r chi.Router) {
			r.Get("/", applicationsAdmin.List)
			r.Get("/{id}", applicationsAdmin.Get)
			r.Patch("/{id}/status", applicationsAdmin.Review)
			r.Post("/{id}/comments", applicationsAdmin.Comment)
		})

		r.Route("/guilds", func(r chi.Router) {
			r.Post("/", rosterAdmin.CreateGuild)
			r.Patch("/{id}", rosterAdmin.UpdateGuild)
		})

		r.Route("/characters", func(r chi.Router) {
			r.Post("/", rosterAdmin.CreateCharacter)
			r.Patch("/{id}", rosterAdmin.UpdateCharacter)
			r.Post("/{id}/remove", rosterAdmin.RemoveFromRoster)
			r.Delete("/{id}", rosterAdmin.DeleteCharacter)
		})

		r.Route("/bosses", func(r chi.Router) {
			r.Put("/", progressAdmin.UpsertBoss)
			r.Patch("/{id}", progressAdmin.UpdateBoss)
			r.Delete("/{id}", progressAdmin.DeleteBoss)
		})

		r.Route("/expansions", func(r chi.Router) {
			r.Get("/", progressAdmin.ListExpansions)
			r.Post("/", progressAdmin.CreateExpansion)
			r.Post("/{id}/activate", progressAdmin.SetActiveExpansion)
			r.Get("/{id}/tiers", progressAdmin.ListTiers)
		})

		r.Route("/tiers", func(r chi.Router) {
			r.Post("/", progressAdmin.CreateTier)
			r.Post("/{id}/activate", progressAdmin.SetCurrentTier)
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/", accountsAdmin.List)
			r.Post("/", accountsAdmin.Create)
			r.Patch("/{id}/password", accountsAdmin.ChangePassword)
			r.Delete("/{id}", accountsAdmin.Delete)
		})

		r.Route("/logs", func(r chi.Router) {
			r.Get("/", logsAdmin.List)
			r.Delete("/{id}", logsAdmin.Delete)
			r.Post("/prune", logsAdmin.Prune)
		})

		r.Route("/media", func(r chi.Router) {
			r.Get("/", logsAdmin.ListMedia)
			r.Post("/", logsAdmin.CreateMedia)
			r.Delete("/{id}", logsAdmin.DeleteMedia)
		})
	})

	return r
}
