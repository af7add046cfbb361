package apiapp

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/eliteconnections/backend/internal/config"
	pgrepo "github.com/eliteconnections/backend/internal/repo/postgres"
	authsvc "github.com/eliteconnections/backend/internal/services/auth"
	connectionssvc "github.com/eliteconnections/backend/internal/services/connections"
	curatorauthsvc "github.com/eliteconnections/backend/internal/services/curatorauth"
	directorysvc "github.com/eliteconnections/backend/internal/services/directory"
	experiencessvc "github.com/eliteconnections/backend/internal/services/experiences"
	gallerysvc "github.com/eliteconnections/backend/internal/services/gallery"
	introsvc "github.com/eliteconnections/backend/internal/services/introductions"
	modsvc "github.com/eliteconnections/backend/internal/services/moderation"
	profilesvc "github.com/eliteconnections/backend/internal/services/profiles"
	registersvc "github.com/eliteconnections/backend/internal/services/register"
	"github.com/eliteconnections/backend/internal/transport/http/handlers"
)

type Dependencies struct {
	AuthService          *authsvc.Service
	RegisterService      *registersvc.Service
	ProfileService       *profilesvc.Service
	DirectoryService     *directorysvc.Service
	ConnectionsService   *connectionssvc.Service
	IntroductionsService *introsvc.Service
	ExperiencesService   *experiencessvc.Service
	GalleryService       *gallerysvc.Service
	ModerationService    *modsvc.Service
	CuratorAuthService   *curatorauthsvc.Service
	UserRepo             *pgrepo.UserRepo
	Logger               *zap.Logger
	Config               config.Config
}

func RegisterRoutes(r chi.Router, deps Dependencies) {
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(deps.AuthService)
	registerHandler := handlers.NewRegisterHandler(deps.RegisterService)
	portfolioHandler := handlers.NewPortfolioHandler(deps.ProfileService)
	directoryHandler := handlers.NewDirectoryHandler(deps.DirectoryService)
	connectionsHandler := handlers.NewConnectionsHandler(deps.ConnectionsService)
	introductionsHandler := handlers.NewIntroductionsHandler(deps.IntroductionsService)
	experiencesHandler := handlers.NewExperiencesHandler(deps.ExperiencesService)
	galleryHandler := handlers.NewGalleryHandler(deps.GalleryService)
	moderationHandler := handlers.NewModerationHandler(deps.ModerationService)
	curator2FAHandler := handlers.NewCurator2FAHandler(deps.CuratorAuthService, deps.UserRepo)

	authMW := AuthMiddleware(deps.AuthService, deps.Logger)
	curatorMW := RequireRole("curator", "owner")

	r.Get("/healthz", healthHandler.Get)
	r.Post("/register", registerHandler.Register)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", authHandler.Login)
		r.Post("/refresh", authHandler.Refresh)
		r.With(authMW).Post("/logout", authHandler.Logout)
		r.With(authMW).Post("/logout_all", authHandler.LogoutAll)
	})

	r.With(authMW).Get("/dashboard", directoryHandler.Dashboard)
	r.With(authMW).Get("/search", directoryHandler.Search)

	r.With(authMW).Put("/portfolio", portfolioHandler.Update)
	r.With(authMW).Get("/portfolio/pending", portfolioHandler.Pending)
	r.With(authMW).Get("/portfolio/{username}", portfolioHandler.View)
	r.With(authMW).Get("/engagement", portfolioHandler.Engagement)

	r.With(authMW).Post("/connections/save/{id}", connectionsHandler.Save)
	r.With(authMW).Post("/connections/restrict/{id}", connectionsHandler.Restrict)
	r.With(authMW).Get("/connections/saved", connectionsHandler.ListSaved)

	r.With(authMW).Post("/send-message/{id}", handlers.SendMessageStub)

	r.Route("/introductions", func(r chi.Router) {
		r.Use(authMW)
		r.Get("/", introductionsHandler.Inbox)
		r.Post("/", introductionsHandler.Open)
		r.Post("/{id}/messages", introductionsHandler.Send)
		r.Get("/{id}/messages", introductionsHandler.History)
		r.Post("/{id}/read", introductionsHandler.MarkRead)
	})

	r.Route("/experiences", func(r chi.Router) {
		r.Use(authMW)
		r.Post("/", experiencesHandler.Create)
		r.Get("/", experiencesHandler.List)
		r.Post("/{id}/deactivate", experiencesHandler.Deactivate)
	})

	r.Route("/gallery", func(r chi.Router) {
		r.Use(authMW)
		r.Get("/requests", galleryHandler.ListPending)
		r.Post("/requests/{id}", galleryHandler.RequestAccess)
		r.Post("/requests/{id}/grant", galleryHandler.Grant)
		r.Post("/requests/{id}/decline", galleryHandler.Decline)
		r.Post("/images", galleryHandler.Upload)
		r.Get("/{username}", galleryHandler.View)
	})

	r.Route("/curator", func(r chi.Router) {
		r.Use(authMW, curatorMW)
		r.Get("/queue", moderationHandler.Queue)
		r.Post("/profiles/{id}/approve", moderationHandler.Approve)
		r.Post("/profiles/{id}/decline", moderationHandler.Decline)
		r.Post("/profiles/{id}/suspend", moderationHandler.Suspend)
		r.Post("/profiles/{id}/reinstate", moderationHandler.Reinstate)
		r.Get("/2fa/setup", curator2FAHandler.Setup)
		r.Post("/2fa/verify", curator2FAHandler.Verify)
	})
}
