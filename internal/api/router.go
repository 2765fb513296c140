package api

import (
	"net/http"

	"github.com/deedsapp/deeds-server/internal/api/handlers"
	"github.com/deedsapp/deeds-server/internal/api/middleware"
	"github.com/deedsapp/deeds-server/internal/config"
	"github.com/deedsapp/deeds-server/internal/service"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(services *service.Services, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.CORS)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(services.Auth, services.Session)
	deedHandler := handlers.NewDeedHandler(services.Deed)
	waitlistHandler := handlers.NewWaitlistHandler(services.Waitlist)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", authHandler.Signup)
			r.Post("/login", authHandler.Login)
			r.Post("/logout", authHandler.Logout)

			// Session-bound routes
			r.Group(func(r chi.Router) {
				r.Use(middleware.Session(services.Session))
				r.Get("/profile", authHandler.Profile)
			})
		})

		r.Post("/deeds", deedHandler.Submit)
		r.Get("/deeds", deedHandler.List)
		r.Post("/verify", deedHandler.Verify)
		r.Get("/leaderboard", deedHandler.Leaderboard)
		r.Post("/waitlist", waitlistHandler.Join)
	})

	// Anything else falls through to the static site
	r.NotFound(handlers.Static(cfg.StaticDir))

	return r
}
