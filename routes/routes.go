package routes

import (
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/m-kaif07/esport-tournament-website/handlers"
	"github.com/m-kaif07/esport-tournament-website/middleware"
	"github.com/m-kaif07/esport-tournament-website/models"
)

func SetupRoutes(
	router *chi.Mux,
	jwtSecret string,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	tournamentHandler *handlers.TournamentHandler,
	adminHandler *handlers.AdminHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	authenticate := middleware.Authenticate(jwtSecret)
	adminOnly := middleware.Authorize(models.RoleAdmin)

	router.Post("/auth/signup", authHandler.SignUp)
	router.Post("/auth/signin", authHandler.SignIn)

	router.Route("/tournaments", func(r chi.Router) {
		r.Get("/", tournamentHandler.List)
		r.Get("/{tournamentID}/slots", tournamentHandler.Slots)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Get("/{tournamentID}", tournamentHandler.Get)

			// Registration is the hot endpoint during slot rushes.
			r.With(httprate.LimitByIP(10, time.Minute)).
				Post("/{tournamentID}/register", tournamentHandler.Register)
		})
	})

	router.Route("/me", func(r chi.Router) {
		r.Use(authenticate)
		r.Get("/", userHandler.Me)
		r.Get("/registrations", tournamentHandler.MyRegistrations)
		r.Get("/earnings", userHandler.Earnings)
		r.Put("/fcm-token", userHandler.SetFCMToken)
	})

	router.Route("/ws", func(r chi.Router) {
		r.Get("/tournaments/{tournamentID}", webSocketHandler.ServeTournamentWs)
		r.Get("/me", webSocketHandler.ServeUserWs)
	})

	router.Route("/admin", func(r chi.Router) {
		r.Use(authenticate)
		r.Use(adminOnly)

		r.Route("/tournaments", func(r chi.Router) {
			r.Post("/", adminHandler.CreateTournament)
			r.Put("/{tournamentID}", adminHandler.UpdateTournament)
			r.Delete("/{tournamentID}", adminHandler.DeleteTournament)
			r.Get("/{tournamentID}/registrations", adminHandler.ListRegistrations)
			r.Patch("/{tournamentID}/slots/{slotNumber}", adminHandler.OverwriteSlot)
			r.Post("/{tournamentID}/winner", adminHandler.AssignWinner)
		})

		r.Route("/registrations", func(r chi.Router) {
			r.Post("/{registrationID}/approve", adminHandler.ApproveRegistration)
			r.Post("/{registrationID}/reject", adminHandler.RejectRegistration)
		})
	})
}
