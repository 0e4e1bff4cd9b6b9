package routes

import (
	"github.com/DavidWhitehead8808/Purley-Padel-App/handlers"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func SetupRoutes(
	router *chi.Mux,
	allowedOrigins []string,
	healthHandler *handlers.HealthHandler,
	divisionHandler *handlers.DivisionHandler,
	playerHandler *handlers.PlayerHandler,
	fixtureHandler *handlers.FixtureHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	router.Get("/health", healthHandler.Check)

	router.Route("/divisions", func(r chi.Router) {
		r.Get("/", divisionHandler.ListDivisions)
		r.Post("/", divisionHandler.CreateDivision)

		r.Route("/{divisionID}", func(r chi.Router) {
			r.Get("/", divisionHandler.GetDivisionOverview)
			r.Delete("/", divisionHandler.DeleteDivision)

			r.Get("/players", playerHandler.ListDivisionPlayers)
			r.Post("/players", playerHandler.CreateDivisionPlayer)

			r.Get("/fixtures", fixtureHandler.ListDivisionFixtures)
			r.Post("/fixtures/generate", fixtureHandler.GenerateDivisionFixtures)
		})
	})

	router.Route("/fixtures", func(r chi.Router) {
		r.Post("/{fixtureID}/result", fixtureHandler.RecordFixtureResult)
	})
}
