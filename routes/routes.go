package routes

import (
	"net/http"

	"github.com/Dosada05/br-standings/docs"
	"github.com/Dosada05/br-standings/handlers"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Handlers struct {
	Tournaments *handlers.TournamentHandler
	Standings   *handlers.StandingsHandler
	Matches     *handlers.MatchHandler
	WebSocket   *handlers.WebSocketHandler
	Health      *handlers.HealthHandler
}

func SetupRoutes(router chi.Router, allowedOrigins []string, h Handlers) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/healthz", h.Health.Health)

	router.Get("/swagger/doc.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(docs.SwaggerJSON)
	})
	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	router.Route("/tournaments", func(r chi.Router) {
		r.Get("/", h.Tournaments.ListTournaments)
		r.Route("/{tournamentID}", func(r chi.Router) {
			r.Get("/", h.Tournaments.GetTournament)
			r.Get("/standings", h.Standings.GetTournamentStandings)
			r.Get("/standings/published", h.Standings.GetStoredStandings)
		})
	})

	router.Get("/scrims/{scrimID}/standings", h.Standings.GetScrimStandings)

	router.Route("/matches/{matchID}", func(r chi.Router) {
		r.Get("/results", h.Matches.GetMatchResults)
		r.Put("/results", h.Matches.SubmitResults)
	})

	router.Get("/ws/tournaments/{tournamentID}", h.WebSocket.ServeWs)
}
