// internal/routes/routes.go
package routes

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"showscraper/internal/handlers"
	"showscraper/internal/ingest"
	"showscraper/internal/repository"
)

func SetupRoutes(db *sql.DB, runner *ingest.Runner) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		RegisterShowRoutes(r, repository.NewShowRepository(db))
		RegisterBandRoutes(r, repository.NewBandRepository(db))
		RegisterRunRoutes(r, runner)
	})

	return r
}

func RegisterShowRoutes(r chi.Router, repo repository.ShowRepository) {
	h := handlers.NewShowHandler(repo)
	r.Get("/shows", h.List)
}

func RegisterBandRoutes(r chi.Router, repo repository.BandRepository) {
	h := handlers.NewBandHandler(repo)
	r.Get("/bands", h.List)
}

func RegisterRunRoutes(r chi.Router, runner *ingest.Runner) {
	h := handlers.NewRunHandler(runner)
	r.Post("/runs", h.Trigger)
	r.Get("/runs/latest", h.Latest)
}
