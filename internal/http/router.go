package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/finwick/nexus/internal/http/analysis"
)

func New(analysesV1 *analysis.Handler, jwtSecret string) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	router.Route("/api/v1", func(r chi.Router) {
		if jwtSecret != "" {
			r.Use(Auth(jwtSecret))
		}

		r.Route("/analyses", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			analysesV1.Routes(r)
		})
	})

	return router
}
