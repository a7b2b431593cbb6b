package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/finwise/internal/http/advisor"
	"github.com/MrJamesThe3rd/finwise/internal/http/auth"
	"github.com/MrJamesThe3rd/finwise/internal/http/dashboard"
	"github.com/MrJamesThe3rd/finwise/internal/http/goal"
	"github.com/MrJamesThe3rd/finwise/internal/http/report"
	"github.com/MrJamesThe3rd/finwise/internal/http/transaction"
)

func New(
	authSecret string,
	transactionsV1 *transaction.Handler,
	goalsV1 *goal.Handler,
	dashboardV1 *dashboard.Handler,
	reportsV1 *report.Handler,
	advisorV1 *advisor.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(auth.Middleware(authSecret))

		r.Route("/transactions", func(r chi.Router) {
			transactionsV1.Routes(r)
		})

		r.Route("/goals", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			goalsV1.Routes(r)
		})

		r.Route("/dashboard", dashboardV1.Routes)

		r.Route("/reports", reportsV1.Routes)

		r.Route("/advisor", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			advisorV1.Routes(r)
		})
	})

	return router
}
