package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/pondo-ph/pondo/internal/http/advice"
	"github.com/pondo-ph/pondo/internal/http/auth"
	"github.com/pondo-ph/pondo/internal/http/goal"
	"github.com/pondo-ph/pondo/internal/http/middleware"
	"github.com/pondo-ph/pondo/internal/http/portfolio"
	"github.com/pondo-ph/pondo/internal/http/receipt"
	"github.com/pondo-ph/pondo/internal/http/transaction"
)

func New(
	verifier middleware.TokenVerifier,
	authV1 *auth.Handler,
	transactionsV1 *transaction.Handler,
	goalsV1 *goal.Handler,
	receiptsV1 *receipt.Handler,
	adviceV1 *advice.Handler,
	portfolioV1 *portfolio.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(chimiddleware.Logger)
	router.Use(chimiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Use(chimiddleware.AllowContentType("application/json"))
			authV1.Routes(r)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(verifier))

			r.Route("/transactions", func(r chi.Router) {
				transactionsV1.Routes(r)
			})

			r.Route("/goals", func(r chi.Router) {
				goalsV1.Routes(r)
			})

			r.Route("/receipts", receiptsV1.Routes)

			r.Route("/advice", adviceV1.Routes)

			r.Route("/portfolio", func(r chi.Router) {
				portfolioV1.Routes(r)
			})

			r.Get("/stocks/{symbol}", portfolioV1.Quote)
		})
	})

	return router
}
