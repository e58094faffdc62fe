package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/centavoapp/centavo/internal/auth"
	"github.com/centavoapp/centavo/internal/http/budget"
	"github.com/centavoapp/centavo/internal/http/category"
	"github.com/centavoapp/centavo/internal/http/planning"
	"github.com/centavoapp/centavo/internal/http/reportapi"
	"github.com/centavoapp/centavo/internal/http/session"
	"github.com/centavoapp/centavo/internal/http/transaction"
	"github.com/centavoapp/centavo/internal/http/wallet"
)

// New wires every handler under /api/v1. Session endpoints are open;
// everything else sits behind the bearer-token middleware, which is a
// no-op when issuer is nil.
func New(
	issuer *auth.Issuer,
	sessionV1 *session.Handler,
	walletsV1 *wallet.Handler,
	categoriesV1 *category.Handler,
	transactionsV1 *transaction.Handler,
	budgetsV1 *budget.Handler,
	planningV1 *planning.Handler,
	reportsV1 *reportapi.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			sessionV1.Routes(r)
		})

		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(issuer))

			r.Route("/wallets", walletsV1.Routes)
			r.Route("/categories", categoriesV1.Routes)

			r.Route("/transactions", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				transactionsV1.Routes(r)
			})

			r.Route("/budgets", budgetsV1.Routes)
			r.Route("/goals", planningV1.GoalRoutes)
			r.Route("/debts", planningV1.DebtRoutes)

			r.Route("/reports", reportsV1.Routes)
			r.Route("/export", reportsV1.ExportRoutes)
			r.Route("/import", reportsV1.ImportRoutes)
		})
	})

	return router
}
