package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(
		h.withTraceID,
		h.withLogging,
		h.withMetrics,
		middleware.Recoverer,
		middleware.Timeout(h.requestTimeout),
		middleware.Compress(5, "application/json", "text/plain"),
	)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/register", h.register)
		r.Post("/login", h.login)
		r.Get("/logout", h.logout)
		r.Method(http.MethodGet, "/metrics", h.metricsHandler())
	})

	// page routes, anonymous clients are redirected to /login
	router.Group(func(r chi.Router) {
		r.Use(h.pageAuth)
		r.Post("/profile/password", h.changePassword)
	})

	router.Route("/api", func(r chi.Router) {
		r.Get("/health", h.health)
		r.Get("/version", h.getServerVersion)

		// JSON API, anonymous clients get 401
		r.Group(func(r chi.Router) {
			r.Use(h.apiAuth)

			r.Get("/profile", h.profile)
			r.Get("/dashboard", h.dashboard)

			r.Route("/expenses", func(r chi.Router) {
				r.Get("/", h.listExpenses)
				r.Post("/", h.createExpense)
				r.Get("/{id}", h.getExpense)
				r.Put("/{id}", h.updateExpense)
				r.Delete("/{id}", h.deleteExpense)
			})

			r.Route("/categories", func(r chi.Router) {
				r.Get("/", h.listCategories)
				r.Post("/", h.createCategory)
				r.Put("/{id}", h.renameCategory)
				r.Delete("/{id}", h.deleteCategory)
			})
		})
	})

	router.NotFound(NotFoundJSON)
	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
