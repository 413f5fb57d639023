package rest

import (
	"net/http"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
	"github.com/kkpa/jbh/internal/accounts"
	"github.com/kkpa/jbh/internal/category"
	"github.com/kkpa/jbh/internal/transport"
	"github.com/kkpa/jbh/internal/transport/middleware"
	"github.com/kkpa/jbh/internal/transport/swagger"
)

// Handlers groups what RegisterAllRoutes mounts. Nil entity handlers are
// skipped.
type Handlers struct {
	Base       *transport.BaseHandler
	Health     *HealthHandler
	Categories *category.Handler
	Accounts   *accounts.Handler
}

func RegisterAllRoutes(router *chi.Mux, h Handlers) {
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.TraceID)
	router.Use(middleware.LoggingMiddleware(h.Base.Logger))
	router.Use(middleware.RecoveryMiddleware(h.Base))

	router.Method(http.MethodGet, swagger.DocumentPath, swagger.DocumentHandler())
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api", func(r chi.Router) {
		if h.Health != nil {
			r.Get("/health", h.Health.Health)
			r.Get("/ping", h.Health.Ping)
		}
		if h.Categories != nil {
			r.Route("/categories", h.Categories.Routes)
		}
		if h.Accounts != nil {
			r.Route("/accounts", h.Accounts.Routes)
		}
	})
}
