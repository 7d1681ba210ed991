package router

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"go-user-service/internal/config"
	"go-user-service/internal/handler"
	"go-user-service/internal/middleware"
)

type Handlers struct {
	Auth *handler.AuthHandler
	User *handler.UserHandler
	Docs *handler.DocsHandler
}

func New(cfg *config.Config, authMiddleware *middleware.AuthMiddleware, handlers Handlers, healthCheck func(context.Context) error) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(middleware.SecurityHeaders)

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		if healthCheck != nil {
			if err := healthCheck(req.Context()); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte("unhealthy"))
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/", handlers.Docs.Home)
	r.Get("/openapi.yaml", handlers.Docs.OpenAPI)
	r.Get("/swagger", handlers.Docs.SwaggerUI)

	r.Group(func(api chi.Router) {
		api.Use(middleware.Timeout(cfg.RequestTimeout))
		api.Use(middleware.BodyLimit(cfg.MaxBodyBytes))

		api.Post("/login", handlers.Auth.Login)
		api.With(authMiddleware.RequireAuth).Post("/logout", handlers.Auth.Logout)

		api.Post("/users", handlers.User.Create)
		api.With(authMiddleware.RequireAuth).Get("/users", handlers.User.List)
		api.With(authMiddleware.RequireAuth).Get("/users/{id}", handlers.User.Get)
		api.With(authMiddleware.RequireAuth).Put("/users/{id}", handlers.User.Update)
		api.With(authMiddleware.RequireAuth).Delete("/users/{id}", handlers.User.Delete)
	})

	return r
}
