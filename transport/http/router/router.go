package router

import (
	"todolist/config"
	"todolist/internal/handlers/auth"
	"todolist/internal/handlers/home"
	"todolist/internal/handlers/task"
	"todolist/transport/http/middleware"

	// Registers the generated swagger document.
	_ "todolist/docs"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type DomainHandlers struct {
	Home home.Handler
	Auth auth.Handler
	Task task.Handler
}

type Router struct {
	Config         *config.Config
	DomainHandlers DomainHandlers
	App            middleware.AppMiddleware
	Auth           middleware.Auth
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Recoverer)
	router.Use(r.App.Tracing)
	router.Use(r.App.Logger)
	router.Use(r.App.CORS())
	router.Use(r.App.RateLimit())

	if r.Config.IsDevelopment() {
		router.Get("/swagger/*", httpSwagger.WrapHandler)
	}

	router.Group(func(routerGroup chi.Router) {
		routerGroup.Use(r.Auth.Session)

		r.DomainHandlers.Home.Router(routerGroup)
		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.Task.Router(routerGroup)
	})
}

func New(cfg *config.Config, domainHandlers DomainHandlers, app middleware.AppMiddleware, auth middleware.Auth) Router {
	return Router{
		Config:         cfg,
		DomainHandlers: domainHandlers,
		App:            app,
		Auth:           auth,
	}
}
