//go:build wireinject
// +build wireinject

package di

import (
	"todolist/config"
	"todolist/infras/database"
	"todolist/infras/jwt"
	"todolist/infras/otel"
	"todolist/infras/redis"
	"todolist/shared/cache"
	"todolist/transport/http"
	"todolist/transport/http/middleware"
	"todolist/transport/http/router"

	authService "todolist/internal/domains/auth/service"
	taskRepository "todolist/internal/domains/task/repository"
	taskService "todolist/internal/domains/task/service"
	userRepository "todolist/internal/domains/user/repository"
	authHandler "todolist/internal/handlers/auth"
	homeHandler "todolist/internal/handlers/home"
	taskHandler "todolist/internal/handlers/task"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	database.New,
	otel.New,
	redis.New,
	jwt.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var taskDomain = wire.NewSet(
	taskRepository.New,
	taskService.New,
)

var authDomain = wire.NewSet(
	userRepository.New,
	authService.New,
)

var domains = wire.NewSet(
	taskDomain,
	authDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	homeHandler.New,
	authHandler.New,
	taskHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
