package bootstrap

import (
	"AfrilanceWeb/internal/adapter"
	"AfrilanceWeb/internal/config"
	"AfrilanceWeb/internal/controller"
	"AfrilanceWeb/internal/helper"
	"AfrilanceWeb/internal/middleware"
	"AfrilanceWeb/internal/repository"
	"AfrilanceWeb/internal/service"
	"AfrilanceWeb/internal/websocket"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

// App holds the long-lived pieces main needs to run and shut down.
type App struct {
	Router    *chi.Mux
	Hub       *websocket.Hub
	Messaging *service.MessagingService
}

func Init(appConfig *config.AppConfig, redisAdapter *adapter.RedisAdapter, validator *validator.Validate, httpClient *http.Client, tokens helper.TokenVerifier, chiMux *chi.Mux) *App {
	repo := repository.NewRepository(redisAdapter, appConfig)
	apiAdapter := adapter.NewAPIAdapter(appConfig, httpClient)

	hub := websocket.NewHub()
	rateLimiter := config.NewRateLimiter(appConfig)

	messagingService := service.NewMessagingService(appConfig, apiAdapter, hub, validator, rateLimiter)
	sessionService := service.NewSessionService(repo.Session, validator, messagingService, hub, tokens)
	adminService := service.NewAdminService(apiAdapter, sessionService, validator)

	sessionController := controller.NewSessionController(sessionService, appConfig)
	messagingController := controller.NewMessagingController(messagingService)
	adminController := controller.NewAdminController(adminService, appConfig)
	wsController := controller.NewWebSocketController(hub, appConfig)

	sessionMiddleware := middleware.NewSessionMiddleware(sessionService, appConfig)
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(repo.RateLimit, appConfig)

	route := NewRoute(appConfig, chiMux, sessionMiddleware, rateLimitMiddleware, sessionController, messagingController, adminController, wsController)
	route.Register()

	return &App{
		Router:    chiMux,
		Hub:       hub,
		Messaging: messagingService,
	}
}
