package app

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"chatroom_backend/internal/config"
	"chatroom_backend/internal/handlers"
	"chatroom_backend/internal/logger"
	"chatroom_backend/internal/middleware"
	"chatroom_backend/internal/repositories"
	"chatroom_backend/internal/routes"
	"chatroom_backend/internal/services"
	"chatroom_backend/internal/validator"
	"chatroom_backend/internal/workers"
	"chatroom_backend/pkg/apperrors"
	"chatroom_backend/ws"

	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 10 * time.Second

// App - собранное приложение: роутер, сервисы, лента и фоновый воркер
type App struct {
	Router   *gin.Engine
	Services *services.ServiceContainer
	Feed     *ws.WebSocketManager
	Reaper   *workers.InactivityWorker
}

func Run() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load config", "error", err)
	}
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := OpenStore(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to open storage", "driver", cfg.Database.Driver, "error", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("Failed to close storage", "error", err)
		}
	}()
	logger.Info("Storage connected", "driver", cfg.Database.Driver)

	application := New(cfg, store, nil)
	application.Start(ctx)
	defer application.Stop()

	server := &http.Server{
		Addr:    cfg.Address(),
		Handler: application.Router,
	}

	go func() {
		logger.Info("Server starting", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server startup error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}
}

// New собирает приложение поверх готового хранилища.
// clock == nil означает time.Now.
func New(cfg *config.Config, store repositories.Store, clock services.Clock) *App {
	apperrors.DebugErrors = cfg.Server.Env == "development"

	visibility := services.NewVisibilityFilter(cfg.Chat.LegacyMessageVisibility)
	feed := ws.NewWebSocketManager(visibility)

	// 1. Сервисы
	serviceContainer := initializeServices(store, visibility, feed, clock)

	// 2. Хэндлеры
	appHandlers := initializeHandlers(serviceContainer)

	// 3. Gin и маршруты
	ginRouter := initializeGinRouter(cfg)
	routes.RegisterRoutes(ginRouter, appHandlers, ws.NewWebSocketHandler(feed), cfg.Server.Swagger)

	return &App{
		Router:   ginRouter,
		Services: serviceContainer,
		Feed:     feed,
		Reaper: workers.NewInactivityWorker(
			serviceContainer.ParticipantService,
			cfg.Chat.SweepInterval,
			cfg.Chat.InactivityThreshold,
			clock,
		),
	}
}

// Start запускает ленту и выселение неактивных участников
func (a *App) Start(ctx context.Context) {
	go a.Feed.Run(ctx)
	a.Reaper.Start(ctx)
}

func (a *App) Stop() {
	a.Reaper.Stop()
}

func initializeServices(
	store repositories.Store,
	visibility services.VisibilityFilter,
	publisher services.Publisher,
	clock services.Clock,
) *services.ServiceContainer {
	participantService := services.NewParticipantService(store.Participants, store.Messages, publisher, clock)

	return &services.ServiceContainer{
		ParticipantService: participantService,
		MessageService:     services.NewMessageService(store.Messages, participantService, visibility, publisher, clock),
		VisibilityFilter:   visibility,
	}
}

func initializeHandlers(services *services.ServiceContainer) *handlers.AppHandlers {
	baseHandler := handlers.NewBaseHandler(validator.New())

	return &handlers.AppHandlers{
		ParticipantHandler: handlers.NewParticipantHandler(baseHandler, services.ParticipantService),
		MessageHandler:     handlers.NewMessageHandler(baseHandler, services.MessageService),
		HealthHandler:      handlers.NewHealthHandler(),
	}
}

func initializeGinRouter(cfg *config.Config) *gin.Engine {
	if cfg.Server.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.IdentityMiddleware())
	return router
}
