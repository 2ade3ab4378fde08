package routes

import (
	_ "chatroom_backend/docs"
	"chatroom_backend/internal/handlers"
	"chatroom_backend/internal/logger"
	"chatroom_backend/ws"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes регистрирует все HTTP и WebSocket маршруты.
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	wsHandler *ws.WebSocketHandler,
	swagger bool,
) {
	root := ginRouter.Group("")
	{
		appHandlers.ParticipantHandler.RegisterRoutes(root)
		appHandlers.MessageHandler.RegisterRoutes(root)
		appHandlers.HealthHandler.RegisterRoutes(root)
	}

	ginRouter.GET("/ws", wsHandler.ServeWS)
	logger.Info("WebSocket route /ws registered")

	if swagger {
		ginRouter.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
		logger.Info("Swagger UI available at /swagger/index.html")
	}
}
