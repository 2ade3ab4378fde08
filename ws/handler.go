package ws

import (
	"net/http"
	"strings"

	"chatroom_backend/internal/logger"
	"chatroom_backend/internal/models"
	"chatroom_backend/pkg/apperrors"
	"chatroom_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // CORS открыт так же, как и для REST
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

type WebSocketHandler struct {
	Manager *WebSocketManager
}

func NewWebSocketHandler(manager *WebSocketManager) *WebSocketHandler {
	return &WebSocketHandler{
		Manager: manager,
	}
}

// ServeWS godoc
// @Summary Живая лента сообщений
// @Description Websocket: события created/updated/deleted по сообщениям, которые видит участник
// @Tags feed
// @Param user header string false "Имя участника"
// @Param user query string false "Имя участника, если заголовок недоступен"
// @Success 101
// @Failure 422 {object} apperrors.ErrorResponse "Имя не указано"
// @Router /ws [get]
func (h *WebSocketHandler) ServeWS(c *gin.Context) {
	viewer := strings.TrimSpace(c.GetHeader(contextkeys.UserHeader))
	if viewer == "" {
		viewer = strings.TrimSpace(c.Query("user"))
	}
	if viewer == "" {
		apperrors.HandleError(c, apperrors.NewValidationMessage("Participant name is required in 'user' header or query"))
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.CtxWithError(c.Request.Context(), "WebSocket upgrade error", err)
		return
	}

	client := &Client{
		Viewer:  viewer,
		Conn:    conn,
		Send:    make(chan models.FeedEvent, sendBuffer),
		Manager: h.Manager,
	}
	if !h.Manager.join(client) {
		_ = conn.Close()
		return
	}
	logger.CtxInfo(c.Request.Context(), "WebSocket client connected", "viewer", viewer)

	go client.readPump()
	go client.writePump()
}
