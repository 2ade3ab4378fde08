package handlers

import (
	"net/http"

	"chatroom_backend/internal/services"
	"chatroom_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type MessageHandler struct {
	*BaseHandler
	messageService services.MessageService
}

func NewMessageHandler(base *BaseHandler, messageService services.MessageService) *MessageHandler {
	return &MessageHandler{
		BaseHandler:    base,
		messageService: messageService,
	}
}

func (h *MessageHandler) RegisterRoutes(r *gin.RouterGroup) {
	messages := r.Group("/messages")
	{
		messages.POST("", h.Create)
		messages.GET("", h.List)
		messages.PUT("/:id", h.Update)
		messages.DELETE("/:id", h.Delete)
	}
}

// Create godoc
// @Summary Отправить сообщение
// @Tags messages
// @Accept json
// @Produce json
// @Param user header string true "Имя отправителя"
// @Param request body dto.MessageRequest true "Сообщение"
// @Success 201 {object} models.Message
// @Failure 422 {object} apperrors.ErrorResponse "Невалидное тело или отправитель не активен"
// @Router /messages [post]
func (h *MessageHandler) Create(c *gin.Context) {
	var req dto.MessageRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	message, err := h.messageService.Create(c.Request.Context(), h.CurrentUser(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, message)
}

// List godoc
// @Summary Видимые сообщения
// @Description Сообщения, которые видит участник из заголовка user, старые первыми
// @Tags messages
// @Produce json
// @Param user header string false "Имя участника"
// @Param limit query int false "Только последние N"
// @Success 200 {array} models.Message
// @Failure 422 {object} apperrors.ErrorResponse "limit не целое число"
// @Router /messages [get]
func (h *MessageHandler) List(c *gin.Context) {
	limit, err := ParseLimit(c)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	messages, err := h.messageService.List(c.Request.Context(), h.CurrentUser(c), limit)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, messages)
}

// Update godoc
// @Summary Изменить свое сообщение
// @Tags messages
// @Accept json
// @Produce json
// @Param user header string true "Имя отправителя"
// @Param id path string true "ID сообщения"
// @Param request body dto.MessageRequest true "Новое содержимое"
// @Success 200 {object} models.Message
// @Failure 401 {object} apperrors.ErrorResponse "Чужое или системное сообщение"
// @Failure 404 {object} apperrors.ErrorResponse "Сообщение не найдено"
// @Failure 422 {object} apperrors.ErrorResponse "Невалидное тело или отправитель не активен"
// @Router /messages/{id} [put]
func (h *MessageHandler) Update(c *gin.Context) {
	var req dto.MessageRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	message, err := h.messageService.Update(c.Request.Context(), h.CurrentUser(c), c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, message)
}

// Delete godoc
// @Summary Удалить свое сообщение
// @Tags messages
// @Param user header string true "Имя отправителя"
// @Param id path string true "ID сообщения"
// @Success 200
// @Failure 401 {object} apperrors.ErrorResponse "Чужое или системное сообщение"
// @Failure 404 {object} apperrors.ErrorResponse "Сообщение не найдено"
// @Router /messages/{id} [delete]
func (h *MessageHandler) Delete(c *gin.Context) {
	if err := h.messageService.Delete(c.Request.Context(), h.CurrentUser(c), c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.Status(http.StatusOK)
}
