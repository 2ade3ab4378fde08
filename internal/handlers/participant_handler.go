package handlers

import (
	"net/http"

	"chatroom_backend/internal/services"
	"chatroom_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ParticipantHandler struct {
	*BaseHandler
	participantService services.ParticipantService
}

func NewParticipantHandler(base *BaseHandler, participantService services.ParticipantService) *ParticipantHandler {
	return &ParticipantHandler{
		BaseHandler:        base,
		participantService: participantService,
	}
}

func (h *ParticipantHandler) RegisterRoutes(r *gin.RouterGroup) {
	participants := r.Group("/participants")
	{
		participants.POST("", h.Register)
		participants.GET("", h.List)
	}
	r.POST("/status", h.Heartbeat)
}

// Register godoc
// @Summary Войти в чат
// @Description Регистрирует участника и объявляет о его входе
// @Tags participants
// @Accept json
// @Produce json
// @Param request body dto.RegisterParticipantRequest true "Имя участника"
// @Success 201 {object} models.Participant
// @Failure 409 {object} apperrors.ErrorResponse "Имя занято"
// @Failure 422 {object} apperrors.ErrorResponse "Пустое или зарезервированное имя"
// @Router /participants [post]
func (h *ParticipantHandler) Register(c *gin.Context) {
	var req dto.RegisterParticipantRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	participant, err := h.participantService.Register(c.Request.Context(), req.Name)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, participant)
}

// List godoc
// @Summary Активные участники
// @Tags participants
// @Produce json
// @Success 200 {array} models.Participant
// @Router /participants [get]
func (h *ParticipantHandler) List(c *gin.Context) {
	participants, err := h.participantService.List(c.Request.Context())
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, participants)
}

// Heartbeat godoc
// @Summary Подтвердить присутствие
// @Tags participants
// @Param user header string true "Имя участника"
// @Success 200
// @Failure 404 {object} apperrors.ErrorResponse "Участник не активен"
// @Router /status [post]
func (h *ParticipantHandler) Heartbeat(c *gin.Context) {
	if err := h.participantService.Heartbeat(c.Request.Context(), h.CurrentUser(c)); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.Status(http.StatusOK)
}
