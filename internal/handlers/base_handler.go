package handlers

import (
	"strconv"
	"strings"

	"chatroom_backend/internal/logger"
	"chatroom_backend/internal/validator"
	"chatroom_backend/pkg/apperrors"
	"chatroom_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
)

// ============================================================================
// 1. Базовая структура обработчика
// ============================================================================

type BaseHandler struct {
	validator *validator.Validator
}

func NewBaseHandler(v *validator.Validator) *BaseHandler {
	return &BaseHandler{
		validator: v,
	}
}

// normalizer - DTO, которые умеют чистить себя перед валидацией
type normalizer interface {
	Normalize()
}

// ============================================================================
// 2. Привязка и валидация
// ============================================================================

// BindAndValidate_JSON отвечает 422 и на битый JSON, и на невалидные поля
func (h *BaseHandler) BindAndValidate_JSON(c *gin.Context, obj interface{}) bool {
	ctx := c.Request.Context()

	if err := c.ShouldBindJSON(obj); err != nil {
		logger.CtxWithError(ctx, "Failed to bind JSON body", err, "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.NewValidationMessage("Invalid request body: "+err.Error()))
		return false
	}

	if n, ok := obj.(normalizer); ok {
		n.Normalize()
	}

	if err := h.validator.Validate(obj); err != nil {
		if vErr, ok := err.(*validator.ValidationError); ok {
			logger.CtxWarn(ctx, "Validation failed", "errors", vErr.Errors, "path", c.Request.URL.Path)
			apperrors.HandleError(c, apperrors.ValidationError(vErr.Errors))
		} else {
			logger.CtxWithError(ctx, "Internal validator error", err, "path", c.Request.URL.Path)
			apperrors.HandleError(c, apperrors.InternalError(err))
		}
		return false
	}
	return true
}

// ============================================================================
// 3. Обработка ошибок
// ============================================================================

func (h *BaseHandler) HandleServiceError(c *gin.Context, err error) {
	ctx := c.Request.Context()

	var appErr *apperrors.AppError
	if apperrors.As(err, &appErr) {
		logger.CtxWarn(ctx, "Service error",
			"error", appErr.Message,
			"details", appErr.Details,
			"path", c.Request.URL.Path,
		)
		apperrors.HandleError(c, appErr)
	} else {
		logger.CtxWithError(ctx, "Internal server error", err, "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.InternalError(err))
	}
}

// ============================================================================
// 4. Вспомогательные функции
// ============================================================================

// CurrentUser возвращает имя из заголовка user (см. IdentityMiddleware).
// Пустая строка, если заголовка нет.
func (h *BaseHandler) CurrentUser(c *gin.Context) string {
	if v, ok := c.Get(string(contextkeys.UserContextKey)); ok {
		if name, ok := v.(string); ok {
			return name
		}
	}
	return strings.TrimSpace(c.GetHeader(contextkeys.UserHeader))
}

// ParseLimit: нет параметра - 0 (вся история), не целое число - ErrInvalidLimit
func ParseLimit(c *gin.Context) (int, error) {
	valueStr := strings.TrimSpace(c.Query("limit"))
	if valueStr == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return 0, apperrors.ErrInvalidLimit.WithDetails(map[string]string{"limit": valueStr})
	}
	return value, nil
}
