package middleware

import (
	"strings"

	"chatroom_backend/internal/logger"
	"chatroom_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
)

// IdentityMiddleware берет имя участника из заголовка user.
// Это не аутентификация: имя ничем не подтверждается.
func IdentityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		name := strings.TrimSpace(c.GetHeader(contextkeys.UserHeader))
		if name != "" {
			c.Set(string(contextkeys.UserContextKey), name)
			c.Request = c.Request.WithContext(logger.WithUserName(c.Request.Context(), name))
		}
		c.Next()
	}
}
