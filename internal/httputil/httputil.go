package httputil

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// RespondError отправляет сообщение об ошибке в едином формате и прекращает обработку запроса.
// Используем AbortWithStatusJSON, чтобы последующие обработчики не выполнялись, даже если забыли вернуть управление.
func RespondError(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}

// BearerToken достаёт токен из заголовка "Authorization: Bearer <token>"
func BearerToken(c *gin.Context) (string, bool) {
	const prefix = "Bearer "
	h := c.GetHeader("Authorization")
	if !strings.HasPrefix(h, prefix) {
		return "", false
	}
	token := strings.TrimSpace(h[len(prefix):])
	return token, token != ""
}
