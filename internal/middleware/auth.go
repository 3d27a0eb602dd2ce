package middleware

import (
	"net/http"

	"dash_go/internal/httputil"
	"dash_go/internal/session"

	"github.com/gin-gonic/gin"
)

// AuthRequired пропускает запрос только с действующим токеном сессии в заголовке Authorization
func AuthRequired(sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := httputil.BearerToken(c)
		if !ok {
			httputil.RespondError(c, http.StatusUnauthorized, "authorization required")
			return
		}
		s, ok := sessions.Validate(token)
		if !ok {
			httputil.RespondError(c, http.StatusUnauthorized, "session expired")
			return
		}
		session.WithContext(c, s)
		c.Next()
	}
}
