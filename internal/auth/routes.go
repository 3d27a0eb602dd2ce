package auth

import (
	"dash_go/internal/middleware"
	"dash_go/internal/session"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SetupRoutes регистрирует вход и выход
func SetupRoutes(r *gin.RouterGroup, sessions *session.Manager, log *zap.Logger) {
	h := NewHandler(sessions, log)
	r.POST("/session", h.Login)
	r.DELETE("/session", middleware.AuthRequired(sessions), h.Logout)
}
