package unsplash

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SetupRoutes регистрирует маршруты подбора фона; группа уже закрыта авторизацией
func SetupRoutes(r *gin.RouterGroup, client *Client, log *zap.Logger) {
	h := NewHandler(client, log)
	r.GET("/unsplash", h.RandomPhoto)
	r.POST("/unsplash", h.SetAPIKey)
}
