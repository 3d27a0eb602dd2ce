package dashboard

import (
	"dash_go/pkg/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SetupRoutes регистрирует маршруты документа; группа уже закрыта авторизацией
func SetupRoutes(r *gin.RouterGroup, store storage.Store, uploadDir string, log *zap.Logger) {
	h := NewHandler(store, uploadDir, log)
	r.GET("/data", h.GetData)
	r.POST("/data", h.ReplaceData)
	r.GET("/stats", h.Stats)
	r.POST("/background", h.SetBackground)
	r.POST("/upload-background", h.UploadBackground)
	r.POST("/categories", h.CreateCategory)
	r.PUT("/categories/:id", h.RenameCategory)
	r.DELETE("/categories/:id", h.DeleteCategory)
	r.POST("/categories/:id/cards", h.CreateCard)
	r.DELETE("/categories/:id/cards/:cardId", h.DeleteCard)
}
