package main

import (
	"context"
	"log"
	"net/http"

	"dash_go/internal/auth"
	"dash_go/internal/config"
	"dash_go/internal/dashboard"
	"dash_go/internal/logger"
	"dash_go/internal/middleware"
	"dash_go/internal/session"
	"dash_go/internal/unsplash"
	"dash_go/pkg/storage"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zl, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer zl.Sync()

	if cfg.Password == config.DefaultPassword {
		zl.Warn("PASSWORD is not set, using the default password")
	}

	// Инициализация хранилища документа
	store, closeStore, err := storage.New(context.Background(), cfg, zl)
	if err != nil {
		zl.Fatal("storage init failed", zap.Error(err))
	}
	defer closeStore()

	sessions := session.NewManager(cfg.Password, cfg.SessionTTL)
	photos := unsplash.NewClient(cfg.UnsplashURL, unsplash.NewKeyConfig(cfg.UnsplashKey))

	r := setupRouter(store, sessions, photos, cfg.UploadDir, zl)

	zl.Info("starting server", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		zl.Fatal("server failed", zap.Error(err))
	}
}

// Настройка маршрутов
func setupRouter(store storage.Store, sessions *session.Manager, photos *unsplash.Client, uploadDir string, zl *zap.Logger) *gin.Engine {
	r := gin.Default()

	// Загруженные фоны раздаются как статика
	r.Static("/uploads", uploadDir)

	api := r.Group("/api")
	auth.SetupRoutes(api, sessions, zl)

	// Всё остальное доступно только с токеном сессии
	private := api.Group("", middleware.AuthRequired(sessions))
	dashboard.SetupRoutes(private, store, uploadDir, zl)
	unsplash.SetupRoutes(private, photos, zl)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	zl.Info("routes initialized", zap.Int("count", len(r.Routes())))
	return r
}
