// Package storage хранит документ панели. На диске и в БД лежит сжатая форма,
// наружу отдаётся только полная.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"dash_go/internal/config"
	"dash_go/models"

	"go.uber.org/zap"
)

// Store — хранилище единственного документа панели
type Store interface {
	// Load возвращает текущий документ; пустое хранилище заполняется начальными данными
	Load(ctx context.Context) (models.Dashboard, error)
	// Save полностью заменяет документ
	Save(ctx context.Context, d models.Dashboard) error
	// Update выполняет чтение, изменение и запись как одну операцию.
	// Если fn вернула ошибку, документ не сохраняется.
	Update(ctx context.Context, fn func(d *models.Dashboard) error) (models.Dashboard, error)
}

// New открывает хранилище, выбранное в конфигурации.
// Возвращаемая функция освобождает ресурсы хранилища.
func New(ctx context.Context, cfg config.Config, log *zap.Logger) (Store, func() error, error) {
	switch cfg.Storage {
	case config.StoragePostgres:
		conn, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("open postgres: %w", err)
		}
		if err := conn.PingContext(ctx); err != nil {
			conn.Close()
			return nil, nil, fmt.Errorf("ping postgres: %w", err)
		}
		db := NewDB(conn, log)
		if err := db.EnsureSchema(ctx); err != nil {
			conn.Close()
			return nil, nil, err
		}
		log.Info("postgres storage ready")
		return db, conn.Close, nil
	case config.StorageFile:
		log.Info("file storage ready", zap.String("path", cfg.DataFile))
		return NewFileStore(cfg.DataFile, log), func() error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage %q", cfg.Storage)
	}
}
