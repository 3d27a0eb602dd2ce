package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"dash_go/models"
	"dash_go/pkg/codec"

	"go.uber.org/zap"
)

// FileStore хранит документ в JSON-файле.
// Мьютекс упорядочивает запись только внутри одного процесса.
type FileStore struct {
	path string
	log  *zap.Logger
	mu   sync.Mutex
}

func NewFileStore(path string, log *zap.Logger) *FileStore {
	return &FileStore{path: path, log: log}
}

func (s *FileStore) Load(ctx context.Context) (models.Dashboard, error) {
	if err := ctx.Err(); err != nil {
		return models.Dashboard{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}

func (s *FileStore) Save(ctx context.Context, d models.Dashboard) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(d)
}

func (s *FileStore) Update(ctx context.Context, fn func(d *models.Dashboard) error) (models.Dashboard, error) {
	if err := ctx.Err(); err != nil {
		return models.Dashboard{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	d, err := s.read()
	if err != nil {
		return models.Dashboard{}, err
	}
	if err := fn(&d); err != nil {
		return models.Dashboard{}, err
	}
	if err := s.write(d); err != nil {
		return models.Dashboard{}, err
	}
	return d, nil
}

// read читает файл; при его отсутствии создаёт файл с начальными данными
func (s *FileStore) read() (models.Dashboard, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		d := models.DefaultDashboard()
		if err := s.write(d); err != nil {
			return models.Dashboard{}, err
		}
		s.log.Info("data file seeded", zap.String("path", s.path))
		return d, nil
	}
	if err != nil {
		return models.Dashboard{}, fmt.Errorf("read %s: %w", s.path, err)
	}
	d, err := codec.Decode(raw)
	if err != nil {
		return models.Dashboard{}, fmt.Errorf("read %s: %w", s.path, err)
	}
	return d, nil
}

// write сохраняет сжатую форму через временный файл и rename,
// чтобы оборванная запись не портила документ
func (s *FileStore) write(d models.Dashboard) error {
	payload, err := codec.Encode(d)
	if err != nil {
		return fmt.Errorf("encode dashboard: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".dashboard-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace %s: %w", s.path, err)
	}
	s.log.Debug("dashboard written", zap.String("path", s.path), zap.Int("bytes", len(payload)))
	return nil
}
