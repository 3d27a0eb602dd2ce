// Package config собирает настройки сервиса: значения по умолчанию,
// затем необязательный YAML-файл, затем переменные окружения.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Поддерживаемые хранилища документа
const (
	StorageFile     = "file"
	StoragePostgres = "postgres"
)

// DefaultPassword используется, если пароль не задан
const DefaultPassword = "default-password"

type Config struct {
	Port        string        `yaml:"port"`
	Password    string        `yaml:"password"`
	Storage     string        `yaml:"storage"`
	DataFile    string        `yaml:"data_file"`
	DatabaseURL string        `yaml:"database_url"`
	UploadDir   string        `yaml:"upload_dir"`
	UnsplashKey string        `yaml:"unsplash_key"`
	UnsplashURL string        `yaml:"unsplash_url"`
	SessionTTL  time.Duration `yaml:"session_ttl"`
	LogLevel    string        `yaml:"log_level"`
}

// Default возвращает настройки по умолчанию
func Default() Config {
	return Config{
		Port:        "8080",
		Password:    DefaultPassword,
		Storage:     StorageFile,
		DataFile:    "data/dashboard.json",
		UploadDir:   "uploads",
		UnsplashURL: "https://api.unsplash.com",
		SessionTTL:  12 * time.Hour,
		LogLevel:    "info",
	}
}

// Load читает конфигурацию. Путь к YAML берётся из DASH_CONFIG; его отсутствие не ошибка.
func Load() (Config, error) {
	cfg := Default()
	if path := os.Getenv("DASH_CONFIG"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return Config{}, err
		}
	}
	if err := cfg.applyEnv(os.Getenv); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) loadFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// applyEnv перекрывает значения переменными окружения.
// getenv передаётся параметром, чтобы тесты не трогали окружение процесса.
func (c *Config) applyEnv(getenv func(string) string) error {
	set := func(dst *string, key string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}
	set(&c.Port, "PORT")
	set(&c.Password, "PASSWORD")
	set(&c.Storage, "STORAGE")
	set(&c.DataFile, "DATA_FILE")
	set(&c.DatabaseURL, "DATABASE_URL")
	set(&c.UploadDir, "UPLOAD_DIR")
	set(&c.UnsplashKey, "UNSPLASHAPI")
	set(&c.UnsplashURL, "UNSPLASH_URL")
	set(&c.LogLevel, "LOG_LEVEL")

	if v := getenv("SESSION_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("SESSION_TTL: %w", err)
		}
		c.SessionTTL = ttl
	}
	return nil
}

// Validate проверяет только наличие обязательных значений
func (c Config) Validate() error {
	switch c.Storage {
	case StorageFile:
		if c.DataFile == "" {
			return errors.New("data_file is required for file storage")
		}
	case StoragePostgres:
		if c.DatabaseURL == "" {
			return errors.New("database_url is required for postgres storage")
		}
	default:
		return fmt.Errorf("unknown storage %q", c.Storage)
	}
	if c.SessionTTL <= 0 {
		return errors.New("session_ttl must be positive")
	}
	return nil
}
