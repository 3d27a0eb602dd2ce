package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestApplyEnv_Overrides(t *testing.T) {
	cfg := Default()
	err := cfg.applyEnv(envMap(map[string]string{
		"PORT":         "3000",
		"PASSWORD":     "secret",
		"STORAGE":      "postgres",
		"DATABASE_URL": "postgres://localhost/dash",
		"UNSPLASHAPI":  " key ",
		"SESSION_TTL":  "30m",
	}))
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "secret", cfg.Password)
	assert.Equal(t, StoragePostgres, cfg.Storage)
	assert.Equal(t, "key", cfg.UnsplashKey)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, "data/dashboard.json", cfg.DataFile, "незаданные значения остаются по умолчанию")
	assert.NoError(t, cfg.Validate())
}

func TestApplyEnv_BadTTL(t *testing.T) {
	cfg := Default()
	assert.Error(t, cfg.applyEnv(envMap(map[string]string{"SESSION_TTL": "soon"})))
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dash.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: \"9090\"\nstorage: file\ndata_file: /tmp/d.json\nsession_ttl: 1h\n"), 0o600))

	cfg := Default()
	require.NoError(t, cfg.loadFile(path))
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "/tmp/d.json", cfg.DataFile)
	assert.Equal(t, time.Hour, cfg.SessionTTL)
}

func TestLoad_FromEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dash.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: \"9090\"\n"), 0o600))
	t.Setenv("DASH_CONFIG", path)
	t.Setenv("PORT", "7070")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "7070", cfg.Port, "переменная окружения важнее файла")
}

func TestValidate(t *testing.T) {
	cfg := Default()
	assert.NoError(t, cfg.Validate())

	cfg.Storage = StoragePostgres
	assert.Error(t, cfg.Validate())

	cfg.Storage = "redis"
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.SessionTTL = 0
	assert.Error(t, cfg.Validate())
}
