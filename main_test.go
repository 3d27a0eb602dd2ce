package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"dash_go/internal/session"
	"dash_go/internal/unsplash"
	"dash_go/models"
	"dash_go/pkg/storage"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRouter_AuthFlow(t *testing.T) {
	gin.SetMode(gin.TestMode)
	dir := t.TempDir()
	store := storage.NewFileStore(filepath.Join(dir, "dashboard.json"), zap.NewNop())
	sessions := session.NewManager("secret", time.Hour)
	photos := unsplash.NewClient("http://127.0.0.1:0", unsplash.NewKeyConfig(""))
	r := setupRouter(store, sessions, photos, filepath.Join(dir, "uploads"), zap.NewNop())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/data", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/session", strings.NewReader(`{"password":"secret"}`)))
	require.Equal(t, http.StatusOK, w.Code)
	var s session.Session
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &s))

	req := httptest.NewRequest(http.MethodGet, "/api/data", nil)
	req.Header.Set("Authorization", "Bearer "+s.Token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var d models.Dashboard
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &d))
	assert.Equal(t, models.DefaultDashboard(), d)
}
