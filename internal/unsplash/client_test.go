package unsplash

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const photoJSON = `{
  "urls": {"full": "https://img/full.jpg", "regular": "https://img/regular.jpg", "thumb": "https://img/thumb.jpg"},
  "user": {"name": "Ann", "links": {"html": "https://unsplash.com/@ann"}}
}`

func newFakeAPI(t *testing.T, wantKey string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/photos/random" {
			http.NotFound(w, r)
			return
		}
		if r.URL.Query().Get("client_id") != wantKey {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		assert.Equal(t, DefaultQuery, r.URL.Query().Get("query"))
		assert.Equal(t, DefaultOrientation, r.URL.Query().Get("orientation"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(photoJSON))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestKeyConfig(t *testing.T) {
	k := NewKeyConfig(" env-key ")
	assert.Equal(t, "env-key", k.Key())

	assert.Error(t, k.Override("   "))
	assert.Equal(t, "env-key", k.Key())

	require.NoError(t, k.Override(" custom "))
	assert.Equal(t, "custom", k.Key())
}

func TestRandom(t *testing.T) {
	srv := newFakeAPI(t, "k1")
	c := NewClient(srv.URL+"/", NewKeyConfig("k1"))

	p, err := c.Random(context.Background(), "", "")
	require.NoError(t, err)
	assert.Equal(t, Photo{
		URL:        "https://img/full.jpg",
		Regular:    "https://img/regular.jpg",
		Thumb:      "https://img/thumb.jpg",
		Author:     "Ann",
		AuthorLink: "https://unsplash.com/@ann",
	}, p)
}

func TestRandom_Errors(t *testing.T) {
	srv := newFakeAPI(t, "k1")

	_, err := NewClient(srv.URL, NewKeyConfig("")).Random(context.Background(), "", "")
	assert.ErrorIs(t, err, ErrNoAPIKey)

	_, err = NewClient(srv.URL, NewKeyConfig("bad")).Random(context.Background(), "", "")
	assert.ErrorContains(t, err, "401")
}

func TestHandlers(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := newFakeAPI(t, "runtime")
	r := gin.New()
	SetupRoutes(r.Group("/api"), NewClient(srv.URL, NewKeyConfig("")), zap.NewNop())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/unsplash", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/unsplash", strings.NewReader(`{"apiKey":" "}`)))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/unsplash", strings.NewReader(`{"apiKey":"runtime"}`)))
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "runtime", "ключ не должен возвращаться клиенту")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/unsplash", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "https://img/full.jpg")
}
