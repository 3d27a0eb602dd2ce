package unsplash

import (
	"errors"
	"net/http"

	"dash_go/internal/httputil"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	Client *Client
	log    *zap.Logger
}

func NewHandler(client *Client, log *zap.Logger) *Handler {
	return &Handler{Client: client, log: log}
}

// RandomPhoto возвращает случайное фото для фона
func (h *Handler) RandomPhoto(c *gin.Context) {
	photo, err := h.Client.Random(c.Request.Context(), c.Query("query"), c.Query("orientation"))
	if errors.Is(err, ErrNoAPIKey) {
		httputil.RespondError(c, http.StatusInternalServerError, "unsplash api key is not configured")
		return
	}
	if err != nil {
		h.log.Error("unsplash request failed", zap.Error(err))
		httputil.RespondError(c, http.StatusInternalServerError, "failed to fetch unsplash photo: "+err.Error())
		return
	}
	c.JSON(http.StatusOK, photo)
}

// SetAPIKey переопределяет ключ API. Прочитать ключ через API нельзя.
func (h *Handler) SetAPIKey(c *gin.Context) {
	var input struct {
		APIKey string `json:"apiKey"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		httputil.RespondError(c, http.StatusBadRequest, "invalid data")
		return
	}
	if err := h.Client.Keys.Override(input.APIKey); err != nil {
		httputil.RespondError(c, http.StatusBadRequest, "api key must not be empty")
		return
	}
	h.log.Info("unsplash api key overridden")
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "api key updated"})
}
