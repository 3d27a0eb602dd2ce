package auth

import (
	"errors"
	"net/http"

	"dash_go/internal/httputil"
	"dash_go/internal/session"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	Sessions *session.Manager
	log      *zap.Logger
}

func NewHandler(sessions *session.Manager, log *zap.Logger) *Handler {
	return &Handler{Sessions: sessions, log: log}
}

// Login обменивает пароль на токен сессии
func (h *Handler) Login(c *gin.Context) {
	var input struct {
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		httputil.RespondError(c, http.StatusBadRequest, "invalid data")
		return
	}

	s, err := h.Sessions.Login(input.Password)
	if errors.Is(err, session.ErrInvalidPassword) {
		h.log.Warn("login rejected", zap.String("ip", c.ClientIP()))
		httputil.RespondError(c, http.StatusUnauthorized, "wrong password")
		return
	}
	if err != nil {
		h.log.Error("login failed", zap.Error(err))
		httputil.RespondError(c, http.StatusInternalServerError, "login failed")
		return
	}

	c.JSON(http.StatusOK, s)
}

// Logout завершает текущую сессию
func (h *Handler) Logout(c *gin.Context) {
	if s, ok := session.FromContext(c); ok {
		h.Sessions.Logout(s.Token)
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
