// Package session выдаёт токены доступа после проверки пароля.
// Токен живёт ограниченное время и сбрасывается при выходе или перезапуске сервера.
package session

import (
	"crypto/subtle"
	"errors"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ErrInvalidPassword — пароль не совпал
var ErrInvalidPassword = errors.New("invalid password")

const contextKey = "session"

type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type Manager struct {
	password string
	ttl      time.Duration
	now      func() time.Time

	mu       sync.Mutex
	sessions map[string]Session
}

func NewManager(password string, ttl time.Duration) *Manager {
	return &Manager{
		password: password,
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]Session),
	}
}

// Login проверяет пароль и выдаёт новый токен
func (m *Manager) Login(password string) (Session, error) {
	if password == "" || subtle.ConstantTimeCompare([]byte(password), []byte(m.password)) != 1 {
		return Session{}, ErrInvalidPassword
	}
	s := Session{
		Token:     uuid.NewString(),
		ExpiresAt: m.now().Add(m.ttl),
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sweep()
	m.sessions[s.Token] = s
	return s, nil
}

// Validate возвращает сессию по токену, если она ещё действует
func (m *Manager) Validate(token string) (Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[token]
	if !ok {
		return Session{}, false
	}
	if !m.now().Before(s.ExpiresAt) {
		delete(m.sessions, token)
		return Session{}, false
	}
	return s, true
}

func (m *Manager) Logout(token string) {
	m.mu.Lock()
	delete(m.sessions, token)
	m.mu.Unlock()
}

// sweep удаляет истёкшие сессии; вызывается под m.mu
func (m *Manager) sweep() {
	now := m.now()
	for token, s := range m.sessions {
		if !now.Before(s.ExpiresAt) {
			delete(m.sessions, token)
		}
	}
}

// WithContext кладёт сессию в контекст запроса
func WithContext(c *gin.Context, s Session) {
	c.Set(contextKey, s)
}

// FromContext достаёт сессию, положенную middleware
func FromContext(c *gin.Context) (Session, bool) {
	v, ok := c.Get(contextKey)
	if !ok {
		return Session{}, false
	}
	s, ok := v.(Session)
	return s, ok
}
