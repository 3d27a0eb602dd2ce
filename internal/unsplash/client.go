// Package unsplash подбирает случайные фоновые изображения через Unsplash API.
package unsplash

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
)

const (
	DefaultQuery       = "landscape,nature"
	DefaultOrientation = "landscape"
)

// ErrNoAPIKey — ключ не задан ни в конфигурации, ни во время работы
var ErrNoAPIKey = errors.New("unsplash api key is not configured")

// KeyConfig хранит ключ API: значение из конфигурации и переопределение,
// заданное во время работы. Переопределение живёт до перезапуска и никуда не сохраняется.
type KeyConfig struct {
	mu       sync.RWMutex
	fallback string
	override string
}

func NewKeyConfig(fallback string) *KeyConfig {
	return &KeyConfig{fallback: strings.TrimSpace(fallback)}
}

// Key возвращает действующий ключ
func (k *KeyConfig) Key() string {
	k.mu.RLock()
	defer k.mu.RUnlock()
	if k.override != "" {
		return k.override
	}
	return k.fallback
}

// Override заменяет ключ до перезапуска. Пустой ключ не принимается.
func (k *KeyConfig) Override(key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("api key is empty")
	}
	k.mu.Lock()
	k.override = key
	k.mu.Unlock()
	return nil
}

// Photo — то, что отдаётся клиенту для смены фона
type Photo struct {
	URL        string `json:"url"`
	Regular    string `json:"regular"`
	Thumb      string `json:"thumb"`
	Author     string `json:"author"`
	AuthorLink string `json:"authorLink"`
}

type randomPhotoResponse struct {
	URLs struct {
		Full    string `json:"full"`
		Regular string `json:"regular"`
		Thumb   string `json:"thumb"`
	} `json:"urls"`
	User struct {
		Name  string `json:"name"`
		Links struct {
			HTML string `json:"html"`
		} `json:"links"`
	} `json:"user"`
}

type Client struct {
	BaseURL string
	Keys    *KeyConfig
	HTTP    *http.Client
}

func NewClient(baseURL string, keys *KeyConfig) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Keys:    keys,
		HTTP:    &http.Client{Timeout: 15 * time.Second},
	}
}

// Random запрашивает случайное фото по запросу и ориентации
func (c *Client) Random(ctx context.Context, query, orientation string) (Photo, error) {
	key := c.Keys.Key()
	if key == "" {
		return Photo{}, ErrNoAPIKey
	}
	if query == "" {
		query = DefaultQuery
	}
	if orientation == "" {
		orientation = DefaultOrientation
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("orientation", orientation)
	params.Set("client_id", key)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/photos/random?"+params.Encode(), nil)
	if err != nil {
		return Photo{}, err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return Photo{}, fmt.Errorf("unsplash request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Photo{}, fmt.Errorf("unsplash api error: %s", resp.Status)
	}

	var body randomPhotoResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Photo{}, fmt.Errorf("decode unsplash response: %w", err)
	}
	return Photo{
		URL:        body.URLs.Full,
		Regular:    body.URLs.Regular,
		Thumb:      body.URLs.Thumb,
		Author:     body.User.Name,
		AuthorLink: body.User.Links.HTML,
	}, nil
}
