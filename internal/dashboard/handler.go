package dashboard

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"dash_go/internal/httputil"
	"dash_go/models"
	"dash_go/pkg/codec"
	"dash_go/pkg/storage"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Handler обрабатывает HTTP-запросы к документу панели
type Handler struct {
	Store     storage.Store
	UploadDir string
	log       *zap.Logger
}

func NewHandler(store storage.Store, uploadDir string, log *zap.Logger) *Handler {
	return &Handler{Store: store, UploadDir: uploadDir, log: log}
}

// GetData возвращает документ в полной форме
func (h *Handler) GetData(c *gin.Context) {
	d, err := h.Store.Load(c.Request.Context())
	if err != nil {
		h.log.Error("load dashboard", zap.Error(err))
		httputil.RespondError(c, http.StatusInternalServerError, "failed to load data")
		return
	}
	c.JSON(http.StatusOK, d)
}

// ReplaceData целиком заменяет документ.
// Принимается и полная, и сжатая форма: обе проходят через codec.Decode.
func (h *Handler) ReplaceData(c *gin.Context) {
	var input struct {
		Data json.RawMessage `json:"data"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || len(input.Data) == 0 {
		httputil.RespondError(c, http.StatusBadRequest, "invalid data format")
		return
	}
	d, err := codec.Decode(input.Data)
	if err != nil {
		httputil.RespondError(c, http.StatusBadRequest, "invalid data format")
		return
	}

	if err := h.Store.Save(c.Request.Context(), d); err != nil {
		h.log.Error("save dashboard", zap.Error(err))
		httputil.RespondError(c, http.StatusInternalServerError, "failed to save data")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Stats показывает, сколько места экономит сжатая форма
func (h *Handler) Stats(c *gin.Context) {
	d, err := h.Store.Load(c.Request.Context())
	if err != nil {
		h.log.Error("load dashboard", zap.Error(err))
		httputil.RespondError(c, http.StatusInternalServerError, "failed to load data")
		return
	}
	c.JSON(http.StatusOK, codec.Stats(d))
}

// SetBackground меняет адрес фонового изображения
func (h *Handler) SetBackground(c *gin.Context) {
	var input struct {
		Background string `json:"background"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		httputil.RespondError(c, http.StatusBadRequest, "invalid data")
		return
	}
	h.setBackground(c, strings.TrimSpace(input.Background))
}

// UploadBackground сохраняет загруженную картинку и делает её фоном
func (h *Handler) UploadBackground(c *gin.Context) {
	file, err := c.FormFile("background")
	if err != nil {
		httputil.RespondError(c, http.StatusBadRequest, "no file uploaded")
		return
	}

	if err := os.MkdirAll(h.UploadDir, 0o755); err != nil {
		h.log.Error("create upload dir", zap.Error(err))
		httputil.RespondError(c, http.StatusInternalServerError, "failed to store file")
		return
	}
	name := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), filepath.Base(file.Filename))
	if err := c.SaveUploadedFile(file, filepath.Join(h.UploadDir, name)); err != nil {
		h.log.Error("save uploaded file", zap.Error(err))
		httputil.RespondError(c, http.StatusInternalServerError, "failed to store file")
		return
	}
	h.log.Info("background uploaded", zap.String("file", name), zap.Int64("size", file.Size))
	h.setBackground(c, "/uploads/"+name)
}

func (h *Handler) setBackground(c *gin.Context, background string) {
	_, err := h.Store.Update(c.Request.Context(), func(d *models.Dashboard) error {
		d.Background = background
		return nil
	})
	if err != nil {
		h.log.Error("update background", zap.Error(err))
		httputil.RespondError(c, http.StatusInternalServerError, "failed to save data")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "background": background})
}

// CreateCategory добавляет пустую категорию в конец списка
func (h *Handler) CreateCategory(c *gin.Context) {
	var input struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || strings.TrimSpace(input.Name) == "" {
		httputil.RespondError(c, http.StatusBadRequest, "category name is required")
		return
	}

	category := models.Category{ID: uuid.NewString(), Name: strings.TrimSpace(input.Name), Cards: []models.Card{}}
	_, err := h.Store.Update(c.Request.Context(), func(d *models.Dashboard) error {
		d.AddCategory(category)
		return nil
	})
	if err != nil {
		h.respondUpdateError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "category": category})
}

// RenameCategory меняет название категории
func (h *Handler) RenameCategory(c *gin.Context) {
	id := c.Param("id")
	var input struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || strings.TrimSpace(input.Name) == "" {
		httputil.RespondError(c, http.StatusBadRequest, "category name is required")
		return
	}

	var renamed models.Category
	_, err := h.Store.Update(c.Request.Context(), func(d *models.Dashboard) error {
		cat, err := d.RenameCategory(id, strings.TrimSpace(input.Name))
		if err != nil {
			return err
		}
		renamed = *cat
		return nil
	})
	if err != nil {
		h.respondUpdateError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "category": renamed})
}

// DeleteCategory удаляет категорию вместе с карточками
func (h *Handler) DeleteCategory(c *gin.Context) {
	id := c.Param("id")
	_, err := h.Store.Update(c.Request.Context(), func(d *models.Dashboard) error {
		d.RemoveCategory(id)
		return nil
	})
	if err != nil {
		h.respondUpdateError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// CreateCard добавляет карточку в категорию.
// Без иконки подставляется стандартная favicon сайта.
func (h *Handler) CreateCard(c *gin.Context) {
	categoryID := c.Param("id")
	var input struct {
		Title string `json:"title"`
		URL   string `json:"url"`
		Icon  string `json:"icon"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		httputil.RespondError(c, http.StatusBadRequest, "invalid data")
		return
	}
	if strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.URL) == "" {
		httputil.RespondError(c, http.StatusBadRequest, "title and url are required")
		return
	}

	card := models.NewCard(uuid.NewString(), input.Title, input.URL, input.Icon)
	_, err := h.Store.Update(c.Request.Context(), func(d *models.Dashboard) error {
		_, err := d.AddCard(categoryID, card)
		return err
	})
	if err != nil {
		h.respondUpdateError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "card": card})
}

// DeleteCard удаляет карточку из категории
func (h *Handler) DeleteCard(c *gin.Context) {
	categoryID, cardID := c.Param("id"), c.Param("cardId")
	_, err := h.Store.Update(c.Request.Context(), func(d *models.Dashboard) error {
		return d.RemoveCard(categoryID, cardID)
	})
	if err != nil {
		h.respondUpdateError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) respondUpdateError(c *gin.Context, err error) {
	if errors.Is(err, models.ErrCategoryNotFound) {
		httputil.RespondError(c, http.StatusNotFound, "category not found")
		return
	}
	h.log.Error("update dashboard", zap.Error(err))
	httputil.RespondError(c, http.StatusInternalServerError, "failed to save data")
}
