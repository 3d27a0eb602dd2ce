// Package codec преобразует документ панели между полной и сжатой формой.
//
// Сжатие делает две вещи: сокращает имена полей (background → b,
// categories → c, id → i, name → n, cards → d, title → t, url → u)
// и не хранит иконку, если она совпадает со стандартной favicon адреса
// карточки. При чтении такая иконка восстанавливается.
//
// Все функции чистые и безопасны для одновременного вызова.
package codec

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"dash_go/models"

	"github.com/goccy/go-json"
)

// legacyMarker — ключ, по которому опознаётся документ в полной форме
const legacyMarker = "background"

// StandardFavicon возвращает стандартный адрес иконки для ссылки
func StandardFavicon(url string) string {
	return strings.TrimSpace(url) + models.FaviconSuffix
}

// IsStandardFavicon сообщает, совпадает ли иконка побайтно со стандартной favicon адреса
func IsStandardFavicon(url, icon string) bool {
	return icon == StandardFavicon(url)
}

// Compress переводит полный документ в сжатую форму.
// Сам адрес карточки не обрезается, TrimSpace применяется только при сравнении иконки.
func Compress(d models.Dashboard) models.CompactDashboard {
	out := models.CompactDashboard{
		B: d.Background,
		C: make([]models.CompactCategory, 0, len(d.Categories)),
	}
	for _, cat := range d.Categories {
		cc := models.CompactCategory{
			I: cat.ID,
			N: cat.Name,
			D: make([]models.CompactCard, 0, len(cat.Cards)),
		}
		for _, card := range cat.Cards {
			compact := models.CompactCard{I: card.ID, T: card.Title, U: card.URL}
			if !IsStandardFavicon(card.URL, card.Icon) {
				icon := card.Icon
				compact.IC = &icon
			}
			cc.D = append(cc.D, compact)
		}
		out.C = append(out.C, cc)
	}
	return out
}

// Decompress восстанавливает полный документ из сжатой формы
func Decompress(c models.CompactDashboard) models.Dashboard {
	out := models.Dashboard{
		Background: c.B,
		Categories: make([]models.Category, 0, len(c.C)),
	}
	for _, cc := range c.C {
		cat := models.Category{
			ID:    cc.I,
			Name:  cc.N,
			Cards: make([]models.Card, 0, len(cc.D)),
		}
		for _, compact := range cc.D {
			icon := StandardFavicon(compact.U)
			if compact.IC != nil {
				icon = *compact.IC
			}
			cat.Cards = append(cat.Cards, models.Card{
				ID:    compact.I,
				Title: compact.T,
				URL:   compact.U,
				Icon:  icon,
			})
		}
		out.Categories = append(out.Categories, cat)
	}
	return out
}

// Decode читает сохранённый документ.
// Документы, записанные до появления сжатия, содержат ключ background
// и возвращаются как есть, без попытки трактовать их как сжатые.
func Decode(payload []byte) (models.Dashboard, error) {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(payload, &keys); err != nil {
		return models.Dashboard{}, fmt.Errorf("decode dashboard: %w", err)
	}
	if keys == nil {
		return models.Dashboard{}, errors.New("decode dashboard: payload is not a JSON object")
	}

	if _, ok := keys[legacyMarker]; ok {
		var d models.Dashboard
		if err := json.Unmarshal(payload, &d); err != nil {
			return models.Dashboard{}, fmt.Errorf("decode expanded dashboard: %w", err)
		}
		d.Normalize()
		return d, nil
	}

	var c models.CompactDashboard
	if err := json.Unmarshal(payload, &c); err != nil {
		return models.Dashboard{}, fmt.Errorf("decode compact dashboard: %w", err)
	}
	return Decompress(c), nil
}

// Encode сериализует документ в сжатой форме
func Encode(d models.Dashboard) ([]byte, error) {
	return marshal(Compress(d))
}

// StorageSize оценивает размер значения в байтах после сериализации в JSON.
// При ошибке сериализации возвращает 0.
func StorageSize(v any) int {
	b, err := marshal(v)
	if err != nil {
		return 0
	}
	return len(b)
}

// marshal кодирует значение без экранирования HTML,
// чтобы размер совпадал с тем, что получает браузерный клиент
func marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
