package models

import (
	"errors"
	"strings"
)

// FaviconSuffix добавляется к адресу карточки, чтобы получить стандартную иконку
const FaviconSuffix = "/favicon.ico"

// ErrCategoryNotFound возвращается, когда категория с указанным ID отсутствует в документе
var ErrCategoryNotFound = errors.New("category not found")

// Dashboard — полный (развёрнутый) документ панели ссылок.
// Порядок категорий и карточек совпадает с порядком отображения.
type Dashboard struct {
	Background string     `json:"background"`
	Categories []Category `json:"categories"`
}

// Category — именованная группа карточек
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Cards []Card `json:"cards"`
}

// Card — одна закладка
type Card struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
	Icon  string `json:"icon"`
}

// NewCard собирает карточку из пользовательского ввода.
// Пустая иконка заменяется стандартной favicon адреса.
func NewCard(id, title, url, icon string) Card {
	url = strings.TrimSpace(url)
	icon = strings.TrimSpace(icon)
	if icon == "" {
		icon = url + FaviconSuffix
	}
	return Card{
		ID:    id,
		Title: strings.TrimSpace(title),
		URL:   url,
		Icon:  icon,
	}
}

// FindCategory ищет категорию по ID и возвращает указатель на элемент среза,
// чтобы изменения сразу попадали в документ
func (d *Dashboard) FindCategory(id string) (*Category, bool) {
	for i := range d.Categories {
		if d.Categories[i].ID == id {
			return &d.Categories[i], true
		}
	}
	return nil, false
}

// AddCategory добавляет категорию в конец списка
func (d *Dashboard) AddCategory(c Category) {
	if c.Cards == nil {
		c.Cards = []Card{}
	}
	d.Categories = append(d.Categories, c)
}

// RenameCategory меняет название категории
func (d *Dashboard) RenameCategory(id, name string) (*Category, error) {
	c, ok := d.FindCategory(id)
	if !ok {
		return nil, ErrCategoryNotFound
	}
	c.Name = name
	return c, nil
}

// RemoveCategory удаляет категорию. Возвращает false, если удалять было нечего.
func (d *Dashboard) RemoveCategory(id string) bool {
	kept := d.Categories[:0]
	removed := false
	for _, c := range d.Categories {
		if c.ID == id {
			removed = true
			continue
		}
		kept = append(kept, c)
	}
	d.Categories = kept
	return removed
}

// AddCard добавляет карточку в конец категории
func (d *Dashboard) AddCard(categoryID string, card Card) (*Card, error) {
	c, ok := d.FindCategory(categoryID)
	if !ok {
		return nil, ErrCategoryNotFound
	}
	c.Cards = append(c.Cards, card)
	return &c.Cards[len(c.Cards)-1], nil
}

// RemoveCard удаляет карточку из категории.
// Отсутствие самой карточки ошибкой не считается.
func (d *Dashboard) RemoveCard(categoryID, cardID string) error {
	c, ok := d.FindCategory(categoryID)
	if !ok {
		return ErrCategoryNotFound
	}
	kept := c.Cards[:0]
	for _, card := range c.Cards {
		if card.ID != cardID {
			kept = append(kept, card)
		}
	}
	c.Cards = kept
	return nil
}

// Normalize заменяет nil-срезы пустыми, чтобы в JSON уходили [] вместо null
func (d *Dashboard) Normalize() {
	if d.Categories == nil {
		d.Categories = []Category{}
	}
	for i := range d.Categories {
		if d.Categories[i].Cards == nil {
			d.Categories[i].Cards = []Card{}
		}
	}
}

// DefaultDashboard возвращает начальный документ, которым заполняется пустое хранилище
func DefaultDashboard() Dashboard {
	return Dashboard{
		Background: "https://images.unsplash.com/photo-1579546929518-9e396f3cc809?w=1920",
		Categories: []Category{
			{
				ID:   "1",
				Name: "Инструменты",
				Cards: []Card{
					{ID: "1", Title: "Google", URL: "https://www.google.com", Icon: "https://www.google.com/favicon.ico"},
					{ID: "2", Title: "GitHub", URL: "https://github.com", Icon: "https://github.com/favicon.ico"},
				},
			},
			{
				ID:   "2",
				Name: "Соцсети",
				Cards: []Card{
					{ID: "3", Title: "Twitter", URL: "https://twitter.com", Icon: "https://twitter.com/favicon.ico"},
				},
			},
		},
	}
}
