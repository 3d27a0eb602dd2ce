package models

// CompactDashboard — сжатая форма документа для хранения и передачи.
// Имена полей сокращены: b = background, c = categories.
type CompactDashboard struct {
	B string            `json:"b"`
	C []CompactCategory `json:"c"`
}

// CompactCategory: i = id, n = name, d = cards
type CompactCategory struct {
	I string        `json:"i"`
	N string        `json:"n"`
	D []CompactCard `json:"d"`
}

// CompactCard: i = id, t = title, u = url.
// IC заполняется только для нестандартной иконки, поэтому указатель:
// пустая строка и отсутствие поля различаются.
type CompactCard struct {
	I  string  `json:"i"`
	T  string  `json:"t"`
	U  string  `json:"u"`
	IC *string `json:"ic,omitempty"`
}
