package codec

import (
	"fmt"

	"dash_go/models"
)

// CompressionStats — сравнение размеров документа до и после сжатия
type CompressionStats struct {
	Original     int     `json:"original"`
	Compressed   int     `json:"compressed"`
	Ratio        float64 `json:"ratio"`
	RatioPercent string  `json:"ratio_percent"`
	Saved        int     `json:"saved"`
}

// Stats считает размеры полной и сжатой формы документа
func Stats(d models.Dashboard) CompressionStats {
	original := StorageSize(d)
	compressed := StorageSize(Compress(d))

	var ratio float64
	if original > 0 {
		ratio = 1 - float64(compressed)/float64(original)
	}

	return CompressionStats{
		Original:     original,
		Compressed:   compressed,
		Ratio:        ratio,
		RatioPercent: fmt.Sprintf("%.2f%%", ratio*100),
		Saved:        original - compressed,
	}
}
