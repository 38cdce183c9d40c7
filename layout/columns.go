package layout

import (
	"math"
	"sort"
	"strings"

	"github.com/tsawler/catalogstage/model"
)

// ColumnWords returns the upright words of one column in reading order.
//
// Words are ordered by their top edge rounded to one decimal place, then by
// left edge. Rounding absorbs sub-point baseline jitter between words that
// belong to the same printed line.
func ColumnWords(words []model.Word, pageWidth float64, col model.Column) []model.Word {
	var selected []model.Word
	for _, w := range Upright(words) {
		if ColumnOf(w.X0, pageWidth) == col {
			selected = append(selected, w)
		}
	}

	sort.SliceStable(selected, func(i, j int) bool {
		ti, tj := roundTenth(selected[i].Top), roundTenth(selected[j].Top)
		if ti != tj {
			return ti < tj
		}
		return selected[i].X0 < selected[j].X0
	})
	return selected
}

// ColumnText renders one column as whitespace-normalized text.
func ColumnText(words []model.Word, pageWidth float64, col model.Column) string {
	selected := ColumnWords(words, pageWidth, col)
	parts := make([]string, len(selected))
	for i, w := range selected {
		parts[i] = w.Text
	}
	return CleanSpaces(strings.Join(parts, " "))
}

// roundTenth rounds to one decimal place, half to even.
func roundTenth(v float64) float64 {
	return math.RoundToEven(v*10) / 10
}
