package layout

import (
	"regexp"
	"strings"

	"github.com/tsawler/catalogstage/model"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// CleanSpaces collapses whitespace runs to a single space and trims the ends.
func CleanSpaces(s string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " "))
}

// Upright returns the words that are set horizontally.
func Upright(words []model.Word) []model.Word {
	out := make([]model.Word, 0, len(words))
	for _, w := range words {
		if w.Upright {
			out = append(out, w)
		}
	}
	return out
}

// Rotated returns the words that are not upright.
func Rotated(words []model.Word) []model.Word {
	var out []model.Word
	for _, w := range words {
		if !w.Upright {
			out = append(out, w)
		}
	}
	return out
}

// ColumnOf assigns a horizontal position to a column. Positions strictly
// left of the page midpoint belong to the left column.
func ColumnOf(x0, pageWidth float64) model.Column {
	if x0 < pageWidth/2 {
		return model.Left
	}
	return model.Right
}
