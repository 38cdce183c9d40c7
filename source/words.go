package source

import (
	"sort"
	"strings"

	"github.com/tsawler/catalogstage/model"
)

// DefaultTolerance is the distance, in points, within which glyphs share a
// line and adjacent glyphs share a word.
const DefaultTolerance = 3.0

// char is a glyph measured from the top-left corner of the page.
type char struct {
	text    string
	x0, x1  float64
	top     float64
	bottom  float64
	upright bool
}

// toChars converts user-space glyphs to page coordinates. box is the page's
// MediaBox as [llx lly urx ury].
func toChars(glyphs []glyph, box [4]float64) []char {
	out := make([]char, 0, len(glyphs))
	for _, g := range glyphs {
		out = append(out, char{
			text:    g.text,
			x0:      g.x0 - box[0],
			x1:      g.x1 - box[0],
			top:     box[3] - g.y1,
			bottom:  box[3] - g.y0,
			upright: g.upright,
		})
	}
	return out
}

// groupWords assembles words from chars. Upright words come first in reading
// order, then rotated words column by column. Rotated words are read from
// the top of the page down regardless of the direction they were set in.
func groupWords(chars []char, tol float64) []model.Word {
	var upright, rotated []char
	for _, c := range chars {
		if c.upright {
			upright = append(upright, c)
		} else {
			rotated = append(rotated, c)
		}
	}

	var words []model.Word
	for _, line := range cluster(upright, func(c char) float64 { return c.top }, tol) {
		sort.SliceStable(line, func(i, j int) bool { return line[i].x0 < line[j].x0 })
		words = append(words, splitWords(line, true, tol)...)
	}
	for _, col := range cluster(rotated, func(c char) float64 { return c.x0 }, tol) {
		sort.SliceStable(col, func(i, j int) bool { return col[i].top < col[j].top })
		words = append(words, splitWords(col, false, tol)...)
	}
	return words
}

// cluster groups chars whose key lies within tol of the previous key, after
// sorting by key. Groups are returned in ascending key order.
func cluster(chars []char, key func(char) float64, tol float64) [][]char {
	if len(chars) == 0 {
		return nil
	}
	sorted := make([]char, len(chars))
	copy(sorted, chars)
	sort.SliceStable(sorted, func(i, j int) bool { return key(sorted[i]) < key(sorted[j]) })

	var groups [][]char
	current := []char{sorted[0]}
	last := key(sorted[0])
	for _, c := range sorted[1:] {
		k := key(c)
		if k-last <= tol {
			current = append(current, c)
		} else {
			groups = append(groups, current)
			current = []char{c}
		}
		last = k
	}
	return append(groups, current)
}

// splitWords breaks an ordered run of chars into words at whitespace and at
// gaps wider than tol along the reading axis.
func splitWords(run []char, upright bool, tol float64) []model.Word {
	var words []model.Word
	var current []char

	flush := func() {
		if len(current) > 0 {
			words = append(words, makeWord(current, upright))
			current = nil
		}
	}

	for _, c := range run {
		if strings.TrimSpace(c.text) == "" {
			flush()
			continue
		}
		if len(current) > 0 {
			prev := current[len(current)-1]
			var gap float64
			if upright {
				gap = c.x0 - prev.x1
			} else {
				gap = c.top - prev.bottom
			}
			if gap > tol {
				flush()
			}
		}
		current = append(current, c)
	}
	flush()
	return words
}

func makeWord(chars []char, upright bool) model.Word {
	var b strings.Builder
	x0, top, bottom := chars[0].x0, chars[0].top, chars[0].bottom
	for _, c := range chars {
		b.WriteString(c.text)
		if c.x0 < x0 {
			x0 = c.x0
		}
		if c.top < top {
			top = c.top
		}
		if c.bottom > bottom {
			bottom = c.bottom
		}
	}
	return model.Word{
		Text:    b.String(),
		X0:      x0,
		Top:     top,
		Height:  bottom - top,
		Upright: upright,
	}
}
