package layout

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/tsawler/catalogstage/model"
)

var (
	markerText    = regexp.MustCompile(`^[A-Z-]+$`)
	nonMarkerRune = regexp.MustCompile(`[^A-Za-z-]`)
)

// IsCategoryMarker reports whether a word can be a rotated category label:
// not upright, at least four characters, only uppercase letters and hyphens.
func IsCategoryMarker(w model.Word) bool {
	return !w.Upright && utf8.RuneCountInString(w.Text) >= 4 && markerText.MatchString(w.Text)
}

// DetectCategory returns the page category taken from the tallest rotated
// marker, or model.DefaultCategory when there is none.
func DetectCategory(words []model.Word) string {
	var markers []model.Word
	for _, w := range words {
		if IsCategoryMarker(w) {
			markers = append(markers, w)
		}
	}
	if len(markers) == 0 {
		return model.DefaultCategory
	}

	sort.SliceStable(markers, func(i, j int) bool {
		return markers[i].Height > markers[j].Height
	})
	return NormalizeCategoryMarker(markers[0].Text)
}

// NormalizeCategoryMarker turns raw rotated marker text into a label.
//
// Vertical labels in the source layout come out of the content stream with
// each hyphen-separated segment reversed, so every segment is reversed back
// before the parts are joined and title-cased: "ASULB-SOTRA" becomes
// "Blusa Artos".
func NormalizeCategoryMarker(raw string) string {
	token := strings.ToUpper(nonMarkerRune.ReplaceAllString(CleanSpaces(raw), ""))
	if token == "" {
		return model.DefaultCategory
	}

	var parts []string
	for _, p := range strings.Split(token, "-") {
		if p != "" {
			parts = append(parts, reverse(p))
		}
	}
	if len(parts) == 0 {
		return model.DefaultCategory
	}
	return titleCase(strings.Join(parts, " "))
}

func reverse(s string) string {
	r := []rune(s)
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
	return string(r)
}

// titleCase upper-cases the first letter of every word and lower-cases the
// rest.
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	start := true
	for _, r := range s {
		if unicode.IsLetter(r) {
			if start {
				b.WriteRune(unicode.ToUpper(r))
			} else {
				b.WriteRune(unicode.ToLower(r))
			}
			start = false
			continue
		}
		b.WriteRune(r)
		start = true
	}
	return b.String()
}
