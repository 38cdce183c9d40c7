package parse

import (
	"regexp"
	"strings"

	"github.com/tsawler/catalogstage/layout"
	"github.com/tsawler/catalogstage/model"
)

var sizeToken = regexp.MustCompile(`(?i)\b(?:\d{2}|XS|S|M|L|XL|XXL|XXXL|UNICA|U)\b`)

// ParseSizes tokenizes a size expression such as "S, M y L" or "28,30,32".
// The result is never empty: input without any recognizable size yields
// the single one-size token.
func ParseSizes(raw string) []string {
	cleaned := strings.ToUpper(layout.CleanSpaces(raw))
	if cleaned == "" {
		return []string{model.OneSize}
	}
	cleaned = strings.ReplaceAll(cleaned, " Y ", ",")

	tokens := sizeToken.FindAllString(cleaned, -1)
	if len(tokens) == 0 {
		return []string{model.OneSize}
	}

	sizes := make([]string, len(tokens))
	for i, tok := range tokens {
		tok = strings.ToUpper(tok)
		if tok == "U" {
			tok = model.OneSize
		}
		sizes[i] = tok
	}
	return sizes
}
