package report

import (
	"fmt"
	"strings"
)

// Code classifies a warning.
type Code string

const (
	CodePriceParse     Code = "price_parse"
	CodeNoAnchor       Code = "no_anchor"
	CodeFallbackParser Code = "fallback_parser"
	CodeOrphanAnchor   Code = "orphan_anchor"
	CodeImageDecode    Code = "image_decode"
	CodeMissingImage   Code = "missing_image"
	CodeUnusedImage    Code = "unused_image"
	CodePageRead       Code = "page_read"
)

// Warning is a recoverable problem found while processing a page.
type Warning struct {
	Page int  `json:"page"`
	Code Code `json:"code"`

	// Column and Order are empty when the warning is not tied to a product
	// position.
	Column string `json:"column,omitempty"`
	Order  int    `json:"order_in_column,omitempty"`

	Message string `json:"message"`
}

// String formats the warning as a single line.
func (w Warning) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "page %d", w.Page)
	if w.Column != "" {
		fmt.Fprintf(&b, " %s", w.Column)
		if w.Order > 0 {
			fmt.Fprintf(&b, " #%d", w.Order)
		}
	}
	fmt.Fprintf(&b, ": [%s] %s", w.Code, w.Message)
	return b.String()
}

// FormatWarnings renders warnings one per line.
func FormatWarnings(warnings []Warning) string {
	lines := make([]string, len(warnings))
	for i, w := range warnings {
		lines[i] = w.String()
	}
	return strings.Join(lines, "\n")
}
