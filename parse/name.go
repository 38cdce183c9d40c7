package parse

import (
	"regexp"
	"strings"

	"github.com/tsawler/catalogstage/layout"
	"github.com/tsawler/catalogstage/model"
)

var (
	parenGroup   = regexp.MustCompile(`\(([^)]+)\)`)
	numericToken = regexp.MustCompile(`\$?\d+(?:\.\d{2})?`)
	sizeLabel    = regexp.MustCompile(`(?i)Tallas?:.*$`)
)

// CleanName derives a display name from chunk text by removing reference
// groups, prices and numbers, and any trailing size label.
func CleanName(chunk string) string {
	name := layout.CleanSpaces(chunk)
	name = parenGroup.ReplaceAllString(name, "")
	name = numericToken.ReplaceAllString(name, "")
	name = sizeLabel.ReplaceAllString(name, "")
	name = strings.Trim(layout.CleanSpaces(name), " .,-:;")
	if name == "" {
		return model.UnnamedProduct
	}
	return name
}
