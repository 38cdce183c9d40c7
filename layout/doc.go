// Package layout turns positioned words and images into the page structures
// the catalog parser works with.
//
// Catalog pages are printed in two columns split at the horizontal midpoint
// of the page. Column text is rebuilt from upright words only; rotated words
// are treated as category marker candidates.
//
//	category := layout.DetectCategory(page.Words)
//	left := layout.ColumnText(page.Words, page.Width, model.Left)
//
// Images are bucketed into the same columns and numbered top to bottom so
// they can be joined with parsed products by position (see [SortImages]).
package layout
