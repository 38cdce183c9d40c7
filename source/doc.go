// Package source decodes catalog PDFs into positioned words and images.
//
// It is built on the tabula reader: tabula resolves the document, decodes
// content streams and fonts, and extracts image samples. This package replays
// each page's content stream to recover what the catalog parser needs and
// tabula's fragment API does not carry:
//
//   - the orientation of every glyph, so rotated category labels can be told
//     apart from upright column text
//   - word boxes measured from the top of the page
//   - where each image XObject is drawn on the page
//
// # Usage
//
//	doc, err := source.Open("catalog.pdf")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer doc.Close()
//
//	page, err := doc.Page(0) // first page
//
// Words are grouped from glyphs the same way for every page: upright glyphs
// on one line join while the horizontal gap stays within [DefaultTolerance];
// rotated glyphs join along the vertical axis and are read top to bottom.
package source
