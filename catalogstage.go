// Package catalogstage turns two-column print catalog PDFs into a staging
// dataset of product variants for human review.
//
// Basic usage:
//
//	result, warnings, err := catalogstage.Open("catalog.pdf").Stage()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", report.FormatWarnings(warnings))
//	}
//	for _, rec := range result.Records {
//	    fmt.Println(rec.SKU, rec.Chunk.Name, rec.Chunk.Price)
//	}
//
// With options:
//
//	result, _, err := catalogstage.Open("catalog.pdf").
//	    PageRange(2, 10).
//	    Brand("Artos").
//	    Workers(4).
//	    Stage()
//
// Each page is processed independently: the rotated category label is
// detected, each column's text is split into product chunks at size and price
// anchors, reference codes are back-filled from the rest of the page, and
// chunks are joined to the page's images by (column, order). SKUs are
// assigned across the whole run in page, column and order sequence.
package catalogstage

import (
	"errors"

	"github.com/tsawler/catalogstage/report"
)

// ErrInputNotFound is returned when the input PDF does not exist.
var ErrInputNotFound = errors.New("input PDF does not exist")

// Open returns an Extractor for the PDF at path. Nothing is read until a
// terminal operation such as Stage is called.
//
// Example:
//
//	result, warnings, err := catalogstage.Open("catalog.pdf").Stage()
func Open(path string) *Extractor {
	return &Extractor{
		filename: path,
		options:  defaultOptions(),
	}
}

// FromPages returns an Extractor over already-decoded pages.
// The caller keeps ownership of r.
func FromPages(r PageReader) *Extractor {
	return &Extractor{
		pages:   r,
		options: defaultOptions(),
	}
}

// Must is a helper that wraps a call to Stage and panics if the error is
// non-nil. It discards warnings.
//
// Example:
//
//	result := catalogstage.Must(catalogstage.Open("catalog.pdf").Stage())
func Must[T any](val T, _ []report.Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
