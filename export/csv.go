package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/tsawler/catalogstage/model"
)

// Layout selects the columns of the staging CSV.
type Layout int

const (
	// LayoutSKU leads every row with the generated SKU.
	LayoutSKU Layout = iota
	// LayoutRaw omits the SKU column.
	LayoutRaw
)

// String returns a human-readable representation of the layout
func (l Layout) String() string {
	switch l {
	case LayoutSKU:
		return "sku"
	case LayoutRaw:
		return "raw"
	default:
		return "unknown"
	}
}

// ParseLayout parses "sku" or "raw".
func ParseLayout(s string) (Layout, error) {
	switch s {
	case "sku", "":
		return LayoutSKU, nil
	case "raw":
		return LayoutRaw, nil
	}
	return LayoutSKU, fmt.Errorf("unknown CSV layout %q", s)
}

var rawColumns = []string{
	"source_page",
	"column",
	"order_in_column",
	"category",
	"reference_number",
	"name_raw",
	"size",
	"price",
	"image_hint",
	"image_filename",
	"confidence",
	"parse_mode",
}

// Header returns the column names for the layout.
func (l Layout) Header() []string {
	if l == LayoutRaw {
		return append([]string(nil), rawColumns...)
	}
	return append([]string{"sku"}, rawColumns...)
}

// ReviewHeader is the column list of the image review CSV.
var ReviewHeader = []string{
	"source_page",
	"column",
	"order_in_column",
	"name_raw",
	"image_filename",
	"confidence",
}

// CSVConfig holds configuration options for CSV output.
type CSVConfig struct {
	Layout Layout

	// Delimiter separates fields (default: comma)
	Delimiter rune

	// IncludeHeader writes the header row
	IncludeHeader bool
}

// DefaultCSVConfig returns the staging defaults: SKU layout, comma
// separated, with header.
func DefaultCSVConfig() CSVConfig {
	return CSVConfig{
		Layout:        LayoutSKU,
		Delimiter:     ',',
		IncludeHeader: true,
	}
}

// WriteStaging writes one row per record.
func WriteStaging(records []model.ProductRecord, w io.Writer, config CSVConfig) error {
	cw := csv.NewWriter(w)
	if config.Delimiter != 0 {
		cw.Comma = config.Delimiter
	}

	if config.IncludeHeader {
		if err := cw.Write(config.Layout.Header()); err != nil {
			return fmt.Errorf("writing CSV header: %w", err)
		}
	}

	for i, rec := range records {
		c := rec.Chunk
		row := []string{
			strconv.Itoa(c.Page),
			c.Column.String(),
			strconv.Itoa(c.Order),
			c.Category,
			c.Reference,
			c.Name,
			rec.Size,
			c.Price.StringFixed(2),
			c.ImageHint,
			c.ImageFile,
			string(c.Confidence),
			string(c.Mode),
		}
		if config.Layout == LayoutSKU {
			row = append([]string{rec.SKU}, row...)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing CSV row %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteReview writes one row per product chunk.
func WriteReview(chunks []*model.ProductChunk, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ReviewHeader); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for i, c := range chunks {
		row := []string{
			strconv.Itoa(c.Page),
			c.Column.String(),
			strconv.Itoa(c.Order),
			c.Name,
			c.ImageFile,
			string(c.Confidence),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing CSV row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
