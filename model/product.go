package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// DefaultCategory is used when a page has no usable rotated marker.
const DefaultCategory = "Sin categoria"

// OneSize is the size token meaning "one size fits all".
const OneSize = "UNICA"

// UnnamedProduct replaces a name that is empty after cleaning.
const UnnamedProduct = "Producto sin nombre"

// Column identifies one of the two printed columns of a page.
type Column int

const (
	Left Column = iota
	Right
)

// Columns lists the columns in processing order.
var Columns = []Column{Left, Right}

// String returns "left" or "right".
func (c Column) String() string {
	if c == Right {
		return "right"
	}
	return "left"
}

// Letter returns "L" or "R".
func (c Column) Letter() string {
	if c == Right {
		return "R"
	}
	return "L"
}

// ParseColumn parses "left" or "right".
func ParseColumn(s string) (Column, error) {
	switch s {
	case "left":
		return Left, nil
	case "right":
		return Right, nil
	}
	return Left, fmt.Errorf("unknown column %q", s)
}

// Confidence is a review triage label.
type Confidence string

const (
	Low    Confidence = "low"
	Medium Confidence = "medium"
)

// Promote raises Low to Medium. Medium is unchanged.
func (c Confidence) Promote() Confidence {
	if c == Low {
		return Medium
	}
	return c
}

// ParseMode records which anchor pattern produced a chunk.
type ParseMode string

const (
	WithSizes      ParseMode = "with_sizes"
	GenericNoSizes ParseMode = "generic_no_sizes"
)

// ProductChunk is the parsed description of one printed product.
type ProductChunk struct {
	Page   int
	Column Column

	// Order is the 1-based position of the chunk within its column.
	Order int

	Category string
	Name     string

	// Sizes is never empty.
	Sizes []string

	Price    decimal.Decimal
	RawPrice string

	// Reference is an uppercase alphanumeric code or "".
	Reference string

	Confidence Confidence
	Mode       ParseMode

	// Text is the whitespace-normalized chunk text the fields came from.
	Text string

	// ImageHint is the slot name this product expects its photo under.
	ImageHint string

	// ImageFile is the filename of the matched image slot, or "".
	ImageFile string
}

// Key returns the (column, order) pair used to join chunks and image slots.
func (c *ProductChunk) Key() SlotKey {
	return SlotKey{Column: c.Column, Order: c.Order}
}

// MarkMissingImage clears the image and forces Low confidence.
func (c *ProductChunk) MarkMissingImage() {
	c.ImageFile = ""
	c.Confidence = Low
}

// SlotKey identifies a position within a page.
type SlotKey struct {
	Column Column
	Order  int
}

// ImageSlot is an image's assigned position on a page.
type ImageSlot struct {
	Page     int
	Column   Column
	Order    int
	Filename string
	Width    int
	Height   int

	// Image is the placed image the slot was built from.
	Image Image
}

// Key returns the slot's (column, order) pair.
func (s ImageSlot) Key() SlotKey {
	return SlotKey{Column: s.Column, Order: s.Order}
}

// ImageHint formats the expected slot name for a page position.
func ImageHint(page int, col Column, order int) string {
	return fmt.Sprintf("IMG-P%03d-C%s-O%02d", page, col.Letter(), order)
}

// ProductRecord is one output row: a chunk crossed with one of its sizes.
type ProductRecord struct {
	SKU   string
	Size  string
	Chunk *ProductChunk
}
