// Package sku expands product chunks into per-size rows and generates their
// stock keeping units.
//
// A SKU is built from a fixed prefix, a four character category code, an
// optional four character brand code, a zero-padded product counter and the
// size:
//
//	CAT-BLUS-0007-M
//	CAT-BLUS-ACME-0007-M
//
// The counter advances once per product, not once per size, so all sizes of
// one product share it.
package sku

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/catalogstage/model"
)

const (
	// DefaultPrefix starts every generated SKU.
	DefaultPrefix = "CAT"

	// DefaultFiller pads codes shorter than four characters.
	DefaultFiller = 'X'

	codeLength = 4
)

// Generator assigns SKUs. It carries the product counter explicitly so a run
// can thread one Generator through all of its pages.
type Generator struct {
	Prefix string
	Filler rune

	brand   string
	counter int
}

// NewGenerator returns a generator with the default prefix and filler.
// An empty brand omits the brand code.
func NewGenerator(brand string) *Generator {
	g := &Generator{Prefix: DefaultPrefix, Filler: DefaultFiller}
	if strings.TrimSpace(brand) != "" {
		g.brand = brand
	}
	return g
}

// Counter returns the number of products expanded so far.
func (g *Generator) Counter() int {
	return g.counter
}

// Expand advances the counter and returns one record per size of the chunk.
func (g *Generator) Expand(c *model.ProductChunk) []model.ProductRecord {
	g.counter++

	base := []string{g.Prefix, Code(c.Category, g.Filler)}
	if g.brand != "" {
		base = append(base, Code(g.brand, g.Filler))
	}
	base = append(base, fmt.Sprintf("%04d", g.counter))
	stem := strings.Join(base, "-")

	records := make([]model.ProductRecord, 0, len(c.Sizes))
	for _, size := range c.Sizes {
		records = append(records, model.ProductRecord{
			SKU:   stem + "-" + size,
			Size:  size,
			Chunk: c,
		})
	}
	return records
}

// ExpandAll expands chunks in order.
func (g *Generator) ExpandAll(chunks []*model.ProductChunk) []model.ProductRecord {
	var out []model.ProductRecord
	for _, c := range chunks {
		out = append(out, g.Expand(c)...)
	}
	return out
}

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Code reduces s to its first four unaccented alphanumeric characters,
// uppercased, padded on the right with filler.
func Code(s string, filler rune) string {
	plain, _, err := transform.String(stripMarks, s)
	if err != nil {
		plain = s
	}

	var b strings.Builder
	n := 0
	for _, r := range plain {
		if n == codeLength {
			break
		}
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(unicode.ToUpper(r))
			n++
		}
	}
	for ; n < codeLength; n++ {
		b.WriteRune(filler)
	}
	return b.String()
}
