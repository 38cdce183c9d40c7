package parse

import (
	"fmt"
	"regexp"

	"github.com/shopspring/decimal"

	"github.com/tsawler/catalogstage/layout"
	"github.com/tsawler/catalogstage/model"
	"github.com/tsawler/catalogstage/report"
)

var (
	// sizedAnchor matches a size list and a price in either order.
	sizedAnchor = regexp.MustCompile(
		`(?i)(?:Tallas?:\s*(?P<sizes_a>[A-Za-z0-9,\s/.-]+?)\s*\$(?P<price_a>\d+(?:\.\d{2})?)` +
			`|\$(?P<price_b>\d+(?:\.\d{2})?)\s*Tallas?:\s*(?P<sizes_b>[A-Za-z0-9,\s/.-]+?))`)

	// priceAnchor matches a bare price.
	priceAnchor = regexp.MustCompile(`\$(?P<price>\d+(?:\.\d{2})?)`)
)

// anchor is one boundary match in column text.
type anchor struct {
	start, end int
	sizes      string
	price      string
}

// segment is a chunk of product text bound to the anchor that closes it.
type segment struct {
	text   string
	anchor anchor
}

// scan splits text at anchor matches.
//
// The text between the previous anchor's end and an anchor's start is that
// anchor's chunk. An anchor with an empty chunk is held as pending: if it is
// the last anchor and text follows it, the trailing text becomes its chunk
// (price-first layouts). Pending anchors that are never bound are returned
// as orphans.
func scan(text string, anchors []anchor) (segments []segment, orphans []anchor) {
	prevEnd := 0
	var pending *anchor

	for i := range anchors {
		a := anchors[i]
		chunk := layout.CleanSpaces(text[prevEnd:a.start])
		prevEnd = a.end

		if pending != nil {
			orphans = append(orphans, *pending)
			pending = nil
		}
		if chunk == "" {
			pending = &anchors[i]
			continue
		}
		segments = append(segments, segment{text: chunk, anchor: a})
	}

	if pending != nil {
		if trailing := layout.CleanSpaces(text[prevEnd:]); trailing != "" {
			segments = append(segments, segment{text: trailing, anchor: *pending})
		} else {
			orphans = append(orphans, *pending)
		}
	}
	return segments, orphans
}

// findAnchors returns all matches of re, reading sizes and price from the
// named groups that participated.
func findAnchors(re *regexp.Regexp, text string) []anchor {
	names := re.SubexpNames()
	var out []anchor
	for _, m := range re.FindAllStringSubmatchIndex(text, -1) {
		a := anchor{start: m[0], end: m[1]}
		for gi, name := range names {
			lo, hi := m[2*gi], m[2*gi+1]
			if lo < 0 || name == "" {
				continue
			}
			switch name {
			case "sizes_a", "sizes_b":
				a.sizes = text[lo:hi]
			case "price_a", "price_b", "price":
				a.price = text[lo:hi]
			}
		}
		out = append(out, a)
	}
	return out
}

// Segmenter splits column text into product chunks.
type Segmenter struct {
	// Strict disables the price-only fallback.
	Strict bool
}

// NewSegmenter returns a permissive segmenter.
func NewSegmenter() *Segmenter {
	return &Segmenter{}
}

// Segment parses one column of one page.
//
// Chunks are numbered 1..N in the order their anchors appear. Empty chunks
// and chunks whose price does not parse are dropped without consuming a
// number; the latter produce a warning.
func (s *Segmenter) Segment(text string, page int, col model.Column, category string) ([]*model.ProductChunk, []report.Warning) {
	text = layout.CleanSpaces(text)
	if text == "" {
		return nil, nil
	}

	var warnings []report.Warning
	warn := func(code report.Code, order int, format string, args ...interface{}) {
		warnings = append(warnings, report.Warning{
			Page:    page,
			Column:  col.String(),
			Order:   order,
			Code:    code,
			Message: fmt.Sprintf(format, args...),
		})
	}

	mode := model.WithSizes
	anchors := findAnchors(sizedAnchor, text)
	if len(anchors) == 0 {
		if s.Strict {
			warn(report.CodeNoAnchor, 0, "no size+price anchors found; column skipped")
			return nil, warnings
		}
		mode = model.GenericNoSizes
		anchors = findAnchors(priceAnchor, text)
		if len(anchors) == 0 {
			warn(report.CodeNoAnchor, 0, "no price anchors found in %d characters of text", len(text))
			return nil, warnings
		}
		warn(report.CodeFallbackParser, 0, "no size anchors; parsed %d price anchors without sizes", len(anchors))
	}

	segments, orphans := scan(text, anchors)
	for _, a := range orphans {
		warn(report.CodeOrphanAnchor, 0, "price $%s has no product text", a.price)
	}

	var chunks []*model.ProductChunk
	order := 0
	for _, seg := range segments {
		price, err := decimal.NewFromString(seg.anchor.price)
		if err != nil || price.IsNegative() {
			warn(report.CodePriceParse, 0, "invalid price %q for %q", seg.anchor.price, CleanName(seg.text))
			continue
		}
		order++

		c := &model.ProductChunk{
			Page:      page,
			Column:    col,
			Order:     order,
			Category:  category,
			Name:      CleanName(seg.text),
			Price:     price,
			RawPrice:  seg.anchor.price,
			Reference: ExtractReference(seg.text),
			Mode:      mode,
			Text:      seg.text,
			ImageHint: model.ImageHint(page, col, order),
		}
		if mode == model.WithSizes {
			c.Sizes = ParseSizes(seg.anchor.sizes)
			c.Confidence = model.Low
			if c.Reference != "" {
				c.Confidence = model.Medium
			}
		} else {
			c.Sizes = []string{model.OneSize}
			c.Confidence = model.Low
		}
		chunks = append(chunks, c)
	}
	return chunks, warnings
}
