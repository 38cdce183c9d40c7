package catalogstage

import (
	"fmt"
	"sort"

	"github.com/tsawler/catalogstage/layout"
	"github.com/tsawler/catalogstage/match"
	"github.com/tsawler/catalogstage/model"
	"github.com/tsawler/catalogstage/parse"
	"github.com/tsawler/catalogstage/report"
)

// PageResult is the outcome of processing one page.
type PageResult struct {
	Page     int
	Category string

	// Chunks are ordered left column first, then by order in column.
	Chunks []*model.ProductChunk

	// Slots are the decoded images, ordered the same way.
	Slots []model.ImageSlot

	Warnings []report.Warning
}

// Report summarizes the page for the run report.
func (r *PageResult) Report() report.PageReport {
	return report.PageReport{
		Page:             r.Page,
		Category:         r.Category,
		ProductsDetected: len(r.Chunks),
		ImagesExtracted:  len(r.Slots),
		Warnings:         r.Warnings,
	}
}

// Pipeline turns one decoded page into product chunks and image slots.
// A Pipeline holds no per-run state and may process pages concurrently.
type Pipeline struct {
	Segmenter *parse.Segmenter
	Matcher   match.Matcher
}

// NewPipeline returns a pipeline with a permissive segmenter and index
// matching.
func NewPipeline() *Pipeline {
	return &Pipeline{
		Segmenter: parse.NewSegmenter(),
		Matcher:   match.IndexMatcher{},
	}
}

// Process runs every per-page stage. It never fails; problems are recorded
// as warnings on the result.
func (p *Pipeline) Process(page *model.Page) *PageResult {
	res := &PageResult{
		Page:     page.Number,
		Category: layout.DetectCategory(layout.Rotated(page.Words)),
	}

	upright := layout.Upright(page.Words)
	for _, col := range model.Columns {
		text := layout.ColumnText(upright, page.Width, col)
		chunks, warnings := p.Segmenter.Segment(text, page.Number, col, res.Category)
		res.Chunks = append(res.Chunks, chunks...)
		res.Warnings = append(res.Warnings, warnings...)
	}

	parse.ResolvePageReferences(res.Chunks, parse.PageCandidates(page.Text()))

	slots, failures := layout.SortImages(page.Number, page.Images, page.Width)
	for _, f := range failures {
		res.Warnings = append(res.Warnings, report.Warning{
			Page:    page.Number,
			Code:    report.CodeImageDecode,
			Message: fmt.Sprintf("image %s skipped: %v", f.Image.Name, f.Err),
		})
	}
	res.Slots = slots

	for _, c := range p.Matcher.Assign(res.Chunks, slots) {
		c.MarkMissingImage()
		res.Warnings = append(res.Warnings, report.Warning{
			Page:    page.Number,
			Column:  c.Column.String(),
			Order:   c.Order,
			Code:    report.CodeMissingImage,
			Message: fmt.Sprintf("no image slot for %q (expected %s)", c.Name, c.ImageHint),
		})
	}
	for _, s := range match.UnusedSlots(res.Chunks, slots) {
		res.Warnings = append(res.Warnings, report.Warning{
			Page:    page.Number,
			Column:  s.Column.String(),
			Order:   s.Order,
			Code:    report.CodeUnusedImage,
			Message: fmt.Sprintf("image %s has no product", s.Filename),
		})
	}

	sortChunks(res.Chunks)
	return res
}

// sortChunks orders chunks left column first, then by order in column.
func sortChunks(chunks []*model.ProductChunk) {
	sort.SliceStable(chunks, func(i, j int) bool {
		if chunks[i].Column != chunks[j].Column {
			return chunks[i].Column < chunks[j].Column
		}
		return chunks[i].Order < chunks[j].Order
	})
}
