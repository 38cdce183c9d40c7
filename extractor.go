package catalogstage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"

	"github.com/tsawler/catalogstage/match"
	"github.com/tsawler/catalogstage/model"
	"github.com/tsawler/catalogstage/parse"
	"github.com/tsawler/catalogstage/report"
	"github.com/tsawler/catalogstage/sku"
	"github.com/tsawler/catalogstage/source"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// PageReader supplies decoded pages by 0-based index.
// *source.Document implements it.
type PageReader interface {
	PageCount() (int, error)
	Page(index int) (*model.Page, error)
}

// Result is the outcome of a staging run.
type Result struct {
	// Pages holds one entry per processed page, in page order.
	Pages []*PageResult

	// Records holds one row per product and size, in SKU order.
	Records []model.ProductRecord

	Report *report.Report
}

// Chunks returns every product chunk of the run in page order.
func (r *Result) Chunks() []*model.ProductChunk {
	var out []*model.ProductChunk
	for _, p := range r.Pages {
		out = append(out, p.Chunks...)
	}
	return out
}

// Slots returns every image slot of the run in page order.
func (r *Result) Slots() []model.ImageSlot {
	var out []model.ImageSlot
	for _, p := range r.Pages {
		out = append(out, p.Slots...)
	}
	return out
}

// Extractor provides a fluent interface for staging a catalog PDF.
// Each configuration method returns a new Extractor instance, making it
// safe for concurrent use and allowing method chaining.
type Extractor struct {
	// Source
	filename string
	pages    PageReader

	// Configuration
	options StageOptions

	// Accumulated error (fail-fast)
	err error
}

// clone creates a shallow copy of the Extractor with a deep copy of options.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		filename: e.filename,
		pages:    e.pages,
		options:  e.options.clone(),
		err:      e.err,
	}
}

// ============================================================================
// Configuration Methods (return new Extractor instance)
// ============================================================================

// Pages specifies which pages to stage (1-indexed).
// Multiple calls are cumulative.
//
// Example:
//
//	result, _, err := catalogstage.Open("catalog.pdf").Pages(1, 3, 5).Stage()
func (e *Extractor) Pages(pages ...int) *Extractor {
	n := e.clone()
	n.options.pages = append(n.options.pages, pages...)
	return n
}

// PageRange specifies a range of pages to stage (1-indexed, inclusive).
func (e *Extractor) PageRange(start, end int) *Extractor {
	n := e.clone()
	if start > end {
		n.err = fmt.Errorf("invalid page range %d-%d", start, end)
		return n
	}
	for i := start; i <= end; i++ {
		n.options.pages = append(n.options.pages, i)
	}
	return n
}

// Brand adds a four-character brand code to every SKU.
func (e *Extractor) Brand(brand string) *Extractor {
	n := e.clone()
	n.options.brand = brand
	return n
}

// SKUPrefix replaces the leading SKU segment.
func (e *Extractor) SKUPrefix(prefix string) *Extractor {
	n := e.clone()
	n.options.prefix = prefix
	return n
}

// Strict disables the price-only fallback parser. Columns without size
// anchors yield no products and a warning.
func (e *Extractor) Strict() *Extractor {
	n := e.clone()
	n.options.strict = true
	return n
}

// Workers sets how many pages are parsed concurrently. Output does not
// depend on the worker count.
func (e *Extractor) Workers(workers int) *Extractor {
	n := e.clone()
	if workers < 1 {
		workers = 1
	}
	n.options.workers = workers
	return n
}

// Matcher replaces the image matching strategy.
func (e *Extractor) Matcher(m match.Matcher) *Extractor {
	n := e.clone()
	if m != nil {
		n.options.matcher = m
	}
	return n
}

// Logger sets the logger used for progress and warnings.
func (e *Extractor) Logger(l *zap.Logger) *Extractor {
	n := e.clone()
	if l != nil {
		n.options.logger = l
	}
	return n
}

// ============================================================================
// Terminal Operations
// ============================================================================

// Stage runs the pipeline over the selected pages.
func (e *Extractor) Stage() (*Result, []report.Warning, error) {
	return e.StageContext(context.Background())
}

// StageContext runs the pipeline over the selected pages. The context is
// checked between pages.
//
// Only problems that prevent the run from starting are returned as errors.
// Everything found while processing pages is reported as warnings, which
// are also attached to the result's report.
func (e *Extractor) StageContext(ctx context.Context) (*Result, []report.Warning, error) {
	if e.err != nil {
		return nil, nil, e.err
	}

	pr := e.pages
	if pr == nil {
		if _, err := os.Stat(e.filename); errors.Is(err, fs.ErrNotExist) {
			return nil, nil, fmt.Errorf("%w: %s", ErrInputNotFound, e.filename)
		}
		doc, err := source.Open(e.filename)
		if err != nil {
			return nil, nil, err
		}
		defer doc.Close()
		pr = doc
	}

	indices, err := e.resolvePages(pr)
	if err != nil {
		return nil, nil, err
	}

	pages, err := e.processPages(ctx, pr, indices)
	if err != nil {
		return nil, nil, err
	}

	res := &Result{Pages: pages}

	gen := sku.NewGenerator(e.options.brand)
	gen.Prefix = e.options.prefix
	agg := report.NewAggregator(e.filename)
	for _, p := range pages {
		res.Records = append(res.Records, gen.ExpandAll(p.Chunks)...)
		agg.AddPage(p.Report())
	}
	agg.AddRows(len(res.Records))
	res.Report = agg.Report()

	e.options.logger.Info("staging complete",
		zap.String("source", e.filename),
		zap.Int("pages", len(pages)),
		zap.Int("products", res.Report.ProductsDetected),
		zap.Int("rows", len(res.Records)),
		zap.Int("warnings", res.Report.WarningCount),
	)
	return res, res.Report.Warnings, nil
}

// processPages reads pages one at a time and parses them with up to
// options.workers goroutines. Results are indexed by position so their
// order does not depend on scheduling.
func (e *Extractor) processPages(ctx context.Context, pr PageReader, indices []int) ([]*PageResult, error) {
	pipeline := &Pipeline{
		Segmenter: &parse.Segmenter{Strict: e.options.strict},
		Matcher:   e.options.matcher,
	}
	log := e.options.logger
	results := make([]*PageResult, len(indices))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.options.workers)

	for i, idx := range indices {
		if err := gctx.Err(); err != nil {
			break
		}

		page, err := pr.Page(idx)
		if err != nil {
			log.Warn("page could not be read", zap.Int("page", idx+1), zap.Error(err))
			results[i] = &PageResult{
				Page:     idx + 1,
				Category: model.DefaultCategory,
				Warnings: []report.Warning{{
					Page:    idx + 1,
					Code:    report.CodePageRead,
					Message: err.Error(),
				}},
			}
			continue
		}

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res := pipeline.Process(page)
			log.Debug("page processed",
				zap.Int("page", res.Page),
				zap.String("category", res.Category),
				zap.Int("products", len(res.Chunks)),
				zap.Int("images", len(res.Slots)),
			)
			for _, w := range res.Warnings {
				log.Warn(w.Message,
					zap.Int("page", w.Page),
					zap.String("code", string(w.Code)),
					zap.String("column", w.Column),
					zap.Int("order", w.Order),
				)
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// resolvePages converts the selected 1-indexed pages to sorted, unique
// 0-indexed page numbers.
func (e *Extractor) resolvePages(pr PageReader) ([]int, error) {
	pageCount, err := pr.PageCount()
	if err != nil {
		return nil, fmt.Errorf("failed to get page count: %w", err)
	}

	// If no pages specified, use all pages
	if len(e.options.pages) == 0 {
		indices := make([]int, pageCount)
		for i := range indices {
			indices[i] = i
		}
		return indices, nil
	}

	seen := make(map[int]bool)
	var indices []int
	for _, p := range e.options.pages {
		if p < 1 || p > pageCount {
			return nil, fmt.Errorf("page %d out of range (1-%d)", p, pageCount)
		}
		if !seen[p-1] {
			seen[p-1] = true
			indices = append(indices, p-1)
		}
	}
	sort.Ints(indices)
	return indices, nil
}
