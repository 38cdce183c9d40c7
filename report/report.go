package report

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// PageReport summarizes one processed page.
type PageReport struct {
	Page             int       `json:"page"`
	Category         string    `json:"category"`
	ProductsDetected int       `json:"products_detected"`
	ImagesExtracted  int       `json:"images_extracted"`
	Warnings         []Warning `json:"warnings"`
}

// Report is the structured summary of a run.
type Report struct {
	RunID            string       `json:"run_id"`
	Source           string       `json:"source"`
	GeneratedAt      time.Time    `json:"generated_at"`
	TotalPages       int          `json:"total_pages"`
	ProductsDetected int          `json:"products_detected"`
	VariantRows      int          `json:"variant_rows"`
	WarningCount     int          `json:"warning_count"`
	Warnings         []Warning    `json:"warnings"`
	Pages            []PageReport `json:"pages"`
}

// Aggregator builds a Report from page results.
type Aggregator struct {
	source string
	now    func() time.Time
	pages  []PageReport
	rows   int
}

// NewAggregator creates an aggregator for the named source document.
func NewAggregator(source string) *Aggregator {
	return &Aggregator{source: source, now: time.Now}
}

// AddPage records a page result. Pages may be added in any order.
func (a *Aggregator) AddPage(p PageReport) {
	if p.Warnings == nil {
		p.Warnings = []Warning{}
	}
	a.pages = append(a.pages, p)
}

// AddRows counts written variant rows.
func (a *Aggregator) AddRows(n int) {
	a.rows += n
}

// Report returns the aggregated report with pages in page order.
func (a *Aggregator) Report() *Report {
	pages := append([]PageReport(nil), a.pages...)
	sort.SliceStable(pages, func(i, j int) bool { return pages[i].Page < pages[j].Page })

	r := &Report{
		RunID:       uuid.NewString(),
		Source:      a.source,
		GeneratedAt: a.now().UTC(),
		TotalPages:  len(pages),
		VariantRows: a.rows,
		Warnings:    []Warning{},
		Pages:       pages,
	}
	for _, p := range pages {
		r.ProductsDetected += p.ProductsDetected
		r.Warnings = append(r.Warnings, p.Warnings...)
	}
	r.WarningCount = len(r.Warnings)
	return r
}
