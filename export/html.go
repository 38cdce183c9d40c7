package export

import (
	"fmt"
	"io"
	"path"
	"strconv"
	"strings"

	"github.com/tsawler/catalogstage/model"
	"github.com/tsawler/catalogstage/report"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const reviewStyle = `body{font-family:sans-serif;margin:1.5em}
table{border-collapse:collapse}
td,th{border:1px solid #ccc;padding:4px 8px;vertical-align:top}
tr.low{background:#fff4e5}
.warnings li{color:#8a4b00}`

// HTMLConfig controls the review page.
type HTMLConfig struct {
	Title string

	// ImageDir is the path of the image directory relative to the page.
	ImageDir string

	// Thumbnails links ThumbnailName files instead of the full images.
	Thumbnails bool
}

// DefaultHTMLConfig returns a config for a page written next to images/.
func DefaultHTMLConfig() HTMLConfig {
	return HTMLConfig{Title: "Catalog staging review", ImageDir: "images", Thumbnails: true}
}

// WriteReviewHTML renders a review table of chunks followed by the run
// warnings.
func WriteReviewHTML(chunks []*model.ProductChunk, rep *report.Report, w io.Writer, config HTMLConfig) error {
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	root := element(atom.Html)
	doc.AppendChild(root)

	head := element(atom.Head)
	root.AppendChild(head)
	head.AppendChild(element(atom.Meta, "charset", "utf-8"))
	head.AppendChild(withText(element(atom.Title), config.Title))
	head.AppendChild(withText(element(atom.Style), reviewStyle))

	body := element(atom.Body)
	root.AppendChild(body)
	body.AppendChild(withText(element(atom.H1), config.Title))
	if rep != nil {
		summary := fmt.Sprintf("%s: %d pages, %d products, %d rows, %d warnings",
			rep.Source, rep.TotalPages, rep.ProductsDetected, rep.VariantRows, rep.WarningCount)
		body.AppendChild(withText(element(atom.P), summary))
	}

	table := element(atom.Table)
	body.AppendChild(table)
	header := element(atom.Tr)
	table.AppendChild(header)
	for _, h := range []string{"Page", "Column", "Order", "Category", "Name", "Sizes", "Price", "Reference", "Confidence", "Image"} {
		header.AppendChild(withText(element(atom.Th), h))
	}

	for _, c := range chunks {
		tr := element(atom.Tr, "class", string(c.Confidence))
		table.AppendChild(tr)
		for _, v := range []string{
			strconv.Itoa(c.Page),
			c.Column.String(),
			strconv.Itoa(c.Order),
			c.Category,
			c.Name,
			strings.Join(c.Sizes, ", "),
			c.Price.StringFixed(2),
			c.Reference,
			string(c.Confidence),
		} {
			tr.AppendChild(withText(element(atom.Td), v))
		}
		tr.AppendChild(imageCell(c, config))
	}

	if rep != nil && len(rep.Warnings) > 0 {
		body.AppendChild(withText(element(atom.H2), "Warnings"))
		ul := element(atom.Ul, "class", "warnings")
		body.AppendChild(ul)
		for _, warn := range rep.Warnings {
			ul.AppendChild(withText(element(atom.Li), warn.String()))
		}
	}

	if err := html.Render(w, doc); err != nil {
		return fmt.Errorf("rendering review page: %w", err)
	}
	return nil
}

func imageCell(c *model.ProductChunk, config HTMLConfig) *html.Node {
	td := element(atom.Td)
	if c.ImageFile == "" {
		return withText(td, "missing: "+c.ImageHint)
	}
	full := path.Join(config.ImageDir, c.ImageFile)
	src := full
	if config.Thumbnails {
		src = path.Join(config.ImageDir, ThumbnailName(c.ImageFile))
	}
	a := element(atom.A, "href", full)
	a.AppendChild(element(atom.Img, "src", src, "alt", c.ImageFile))
	td.AppendChild(a)
	return td
}

// element creates an element node with attributes given as key, value
// pairs.
func element(a atom.Atom, attrs ...string) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
	for i := 0; i+1 < len(attrs); i += 2 {
		n.Attr = append(n.Attr, html.Attribute{Key: attrs[i], Val: attrs[i+1]})
	}
	return n
}

func withText(n *html.Node, text string) *html.Node {
	n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	return n
}
