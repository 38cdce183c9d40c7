package source

import (
	"errors"
	"fmt"
	"sort"

	"github.com/tsawler/catalogstage/model"
	"github.com/tsawler/tabula/contentstream"
	"github.com/tsawler/tabula/core"
	"github.com/tsawler/tabula/pages"
	"github.com/tsawler/tabula/reader"
	"github.com/tsawler/tabula/text"
)

// Document is an open PDF. It is not safe for concurrent use; pages must be
// read one at a time. The pages it returns are independent of the Document
// and may be processed concurrently.
type Document struct {
	r         *reader.Reader
	tolerance float64
}

// Open opens the PDF at path. Files without a PDF header are rejected
// with ErrNotPDF.
func Open(path string) (*Document, error) {
	if err := Sniff(path); err != nil {
		return nil, err
	}
	r, err := reader.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	return &Document{r: r, tolerance: DefaultTolerance}, nil
}

// Close releases the underlying file.
func (d *Document) Close() error {
	return d.r.Close()
}

// PageCount returns the number of pages in the document.
func (d *Document) PageCount() (int, error) {
	return d.r.PageCount()
}

// Page decodes the page at the 0-based index.
func (d *Document) Page(index int) (*model.Page, error) {
	p, err := d.r.GetPage(index)
	if err != nil {
		return nil, fmt.Errorf("page %d: %w", index+1, err)
	}

	box := [4]float64{0, 0, 612, 792}
	if mb, err := p.MediaBox(); err == nil && len(mb) == 4 {
		copy(box[:], mb)
	}

	data, err := d.content(p)
	if err != nil {
		return nil, fmt.Errorf("page %d: %w", index+1, err)
	}

	ops, err := contentstream.NewParser(data).Parse()
	if err != nil {
		return nil, fmt.Errorf("page %d: parse content: %w", index+1, err)
	}

	fonts := text.NewExtractor()
	// Unparseable font resources fall back to default widths.
	_ = fonts.RegisterFontsFromPage(p, d.r.ResolveReference)

	in := newInterpreter(fonts.GetFonts())
	in.run(ops)

	page := &model.Page{
		Number: index + 1,
		Width:  box[2] - box[0],
		Height: box[3] - box[1],
		Words:  groupWords(toChars(in.glyphs, box), d.tolerance),
	}
	page.Images = d.images(p, in.placements, box)
	return page, nil
}

// content returns the page's content streams decoded and concatenated.
func (d *Document) content(p *pages.Page) ([]byte, error) {
	contents, err := p.Contents()
	if err != nil {
		return nil, err
	}
	var data []byte
	for _, obj := range contents {
		stream, ok := obj.(*core.Stream)
		if !ok {
			continue
		}
		b, err := stream.Decode()
		if err != nil {
			return nil, fmt.Errorf("decode content stream: %w", err)
		}
		data = append(data, b...)
		data = append(data, '\n')
	}
	return data, nil
}

// images pairs every image XObject drawn on the page with its samples.
// Images that could not be extracted are kept with a source that reports
// the failure on decode.
func (d *Document) images(p *pages.Page, placed []placement, box [4]float64) []model.Image {
	declared := d.imageXObjects(p)
	if len(declared) == 0 {
		return nil
	}

	extracted := map[string]reader.PageImage{}
	// A failure here leaves every declared image unextracted.
	imgs, extractErr := d.r.ExtractPageImages(p)
	for _, img := range imgs {
		extracted[img.Name] = img
	}

	var out []model.Image
	for _, pl := range placed {
		dims, ok := declared[pl.name]
		if !ok {
			continue
		}
		img := model.Image{
			Name:        pl.name,
			X0:          pl.x0 - box[0],
			Top:         box[3] - pl.y1,
			PixelWidth:  dims[0],
			PixelHeight: dims[1],
		}
		if pi, ok := extracted[pl.name]; ok {
			img.Source = newPDFImage(pi)
		} else {
			err := extractErr
			if err == nil {
				err = errors.New("image stream could not be extracted")
			}
			img.Source = failedImage{err: fmt.Errorf("image %s: %w", pl.name, err)}
		}
		out = append(out, img)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Top != out[j].Top {
			return out[i].Top < out[j].Top
		}
		return out[i].X0 < out[j].X0
	})
	return out
}

// imageXObjects returns the declared sample dimensions of each image
// XObject in the page resources, keyed by resource name.
func (d *Document) imageXObjects(p *pages.Page) map[string][2]int {
	resources, err := p.Resources()
	if err != nil || resources == nil {
		return nil
	}
	obj := resources.Get("XObject")
	if obj == nil {
		return nil
	}
	resolved, err := d.r.Resolve(obj)
	if err != nil {
		return nil
	}
	xobjects, ok := resolved.(core.Dict)
	if !ok {
		return nil
	}

	out := map[string][2]int{}
	for name, ref := range xobjects {
		resolved, err := d.r.Resolve(ref)
		if err != nil {
			continue
		}
		stream, ok := resolved.(*core.Stream)
		if !ok {
			continue
		}
		if sub, ok := stream.Dict.GetName("Subtype"); !ok || string(sub) != "Image" {
			continue
		}
		w, _ := stream.Dict.GetInt("Width")
		h, _ := stream.Dict.GetInt("Height")
		out[name] = [2]int{int(w), int(h)}
	}
	return out
}
