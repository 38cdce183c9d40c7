package catalogstage

import (
	"context"
	"errors"
	"fmt"
	"image"
	"strings"
	"testing"

	"github.com/tsawler/catalogstage/internal/pdftest"
	"github.com/tsawler/catalogstage/model"
	"github.com/tsawler/catalogstage/report"
)

const pageWidth = 612.0

type fakeSource struct{ err error }

func (f fakeSource) Decode() (image.Image, error) {
	if f.err != nil {
		return nil, f.err
	}
	return image.NewRGBA(image.Rect(0, 0, 4, 3)), nil
}
func (f fakeSource) Encoded() ([]byte, error) { return []byte("img"), f.err }
func (f fakeSource) Ext() string              { return "png" }

// fakePages serves prebuilt pages. A nil entry fails to read.
type fakePages []*model.Page

func (f fakePages) PageCount() (int, error) { return len(f), nil }

func (f fakePages) Page(index int) (*model.Page, error) {
	if f[index] == nil {
		return nil, fmt.Errorf("broken page object")
	}
	return f[index], nil
}

// lines places each string as one line of upright words starting at x0.
func lines(x0 float64, texts ...string) []model.Word {
	var words []model.Word
	for i, text := range texts {
		for j, w := range strings.Fields(text) {
			words = append(words, model.Word{
				Text:    w,
				X0:      x0 + float64(j)*20,
				Top:     100 + float64(i)*40,
				Height:  10,
				Upright: true,
			})
		}
	}
	return words
}

func marker(text string) model.Word {
	return model.Word{Text: text, X0: 5, Top: 300, Height: 80}
}

func placedImage(name string, x0, top float64) model.Image {
	return model.Image{Name: name, X0: x0, Top: top, PixelWidth: 4, PixelHeight: 3, Source: fakeSource{}}
}

func catalogPage(n int, left, right []string, images ...model.Image) *model.Page {
	words := append(lines(40, left...), lines(320, right...)...)
	words = append(words, marker("TAPUR"))
	return &model.Page{Number: n, Width: pageWidth, Height: 792, Words: words, Images: images}
}

func TestOpenMissingFile(t *testing.T) {
	_, _, err := Open("nonexistent.pdf").Stage()
	if !errors.Is(err, ErrInputNotFound) {
		t.Fatalf("expected ErrInputNotFound, got %v", err)
	}
	if err.Error() != "input PDF does not exist: nonexistent.pdf" {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestStageMissingImage(t *testing.T) {
	page := catalogPage(1,
		[]string{"Blusa Rosa Tallas: S, M $25.00", "Falda Azul Tallas: 28, 30 $30.00"},
		[]string{"Camisa Lino Tallas: M $19.99", "Vestido Corto (AB123456) Tallas: S $45.00"},
		placedImage("Im1", 50, 90),
		placedImage("Im2", 50, 130),
		placedImage("Im3", 330, 90),
	)

	result, warnings, err := FromPages(fakePages{page}).Stage()
	if err != nil {
		t.Fatalf("stage: %v", err)
	}

	chunks := result.Chunks()
	if len(chunks) != 4 {
		t.Fatalf("expected 4 chunks, got %d", len(chunks))
	}

	wantFiles := []string{"IMG-P001-CL-O01.png", "IMG-P001-CL-O02.png", "IMG-P001-CR-O01.png", ""}
	for i, want := range wantFiles {
		if chunks[i].ImageFile != want {
			t.Errorf("chunk %d: image %q, want %q", i, chunks[i].ImageFile, want)
		}
	}

	missing := chunks[3]
	if missing.Column != model.Right || missing.Order != 2 {
		t.Fatalf("unexpected last chunk %+v", missing)
	}
	if missing.Confidence != model.Low {
		t.Errorf("expected low confidence, got %s", missing.Confidence)
	}
	if missing.Reference != "AB123456" {
		t.Errorf("expected reference to survive, got %q", missing.Reference)
	}

	// The page-level pool hands the same code to the first group without one.
	if chunks[0].Reference != "AB123456" || chunks[0].Confidence != model.Medium {
		t.Errorf("expected back-filled reference, got %q %s", chunks[0].Reference, chunks[0].Confidence)
	}

	if len(warnings) != 1 {
		t.Fatalf("expected 1 warning, got %d: %v", len(warnings), warnings)
	}
	w := warnings[0]
	if w.Code != report.CodeMissingImage || w.Column != "right" || w.Order != 2 {
		t.Errorf("unexpected warning %+v", w)
	}
	if result.Report.Pages[0].ImagesExtracted != 3 {
		t.Errorf("expected 3 images, got %d", result.Report.Pages[0].ImagesExtracted)
	}
}

func TestStageSKUs(t *testing.T) {
	page := catalogPage(1, []string{"Blusa Rosa Tallas: S, M $25.00"}, []string{"Camisa Lino Tallas: M $19.99"},
		placedImage("Im1", 50, 90), placedImage("Im2", 330, 90))

	result, _, err := FromPages(fakePages{page}).Brand("Artos").Stage()
	if err != nil {
		t.Fatalf("stage: %v", err)
	}

	want := []string{"CAT-RUPA-ARTO-0001-S", "CAT-RUPA-ARTO-0001-M", "CAT-RUPA-ARTO-0002-M"}
	if len(result.Records) != len(want) {
		t.Fatalf("expected %d records, got %d", len(want), len(result.Records))
	}
	for i, sku := range want {
		if result.Records[i].SKU != sku {
			t.Errorf("record %d: sku %q, want %q", i, result.Records[i].SKU, sku)
		}
	}
	if result.Records[0].Chunk.Category != "Rupat" {
		t.Errorf("unexpected category %q", result.Records[0].Chunk.Category)
	}
	if result.Report.VariantRows != 3 || result.Report.ProductsDetected != 2 {
		t.Errorf("unexpected totals %+v", result.Report)
	}
}

func TestStageParallelMatchesSequential(t *testing.T) {
	var pages fakePages
	for n := 1; n <= 8; n++ {
		pages = append(pages, catalogPage(n,
			[]string{
				fmt.Sprintf("Blusa %d Tallas: S, M $25.00", n),
				fmt.Sprintf("Falda %d Tallas: 28 $30.00", n),
			},
			[]string{fmt.Sprintf("Camisa %d $19.99", n)},
			placedImage("Im1", 50, 90),
		))
	}

	seq, seqWarnings, err := FromPages(pages).Stage()
	if err != nil {
		t.Fatalf("sequential: %v", err)
	}
	par, parWarnings, err := FromPages(pages).Workers(4).Stage()
	if err != nil {
		t.Fatalf("parallel: %v", err)
	}

	if len(seq.Records) != len(par.Records) {
		t.Fatalf("record count differs: %d vs %d", len(seq.Records), len(par.Records))
	}
	for i := range seq.Records {
		s, p := seq.Records[i], par.Records[i]
		if s.SKU != p.SKU || s.Chunk.Name != p.Chunk.Name || s.Chunk.Page != p.Chunk.Page {
			t.Errorf("record %d differs: %s %q vs %s %q", i, s.SKU, s.Chunk.Name, p.SKU, p.Chunk.Name)
		}
	}
	if report.FormatWarnings(seqWarnings) != report.FormatWarnings(parWarnings) {
		t.Error("warnings differ between sequential and parallel runs")
	}
}

func TestStagePageReadFailure(t *testing.T) {
	pages := fakePages{
		nil,
		catalogPage(2, []string{"Blusa Rosa Tallas: S $25.00"}, nil, placedImage("Im1", 50, 90)),
	}

	result, warnings, err := FromPages(pages).Stage()
	if err != nil {
		t.Fatalf("stage: %v", err)
	}
	if len(result.Pages) != 2 {
		t.Fatalf("expected 2 page results, got %d", len(result.Pages))
	}
	if len(warnings) != 1 || warnings[0].Code != report.CodePageRead || warnings[0].Page != 1 {
		t.Errorf("unexpected warnings %v", warnings)
	}
	if len(result.Records) != 1 {
		t.Errorf("expected 1 record, got %d", len(result.Records))
	}
}

func TestStagePDF(t *testing.T) {
	result, warnings, err := Open(pdftest.Write(t, pdftest.Catalog())).Stage()
	if err != nil {
		t.Fatalf("stage: %v", err)
	}

	chunks := result.Chunks()
	want := []struct {
		name  string
		col   model.Column
		order int
		image string
	}{
		{"Blusa Rosa", model.Left, 1, "IMG-P001-CL-O01.png"},
		{"Falda Azul", model.Left, 2, ""},
		{"Camisa Lino", model.Right, 1, "IMG-P001-CR-O01.png"},
	}
	if len(chunks) != len(want) {
		t.Fatalf("expected %d chunks, got %d: %+v", len(want), len(chunks), chunks)
	}
	for i, w := range want {
		c := chunks[i]
		if c.Name != w.name || c.Column != w.col || c.Order != w.order || c.ImageFile != w.image {
			t.Errorf("chunk %d: got %q %s #%d %q, want %q %s #%d %q",
				i, c.Name, c.Column, c.Order, c.ImageFile, w.name, w.col, w.order, w.image)
		}
		if c.Category != "Tapur" {
			t.Errorf("chunk %d: category %q", i, c.Category)
		}
	}
	if chunks[1].Confidence != model.Low {
		t.Errorf("chunk without image must be low, got %s", chunks[1].Confidence)
	}

	codes := map[report.Code]int{}
	for _, w := range warnings {
		codes[w.Code]++
	}
	if codes[report.CodeImageDecode] != 1 || codes[report.CodeMissingImage] != 1 {
		t.Errorf("unexpected warnings %v", warnings)
	}

	if len(result.Slots()) != 2 {
		t.Errorf("expected 2 image slots, got %d", len(result.Slots()))
	}

	skus := []string{"CAT-TAPU-0001-S", "CAT-TAPU-0001-M", "CAT-TAPU-0002-28", "CAT-TAPU-0002-30", "CAT-TAPU-0003-M"}
	if len(result.Records) != len(skus) {
		t.Fatalf("expected %d records, got %d", len(skus), len(result.Records))
	}
	for i, sku := range skus {
		if result.Records[i].SKU != sku {
			t.Errorf("record %d: sku %q, want %q", i, result.Records[i].SKU, sku)
		}
	}
}

func TestStageStrict(t *testing.T) {
	page := catalogPage(1, []string{"Camisa basica $19.99"}, nil)

	result, warnings, err := FromPages(fakePages{page}).Strict().Stage()
	if err != nil {
		t.Fatalf("stage: %v", err)
	}
	if len(result.Records) != 0 {
		t.Errorf("expected no records, got %d", len(result.Records))
	}
	if len(warnings) != 1 || warnings[0].Code != report.CodeNoAnchor {
		t.Errorf("unexpected warnings %v", warnings)
	}
}

func TestPageSelection(t *testing.T) {
	pages := fakePages{
		catalogPage(1, []string{"Blusa Tallas: S $1.00"}, nil, placedImage("Im1", 50, 90)),
		catalogPage(2, []string{"Falda Tallas: S $2.00"}, nil, placedImage("Im1", 50, 90)),
		catalogPage(3, []string{"Camisa Tallas: S $3.00"}, nil, placedImage("Im1", 50, 90)),
	}

	result, _, err := FromPages(pages).Pages(3, 1, 3).Stage()
	if err != nil {
		t.Fatalf("stage: %v", err)
	}
	if len(result.Pages) != 2 || result.Pages[0].Page != 1 || result.Pages[1].Page != 3 {
		t.Errorf("unexpected pages %+v", result.Pages)
	}

	if _, _, err := FromPages(pages).Pages(4).Stage(); err == nil {
		t.Error("expected out of range error")
	}
	if _, _, err := FromPages(pages).PageRange(3, 2).Stage(); err == nil {
		t.Error("expected invalid range error")
	}
}

func TestExtractorImmutable(t *testing.T) {
	base := FromPages(fakePages{})
	derived := base.Pages(1).Brand("Artos").Strict()

	if len(base.options.pages) != 0 || base.options.brand != "" || base.options.strict {
		t.Error("configuration leaked into the base extractor")
	}
	if len(derived.options.pages) != 1 || derived.options.brand != "Artos" || !derived.options.strict {
		t.Error("derived extractor lost configuration")
	}
}

func TestStageContextCanceled(t *testing.T) {
	pages := fakePages{catalogPage(1, []string{"Blusa Tallas: S $1.00"}, nil)}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, _, err := FromPages(pages).StageContext(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
