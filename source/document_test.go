package source

import (
	"strings"
	"testing"

	"github.com/tsawler/catalogstage/internal/pdftest"
	"github.com/tsawler/catalogstage/model"
)

func openCatalog(t *testing.T) *Document {
	t.Helper()
	doc, err := Open(pdftest.Write(t, pdftest.Catalog()))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { doc.Close() })
	return doc
}

func TestDocumentPageWords(t *testing.T) {
	doc := openCatalog(t)

	n, err := doc.PageCount()
	if err != nil || n != 1 {
		t.Fatalf("page count = %d, %v", n, err)
	}

	page, err := doc.Page(0)
	if err != nil {
		t.Fatalf("page: %v", err)
	}
	if page.Number != 1 || page.Width != 612 || page.Height != 792 {
		t.Errorf("unexpected page geometry %+v", page)
	}

	var upright []string
	var rotated []model.Word
	for _, w := range page.Words {
		if w.Upright {
			upright = append(upright, w.Text)
		} else {
			rotated = append(rotated, w)
		}
	}

	want := "Blusa Rosa Tallas: S, M $25.00 Camisa Lino Tallas: M $19.99 Falda Azul Tallas: 28, 30 $30.00"
	if got := strings.Join(upright, " "); got != want {
		t.Errorf("upright words:\n got %q\nwant %q", got, want)
	}

	if len(rotated) != 1 {
		t.Fatalf("expected 1 rotated word, got %+v", rotated)
	}
	// Set bottom to top, read top down.
	if rotated[0].Text != "RUPAT" {
		t.Errorf("rotated word %q, want %q", rotated[0].Text, "RUPAT")
	}

	first := page.Words[0]
	// Baseline at y=700 on a 792pt page; glyph boxes are one em tall.
	if first.Text != "Blusa" || first.X0 != 40 || first.Top != 82 {
		t.Errorf("unexpected first word %+v", first)
	}
}

func TestDocumentPageImages(t *testing.T) {
	doc := openCatalog(t)

	page, err := doc.Page(0)
	if err != nil {
		t.Fatalf("page: %v", err)
	}
	if len(page.Images) != 3 {
		t.Fatalf("expected 3 placed images, got %d", len(page.Images))
	}

	want := []struct {
		name    string
		x0, top float64
		decodes bool
	}{
		{"Im1", 40, 212, true},
		{"Im3", 320, 212, true},
		{"Im2", 40, 332, false},
	}
	for i, w := range want {
		img := page.Images[i]
		if img.Name != w.name || img.X0 != w.x0 || img.Top != w.top {
			t.Errorf("image %d: got %s at (%g, %g), want %s at (%g, %g)",
				i, img.Name, img.X0, img.Top, w.name, w.x0, w.top)
		}
		if img.PixelWidth != 2 || img.PixelHeight != 2 {
			t.Errorf("image %d: declared size %dx%d", i, img.PixelWidth, img.PixelHeight)
		}
		if img.Source == nil {
			t.Fatalf("image %d: no source", i)
		}

		bitmap, err := img.Source.Decode()
		if w.decodes {
			if err != nil {
				t.Errorf("image %d: decode: %v", i, err)
				continue
			}
			if b := bitmap.Bounds(); b.Dx() != 2 || b.Dy() != 2 {
				t.Errorf("image %d: decoded %v", i, b)
			}
			if img.Source.Ext() != "png" {
				t.Errorf("image %d: ext %q", i, img.Source.Ext())
			}
		} else {
			if err == nil {
				t.Errorf("image %d: expected decode failure", i)
			} else if !strings.Contains(err.Error(), "Im2") {
				t.Errorf("image %d: error should name the image: %v", i, err)
			}
		}
	}
}
