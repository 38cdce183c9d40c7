// Package pdftest builds small single-page PDF files for tests.
package pdftest

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"
)

// Image is an image XObject in the page resources.
type Image struct {
	Name          string
	Width, Height int

	// Filter is written as the stream's /Filter when not empty.
	Filter string
	Data   []byte
}

// Page describes the single page of a generated document. Text is drawn
// with the font resource /F1 (Helvetica).
type Page struct {
	Width, Height float64
	Content       string
	Images        []Image
}

// Build returns a complete PDF file with a valid cross-reference table.
func Build(p Page) []byte {
	var objects []string

	images := append([]Image(nil), p.Images...)
	sort.SliceStable(images, func(i, j int) bool { return images[i].Name < images[j].Name })

	// 1 catalog, 2 page tree, 3 page, 4 content, 5 font, 6.. images
	var xobjects bytes.Buffer
	for i, img := range images {
		fmt.Fprintf(&xobjects, " /%s %d 0 R", img.Name, 6+i)
	}

	objects = append(objects,
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 %g %g] /Contents 4 0 R "+
			"/Resources << /Font << /F1 5 0 R >> /XObject <<%s >> >> >>",
			p.Width, p.Height, xobjects.String()),
		stream("", []byte(p.Content)),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>",
	)
	for _, img := range images {
		dict := fmt.Sprintf("/Type /XObject /Subtype /Image /Width %d /Height %d "+
			"/ColorSpace /DeviceGray /BitsPerComponent 8", img.Width, img.Height)
		if img.Filter != "" {
			dict += " /Filter /" + img.Filter
		}
		objects = append(objects, stream(dict, img.Data))
	}

	var out bytes.Buffer
	out.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = out.Len()
		fmt.Fprintf(&out, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := out.Len()
	fmt.Fprintf(&out, "xref\n0 %d\n0000000000 65535 f \n", len(objects)+1)
	for _, off := range offsets {
		fmt.Fprintf(&out, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&out, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return out.Bytes()
}

func stream(dict string, data []byte) string {
	if dict != "" {
		dict += " "
	}
	return fmt.Sprintf("<< %s/Length %d >>\nstream\n%s\nendstream", dict, len(data), data)
}

// Write builds the page into a file under t.TempDir and returns its path.
func Write(t testing.TB, p Page) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.pdf")
	if err := os.WriteFile(path, Build(p), 0o644); err != nil {
		t.Fatalf("write pdf: %v", err)
	}
	return path
}

// Catalog is a two-column catalog page:
//
//   - left column: "Blusa Rosa" (sizes S, M) and "Falda Azul" (28, 30)
//   - right column: "Camisa Lino" (M)
//   - a rotated "TAPUR" label along the left edge, set bottom to top
//   - Im1 above the first left product and Im3 above the right product,
//     both 2x2 gray images
//   - Im2 above the second left product, whose stream does not decode
func Catalog() Page {
	good := Image{Width: 2, Height: 2, Data: []byte{0x00, 0x40, 0x80, 0xff}}
	im1, im3 := good, good
	im1.Name, im3.Name = "Im1", "Im3"

	content := `BT /F1 10 Tf 1 0 0 1 40 700 Tm (Blusa Rosa Tallas: S, M $25.00) Tj ET
BT /F1 10 Tf 1 0 0 1 40 660 Tm (Falda Azul Tallas: 28, 30 $30.00) Tj ET
BT /F1 10 Tf 1 0 0 1 320 700 Tm (Camisa Lino Tallas: M $19.99) Tj ET
BT /F1 24 Tf 0 1 -1 0 30 300 Tm (TAPUR) Tj ET
q 100 0 0 80 40 500 cm /Im1 Do Q
q 100 0 0 80 40 380 cm /Im2 Do Q
q 100 0 0 80 320 500 cm /Im3 Do Q
`
	return Page{
		Width:   612,
		Height:  792,
		Content: content,
		Images: []Image{
			im1,
			{Name: "Im2", Width: 2, Height: 2, Filter: "FlateDecode", Data: []byte("not a zlib stream")},
			im3,
		},
	}
}
