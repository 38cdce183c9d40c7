package source

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"sync"

	"github.com/tsawler/tabula/reader"
)

// ErrUnsupportedImage is returned for image encodings that cannot be
// decoded to a bitmap.
var ErrUnsupportedImage = errors.New("unsupported image encoding")

// pdfImage adapts an extracted image XObject to model.ImageSource. Decoding
// happens at most once.
type pdfImage struct {
	img reader.PageImage

	once    sync.Once
	decoded image.Image
	encoded []byte
	err     error
}

func newPDFImage(img reader.PageImage) *pdfImage {
	return &pdfImage{img: img}
}

func (p *pdfImage) isJPEG() bool {
	return p.img.Filter == "DCTDecode"
}

// Decode returns the bitmap. Decoded dimensions must match the declared
// ones to within a pixel.
func (p *pdfImage) Decode() (image.Image, error) {
	p.once.Do(p.decode)
	return p.decoded, p.err
}

// Encoded returns the raw JPEG stream for DCT images and PNG bytes otherwise.
func (p *pdfImage) Encoded() ([]byte, error) {
	p.once.Do(p.decode)
	return p.encoded, p.err
}

// Ext is "jpg" for DCT images and "png" otherwise.
func (p *pdfImage) Ext() string {
	if p.isJPEG() {
		return "jpg"
	}
	return "png"
}

func (p *pdfImage) decode() {
	var (
		img image.Image
		err error
	)
	switch p.img.Filter {
	case "DCTDecode":
		img, err = jpeg.Decode(bytes.NewReader(p.img.Data))
		p.encoded = p.img.Data
	case "JPXDecode", "JBIG2Decode":
		err = fmt.Errorf("%s: %w", p.img.Filter, ErrUnsupportedImage)
	default:
		p.encoded, err = p.img.ToPNG()
		if err == nil {
			img, err = png.Decode(bytes.NewReader(p.encoded))
		}
	}
	if err != nil {
		p.encoded = nil
		p.err = fmt.Errorf("decode image %s: %w", p.img.Name, err)
		return
	}

	b := img.Bounds()
	if absInt(b.Dx()-p.img.Width) > 1 || absInt(b.Dy()-p.img.Height) > 1 {
		p.encoded = nil
		p.err = fmt.Errorf("decode image %s: got %dx%d, declared %dx%d",
			p.img.Name, b.Dx(), b.Dy(), p.img.Width, p.img.Height)
		return
	}
	p.decoded = img
}

// failedImage stands in for an image XObject that could not be extracted.
type failedImage struct {
	err error
}

func (f failedImage) Decode() (image.Image, error) { return nil, f.err }
func (f failedImage) Encoded() ([]byte, error)    { return nil, f.err }
func (f failedImage) Ext() string                 { return "png" }

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
