package model

import "image"

// Word is a positioned word on a page.
type Word struct {
	Text string

	// X0 is the left edge of the word's bounding box, from the left of the page.
	X0 float64

	// Top is the top edge of the word's bounding box, from the top of the page.
	Top float64

	// Height is the vertical extent of the bounding box. For rotated words this
	// is the printed length of the word.
	Height float64

	// Upright is false for rotated or sheared text.
	Upright bool
}

// ImageSource gives access to the pixels of an embedded image.
type ImageSource interface {
	// Decode returns the decoded bitmap, or an error if the stream cannot be
	// decoded.
	Decode() (image.Image, error)

	// Encoded returns the bytes to write when the image is saved.
	Encoded() ([]byte, error)

	// Ext is the file extension, without dot, matching Encoded.
	Ext() string
}

// Image is an image placed on a page.
type Image struct {
	Name string

	// X0 and Top locate the upper-left corner of the placed image.
	X0  float64
	Top float64

	// PixelWidth and PixelHeight are the declared sample dimensions.
	PixelWidth  int
	PixelHeight int

	Source ImageSource
}

// Page is one decoded page of the input document.
type Page struct {
	// Number is 1-based.
	Number int
	Width  float64
	Height float64
	Words  []Word
	Images []Image
}

// Text returns the words of the page joined by single spaces, in the order
// the document produced them.
func (p *Page) Text() string {
	n := 0
	for _, w := range p.Words {
		n += len(w.Text) + 1
	}
	buf := make([]byte, 0, n)
	for i, w := range p.Words {
		if i > 0 {
			buf = append(buf, ' ')
		}
		buf = append(buf, w.Text...)
	}
	return string(buf)
}
