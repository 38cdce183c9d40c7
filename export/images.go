package export

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/tsawler/catalogstage/model"
	"golang.org/x/image/draw"
)

// ThumbnailSize bounds the longer edge of review thumbnails, in pixels.
const ThumbnailSize = 160

// WriteImages saves every slot's image under dir using the slot filename
// and returns the written paths.
func WriteImages(slots []model.ImageSlot, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating image directory: %w", err)
	}

	paths := make([]string, 0, len(slots))
	for _, s := range slots {
		data, err := s.Image.Source.Encoded()
		if err != nil {
			return paths, fmt.Errorf("encoding %s: %w", s.Filename, err)
		}
		path := filepath.Join(dir, s.Filename)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return paths, fmt.Errorf("writing %s: %w", s.Filename, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// ThumbnailName is the file a slot's thumbnail is written to.
func ThumbnailName(filename string) string {
	return strings.TrimSuffix(filename, filepath.Ext(filename)) + ".thumb.png"
}

// WriteThumbnails saves a PNG thumbnail of each slot under dir, named by
// ThumbnailName.
func WriteThumbnails(slots []model.ImageSlot, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating thumbnail directory: %w", err)
	}
	for _, s := range slots {
		src, err := s.Image.Source.Decode()
		if err != nil {
			return fmt.Errorf("decoding %s: %w", s.Filename, err)
		}
		f, err := os.Create(filepath.Join(dir, ThumbnailName(s.Filename)))
		if err != nil {
			return fmt.Errorf("creating thumbnail: %w", err)
		}
		err = png.Encode(f, Thumbnail(src, ThumbnailSize))
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return fmt.Errorf("writing thumbnail for %s: %w", s.Filename, err)
		}
	}
	return nil
}

// Thumbnail scales img so its longer edge is at most size pixels, keeping
// the aspect ratio. Smaller images are copied unscaled.
func Thumbnail(img image.Image, size int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w > size || h > size {
		if w >= h {
			h = h * size / w
			w = size
		} else {
			w = w * size / h
			h = size
		}
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
