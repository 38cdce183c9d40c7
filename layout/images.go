package layout

import (
	"errors"
	"sort"

	"github.com/tsawler/catalogstage/model"
)

// ErrNoImageData is recorded for a placed image with no pixel source.
var ErrNoImageData = errors.New("image has no data")

// ImageFailure records an image that could not be decoded.
type ImageFailure struct {
	Image model.Image
	Err   error
}

// SortImages assigns image slots for one page.
//
// Images without a source or that fail to decode are returned as failures and never get a slot.
// The rest are ordered by (top, x0), bucketed into columns by the same
// midpoint rule used for text, re-sorted within each column and numbered
// from 1. Slot filenames are the expected image hint plus the image's
// extension.
func SortImages(page int, images []model.Image, pageWidth float64) ([]model.ImageSlot, []ImageFailure) {
	type decoded struct {
		img           model.Image
		width, height int
	}

	var ok []decoded
	var failures []ImageFailure
	for _, img := range images {
		if img.Source == nil {
			failures = append(failures, ImageFailure{Image: img, Err: ErrNoImageData})
			continue
		}
		bitmap, err := img.Source.Decode()
		if err != nil {
			failures = append(failures, ImageFailure{Image: img, Err: err})
			continue
		}
		b := bitmap.Bounds()
		ok = append(ok, decoded{img: img, width: b.Dx(), height: b.Dy()})
	}

	byPosition := func(list []decoded) {
		sort.SliceStable(list, func(i, j int) bool {
			if list[i].img.Top != list[j].img.Top {
				return list[i].img.Top < list[j].img.Top
			}
			return list[i].img.X0 < list[j].img.X0
		})
	}
	byPosition(ok)

	buckets := map[model.Column][]decoded{}
	for _, d := range ok {
		col := ColumnOf(d.img.X0, pageWidth)
		buckets[col] = append(buckets[col], d)
	}

	var slots []model.ImageSlot
	for _, col := range model.Columns {
		list := buckets[col]
		byPosition(list)
		for i, d := range list {
			order := i + 1
			slots = append(slots, model.ImageSlot{
				Page:     page,
				Column:   col,
				Order:    order,
				Filename: model.ImageHint(page, col, order) + "." + d.img.Source.Ext(),
				Width:    d.width,
				Height:   d.height,
				Image:    d.img,
			})
		}
	}
	return slots, failures
}
