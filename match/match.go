// Package match joins parsed products with extracted image slots.
package match

import "github.com/tsawler/catalogstage/model"

// Matcher assigns image slots to the product chunks of one page.
//
// Assign sets ImageFile on every chunk it matches and returns the chunks it
// could not match, unchanged. The caller decides how unmatched chunks are
// reported.
type Matcher interface {
	Assign(chunks []*model.ProductChunk, slots []model.ImageSlot) (unmatched []*model.ProductChunk)
}

// IndexMatcher matches a chunk to the slot with exactly the same column and
// order. It assumes the parse order of products and the top-to-bottom order
// of images in a column line up; there is no proximity fallback.
type IndexMatcher struct{}

// Assign implements Matcher.
func (IndexMatcher) Assign(chunks []*model.ProductChunk, slots []model.ImageSlot) []*model.ProductChunk {
	byKey := make(map[model.SlotKey]model.ImageSlot, len(slots))
	for _, s := range slots {
		byKey[s.Key()] = s
	}

	var unmatched []*model.ProductChunk
	for _, c := range chunks {
		slot, ok := byKey[c.Key()]
		if !ok {
			unmatched = append(unmatched, c)
			continue
		}
		c.ImageFile = slot.Filename
	}
	return unmatched
}

// UnusedSlots returns the slots no chunk was matched to.
func UnusedSlots(chunks []*model.ProductChunk, slots []model.ImageSlot) []model.ImageSlot {
	used := make(map[string]bool, len(chunks))
	for _, c := range chunks {
		if c.ImageFile != "" {
			used[c.ImageFile] = true
		}
	}

	var out []model.ImageSlot
	for _, s := range slots {
		if !used[s.Filename] {
			out = append(out, s)
		}
	}
	return out
}
