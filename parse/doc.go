// Package parse segments catalog column text into product chunks and
// resolves their reference codes.
//
// # Segmentation
//
// Column text is split at anchor matches. The primary anchor pairs a size
// list with a price in either order ("Tallas: S, M $25.00" or
// "$25.00 Tallas: S, M"). When a column has no primary anchor at all, a
// price-only anchor is used instead and every product gets the one-size
// token and low confidence.
//
//	seg := parse.NewSegmenter()
//	chunks, warnings := seg.Segment(text, page, model.Left, category)
//
// # References
//
// A chunk's reference is taken from its last parenthesized group, or its
// last run of six or more digits. Chunks without one borrow codes found
// anywhere on the page (see [ResolvePageReferences]).
package parse
