package catalogstage

import (
	"github.com/tsawler/catalogstage/match"
	"github.com/tsawler/catalogstage/sku"
	"go.uber.org/zap"
)

// StageOptions holds configuration for a staging run.
type StageOptions struct {
	// Page selection (1-indexed, nil means all pages)
	pages []int

	// Parsing
	strict  bool
	matcher match.Matcher

	// SKU generation
	brand  string
	prefix string

	// Processing
	workers int
	logger  *zap.Logger
}

// defaultOptions returns the default staging options.
func defaultOptions() StageOptions {
	return StageOptions{
		matcher: match.IndexMatcher{},
		prefix:  sku.DefaultPrefix,
		workers: 1,
		logger:  zap.NewNop(),
	}
}

// clone creates a deep copy of StageOptions.
func (o StageOptions) clone() StageOptions {
	n := o
	if o.pages != nil {
		n.pages = make([]int, len(o.pages))
		copy(n.pages, o.pages)
	}
	return n
}
