package parse

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/tsawler/catalogstage/layout"
	"github.com/tsawler/catalogstage/model"
)

var (
	digitRun    = regexp.MustCompile(`\b\d{6,}\b`)
	nonAlnumRun = regexp.MustCompile(`[^A-Za-z0-9]`)
)

// Minimums for a code found outside a product's own text.
const (
	minCandidateLength = 6
	minCandidateDigits = 5
)

// ExtractReference returns the reference printed inside a chunk: the last
// parenthesized group reduced to uppercase alphanumerics, else the last run
// of six or more digits, else "".
func ExtractReference(chunk string) string {
	if groups := parenGroup.FindAllStringSubmatch(chunk, -1); len(groups) > 0 {
		candidate := alnumUpper(groups[len(groups)-1][1])
		if candidate != "" {
			return candidate
		}
	}
	if runs := digitRun.FindAllString(chunk, -1); len(runs) > 0 {
		return strings.ToUpper(strings.TrimSpace(runs[len(runs)-1]))
	}
	return ""
}

// NormalizeCandidate reduces raw text to an uppercase alphanumeric code and
// returns it if it is at least six characters long with at least five
// digits. Otherwise it returns "".
func NormalizeCandidate(raw string) string {
	candidate := alnumUpper(raw)
	if len(candidate) < minCandidateLength {
		return ""
	}
	digits := 0
	for _, r := range candidate {
		if unicode.IsDigit(r) {
			digits++
		}
	}
	if digits < minCandidateDigits {
		return ""
	}
	return candidate
}

// PageCandidates returns the normalized codes of every parenthesized group
// in the page text, in page order.
func PageCandidates(pageText string) []string {
	var out []string
	for _, m := range parenGroup.FindAllStringSubmatch(pageText, -1) {
		if c := NormalizeCandidate(m[1]); c != "" {
			out = append(out, c)
		}
	}
	return out
}

// ResolvePageReferences fills in references for the chunks of one page.
//
// Chunks are grouped by (column, order) and visited left column first, then
// by ascending order. A group that already has a valid reference shares it
// with all its chunks. Any other group takes the next unused page candidate.
// Either way low confidence is promoted to medium. A candidate is used at
// most once; groups left over when candidates run out keep whatever
// reference the segmenter gave them.
//
// It returns the number of candidates consumed.
func ResolvePageReferences(chunks []*model.ProductChunk, candidates []string) int {
	if len(chunks) == 0 {
		return 0
	}

	groups := map[model.SlotKey][]*model.ProductChunk{}
	for _, c := range chunks {
		groups[c.Key()] = append(groups[c.Key()], c)
	}
	keys := make([]model.SlotKey, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Column != keys[j].Column {
			return keys[i].Column < keys[j].Column
		}
		return keys[i].Order < keys[j].Order
	})

	cursor := 0
	for _, key := range keys {
		group := groups[key]

		if existing := groupReference(group); existing != "" {
			assignReference(group, existing)
			continue
		}

		if cursor >= len(candidates) {
			// In-chunk references that fail the candidate rule are kept as
			// printed.
			continue
		}
		assignReference(group, candidates[cursor])
		cursor++
	}
	return cursor
}

// groupReference returns the first reference in the group that passes the
// candidate rule.
func groupReference(group []*model.ProductChunk) string {
	for _, c := range group {
		if c.Reference == "" {
			continue
		}
		return NormalizeCandidate(c.Reference)
	}
	return ""
}

func assignReference(group []*model.ProductChunk, ref string) {
	for _, c := range group {
		c.Reference = ref
		c.Confidence = c.Confidence.Promote()
	}
}

func alnumUpper(s string) string {
	return strings.ToUpper(nonAlnumRun.ReplaceAllString(layout.CleanSpaces(s), ""))
}
