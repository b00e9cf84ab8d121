package scraper

import (
	"strings"
	"unicode/utf8"
)

// Selection is the region chosen as the page's main content.
type Selection struct {
	Node Node
	// Selector is the candidate that matched, or BodySelector on fallback.
	Selector string
	Fallback bool
}

// ContentSelector picks the main content region of a sanitized document.
type ContentSelector struct {
	candidates []string
	threshold  int
}

// NewContentSelector creates a selector using ContentSelectors in priority
// order. A negative threshold is treated as DefaultContentThreshold.
func NewContentSelector(threshold int) *ContentSelector {
	if threshold < 0 {
		threshold = DefaultContentThreshold
	}
	return &ContentSelector{
		candidates: ContentSelectors,
		threshold:  threshold,
	}
}

// Threshold returns the minimum content length in characters.
func (c *ContentSelector) Threshold() int {
	return c.threshold
}

// Select returns the first match of the highest-priority candidate whose
// trimmed text is longer than the threshold. A text exactly as long as the
// threshold is rejected. If no candidate qualifies, the body is returned.
func (c *ContentSelector) Select(tree Tree) Selection {
	for _, selector := range c.candidates {
		nodes := tree.Query(selector)
		if len(nodes) == 0 {
			continue
		}
		if TextLength(nodes[0].Text()) > c.threshold {
			return Selection{Node: nodes[0], Selector: selector}
		}
	}

	return Selection{Node: tree.Body(), Selector: BodySelector, Fallback: true}
}

// TextLength counts the characters of s after trimming surrounding whitespace.
func TextLength(s string) int {
	return utf8.RuneCountInString(strings.TrimSpace(s))
}
