package scraper

import (
	"regexp"
	"strings"
)

// blankLineRun matches a newline run holding two or more blank lines. Lines
// made only of whitespace count as blank.
var blankLineRun = regexp.MustCompile(`\n\s*\n\s*\n`)

// NormalizeMarkdown collapses runs of blank lines into a single blank line
// and trims surrounding whitespace. The result never contains three
// consecutive newlines.
func NormalizeMarkdown(text string) string {
	if text == "" {
		return ""
	}

	cleaned := blankLineRun.ReplaceAllString(text, DoubleNewline)
	return strings.TrimSpace(cleaned)
}

// splitParagraphs returns the non-empty blocks of text separated by blank lines.
func splitParagraphs(text string) []string {
	var blocks []string
	for _, block := range strings.Split(text, DoubleNewline) {
		if strings.TrimSpace(block) != "" {
			blocks = append(blocks, block)
		}
	}
	return blocks
}
