package scraper

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"extract-markdown-api/internal/models"
)

var (
	markdownHeading = regexp.MustCompile(`^#{1,6}\s`)
	markdownLink    = regexp.MustCompile(`\[[^\]]*\]\([^)]*\)`)
)

// ScoreContent measures normalized Markdown. Headings inside fenced code
// blocks are not counted.
func ScoreContent(markdown string) models.ContentStats {
	if markdown == "" {
		return models.ContentStats{}
	}

	stats := models.ContentStats{
		Characters: utf8.RuneCountInString(markdown),
		Words:      len(strings.Fields(markdown)),
		Paragraphs: len(splitParagraphs(markdown)),
		Links:      len(markdownLink.FindAllStringIndex(markdown, -1)),
	}

	inFence := false
	for _, line := range strings.Split(markdown, SingleNewline) {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, CodeBlockFence) {
			inFence = !inFence
			continue
		}
		if !inFence && markdownHeading.MatchString(trimmed) {
			stats.Headings++
		}
	}

	return stats
}
