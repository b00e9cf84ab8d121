package scraper

import (
	"extract-markdown-api/internal/config"
	"extract-markdown-api/internal/models"

	"github.com/rs/zerolog/log"
)

// Result is the outcome of one extraction.
type Result struct {
	// Markdown is empty when Status is StatusDegraded.
	Markdown string
	Status   ConversionStatus
	// Reason explains a degraded conversion.
	Reason   string
	Selector string
	Fallback bool
	Removed  int
	Stats    models.ContentStats
}

// Degraded reports whether conversion failed and no content is available.
func (r Result) Degraded() bool {
	return r.Status == StatusDegraded
}

// ArticleExtractor runs the sanitize, select, convert and normalize stages.
// It holds no per-document state and may be shared between goroutines.
type ArticleExtractor struct {
	sanitizer *Sanitizer
	selector  *ContentSelector
	converter *MarkdownConverter
}

func NewArticleExtractor(cfg config.ExtractConfig) *ArticleExtractor {
	return &ArticleExtractor{
		sanitizer: NewSanitizer(),
		selector:  NewContentSelector(cfg.ContentThreshold),
		converter: NewMarkdownConverter(DefaultConversionOptions(), cfg.ScrubMarkup),
	}
}

// ExtractMarkdown converts raw HTML into normalized Markdown.
func (ae *ArticleExtractor) ExtractMarkdown(html string) (Result, error) {
	tree, err := ParseDocument(html)
	if err != nil {
		return Result{}, &models.ContentExtractionError{Step: "parse", Err: err}
	}

	tree, report := ae.sanitizer.Sanitize(tree)
	selection := ae.selector.Select(tree)

	log.Debug().
		Str("selector", selection.Selector).
		Bool("fallback", selection.Fallback).
		Int("removed", report.Removed()).
		Msg("selected main content")

	result := Result{
		Selector: selection.Selector,
		Fallback: selection.Fallback,
		Removed:  report.Removed(),
	}

	markup, err := selection.Node.HTML()
	if err != nil {
		return Result{}, &models.ContentExtractionError{Step: "serialize", Err: err}
	}

	conversion := ae.converter.Convert(markup)
	if !conversion.Converted() {
		log.Warn().Str("reason", conversion.Reason).Msg("markdown conversion degraded")
		result.Status = StatusDegraded
		result.Reason = conversion.Reason
		return result, nil
	}

	result.Status = StatusConverted
	result.Markdown = NormalizeMarkdown(conversion.Text)
	result.Stats = ScoreContent(result.Markdown)
	return result, nil
}
