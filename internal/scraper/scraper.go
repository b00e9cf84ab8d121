// Package scraper fetches a web page and distills its main content into
// Markdown: noise removal, main-content selection, Markdown conversion and
// blank-line normalization.
package scraper

import (
	"context"
	"fmt"
	"time"

	"extract-markdown-api/internal/config"
	"extract-markdown-api/internal/models"

	"github.com/rs/zerolog/log"
)

// Fetcher retrieves the raw HTML of a page.
type Fetcher interface {
	FetchHTML(ctx context.Context, targetURL string) (string, error)
}

// Scraper orchestrates fetching and extraction for one URL at a time. A
// Scraper may serve many concurrent invocations; each owns its document.
type Scraper struct {
	fetcher   Fetcher
	extractor *ArticleExtractor
}

func NewScraper(cfg config.Config) *Scraper {
	return &Scraper{
		fetcher:   NewHTTPClient(cfg.Fetch),
		extractor: NewArticleExtractor(cfg.Extract),
	}
}

// NewScraperWithFetcher creates a scraper that uses f to retrieve pages.
func NewScraperWithFetcher(f Fetcher, cfg config.ExtractConfig) *Scraper {
	return &Scraper{
		fetcher:   f,
		extractor: NewArticleExtractor(cfg),
	}
}

// Scrape fetches targetURL and converts its main content to Markdown. The
// URL is expected to be validated by the caller. Cancelling ctx aborts the
// fetch. A panic inside the invocation is recovered and returned as a
// *models.ContentExtractionError.
func (s *Scraper) Scrape(ctx context.Context, targetURL string) (result Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Str("url", targetURL).Interface("panic", r).Msg("scrape panicked")
			result = Result{}
			err = &models.ContentExtractionError{Step: "panic", Err: fmt.Errorf("%v", r)}
		}
	}()

	start := time.Now()
	log.Info().Str("url", targetURL).Msg("scraping")

	html, err := s.fetcher.FetchHTML(ctx, targetURL)
	if err != nil {
		log.Warn().
			Err(err).
			Str("url", targetURL).
			Str("kind", string(models.KindOf(err))).
			Msg("fetch failed")
		return Result{}, err
	}

	result, err = s.extractor.ExtractMarkdown(html)
	if err != nil {
		log.Error().Err(err).Str("url", targetURL).Msg("extraction failed")
		return Result{}, err
	}

	log.Info().
		Str("url", targetURL).
		Str("status", string(result.Status)).
		Str("selector", result.Selector).
		Bool("fallback", result.Fallback).
		Int("removed", result.Removed).
		Int("chars", result.Stats.Characters).
		Int64("duration_ms", time.Since(start).Milliseconds()).
		Msg("conversion finished")

	return result, nil
}
