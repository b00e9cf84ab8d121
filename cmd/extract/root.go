package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"extract-markdown-api/internal/api"
	"extract-markdown-api/internal/config"
	"extract-markdown-api/internal/logger"
	"extract-markdown-api/internal/models"
	"extract-markdown-api/internal/scraper"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
)

const documentSeparator = "\n\n---\n\n"

var errSomeFailed = errors.New("one or more URLs failed")

// outcome is the result of one URL, kept in argument order.
type outcome struct {
	url     string
	result  scraper.Result
	err     error
	elapsed time.Duration
}

// jsonLine is one line of --json output.
type jsonLine struct {
	*models.ConvertResponse
	URL   string                `json:"url,omitempty"`
	Error *models.ErrorResponse `json:"error,omitempty"`
}

func newRootCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "extract [url...]",
		Short: "Extract the main content of web pages as Markdown",
		Long: `Extract fetches each URL, strips scripts, navigation, ads and other
noise, picks the main content block and prints it as Markdown.

Examples:
  # Print one page as Markdown
  extract https://example.com/post

  # Convert several pages, four at a time, as JSON lines
  extract --json --concurrency 4 https://a.example https://b.example`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if path := v.GetString("config"); path != "" {
				v.SetConfigFile(path)
			}
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}
			logger.Init(logger.Options{
				Level:  cfg.Log.Level,
				Debug:  v.GetBool("debug"),
				JSON:   cfg.Log.JSON,
				Output: cmd.ErrOrStderr(),
			})

			concurrency, _ := cmd.Flags().GetInt("concurrency")
			asJSON, _ := cmd.Flags().GetBool("json")

			results := extractAll(cmd.Context(), scraper.NewScraper(cfg), args, concurrency)
			return writeResults(cmd.OutOrStdout(), results, asJSON)
		},
	}

	flags := cmd.Flags()
	flags.String("config", "", "config file (default ./config.yaml)")
	flags.Bool("debug", false, "enable debug logging")
	flags.Bool("json", false, "print one JSON document per URL")
	flags.IntP("concurrency", "c", 4, "number of URLs processed at once")
	flags.Duration("timeout", config.DefaultFetchConfig().Timeout, "fetch timeout per URL")

	_ = v.BindPFlag("config", flags.Lookup("config"))
	_ = v.BindPFlag("debug", flags.Lookup("debug"))
	_ = v.BindPFlag("fetch.timeout", flags.Lookup("timeout"))

	return cmd
}

// extractAll scrapes every URL with at most concurrency in flight. Each URL
// is independent: a failure is recorded and does not stop the others.
func extractAll(ctx context.Context, s *scraper.Scraper, urls []string, concurrency int) []outcome {
	if concurrency < 1 {
		concurrency = 1
	}

	results := make([]outcome, len(urls))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, raw := range urls {
		g.Go(func() error {
			target := strings.TrimSpace(raw)
			results[i] = outcome{url: target}
			if err := api.ValidateURL(target); err != nil {
				results[i].err = err
				return nil
			}
			start := time.Now()
			results[i].result, results[i].err = s.Scrape(ctx, target)
			results[i].elapsed = time.Since(start)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func writeResults(w io.Writer, results []outcome, asJSON bool) error {
	failed, printed := 0, 0
	enc := json.NewEncoder(w)

	for _, r := range results {
		err := r.err
		if err == nil && r.result.Degraded() {
			err = fmt.Errorf("%s: %s", scraper.DegradedText, r.result.Reason)
		}
		if err != nil {
			failed++
			log.Error().Err(err).Str("url", r.url).Str("kind", string(models.KindOf(err))).Msg("extract failed")
		}

		if asJSON {
			line := jsonLine{URL: r.url}
			switch {
			case r.err != nil:
				body := api.ErrorBody(r.err)
				line.Error = &body
			case r.result.Degraded():
				body := api.DegradedBody(r.result)
				line.Error = &body
			default:
				resp := api.NewConvertResponse(r.result, r.url, time.Now().Add(-r.elapsed))
				line.ConvertResponse = &resp
				line.URL = ""
			}
			if encErr := enc.Encode(line); encErr != nil {
				return encErr
			}
			continue
		}

		if err != nil {
			continue
		}
		if printed > 0 {
			if _, werr := io.WriteString(w, documentSeparator); werr != nil {
				return werr
			}
		}
		if _, werr := io.WriteString(w, r.result.Markdown+"\n"); werr != nil {
			return werr
		}
		printed++
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", errSomeFailed, failed, len(results))
	}
	return nil
}
