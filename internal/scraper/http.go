package scraper

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"syscall"
	"time"

	"extract-markdown-api/internal/config"
	"extract-markdown-api/internal/models"

	"github.com/rs/zerolog/log"
)

type HTTPClient struct {
	client *http.Client
	config config.FetchConfig
}

func NewHTTPClient(cfg config.FetchConfig) *HTTPClient {
	maxRedirects := cfg.MaxRedirects
	if maxRedirects <= 0 {
		maxRedirects = DefaultMaxRedirects
	}

	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	}
	if cfg.InsecureSkipVerify {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} // #nosec G402 -- opt-in
	}

	client := &http.Client{
		Transport: transport,
		Timeout:   cfg.Timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return fmt.Errorf("too many redirects")
			}
			return nil
		},
	}

	return &HTTPClient{
		client: client,
		config: cfg,
	}
}

// setRequestHeaders sets browser-like headers on the request
func (h *HTTPClient) setRequestHeaders(req *http.Request) {
	req.Header.Set("User-Agent", h.config.UserAgent)
	req.Header.Set("Accept", AcceptHeader)
	req.Header.Set("Accept-Language", AcceptLanguage)
}

// FetchHTML performs a single GET against targetURL and returns the body.
// There is no retry. Failures are reported as *models.UnreachableError,
// *models.TimeoutError, *models.CanceledError, *models.HTTPError or, for
// anything else, *models.ContentExtractionError.
func (h *HTTPClient) FetchHTML(ctx context.Context, targetURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return "", &models.InvalidURLError{URL: targetURL, Err: err}
	}
	h.setRequestHeaders(req)

	resp, err := h.client.Do(req)
	if err != nil {
		return "", h.classify(ctx, targetURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &models.HTTPError{
			StatusCode: resp.StatusCode,
			URL:        targetURL,
			Err:        errors.New(http.StatusText(resp.StatusCode)),
		}
	}

	reader := io.LimitReader(resp.Body, int64(h.config.SizeLimitBytes))
	body, err := io.ReadAll(reader)
	if err != nil {
		return "", h.classify(ctx, targetURL, err)
	}

	log.Debug().
		Str("url", targetURL).
		Int("status", resp.StatusCode).
		Str("content_type", resp.Header.Get("Content-Type")).
		Int("bytes", len(body)).
		Msg("fetched page")

	return string(body), nil
}

// classify maps a transport failure onto the error taxonomy.
func (h *HTTPClient) classify(ctx context.Context, targetURL string, err error) error {
	if errors.Is(ctx.Err(), context.Canceled) {
		return &models.CanceledError{URL: targetURL, Err: err}
	}
	if isTimeout(err) {
		return &models.TimeoutError{Operation: "fetch", Timeout: h.config.Timeout.String(), Err: err}
	}
	if isUnreachable(err) {
		return &models.UnreachableError{URL: targetURL, Err: err}
	}
	return &models.ContentExtractionError{Step: "fetch", Err: err}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func isUnreachable(err error) bool {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	return errors.Is(err, syscall.ECONNREFUSED)
}
