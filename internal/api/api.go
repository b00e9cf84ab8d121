// Package api holds the request validation, error mapping and response
// bodies shared by the HTTP server and the Lambda handler.
package api

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"extract-markdown-api/internal/models"
	"extract-markdown-api/internal/scraper"
)

const (
	Name    = "Web Content Extraction API"
	Version = "1.0.0"

	usageMessage = `Provide a valid URL in the form {"url": "https://example.com"}`
)

// StatusClientClosedRequest is returned, and only logged, when the caller
// went away before the conversion finished.
const StatusClientClosedRequest = 499

var (
	errMissingURL = errors.New("url is required")
	errBadScheme  = errors.New("url must use http or https")
	errNoHost     = errors.New("url has no host")
)

// ValidateURL checks raw is an absolute http(s) URL.
func ValidateURL(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return &models.InvalidURLError{URL: raw, Err: errMissingURL}
	}
	u, err := url.Parse(raw)
	if err != nil {
		return &models.InvalidURLError{URL: raw, Err: err}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return &models.InvalidURLError{URL: raw, Err: errBadScheme}
	}
	if u.Host == "" {
		return &models.InvalidURLError{URL: raw, Err: errNoHost}
	}
	return nil
}

// StatusFor maps a pipeline error onto an HTTP status code.
func StatusFor(err error) int {
	switch models.KindOf(err) {
	case "":
		return http.StatusOK
	case models.KindInvalidInput, models.KindUnreachable:
		return http.StatusBadRequest
	case models.KindTimeout:
		return http.StatusRequestTimeout
	case models.KindUpstream:
		return http.StatusBadGateway
	case models.KindCanceled:
		return StatusClientClosedRequest
	default:
		return http.StatusInternalServerError
	}
}

// ErrorBody builds the JSON error document for err.
func ErrorBody(err error) models.ErrorResponse {
	switch models.KindOf(err) {
	case models.KindInvalidInput:
		var invalid *models.InvalidURLError
		if errors.As(err, &invalid) && errors.Is(invalid.Err, errMissingURL) {
			return models.ErrorResponse{Error: "URL is required", Message: usageMessage}
		}
		return models.ErrorResponse{Error: "Invalid URL", Message: usageMessage, Details: err.Error()}
	case models.KindUnreachable:
		return models.ErrorResponse{
			Error:   "URL unreachable",
			Message: "Could not reach the given URL. Check that it is correct and accessible.",
		}
	case models.KindTimeout:
		return models.ErrorResponse{
			Error:   "Timeout",
			Message: "The page took too long to respond. Try again.",
		}
	case models.KindUpstream:
		var httpErr *models.HTTPError
		resp := models.ErrorResponse{
			Error:   "Upstream error",
			Message: "The page answered with an error status.",
		}
		if errors.As(err, &httpErr) {
			resp.Details = http.StatusText(httpErr.StatusCode)
		}
		return resp
	case models.KindCanceled:
		return models.ErrorResponse{Error: "Request canceled"}
	default:
		return models.ErrorResponse{
			Error:   "Internal server error",
			Message: "An error occurred while processing the page.",
		}
	}
}

// DegradedBody is returned with 422 when the page could not be converted.
func DegradedBody(result scraper.Result) models.ErrorResponse {
	return models.ErrorResponse{
		Error:   scraper.DegradedText,
		Message: "The page was fetched but its content could not be converted.",
		Details: result.Reason,
	}
}

// NewConvertResponse wraps a successful result with request metadata.
func NewConvertResponse(result scraper.Result, targetURL string, start time.Time) models.ConvertResponse {
	return models.ConvertResponse{
		Markdown: result.Markdown,
		Status:   string(result.Status),
		Selector: result.Selector,
		Fallback: result.Fallback,
		Removed:  result.Removed,
		Stats:    result.Stats,
		Metadata: models.Metadata{
			URL:        targetURL,
			ScrapedAt:  time.Now().UTC(),
			DurationMs: time.Since(start).Milliseconds(),
		},
	}
}

// Health reports the service as up.
func Health() models.HealthResponse {
	return models.HealthResponse{
		Status:    "OK",
		Message:   "Content extraction API is running",
		Timestamp: time.Now().UTC(),
	}
}

// Info describes the service endpoints.
func Info() models.InfoResponse {
	return models.InfoResponse{
		Name:        Name,
		Version:     Version,
		Description: "Extracts the main content of any web page and converts it to Markdown",
		Endpoints: map[string]string{
			"POST /convert": "Fetch a page, strip scripts, ads and navigation, return its main content as Markdown",
			"GET /health":   "Service status",
			"GET /":         "API information",
		},
		Usage: models.Usage{
			Method:   http.MethodPost,
			URL:      "/convert",
			Body:     models.ConvertRequest{URL: "https://example.com"},
			Response: "Extracted content as Markdown (text/plain), or JSON with ?format=json",
		},
	}
}
