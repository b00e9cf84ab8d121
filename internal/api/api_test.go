package api

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"extract-markdown-api/internal/models"
	"extract-markdown-api/internal/scraper"
)

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"https", "https://example.com/post", false},
		{"http with port", "http://localhost:8080", false},
		{"surrounding space", "  https://example.com  ", false},
		{"empty", "", true},
		{"blank", "   ", true},
		{"no scheme", "example.com", true},
		{"ftp", "ftp://example.com", true},
		{"no host", "https://", true},
		{"garbage", "http://[::1", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.raw)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, models.KindInvalidInput, models.KindOf(err))
		})
	}
}

func TestStatusFor(t *testing.T) {
	cause := errors.New("cause")
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"invalid", &models.InvalidURLError{Err: cause}, http.StatusBadRequest},
		{"unreachable", &models.UnreachableError{Err: cause}, http.StatusBadRequest},
		{"timeout", &models.TimeoutError{Err: cause}, http.StatusRequestTimeout},
		{"upstream", &models.HTTPError{StatusCode: 503, Err: cause}, http.StatusBadGateway},
		{"canceled", &models.CanceledError{Err: context.Canceled}, StatusClientClosedRequest},
		{"extraction", &models.ContentExtractionError{Step: "parse", Err: cause}, http.StatusInternalServerError},
		{"plain", cause, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusFor(tt.err))
		})
	}
}

func TestErrorBody(t *testing.T) {
	assert.Equal(t, "URL is required", ErrorBody(ValidateURL("")).Error)
	assert.Equal(t, "Invalid URL", ErrorBody(ValidateURL("nope")).Error)
	assert.Equal(t, "URL unreachable", ErrorBody(&models.UnreachableError{Err: errors.New("x")}).Error)
	assert.Equal(t, "Timeout", ErrorBody(&models.TimeoutError{Err: errors.New("x")}).Error)

	upstream := ErrorBody(&models.HTTPError{StatusCode: 404, Err: errors.New("x")})
	assert.Equal(t, "Not Found", upstream.Details)

	internal := ErrorBody(errors.New("boom"))
	assert.Equal(t, "Internal server error", internal.Error)
	assert.NotContains(t, internal.Message, "boom")
}

func TestDegradedBody(t *testing.T) {
	body := DegradedBody(scraper.Result{Status: scraper.StatusDegraded, Reason: "engine failure"})
	assert.Equal(t, scraper.DegradedText, body.Error)
	assert.Equal(t, "engine failure", body.Details)
}

func TestNewConvertResponse(t *testing.T) {
	result := scraper.Result{
		Markdown: "# Title",
		Status:   scraper.StatusConverted,
		Selector: "main",
		Removed:  3,
		Stats:    models.ContentStats{Characters: 7, Headings: 1},
	}

	resp := NewConvertResponse(result, "https://example.com", time.Now().Add(-20*time.Millisecond))

	assert.Equal(t, "# Title", resp.Markdown)
	assert.Equal(t, "converted", resp.Status)
	assert.Equal(t, "main", resp.Selector)
	assert.Equal(t, 3, resp.Removed)
	assert.Equal(t, 1, resp.Stats.Headings)
	assert.Equal(t, "https://example.com", resp.Metadata.URL)
	assert.GreaterOrEqual(t, resp.Metadata.DurationMs, int64(20))
}

func TestHealthAndInfo(t *testing.T) {
	assert.Equal(t, "OK", Health().Status)

	info := Info()
	assert.Equal(t, Version, info.Version)
	assert.Contains(t, info.Endpoints, "POST /convert")
	assert.Equal(t, "/convert", info.Usage.URL)
}
