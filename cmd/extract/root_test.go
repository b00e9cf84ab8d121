package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"extract-markdown-api/internal/config"
	"extract-markdown-api/internal/models"
	"extract-markdown-api/internal/scraper"
)

func pageServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		title := strings.TrimPrefix(r.URL.Path, "/")
		_, _ = w.Write([]byte(`<html><body><main><h1>` + title + `</h1><p>` +
			strings.Repeat("body text ", 20) + `</p></main></body></html>`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestExtractAll_KeepsArgumentOrder(t *testing.T) {
	srv := pageServer(t)
	s := scraper.NewScraper(config.Default())

	urls := []string{srv.URL + "/one", srv.URL + "/missing", "not a url", srv.URL + "/two"}
	results := extractAll(context.Background(), s, urls, 3)

	require.Len(t, results, 4)
	assert.NoError(t, results[0].err)
	assert.True(t, strings.HasPrefix(results[0].result.Markdown, "# one"))
	assert.Equal(t, models.KindUpstream, models.KindOf(results[1].err))
	assert.Equal(t, models.KindInvalidInput, models.KindOf(results[2].err))
	assert.NoError(t, results[3].err)
	assert.True(t, strings.HasPrefix(results[3].result.Markdown, "# two"))
}

func TestWriteResults_Markdown(t *testing.T) {
	var out bytes.Buffer
	results := []outcome{
		{url: "a", err: &models.UnreachableError{Err: errors.New("dns")}},
		{url: "b", result: scraper.Result{Markdown: "# B", Status: scraper.StatusConverted}},
		{url: "c", result: scraper.Result{Markdown: "# C", Status: scraper.StatusConverted}},
	}

	err := writeResults(&out, results, false)

	require.ErrorIs(t, err, errSomeFailed)
	assert.Equal(t, "# B\n"+documentSeparator+"# C\n", out.String())
}

func TestWriteResults_JSON(t *testing.T) {
	var out bytes.Buffer
	results := []outcome{
		{url: "https://ok.example", result: scraper.Result{Markdown: "text", Status: scraper.StatusConverted, Selector: "main"}},
		{url: "https://bad.example", result: scraper.Result{Status: scraper.StatusDegraded, Reason: "engine"}},
	}

	err := writeResults(&out, results, true)
	require.Error(t, err)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)

	var ok models.ConvertResponse
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &ok))
	assert.Equal(t, "text", ok.Markdown)
	assert.Equal(t, "main", ok.Selector)
	assert.Equal(t, "https://ok.example", ok.Metadata.URL)

	var bad struct {
		URL   string               `json:"url"`
		Error models.ErrorResponse `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &bad))
	assert.Equal(t, "https://bad.example", bad.URL)
	assert.Equal(t, scraper.DegradedText, bad.Error.Error)
}

func TestRootCmd_RunsEndToEnd(t *testing.T) {
	srv := pageServer(t)
	t.Chdir(t.TempDir())

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{"--timeout", "2s", srv.URL + "/hello"})

	require.NoError(t, cmd.ExecuteContext(context.Background()))
	assert.True(t, strings.HasPrefix(stdout.String(), "# hello"))
}

func TestRootCmd_MissingConfigFile(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "missing.yaml"), "https://example.com"})

	err := cmd.ExecuteContext(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}

func TestRootCmd_RequiresURL(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs(nil)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	assert.Error(t, cmd.Execute())
}
