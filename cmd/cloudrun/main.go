package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"extract-markdown-api/internal/api"
	"extract-markdown-api/internal/config"
	"extract-markdown-api/internal/logger"
	"extract-markdown-api/internal/models"
	"extract-markdown-api/internal/scraper"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"go.uber.org/automaxprocs/maxprocs"
)

const maxRequestBody = 1 << 20

// CloudRunHandler serves the conversion API over HTTP
type CloudRunHandler struct {
	scraper *scraper.Scraper
	mux     *http.ServeMux
}

func NewCloudRunHandler(s *scraper.Scraper) *CloudRunHandler {
	h := &CloudRunHandler{scraper: s, mux: http.NewServeMux()}
	h.mux.HandleFunc("POST /convert", h.convert)
	h.mux.HandleFunc("GET /convert", h.convert)
	h.mux.HandleFunc("GET /health", h.health)
	h.mux.HandleFunc("GET /{$}", h.info)
	return h
}

func (h *CloudRunHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type,Accept")
	w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	h.mux.ServeHTTP(w, r)
}

func (h *CloudRunHandler) convert(w http.ResponseWriter, r *http.Request) {
	targetURL, err := requestURL(w, r)
	if err == nil {
		err = api.ValidateURL(targetURL)
	}
	if err != nil {
		writeJSON(w, http.StatusBadRequest, api.ErrorBody(err))
		return
	}
	targetURL = strings.TrimSpace(targetURL)

	start := time.Now()
	result, err := h.scraper.Scrape(r.Context(), targetURL)
	if err != nil {
		status := api.StatusFor(err)
		if status == api.StatusClientClosedRequest {
			log.Info().Str("url", targetURL).Msg("client went away")
		}
		writeJSON(w, status, api.ErrorBody(err))
		return
	}

	if result.Degraded() {
		writeJSON(w, http.StatusUnprocessableEntity, api.DegradedBody(result))
		return
	}

	if wantsJSON(r) {
		writeJSON(w, http.StatusOK, api.NewConvertResponse(result, targetURL, start))
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, result.Markdown)
}

func (h *CloudRunHandler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, api.Health())
}

func (h *CloudRunHandler) info(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, api.Info())
}

// requestURL reads the target from the JSON body of a POST or the url query
// parameter of a GET.
func requestURL(w http.ResponseWriter, r *http.Request) (string, error) {
	if r.Method == http.MethodGet {
		return r.URL.Query().Get("url"), nil
	}

	var req models.ConvertRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
	if err := dec.Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		return "", &models.InvalidURLError{Err: err}
	}
	return req.URL, nil
}

func wantsJSON(r *http.Request) bool {
	if r.URL.Query().Get("format") == "json" {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Debug().Err(err).Msg("write response")
	}
}

func run(ctx context.Context, cfg config.Config) error {
	srv := &http.Server{
		Addr:              net.JoinHostPort("0.0.0.0", cfg.Server.Port),
		Handler:           NewCloudRunHandler(scraper.NewScraper(cfg)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info().Msg("server closed")
	return nil
}

func main() {
	_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
		log.Debug().Msgf(format, args...)
	}))

	cfg, err := config.Load(viper.New())
	if err != nil {
		logger.Init(logger.Options{})
		log.Fatal().Err(err).Msg("load config")
	}
	logger.Init(logger.Options{Level: cfg.Log.Level, JSON: cfg.Log.JSON})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error().Err(err).Msg("server failed")
		stop()
		os.Exit(1)
	}
}
