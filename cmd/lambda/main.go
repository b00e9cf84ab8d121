package main

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"extract-markdown-api/internal/api"
	"extract-markdown-api/internal/config"
	"extract-markdown-api/internal/logger"
	"extract-markdown-api/internal/models"
	"extract-markdown-api/internal/scraper"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// LambdaHandler handles AWS Lambda events
type LambdaHandler struct {
	scraper *scraper.Scraper
	apiKey  string
}

func NewLambdaHandler(s *scraper.Scraper, apiKey string) *LambdaHandler {
	return &LambdaHandler{scraper: s, apiKey: apiKey}
}

var baseHeaders = map[string]string{
	"Content-Type":                 "application/json; charset=utf-8",
	"Access-Control-Allow-Origin":  "*",
	"Access-Control-Allow-Headers": "Content-Type,X-Api-Key,x-api-key",
	"Access-Control-Allow-Methods": "GET,POST,OPTIONS",
}

// Handler is the main Lambda handler function
func (h *LambdaHandler) Handler(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	if event.HTTPMethod == http.MethodOptions {
		return events.APIGatewayProxyResponse{StatusCode: http.StatusNoContent, Headers: baseHeaders}, nil
	}

	if h.apiKey != "" && !validKey(requestKey(event), h.apiKey) {
		return h.jsonResponse(http.StatusUnauthorized, models.ErrorResponse{Error: "Invalid or missing API key"}), nil
	}

	targetURL, err := eventURL(event)
	if err == nil {
		err = api.ValidateURL(targetURL)
	}
	if err != nil {
		return h.jsonResponse(http.StatusBadRequest, api.ErrorBody(err)), nil
	}
	targetURL = strings.TrimSpace(targetURL)

	start := time.Now()
	result, err := h.scraper.Scrape(ctx, targetURL)
	if err != nil {
		return h.jsonResponse(api.StatusFor(err), api.ErrorBody(err)), nil
	}
	if result.Degraded() {
		return h.jsonResponse(http.StatusUnprocessableEntity, api.DegradedBody(result)), nil
	}

	return h.jsonResponse(http.StatusOK, api.NewConvertResponse(result, targetURL, start)), nil
}

func validKey(got, want string) bool {
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}

func requestKey(event events.APIGatewayProxyRequest) string {
	for name, value := range event.Headers {
		if strings.EqualFold(name, "x-api-key") {
			return value
		}
	}
	return event.QueryStringParameters["key"]
}

// eventURL reads the target from the query string or, for POST, the JSON body.
func eventURL(event events.APIGatewayProxyRequest) (string, error) {
	if event.HTTPMethod != http.MethodPost {
		return event.QueryStringParameters["url"], nil
	}
	if strings.TrimSpace(event.Body) == "" {
		return "", nil
	}
	var req models.ConvertRequest
	if err := json.Unmarshal([]byte(event.Body), &req); err != nil {
		return "", &models.InvalidURLError{Err: err}
	}
	return req.URL, nil
}

// jsonResponse serializes v into an API Gateway response
func (h *LambdaHandler) jsonResponse(statusCode int, v any) events.APIGatewayProxyResponse {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("serialize response")
		statusCode = http.StatusInternalServerError
		body = []byte(`{"error":"Failed to serialize response"}`)
	}
	return events.APIGatewayProxyResponse{
		StatusCode: statusCode,
		Headers:    baseHeaders,
		Body:       string(body),
	}
}

func main() {
	cfg, err := config.Load(viper.New())
	if err != nil {
		logger.Init(logger.Options{JSON: true})
		log.Fatal().Err(err).Msg("load config")
	}
	logger.Init(logger.Options{Level: cfg.Log.Level, JSON: true})

	handler := NewLambdaHandler(scraper.NewScraper(cfg), cfg.Server.APIKey)
	lambda.Start(handler.Handler)
}
