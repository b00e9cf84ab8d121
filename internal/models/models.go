package models

import "time"

// ConvertRequest is the body accepted by the convert endpoint
type ConvertRequest struct {
	URL string `json:"url"`
}

// ConvertResponse is the JSON form of a successful conversion
type ConvertResponse struct {
	Markdown string       `json:"markdown"`
	Status   string       `json:"status"`
	Selector string       `json:"selector,omitempty"`
	Fallback bool         `json:"fallback"`
	Removed  int          `json:"removed"`
	Stats    ContentStats `json:"stats"`
	Metadata Metadata     `json:"metadata"`
}

// ContentStats summarises the produced Markdown
type ContentStats struct {
	Characters int `json:"characters"`
	Words      int `json:"words"`
	Paragraphs int `json:"paragraphs"`
	Headings   int `json:"headings"`
	Links      int `json:"links"`
}

// ErrorResponse represents error responses
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Details string `json:"details,omitempty"`
}

// HealthResponse is returned by the health endpoint
type HealthResponse struct {
	Status    string    `json:"status"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// InfoResponse describes the API
type InfoResponse struct {
	Name        string            `json:"name"`
	Version     string            `json:"version"`
	Description string            `json:"description"`
	Endpoints   map[string]string `json:"endpoints"`
	Usage       Usage             `json:"usage"`
}

// Usage documents how to call the convert endpoint
type Usage struct {
	Method   string         `json:"method"`
	URL      string         `json:"url"`
	Body     ConvertRequest `json:"body"`
	Response string         `json:"response"`
}

// Metadata contains request metadata
type Metadata struct {
	URL        string    `json:"url"`
	ScrapedAt  time.Time `json:"scrapedAt"`
	DurationMs int64     `json:"durationMs"`
}
