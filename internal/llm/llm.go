// Package llm calls the structured-output generation service and
// enforces the article schema on its responses.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/epf-2025/blogpress/internal/config"
	"github.com/epf-2025/blogpress/internal/links"
)

// ErrNotConfigured means the generation API key is absent. It is a
// configuration state detected before any network call is made.
var ErrNotConfigured = errors.New("generation API key not configured")

// ServiceError is a non-success HTTP status from the generation
// service. One attempt per call; retry policy belongs to the caller.
type ServiceError struct {
	Status int
	Body   string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("generation service returned %d: %s", e.Status, e.Body)
}

// MalformedOutputError means the service responded 2xx but the body
// could not be parsed into a schema-conforming article.
type MalformedOutputError struct {
	Err error
}

func (e *MalformedOutputError) Error() string {
	return fmt.Sprintf("malformed generation output: %v", e.Err)
}

func (e *MalformedOutputError) Unwrap() error { return e.Err }

const systemRole = "You are a marketing writer for Popcorn Ceiling Removal Pro, a popcorn ceiling removal contractor in the Greater Toronto Area. Sound human, local and specific."

const taskPrompt = `Write a unique, conversational blog post about popcorn ceiling removal for homeowners in the Greater Toronto Area. Reference neighbourhood-level context and %s timelines, describe prep, cleanup and pricing drivers, and include internal link prompts using the supplied identifiers. Reference actual pages from %s to encourage internal linking. Provide relevant photo ideas with alt text suggestions.`

// Generator produces one article per invocation.
type Generator interface {
	Generate(ctx context.Context) (*Article, error)
}

// Client is the OpenAI chat-completions generation client.
type Client struct {
	Model       string
	BaseURL     string
	APIKey      string
	Temperature float64
	SiteURL     string
	client      *http.Client
}

// NewClient creates a generation client from config. The API key is
// resolved from the environment at construction time.
func NewClient(cfg config.Generation) *Client {
	return &Client{
		Model:       cfg.Model,
		BaseURL:     cfg.BaseURL,
		APIKey:      cfg.APIKey(),
		Temperature: cfg.Temperature,
		SiteURL:     cfg.SiteURL,
		client:      &http.Client{Timeout: 120 * time.Second},
	}
}

// IsConfigured checks if the API key is set.
func (c *Client) IsConfigured() bool {
	return c.APIKey != ""
}

// Generate makes exactly one request to the generation service and
// returns a schema-validated article. Every failure is one of
// ErrNotConfigured, *ServiceError or *MalformedOutputError.
func (c *Client) Generate(ctx context.Context) (*Article, error) {
	if c.APIKey == "" {
		return nil, ErrNotConfigured
	}

	today := time.Now().UTC().Format("2006-01-02")
	body := map[string]any{
		"model":       c.Model,
		"temperature": c.Temperature,
		"response_format": map[string]any{
			"type":        "json_schema",
			"json_schema": ResponseSchema(links.IDs()),
		},
		"messages": []map[string]string{
			{"role": "system", "content": systemRole},
			{"role": "user", "content": fmt.Sprintf(taskPrompt, today, c.SiteURL)},
		},
	}

	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.BaseURL+"/chat/completions", bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("generation service error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		log.Printf("Generation request failed: %d %s", resp.StatusCode, string(respBody))
		return nil, &ServiceError{Status: resp.StatusCode, Body: string(respBody)}
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		log.Printf("Unable to decode generation response: %v", err)
		return nil, &MalformedOutputError{Err: err}
	}

	if len(result.Choices) == 0 || result.Choices[0].Message.Content == "" {
		return nil, &MalformedOutputError{Err: errors.New("response missing content")}
	}

	var article Article
	if err := json.Unmarshal([]byte(result.Choices[0].Message.Content), &article); err != nil {
		log.Printf("Unable to parse generated article: %v", err)
		return nil, &MalformedOutputError{Err: err}
	}
	if err := article.Validate(); err != nil {
		log.Printf("Generated article violates schema: %v", err)
		return nil, &MalformedOutputError{Err: err}
	}

	return &article, nil
}
