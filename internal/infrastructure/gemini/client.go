// Package gemini implements the vision inference client on Vertex AI's
// multimodal Gemini models.
package gemini

import (
	"context"
	"fmt"
	"log"
	"strings"

	"cloud.google.com/go/vertexai/genai"
	"golang.org/x/time/rate"
	"google.golang.org/api/option"
)

// Config holds connection settings for the Vertex AI client.
type Config struct {
	ProjectID         string
	Location          string
	CredentialsFile   string
	Model             string
	RequestsPerMinute int
}

// Client calls a Gemini vision model with an image and an instructional
// prompt. Each scan is a single attempt; failures surface immediately.
type Client struct {
	client      *genai.Client
	model       *genai.GenerativeModel
	rateLimiter *rate.Limiter
	debug       bool
}

// NewClient creates a Vertex AI client for the configured project and model.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	opts := []option.ClientOption{}
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	client, err := genai.NewClient(ctx, cfg.ProjectID, cfg.Location, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create vertex ai client: %w", err)
	}

	perMinute := cfg.RequestsPerMinute
	if perMinute <= 0 {
		perMinute = 60
	}
	limiter := rate.NewLimiter(rate.Limit(float64(perMinute)/60.0), 5)

	modelName := cfg.Model
	if modelName == "" {
		modelName = "gemini-2.0-flash"
	}

	return &Client{
		client:      client,
		model:       client.GenerativeModel(modelName),
		rateLimiter: limiter,
	}, nil
}

// SetDebug enables verbose logging of model calls
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// Generate sends the prompt and image to the model and returns the raw text
// of the first candidate. The caller is responsible for parsing it.
func (c *Client) Generate(ctx context.Context, prompt string, image []byte, mimeType string) (string, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter error: %w", err)
	}

	if c.debug {
		log.Printf("[GEMINI] generating for %d byte %s image", len(image), mimeType)
	}

	img := genai.ImageData(formatFromMIME(mimeType), image)
	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt), img)
	if err != nil {
		return "", fmt.Errorf("generate content failed: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("model returned no content")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("model returned no text parts")
	}

	return sb.String(), nil
}

// Close releases the underlying Vertex AI connection.
func (c *Client) Close() error {
	return c.client.Close()
}

// formatFromMIME converts an image MIME type ("image/jpeg") to the blob
// format string the genai SDK expects ("jpeg").
func formatFromMIME(mimeType string) string {
	format := strings.ToLower(strings.TrimSpace(mimeType))
	format = strings.TrimPrefix(format, "image/")
	if format == "" {
		return "jpeg"
	}
	return format
}
