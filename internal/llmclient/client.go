// Package llmclient implements the external analyzer on top of the
// Anthropic Messages API.
package llmclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/euisuk-chung/gemini-hak-creator-hub/internal/analyzer"
	"github.com/euisuk-chung/gemini-hak-creator-hub/internal/domain"
	"github.com/euisuk-chung/gemini-hak-creator-hub/internal/prompt"
)

const (
	defaultModel       = "claude-sonnet-4-5"
	defaultMaxTokens   = 1024
	defaultTemperature = 0.3
)

// Config configures the client.
type Config struct {
	APIKey    string
	BaseURL   string
	Model     string
	MaxTokens int64
	// Temperature defaults to 0.3 when nil; 0 is honored.
	Temperature   *float64
	MaxTranscript int
	// HTTPClient overrides the transport, mainly for tests.
	HTTPClient *http.Client
}

// Client is an analyzer.Analyzer backed by a Claude model.
type Client struct {
	api           anthropic.Client
	model         string
	maxTokens     int64
	temperature   float64
	maxTranscript int
}

var _ analyzer.Analyzer = (*Client)(nil)

// ErrMissingAPIKey is returned by New when no API key is configured.
var ErrMissingAPIKey = errors.New("anthropic api key is required")

// New builds a client. Retries are left to the analyzer guard, so the
// SDK's own retry loop is disabled.
func New(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrMissingAPIKey
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.HTTPClient != nil {
		opts = append(opts, option.WithHTTPClient(cfg.HTTPClient))
	}

	c := &Client{
		api:           anthropic.NewClient(opts...),
		model:         cfg.Model,
		maxTokens:     cfg.MaxTokens,
		temperature:   defaultTemperature,
		maxTranscript: cfg.MaxTranscript,
	}
	if c.model == "" {
		c.model = defaultModel
	}
	if c.maxTokens <= 0 {
		c.maxTokens = defaultMaxTokens
	}
	if cfg.Temperature != nil {
		c.temperature = *cfg.Temperature
	}
	return c, nil
}

// Name identifies the analyzer in metrics and cache keys.
func (c *Client) Name() string { return "anthropic:" + c.model }

// Analyze asks the model for a structured judgment of one comment.
func (c *Client) Analyze(ctx context.Context, req analyzer.Request) (*domain.ExternalAnalysis, error) {
	user := prompt.BuildUserPrompt(prompt.Input{
		Comment:        req.Text,
		Transcript:     req.Transcript,
		VideoTitle:     req.VideoTitle,
		RuleCategories: req.RuleCategories,
		Evidence:       req.Evidence,
		MaxTranscript:  c.maxTranscript,
	})

	msg, err := c.api.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(c.model),
		MaxTokens:   c.maxTokens,
		Temperature: anthropic.Float(c.temperature),
		System:      []anthropic.TextBlockParam{{Text: prompt.System()}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(user)),
		},
	})
	if err != nil {
		return nil, classify(err)
	}

	var text strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	return analyzer.ParseResponse([]byte(text.String()))
}

// Health checks that the configured model is reachable with the key.
func (c *Client) Health(ctx context.Context) error {
	if _, err := c.api.Models.Get(ctx, c.model, anthropic.ModelGetParams{}); err != nil {
		return classify(err)
	}
	return nil
}

// classify maps API failures onto the analyzer sentinels.
func classify(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.StatusCode == http.StatusTooManyRequests:
			return fmt.Errorf("%w: %w", analyzer.ErrQuotaExhausted, err)
		case apiErr.StatusCode >= http.StatusInternalServerError:
			return fmt.Errorf("%w: %w", analyzer.ErrUnavailable, err)
		default:
			return fmt.Errorf("anthropic request: %w", err)
		}
	}
	return fmt.Errorf("%w: %w", analyzer.ErrUnavailable, err)
}
