// Package mlclient implements the external analyzer against a self-hosted
// toxicity model sidecar.
package mlclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/euisuk-chung/gemini-hak-creator-hub/internal/analyzer"
	"github.com/euisuk-chung/gemini-hak-creator-hub/internal/domain"
	"github.com/euisuk-chung/gemini-hak-creator-hub/internal/mltransport"
	"github.com/euisuk-chung/gemini-hak-creator-hub/internal/prompt"
)

// Client is an HTTP client for the toxicity model sidecar.
type Client struct {
	baseURL       string
	http          *http.Client
	maxTranscript int
}

var _ analyzer.Analyzer = (*Client)(nil)

// NewClient creates a new sidecar client. A zero timeout uses the transport default.
func NewClient(baseURL string, timeout time.Duration) *Client {
	c := &Client{baseURL: baseURL, maxTranscript: prompt.DefaultMaxTranscript}
	if timeout > 0 {
		c.http = &http.Client{Timeout: timeout}
	}
	return c
}

// Name identifies the analyzer in metrics and cache keys.
func (c *Client) Name() string { return "sidecar" }

// Analyze sends one comment to the sidecar.
func (c *Client) Analyze(ctx context.Context, req analyzer.Request) (*domain.ExternalAnalysis, error) {
	body := &mltransport.AnalyzeRequest{
		CommentID:  req.CommentID,
		Text:       req.Text,
		VideoTitle: req.VideoTitle,
		Transcript: prompt.SampleTranscript(req.Transcript, c.maxTranscript),
	}
	for _, cat := range req.RuleCategories {
		body.RuleCategories = append(body.RuleCategories, string(cat))
	}
	for _, ev := range req.Evidence {
		body.Evidence = append(body.Evidence, ev.Indicator)
	}

	data, _, err := mltransport.DoAnalyze(ctx, c.http, c.baseURL, body)
	if err != nil {
		return nil, fmt.Errorf("analyze: %w", classify(err))
	}
	return analyzer.ParseResponse(data)
}

// Health checks if the sidecar is healthy.
func (c *Client) Health(ctx context.Context) error {
	reachable, _, _, err := mltransport.DoHealth(ctx, c.http, c.baseURL)
	if err != nil {
		if !reachable {
			return fmt.Errorf("%w: %w", analyzer.ErrUnavailable, err)
		}
		return err
	}
	return nil
}

func classify(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	var statusErr *mltransport.StatusError
	if errors.As(err, &statusErr) {
		switch {
		case statusErr.Code == http.StatusTooManyRequests:
			return fmt.Errorf("%w: %w", analyzer.ErrQuotaExhausted, err)
		case statusErr.Code >= http.StatusInternalServerError:
			return fmt.Errorf("%w: %w", analyzer.ErrUnavailable, err)
		default:
			return err
		}
	}
	return fmt.Errorf("%w: %w", analyzer.ErrUnavailable, err)
}
