// Package mltransport provides the HTTP transport shared by toxicity model
// sidecars: POST /analyze and GET /health.
package mltransport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultTimeout  = 10 * time.Second
	maxResponseSize = 1 << 20
)

// AnalyzeRequest is the request body for POST /analyze.
type AnalyzeRequest struct {
	CommentID      string   `json:"comment_id,omitempty"`
	Text           string   `json:"text"`
	VideoTitle     string   `json:"video_title,omitempty"`
	Transcript     string   `json:"transcript,omitempty"`
	RuleCategories []string `json:"rule_categories,omitempty"`
	Evidence       []string `json:"evidence,omitempty"`
}

// StatusError reports a non-200 reply from the sidecar.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("ml service returned %d", e.Code)
	}
	return fmt.Sprintf("ml service returned %d: %s", e.Code, e.Body)
}

// healthResponse is the JSON shape returned by GET /health (model_version optional).
type healthResponse struct {
	ModelVersion string `json:"model_version"`
}

// DoAnalyze sends POST /analyze and returns the raw response body and the
// round-trip latency. Latency is reported even when the call fails.
func DoAnalyze(ctx context.Context, client *http.Client, baseURL string, req *AnalyzeRequest) ([]byte, int64, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, 0, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/analyze", bytes.NewReader(body))
	if err != nil {
		return nil, 0, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := httpClient(client).Do(httpReq)
	if err != nil {
		return nil, time.Since(start).Milliseconds(), fmt.Errorf("http request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	latencyMs := time.Since(start).Milliseconds()
	if resp.StatusCode != http.StatusOK {
		return nil, latencyMs, &StatusError{Code: resp.StatusCode, Body: string(bytes.TrimSpace(data))}
	}
	if readErr != nil {
		return nil, latencyMs, fmt.Errorf("read response: %w", readErr)
	}
	return data, latencyMs, nil
}

// DoHealth calls GET /health at baseURL and returns reachable, latencyMs, model_version, and any error.
func DoHealth(ctx context.Context, client *http.Client, baseURL string) (reachable bool, latencyMs int64, modelVersion string, err error) {
	start := time.Now()

	httpReq, reqErr := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/health", http.NoBody)
	if reqErr != nil {
		return false, 0, "", fmt.Errorf("create request: %w", reqErr)
	}

	resp, doErr := httpClient(client).Do(httpReq)
	latencyMs = time.Since(start).Milliseconds()
	if doErr != nil {
		return false, latencyMs, "", fmt.Errorf("service unreachable: %w", doErr)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return true, latencyMs, "", &StatusError{Code: resp.StatusCode}
	}

	var healthResp healthResponse
	if decodeErr := json.NewDecoder(resp.Body).Decode(&healthResp); decodeErr == nil {
		modelVersion = healthResp.ModelVersion
	}
	return true, latencyMs, modelVersion, nil
}

func httpClient(c *http.Client) *http.Client {
	if c != nil {
		return c
	}
	return &http.Client{Timeout: defaultTimeout}
}
