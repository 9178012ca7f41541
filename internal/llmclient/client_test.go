package llmclient_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/euisuk-chung/gemini-hak-creator-hub/internal/analyzer"
	"github.com/euisuk-chung/gemini-hak-creator-hub/internal/domain"
	"github.com/euisuk-chung/gemini-hak-creator-hub/internal/llmclient"
)

type capturedRequest struct {
	Model       string   `json:"model"`
	MaxTokens   int64    `json:"max_tokens"`
	Temperature *float64 `json:"temperature"`
	System      []struct {
		Text string `json:"text"`
	} `json:"system"`
	Messages []struct {
		Role    string `json:"role"`
		Content []struct {
			Text string `json:"text"`
		} `json:"content"`
	} `json:"messages"`
}

func messageResponse(text string) map[string]any {
	return map[string]any{
		"id":            "msg_test",
		"type":          "message",
		"role":          "assistant",
		"model":         "claude-test",
		"content":       []map[string]any{{"type": "text", "text": text}},
		"stop_reason":   "end_turn",
		"stop_sequence": nil,
		"usage":         map[string]any{"input_tokens": 10, "output_tokens": 20},
	}
}

func newClient(t *testing.T, srv *httptest.Server) *llmclient.Client {
	t.Helper()
	c, err := llmclient.New(llmclient.Config{
		APIKey:  "test-key",
		BaseURL: srv.URL,
		Model:   "claude-test",
	})
	require.NoError(t, err)
	return c
}

func TestAnalyze(t *testing.T) {
	t.Parallel()

	var captured capturedRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		reply := "```json\n{\"toxicity_score\": 82, \"toxicity_level\": \"critical\", " +
			"\"categories\": [\"PROFANITY\", \"THREAT\"], \"explanation\": \"욕설과 위협\", \"suggestion\": null}\n```"
		w.Header().Set("Content-Type", "application/json")
		assert.NoError(t, json.NewEncoder(w).Encode(messageResponse(reply)))
	}))
	defer srv.Close()

	c := newClient(t, srv)
	got, err := c.Analyze(context.Background(), analyzer.Request{
		CommentID:      "c1",
		Text:           "시발 죽어",
		VideoTitle:     "브이로그",
		RuleCategories: []domain.Category{domain.CategoryProfanity},
	})
	require.NoError(t, err)

	assert.Equal(t, 82, got.Score)
	assert.Equal(t, domain.LevelCritical, got.Level)
	assert.Equal(t, []domain.Category{domain.CategoryProfanity, domain.CategoryThreat}, got.Categories)
	assert.Equal(t, "욕설과 위협", got.Explanation)
	assert.Nil(t, got.Suggestion)

	assert.Equal(t, "claude-test", captured.Model)
	assert.Equal(t, int64(1024), captured.MaxTokens)
	require.NotNil(t, captured.Temperature)
	assert.InDelta(t, 0.3, *captured.Temperature, 1e-9)
	require.Len(t, captured.System, 1)
	assert.Contains(t, captured.System[0].Text, "toxicity_score")
	require.Len(t, captured.Messages, 1)
	assert.Equal(t, "user", captured.Messages[0].Role)
	require.Len(t, captured.Messages[0].Content, 1)
	user := captured.Messages[0].Content[0].Text
	assert.Contains(t, user, "영상 제목: 브이로그")
	assert.Contains(t, user, "Rule 엔진 사전 탐지: PROFANITY")
	assert.Contains(t, user, "시발 죽어")
}

func TestAnalyze_ZeroTemperature(t *testing.T) {
	t.Parallel()

	var captured capturedRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Header().Set("Content-Type", "application/json")
		assert.NoError(t, json.NewEncoder(w).Encode(messageResponse(`{"toxicity_score": 5, "categories": []}`)))
	}))
	defer srv.Close()

	zero := 0.0
	c, err := llmclient.New(llmclient.Config{
		APIKey:      "test-key",
		BaseURL:     srv.URL,
		Model:       "claude-test",
		Temperature: &zero,
	})
	require.NoError(t, err)

	_, err = c.Analyze(context.Background(), analyzer.Request{CommentID: "c1", Text: "좋아요"})
	require.NoError(t, err)
	require.NotNil(t, captured.Temperature)
	assert.InDelta(t, 0, *captured.Temperature, 1e-9)
}

func TestAnalyze_ErrorMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		want   error
	}{
		{name: "rate limited", status: http.StatusTooManyRequests, want: analyzer.ErrQuotaExhausted},
		{name: "server error", status: http.StatusInternalServerError, want: analyzer.ErrUnavailable},
		{name: "overloaded", status: 529, want: analyzer.ErrUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(`{"type":"error","error":{"type":"api_error","message":"nope"}}`))
			}))
			defer srv.Close()

			_, err := newClient(t, srv).Analyze(context.Background(), analyzer.Request{Text: "x"})
			require.ErrorIs(t, err, tt.want)
			assert.True(t, analyzer.IsTransient(err))
		})
	}
}

func TestAnalyze_BadRequestIsPermanent(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"type":"error","error":{"type":"invalid_request_error","message":"bad"}}`))
	}))
	defer srv.Close()

	_, err := newClient(t, srv).Analyze(context.Background(), analyzer.Request{Text: "x"})
	require.Error(t, err)
	assert.False(t, analyzer.IsTransient(err))
}

func TestAnalyze_UnparseableReply(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(messageResponse("분석할 수 없습니다."))
	}))
	defer srv.Close()

	_, err := newClient(t, srv).Analyze(context.Background(), analyzer.Request{Text: "x"})
	require.ErrorIs(t, err, analyzer.ErrInvalidResponse)
}

func TestHealth(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/models/claude-test", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"claude-test","type":"model","display_name":"Test","created_at":"2025-01-01T00:00:00Z"}`))
	}))
	defer srv.Close()

	c := newClient(t, srv)
	require.NoError(t, c.Health(context.Background()))
	assert.Equal(t, "anthropic:claude-test", c.Name())
}

func TestNew_RequiresKey(t *testing.T) {
	t.Parallel()

	_, err := llmclient.New(llmclient.Config{})
	require.ErrorIs(t, err, llmclient.ErrMissingAPIKey)
}
