//nolint:testpackage // Testing internal client requires same package access
package mlclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/euisuk-chung/gemini-hak-creator-hub/internal/analyzer"
	"github.com/euisuk-chung/gemini-hak-creator-hub/internal/domain"
	"github.com/euisuk-chung/gemini-hak-creator-hub/internal/mltransport"
	"github.com/euisuk-chung/gemini-hak-creator-hub/internal/ontology"
)

func TestClient_Analyze(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/analyze" {
			t.Errorf("expected /analyze, got %s", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}

		var req mltransport.AnalyzeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if len(req.RuleCategories) != 1 || req.RuleCategories[0] != "PERSONAL_ATTACK" {
			t.Errorf("unexpected rule categories %v", req.RuleCategories)
		}
		if len(req.Evidence) != 1 || req.Evidence[0] != "관종" {
			t.Errorf("unexpected evidence %v", req.Evidence)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"toxicity_score": 0.64e2, "categories": ["PERSONAL_ATTACK", "OTHER"], "explanation": "인신공격"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 0)
	result, err := client.Analyze(context.Background(), analyzer.Request{
		CommentID:      "c1",
		Text:           "관종이네",
		RuleCategories: []domain.Category{domain.CategoryPersonalAttack},
		Evidence:       []ontology.Evidence{{Category: domain.CategoryPersonalAttack, Indicator: "관종"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Score != 64 {
		t.Errorf("expected score 64, got %d", result.Score)
	}
	if result.Level != domain.LevelSevere {
		t.Errorf("expected level severe, got %s", result.Level)
	}
	if len(result.Categories) != 1 || result.Categories[0] != domain.CategoryPersonalAttack {
		t.Errorf("unexpected categories %v", result.Categories)
	}
}

func TestClient_AnalyzeErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{name: "quota", status: http.StatusTooManyRequests, want: analyzer.ErrQuotaExhausted},
		{name: "unavailable", status: http.StatusBadGateway, want: analyzer.ErrUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			_, err := NewClient(server.URL, 0).Analyze(context.Background(), analyzer.Request{Text: "x"})
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestClient_Health(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			t.Errorf("expected /health, got %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	if err := NewClient(server.URL, 0).Health(context.Background()); err != nil {
		t.Errorf("expected healthy, got %v", err)
	}
}

func TestClient_HealthUnavailable(t *testing.T) {
	client := NewClient("http://localhost:99999", 0)

	err := client.Health(context.Background())
	if !errors.Is(err, analyzer.ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
}
