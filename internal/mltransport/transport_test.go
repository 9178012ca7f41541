package mltransport_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/euisuk-chung/gemini-hak-creator-hub/internal/mltransport"
)

func TestDoAnalyze_ReturnsBodyAndLatency(t *testing.T) {
	respBody := []byte(`{"toxicity_score": 10}`)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/analyze" {
			t.Errorf("expected /analyze, got %s", r.URL.Path)
		}
		var req mltransport.AnalyzeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Text != "댓글" {
			t.Errorf("expected text=댓글, got %q", req.Text)
		}
		w.Header().Set("Content-Type", "application/json")
		if _, writeErr := w.Write(respBody); writeErr != nil {
			t.Errorf("write response: %v", writeErr)
		}
	}))
	defer srv.Close()

	data, latencyMs, err := mltransport.DoAnalyze(
		context.Background(), nil, srv.URL, &mltransport.AnalyzeRequest{Text: "댓글"},
	)
	if err != nil {
		t.Fatalf("DoAnalyze returned unexpected error: %v", err)
	}
	if latencyMs < 0 {
		t.Errorf("expected latencyMs >= 0, got %d", latencyMs)
	}
	if string(data) != string(respBody) {
		t.Errorf("expected body %s, got %s", respBody, data)
	}
}

func TestDoAnalyze_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		if _, writeErr := w.Write([]byte("loading model")); writeErr != nil {
			t.Errorf("write response: %v", writeErr)
		}
	}))
	defer srv.Close()

	_, latencyMs, err := mltransport.DoAnalyze(
		context.Background(), nil, srv.URL, &mltransport.AnalyzeRequest{Text: "x"},
	)
	var statusErr *mltransport.StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if statusErr.Code != http.StatusServiceUnavailable || statusErr.Body != "loading model" {
		t.Errorf("unexpected status error: %+v", statusErr)
	}
	if latencyMs < 0 {
		t.Errorf("expected latencyMs >= 0 even on error, got %d", latencyMs)
	}
}

func TestDoHealth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok","model_version":"kcbert-toxic-1"}`))
	}))
	defer srv.Close()

	reachable, _, version, err := mltransport.DoHealth(context.Background(), nil, srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reachable {
		t.Error("expected reachable")
	}
	if version != "kcbert-toxic-1" {
		t.Errorf("expected model version kcbert-toxic-1, got %q", version)
	}
}

func TestDoHealth_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	reachable, _, _, err := mltransport.DoHealth(context.Background(), nil, url)
	if err == nil {
		t.Fatal("expected error for closed server")
	}
	if reachable {
		t.Error("expected unreachable")
	}
}
