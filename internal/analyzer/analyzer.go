// Package analyzer defines the external toxicity analyzer consulted for
// comments the rule layer cannot clear on its own, plus the guard that
// bounds every call to it.
package analyzer

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"

	"github.com/euisuk-chung/gemini-hak-creator-hub/internal/domain"
	"github.com/euisuk-chung/gemini-hak-creator-hub/internal/ontology"
	"github.com/euisuk-chung/gemini-hak-creator-hub/internal/prompt"
)

var (
	// ErrUnavailable indicates the analyzer could not be reached.
	ErrUnavailable = errors.New("analyzer unavailable")
	// ErrQuotaExhausted indicates the analyzer rejected the call for rate or quota reasons.
	ErrQuotaExhausted = errors.New("analyzer quota exhausted")
	// ErrInvalidResponse indicates the analyzer replied with something unusable.
	ErrInvalidResponse = errors.New("invalid analyzer response")
)

// Request is one comment submitted for external analysis.
type Request struct {
	CommentID      string
	Text           string
	VideoTitle     string
	Transcript     string
	RuleCategories []domain.Category
	Evidence       []ontology.Evidence
}

// Analyzer produces an external judgment for one comment. A nil result
// with a nil error means the analyzer has nothing to say about the comment.
type Analyzer interface {
	Analyze(ctx context.Context, req Request) (*domain.ExternalAnalysis, error)
	Health(ctx context.Context) error
	Name() string
}

// Nop never produces a judgment. It is used when no analyzer is configured
// and every comment resolves through the rule layer.
type Nop struct{}

func (Nop) Analyze(context.Context, Request) (*domain.ExternalAnalysis, error) { return nil, nil }
func (Nop) Health(context.Context) error                                       { return nil }
func (Nop) Name() string                                                       { return "none" }

// Enabled reports whether a is a real analyzer.
func Enabled(a Analyzer) bool {
	if a == nil {
		return false
	}
	_, nop := a.(Nop)
	return !nop
}

// CacheKey identifies a request for result caching. It covers the analyzer
// name and the inputs that shape the prompt text.
func CacheKey(analyzerName string, req Request) string {
	h := sha256.New()
	for _, part := range []string{
		analyzerName,
		req.Text,
		req.VideoTitle,
		prompt.SampleTranscript(req.Transcript, prompt.DefaultMaxTranscript),
	} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}
