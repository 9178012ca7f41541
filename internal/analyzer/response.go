package analyzer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/euisuk-chung/gemini-hak-creator-hub/internal/classifier"
	"github.com/euisuk-chung/gemini-hak-creator-hub/internal/domain"
)

// wireResult is the JSON object analyzers are asked to return.
type wireResult struct {
	Score       json.RawMessage `json:"toxicity_score"`
	Level       string          `json:"toxicity_level"`
	Categories  []string        `json:"categories"`
	Explanation string          `json:"explanation"`
	Suggestion  *string         `json:"suggestion"`
}

// ParseResponse decodes an analyzer reply. It tolerates markdown code
// fences and prose around the JSON object, scores sent as numeric strings,
// and unknown category names, which are dropped. The score is clamped to
// [0,100] and a missing or unknown level is derived from it.
func ParseResponse(raw []byte) (*domain.ExternalAnalysis, error) {
	obj := extractObject(raw)
	if obj == nil {
		return nil, fmt.Errorf("%w: no JSON object in reply", ErrInvalidResponse)
	}

	var w wireResult
	if err := json.Unmarshal(obj, &w); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidResponse, err)
	}

	score, err := parseScore(w.Score)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidResponse, err)
	}

	level, ok := domain.ParseLevel(w.Level)
	if !ok {
		level = classifier.LevelFor(score)
	}

	categories := make([]domain.Category, 0, len(w.Categories))
	for _, name := range w.Categories {
		c, known := domain.ParseCategory(name)
		if !known || containsCategory(categories, c) {
			continue
		}
		categories = append(categories, c)
	}

	var suggestion *string
	if w.Suggestion != nil {
		if s := strings.TrimSpace(*w.Suggestion); s != "" && !strings.EqualFold(s, "null") {
			suggestion = &s
		}
	}

	return &domain.ExternalAnalysis{
		Score:       score,
		Level:       level,
		Categories:  categories,
		Explanation: strings.TrimSpace(w.Explanation),
		Suggestion:  suggestion,
	}, nil
}

func extractObject(raw []byte) []byte {
	start := bytes.IndexByte(raw, '{')
	end := bytes.LastIndexByte(raw, '}')
	if start < 0 || end <= start {
		return nil
	}
	return raw[start : end+1]
}

func parseScore(raw json.RawMessage) (int, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return 0, errors.New("missing toxicity_score")
	}

	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		var s string
		if strErr := json.Unmarshal(raw, &s); strErr != nil {
			return 0, fmt.Errorf("toxicity_score: %w", err)
		}
		parsed, parseErr := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if parseErr != nil {
			return 0, fmt.Errorf("toxicity_score %q: %w", s, parseErr)
		}
		f = parsed
	}
	if math.IsNaN(f) {
		return 0, errors.New("toxicity_score is NaN")
	}
	return int(math.Max(0, math.Min(100, math.Round(f)))), nil
}

func containsCategory(list []domain.Category, c domain.Category) bool {
	for _, v := range list {
		if v == c {
			return true
		}
	}
	return false
}
