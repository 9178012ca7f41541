package api

import (
	"encoding/json"

	"github.com/euisuk-chung/gemini-hak-creator-hub/internal/domain"
	"github.com/euisuk-chung/gemini-hak-creator-hub/internal/ontology"
)

// AnalyzeRequest is the body of POST /api/v1/analyze.
type AnalyzeRequest struct {
	VideoID    string           `json:"video_id"`
	VideoTitle string           `json:"video_title"`
	Transcript string           `json:"transcript"`
	Comments   []domain.Comment `json:"comments"`
}

// AnalyzeResponse is the tagged result of one video's comments.
type AnalyzeResponse struct {
	VideoID          string                 `json:"video_id"`
	TranscriptLength int                    `json:"transcript_length"`
	TotalComments    int                    `json:"total_comments"`
	TaggedComments   []domain.TaggedComment `json:"tagged_comments"`
	Summary          domain.Summary         `json:"summary"`
}

// AnalyzeCommentRequest is the body of POST /api/v1/analyze/comment.
type AnalyzeCommentRequest struct {
	CommentText string `json:"comment_text"`
	Transcript  string `json:"transcript"`
	VideoTitle  string `json:"video_title"`
}

// AnalyzeCommentResponse wraps a single tagged comment.
type AnalyzeCommentResponse struct {
	TaggedComment domain.TaggedComment `json:"tagged_comment"`
}

// ClassifyRequest is the body of POST /api/v1/classify.
type ClassifyRequest struct {
	Text string `json:"text"`
}

// ClassifyResponse is the rule layer's verdict with the individual matches.
type ClassifyResponse struct {
	Result  domain.AnalysisResult `json:"result"`
	Level   domain.Level          `json:"level"`
	Matches []domain.RuleMatch    `json:"matches"`
}

// MergeRequest is the body of POST /api/v1/merge. External is decoded the
// way analyzer replies are: numeric-string scores are coerced, scores are
// clamped and unknown categories dropped. A missing or null external verdict
// takes the rule-only path.
type MergeRequest struct {
	Comment     domain.Comment        `json:"comment"`
	RuleResult  domain.AnalysisResult `json:"rule_result"`
	External    json.RawMessage       `json:"external,omitempty"`
	FailureNote string                `json:"failure_note"`
}

// SummarizeRequest is the body of POST /api/v1/summarize.
type SummarizeRequest struct {
	TaggedComments []domain.TaggedComment `json:"tagged_comments"`
	PipelineStats  domain.PipelineStats   `json:"pipeline_stats"`
}

// RuleResponse is the read-only view of one detection rule.
type RuleResponse struct {
	ID               string            `json:"id"`
	Category         domain.Category   `json:"category"`
	Description      string            `json:"description"`
	Patterns         []string          `json:"patterns"`
	NegativePatterns []string          `json:"negative_patterns,omitempty"`
	ScoreModifier    int               `json:"score_modifier"`
	Confidence       domain.Confidence `json:"confidence"`
}

// RulesListResponse lists the catalog's rules.
type RulesListResponse struct {
	Rules []RuleResponse `json:"rules"`
	Total int            `json:"total"`
}

// RelationsListResponse lists the catalog's category relations.
type RelationsListResponse struct {
	Relations []domain.CategoryRelation `json:"relations"`
	Total     int                       `json:"total"`
}

// OntologyResponse lists the category ontology.
type OntologyResponse struct {
	Nodes []ontology.Node `json:"nodes"`
	Total int             `json:"total"`
}

// AnalyzerHealthResponse reports whether the external analyzer is usable.
type AnalyzerHealthResponse struct {
	Analyzer     string `json:"analyzer"`
	Enabled      bool   `json:"enabled"`
	Status       string `json:"status"`
	CircuitState string `json:"circuit_state,omitempty"`
	Error        string `json:"error,omitempty"`
}

func toRuleResponse(rule domain.DetectionRule) RuleResponse {
	resp := RuleResponse{
		ID:            rule.ID,
		Category:      rule.Category,
		Description:   rule.Description,
		Patterns:      make([]string, len(rule.Patterns)),
		ScoreModifier: rule.ScoreModifier,
		Confidence:    rule.Confidence,
	}
	for i, p := range rule.Patterns {
		resp.Patterns[i] = p.String()
	}
	for _, p := range rule.NegativePatterns {
		resp.NegativePatterns = append(resp.NegativePatterns, p.String())
	}
	return resp
}
