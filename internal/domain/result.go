package domain

// AnalysisResult is the rule layer's verdict for one text. Collections are
// ordered by first occurrence and never contain duplicates.
type AnalysisResult struct {
	ToxicityScore     int        `json:"toxicity_score"`
	MatchedCategories []Category `json:"matched_categories"`
	MatchedPatterns   []string   `json:"matched_patterns"`
	MatchedRuleIDs    []string   `json:"matched_rules"`
	IsToxic           bool       `json:"is_toxic"`
}

// ExternalAnalysis is the external analyzer's judgment. A nil pointer means
// the analyzer failed or was never asked.
type ExternalAnalysis struct {
	Score       int        `json:"toxicity_score"`
	Level       Level      `json:"toxicity_level,omitempty"`
	Categories  []Category `json:"categories"`
	Explanation string     `json:"explanation"`
	Suggestion  *string    `json:"suggestion,omitempty"`
}
