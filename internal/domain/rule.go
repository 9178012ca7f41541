package domain

import "regexp"

// DetectionRule maps text patterns to one category. Rules are built once at
// startup and never mutated.
type DetectionRule struct {
	ID          string
	Category    Category
	Description string
	// Patterns are tried in order; the first hit wins.
	Patterns []*regexp.Regexp
	// NegativePatterns suppress the whole rule when any of them matches.
	NegativePatterns []*regexp.Regexp
	ScoreModifier    int
	Confidence       Confidence
}

// CategoryRelation adds Bonus when both From and To are present in one result.
type CategoryRelation struct {
	From        Category     `json:"from"         yaml:"from"`
	To          Category     `json:"to"           yaml:"to"`
	Type        RelationType `json:"type"         yaml:"type"`
	Bonus       int          `json:"bonus"        yaml:"bonus"`
	Description string       `json:"description"  yaml:"description"`
}

// RuleMatch is one rule firing against one text.
type RuleMatch struct {
	RuleID         string     `json:"rule_id"`
	Category       Category   `json:"category"`
	Confidence     Confidence `json:"confidence"`
	ScoreModifier  int        `json:"score_modifier"`
	MatchedPattern string     `json:"matched_pattern"`
}
