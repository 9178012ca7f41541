package classifier

import "github.com/euisuk-chung/gemini-hak-creator-hub/internal/domain"

// Classify evaluates every rule of c against text, in catalog order, and
// returns at most one match per rule. It has no side effects.
func Classify(c *Catalog, text string) []domain.RuleMatch {
	var matches []domain.RuleMatch
	for i := range c.rules {
		rule := &c.rules[i]
		if suppressed(rule, text) {
			continue
		}
		if m, ok := firstMatch(rule, text); ok {
			matches = append(matches, m)
		}
	}
	return matches
}

// suppressed reports whether any negative pattern matches. A suppressed rule
// is skipped entirely, whatever its positive patterns would say.
func suppressed(rule *domain.DetectionRule, text string) bool {
	for _, neg := range rule.NegativePatterns {
		if neg.MatchString(text) {
			return true
		}
	}
	return false
}

// firstMatch scans positive patterns in declaration order and stops at the
// first hit.
func firstMatch(rule *domain.DetectionRule, text string) (domain.RuleMatch, bool) {
	for _, p := range rule.Patterns {
		loc := p.FindStringIndex(text)
		if loc == nil {
			continue
		}
		return domain.RuleMatch{
			RuleID:         rule.ID,
			Category:       rule.Category,
			Confidence:     rule.Confidence,
			ScoreModifier:  rule.ScoreModifier,
			MatchedPattern: text[loc[0]:loc[1]],
		}, true
	}
	return domain.RuleMatch{}, false
}
