package classifier

import "github.com/euisuk-chung/gemini-hak-creator-hub/internal/domain"

const (
	// ToxicThreshold is the engine's fixed isToxic cut-off. It is unrelated
	// to the configurable pre-screen threshold.
	ToxicThreshold = 30

	perExtraCategoryBonus = 5
	maxCategoryCountBonus = 15
)

// Score folds matches into one AnalysisResult. The relation bonus and the
// category-count bonus are alternatives; the larger one applies.
func Score(matches []domain.RuleMatch, relations []domain.CategoryRelation) domain.AnalysisResult {
	result := domain.AnalysisResult{
		MatchedCategories: []domain.Category{},
		MatchedPatterns:   []string{},
		MatchedRuleIDs:    []string{},
	}
	if len(matches) == 0 {
		return result
	}

	base := 0
	for _, m := range matches {
		base = max(base, m.ScoreModifier)
		result.MatchedCategories = appendUnique(result.MatchedCategories, m.Category)
		result.MatchedPatterns = appendUnique(result.MatchedPatterns, m.MatchedPattern)
		result.MatchedRuleIDs = appendUnique(result.MatchedRuleIDs, m.RuleID)
	}

	bonus := max(RelationBonus(result.MatchedCategories, relations), countBonus(len(result.MatchedCategories)))

	result.ToxicityScore = clampScore(base + bonus)
	result.IsToxic = result.ToxicityScore >= ToxicThreshold
	return result
}

// RelationBonus sums the bonus of every relation whose endpoints are both in
// categories.
func RelationBonus(categories []domain.Category, relations []domain.CategoryRelation) int {
	total := 0
	for _, r := range relations {
		if contains(categories, r.From) && contains(categories, r.To) {
			total += r.Bonus
		}
	}
	return total
}

func countBonus(n int) int {
	if n <= 1 {
		return 0
	}
	return min((n-1)*perExtraCategoryBonus, maxCategoryCountBonus)
}

func clampScore(s int) int {
	return min(max(s, 0), maxScore)
}

func contains[T comparable](s []T, v T) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}

func appendUnique[T comparable](s []T, v T) []T {
	if contains(s, v) {
		return s
	}
	return append(s, v)
}
