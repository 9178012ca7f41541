package processor

import "github.com/euisuk-chung/gemini-hak-creator-hub/internal/domain"

// DefaultPrescreenThreshold is the rule score below which a comment with no
// matched category skips the external analyzer.
const DefaultPrescreenThreshold = 20

// PreScreen reports whether the rule result alone is enough to call the
// comment safe. It is independent of the isToxic threshold.
func PreScreen(result domain.AnalysisResult, threshold int) bool {
	return result.ToxicityScore < threshold && len(result.MatchedCategories) == 0
}
