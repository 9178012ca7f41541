package classifier

import (
	"math"

	"github.com/euisuk-chung/gemini-hak-creator-hub/internal/domain"
)

const (
	externalWeight = 0.7
	ruleWeight     = 0.3

	// DefaultFloorMargin is how far below the external score the final score
	// may fall.
	DefaultFloorMargin = 10

	failureNotePrefix = "LLM 분석 실패: "
)

// MergeOptions tunes the cross-validation merge.
type MergeOptions struct {
	FloorMargin int
}

// DefaultMergeOptions returns the production settings.
func DefaultMergeOptions() MergeOptions {
	return MergeOptions{FloorMargin: DefaultFloorMargin}
}

// FailureNote formats an analyzer failure for the explanation of a rule-only
// verdict. A nil error yields "".
func FailureNote(err error) string {
	if err == nil {
		return ""
	}
	return failureNotePrefix + err.Error()
}

// Merge reconciles the rule verdict with the external one into the final
// record for item. A nil external takes the rule-only path, with failureNote
// as the explanation.
func Merge(
	item domain.Comment,
	rule domain.AnalysisResult,
	external *domain.ExternalAnalysis,
	failureNote string,
	opts MergeOptions,
) domain.TaggedComment {
	tagged := domain.TaggedComment{Comment: item}

	if external == nil {
		tagged.Score = clampScore(rule.ToxicityScore)
		tagged.Categories = unionCategories(nil, rule.MatchedCategories)
		tagged.Explanation = failureNote
		tagged.AnalysisSource = domain.SourceRuleOnly
		tagged.Level = LevelFor(tagged.Score)
		return tagged
	}

	ext := clampScore(external.Score)
	tagged.Score = clampScore(max(blend(ext, clampScore(rule.ToxicityScore)), ext-opts.FloorMargin))
	tagged.Categories = unionCategories(external.Categories, rule.MatchedCategories)
	tagged.Explanation = external.Explanation
	if external.Suggestion != nil {
		s := *external.Suggestion
		tagged.Suggestion = &s
	}
	tagged.AnalysisSource = domain.SourceLLMPlusRule
	tagged.Level = LevelFor(tagged.Score)
	return tagged
}

// blend rounds half to even. Each product is converted explicitly so the
// compiler cannot fuse the multiply-add and shift a result across a .5 tie.
func blend(external, rule int) int {
	e := float64(float64(external) * externalWeight)
	r := float64(float64(rule) * ruleWeight)
	return int(math.RoundToEven(e + r))
}

// unionCategories keeps first occurrences, first's entries ahead of second's.
func unionCategories(first, second []domain.Category) []domain.Category {
	out := make([]domain.Category, 0, len(first)+len(second))
	for _, c := range first {
		out = appendUnique(out, c)
	}
	for _, c := range second {
		out = appendUnique(out, c)
	}
	return out
}
