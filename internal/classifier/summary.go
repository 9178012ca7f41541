package classifier

import (
	"strconv"

	"github.com/euisuk-chung/gemini-hak-creator-hub/internal/domain"
)

// Summarize aggregates tagged comments. stats supplies the routing counts;
// its SkipRatio is recomputed. Item scores are clamped to [0,100] before
// aggregation. Zero items yield zero percentages.
func Summarize(items []domain.TaggedComment, stats domain.PipelineStats) domain.Summary {
	s := domain.Summary{
		TotalComments:        len(items),
		CategoryDistribution: make(map[domain.Category]int),
		LevelDistribution:    make(map[domain.Level]int, len(domain.AllLevels())),
		PipelineStats: domain.PipelineStats{
			RuleSkipped:   stats.RuleSkipped,
			LLMAnalyzed:   stats.LLMAnalyzed,
			AnalyzerCalls: stats.AnalyzerCalls,
		},
	}
	for _, l := range domain.AllLevels() {
		s.LevelDistribution[l] = 0
	}

	sum := 0
	for _, item := range items {
		score := clampScore(item.Score)
		sum += score
		if score >= ToxicThreshold {
			s.ToxicComments++
		}
		s.LevelDistribution[LevelFor(score)]++
		for _, c := range item.Categories {
			s.CategoryDistribution[c]++
		}
	}
	s.CleanComments = s.TotalComments - s.ToxicComments

	if s.TotalComments == 0 {
		return s
	}

	total := float64(s.TotalComments)
	s.ToxicPercentage = round1(float64(s.ToxicComments) / total * 100)
	s.CleanPercentage = round1(float64(s.CleanComments) / total * 100)
	s.AverageToxicityScore = round1(float64(sum) / total)
	s.PipelineStats.SkipRatio = round1(float64(stats.RuleSkipped) / total * 100)
	return s
}

// round1 rounds to one decimal place using the exact binary value, ties to
// even, so 0.35 (stored just below) becomes 0.3.
func round1(x float64) float64 {
	v, err := strconv.ParseFloat(strconv.FormatFloat(x, 'f', 1, 64), 64)
	if err != nil {
		return x
	}
	return v
}
