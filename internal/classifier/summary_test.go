package classifier_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/euisuk-chung/gemini-hak-creator-hub/internal/classifier"
	"github.com/euisuk-chung/gemini-hak-creator-hub/internal/domain"
)

func tagged(score int, cats ...domain.Category) domain.TaggedComment {
	return domain.TaggedComment{Score: score, Level: classifier.LevelFor(score), Categories: cats}
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	items := []domain.TaggedComment{
		tagged(10),
		tagged(35, domain.CategoryMockery),
		tagged(85, domain.CategoryProfanity, domain.CategoryMockery),
	}
	got := classifier.Summarize(items, domain.PipelineStats{RuleSkipped: 2, LLMAnalyzed: 1, AnalyzerCalls: 1})

	assert.Equal(t, 3, got.TotalComments)
	assert.Equal(t, 2, got.ToxicComments)
	assert.InDelta(t, 66.7, got.ToxicPercentage, 1e-9)
	assert.Equal(t, 1, got.CleanComments)
	assert.InDelta(t, 33.3, got.CleanPercentage, 1e-9)
	assert.InDelta(t, 43.3, got.AverageToxicityScore, 1e-9)

	assert.Equal(t, map[domain.Category]int{
		domain.CategoryMockery:   2,
		domain.CategoryProfanity: 1,
	}, got.CategoryDistribution)
	assert.Equal(t, map[domain.Level]int{
		domain.LevelSafe:     1,
		domain.LevelMild:     1,
		domain.LevelModerate: 0,
		domain.LevelSevere:   0,
		domain.LevelCritical: 1,
	}, got.LevelDistribution)

	assert.Equal(t, 2, got.PipelineStats.RuleSkipped)
	assert.Equal(t, 1, got.PipelineStats.LLMAnalyzed)
	assert.Equal(t, 1, got.PipelineStats.AnalyzerCalls)
	assert.InDelta(t, 66.7, got.PipelineStats.SkipRatio, 1e-9)
}

func TestSummarize_ClampsOutOfRangeScores(t *testing.T) {
	t.Parallel()

	got := classifier.Summarize([]domain.TaggedComment{tagged(150), tagged(-20)}, domain.PipelineStats{})

	assert.InDelta(t, 50.0, got.AverageToxicityScore, 1e-9)
	assert.Equal(t, 1, got.ToxicComments)
	assert.Equal(t, 1, got.LevelDistribution[domain.LevelCritical])
	assert.Equal(t, 1, got.LevelDistribution[domain.LevelSafe])
}

func TestSummarize_Empty(t *testing.T) {
	t.Parallel()

	got := classifier.Summarize(nil, domain.PipelineStats{})

	assert.Zero(t, got.TotalComments)
	assert.Zero(t, got.ToxicPercentage)
	assert.Zero(t, got.AverageToxicityScore)
	assert.Zero(t, got.PipelineStats.SkipRatio)
	assert.Empty(t, got.CategoryDistribution)
	assert.Len(t, got.LevelDistribution, 5)
	for _, l := range domain.AllLevels() {
		assert.Zero(t, got.LevelDistribution[l])
	}
}

func TestSummarize_ThresholdBoundary(t *testing.T) {
	t.Parallel()

	got := classifier.Summarize([]domain.TaggedComment{tagged(29), tagged(30)}, domain.PipelineStats{})
	assert.Equal(t, 1, got.ToxicComments)
	assert.InDelta(t, 50.0, got.ToxicPercentage, 1e-9)
	assert.InDelta(t, 29.5, got.AverageToxicityScore, 1e-9)
}
