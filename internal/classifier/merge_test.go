package classifier_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/euisuk-chung/gemini-hak-creator-hub/internal/classifier"
	"github.com/euisuk-chung/gemini-hak-creator-hub/internal/domain"
)

var testComment = domain.Comment{
	CommentID:   "c-1",
	Author:      "viewer",
	Text:        "텍스트",
	PublishedAt: "2026-01-02T03:04:05Z",
	LikeCount:   7,
}

func ruleResult(score int, cats ...domain.Category) domain.AnalysisResult {
	return domain.AnalysisResult{
		ToxicityScore:     score,
		MatchedCategories: cats,
		IsToxic:           score >= classifier.ToxicThreshold,
	}
}

func strPtr(s string) *string { return &s }

func TestMerge_Scores(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		external int
		rule     int
		margin   int
		want     int
	}{
		{name: "external floor holds", external: 90, rule: 0, margin: 10, want: 80},
		{name: "blend wins when rules agree", external: 60, rule: 90, margin: 10, want: 69},
		{name: "ceiling", external: 100, rule: 100, margin: 10, want: 100},
		{name: "both zero", external: 0, rule: 0, margin: 10, want: 0},
		{name: "oversized external is clamped first", external: 150, rule: 0, margin: 10, want: 90},
		{name: "negative external is clamped first", external: -20, rule: 50, margin: 10, want: 15},
		{name: "margin is configurable", external: 90, rule: 0, margin: 0, want: 90},
		{name: "wide margin lets the blend through", external: 90, rule: 0, margin: 40, want: 63},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := classifier.Merge(testComment, ruleResult(tt.rule),
				&domain.ExternalAnalysis{Score: tt.external},
				"", classifier.MergeOptions{FloorMargin: tt.margin})

			assert.Equal(t, tt.want, got.Score)
			assert.Equal(t, classifier.LevelFor(tt.want), got.Level)
			assert.Equal(t, domain.SourceLLMPlusRule, got.AnalysisSource)
		})
	}
}

func TestMerge_CategoryUnionExternalFirst(t *testing.T) {
	t.Parallel()

	got := classifier.Merge(testComment,
		ruleResult(40, domain.CategoryMockery, domain.CategoryBlame),
		&domain.ExternalAnalysis{
			Score:      50,
			Categories: []domain.Category{domain.CategoryPersonalAttack, domain.CategoryMockery},
		},
		"", classifier.DefaultMergeOptions())

	assert.Equal(t, []domain.Category{
		domain.CategoryPersonalAttack, domain.CategoryMockery, domain.CategoryBlame,
	}, got.Categories)
}

func TestMerge_CopiesExternalText(t *testing.T) {
	t.Parallel()

	ext := &domain.ExternalAnalysis{
		Score:       70,
		Explanation: "인신공격",
		Suggestion:  strPtr("표현을 순화해 주세요"),
	}
	got := classifier.Merge(testComment, ruleResult(50), ext, "ignored", classifier.DefaultMergeOptions())

	assert.Equal(t, "인신공격", got.Explanation)
	require.NotNil(t, got.Suggestion)
	assert.Equal(t, "표현을 순화해 주세요", *got.Suggestion)

	*ext.Suggestion = "changed"
	assert.Equal(t, "표현을 순화해 주세요", *got.Suggestion)
}

func TestMerge_RuleOnlyFallback(t *testing.T) {
	t.Parallel()

	rule := ruleResult(65, domain.CategoryThreat)
	note := classifier.FailureNote(errors.New("quota exhausted"))
	got := classifier.Merge(testComment, rule, nil, note, classifier.DefaultMergeOptions())

	assert.Equal(t, 65, got.Score)
	assert.Equal(t, domain.LevelSevere, got.Level)
	assert.Equal(t, []domain.Category{domain.CategoryThreat}, got.Categories)
	assert.Equal(t, domain.SourceRuleOnly, got.AnalysisSource)
	assert.Equal(t, "LLM 분석 실패: quota exhausted", got.Explanation)
	assert.Nil(t, got.Suggestion)
	assert.Equal(t, testComment, got.Comment)
}

func TestMerge_RuleOnlyWithoutNote(t *testing.T) {
	t.Parallel()

	got := classifier.Merge(testComment, ruleResult(0), nil, "", classifier.DefaultMergeOptions())
	assert.Empty(t, got.Explanation)
	assert.NotNil(t, got.Categories)
	assert.Empty(t, got.Categories)
	assert.Equal(t, domain.LevelSafe, got.Level)
}

func TestFailureNote(t *testing.T) {
	t.Parallel()

	assert.Empty(t, classifier.FailureNote(nil))
	assert.Equal(t, "LLM 분석 실패: timeout", classifier.FailureNote(errors.New("timeout")))
}
