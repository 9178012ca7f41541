package prompt_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/euisuk-chung/gemini-hak-creator-hub/internal/domain"
	"github.com/euisuk-chung/gemini-hak-creator-hub/internal/ontology"
	"github.com/euisuk-chung/gemini-hak-creator-hub/internal/prompt"
)

func TestSystem(t *testing.T) {
	t.Parallel()

	sys := prompt.System()
	assert.Contains(t, sys, "- PROFANITY (욕설/비속어): 욕설, 비속어, 저속한 표현 (초성·변형 포함)")
	assert.Contains(t, sys, "- critical (매우 심각): 80점 이상")
	assert.Contains(t, sys, `"toxicity_score"`)
	assert.Equal(t, sys, strings.TrimSpace(sys))
}

func TestSampleTranscript(t *testing.T) {
	t.Parallel()

	const sep = "\n... (중략) ...\n"

	tests := []struct {
		name     string
		in       string
		maxRunes int
		want     string
	}{
		{name: "short is unchanged", in: "짧은 자막", maxRunes: 10, want: "짧은 자막"},
		{name: "exact length is unchanged", in: "가나다라마", maxRunes: 5, want: "가나다라마"},
		{name: "head middle tail", in: "가나다라마바사아자차", maxRunes: 6, want: "가나" + sep + "마바" + sep + "자차"},
		{name: "default budget counts runes", in: strings.Repeat("가", 2000), maxRunes: 0, want: strings.Repeat("가", 2000)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, prompt.SampleTranscript(tt.in, tt.maxRunes))
		})
	}
}

func TestSampleTranscript_DefaultBudget(t *testing.T) {
	t.Parallel()

	got := prompt.SampleTranscript(strings.Repeat("가", 3000), 0)
	assert.Equal(t, 3*666, strings.Count(got, "가"))
	assert.Equal(t, 2, strings.Count(got, "(중략)"))
}

func TestReferenceBlock(t *testing.T) {
	t.Parallel()

	assert.Empty(t, prompt.ReferenceBlock("  ", nil, nil))

	got := prompt.ReferenceBlock("뮤직비디오",
		[]domain.Category{domain.CategoryProfanity, domain.CategoryThreat},
		[]ontology.Evidence{{Category: domain.CategoryThreat, Indicator: "죽어"}},
	)
	want := "[레퍼런스]\n" +
		"영상 제목: 뮤직비디오\n" +
		"Rule 엔진 사전 탐지: PROFANITY, THREAT\n" +
		"온톨로지 근거:\n" +
		"- 지표 '죽어'가 매칭되며 카테고리 'THREAT' 근거가 됩니다."
	assert.Equal(t, want, got)
}

func TestBuildUserPrompt(t *testing.T) {
	t.Parallel()

	t.Run("comment only", func(t *testing.T) {
		t.Parallel()
		got := prompt.BuildUserPrompt(prompt.Input{Comment: "노래 좋다"})
		assert.Equal(t, "[분석 대상 댓글]\n노래 좋다\n\n위 댓글의 악성 여부를 분석하세요.", got)
	})

	t.Run("with transcript", func(t *testing.T) {
		t.Parallel()
		got := prompt.BuildUserPrompt(prompt.Input{Comment: "노래 좋다", Transcript: "오늘은 신곡 소개"})
		assert.True(t, strings.HasPrefix(got, "[영상 맥락]\n오늘은 신곡 소개\n\n[분석 대상 댓글]\n노래 좋다"))
	})

	t.Run("reference block first", func(t *testing.T) {
		t.Parallel()
		got := prompt.BuildUserPrompt(prompt.Input{Comment: "노래 좋다", VideoTitle: "신곡"})
		assert.True(t, strings.HasPrefix(got, "[레퍼런스]\n영상 제목: 신곡\n\n[분석 대상 댓글]"))
	})
}
