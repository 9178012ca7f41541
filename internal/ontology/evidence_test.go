//nolint:testpackage // literalStem is unexported
package ontology

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/euisuk-chung/gemini-hak-creator-hub/internal/domain"
)

func TestLiteralStem(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{in: "ㅅㅂ", want: "ㅅㅂ"},
		{in: "~충", want: ""},
		{in: "~놈들", want: "놈들"},
		{in: "역시 ~다운", want: "역시"},
		{in: "그러니까 ~하지", want: "그러니까"},
		{in: "와 진짜 잘하신다~", want: "와 진짜 잘하신다"},
		{in: "~학교 나온 게 티난다", want: "학교 나온 게 티난다"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, literalStem(tt.in))
		})
	}
}

func TestEvidenceMatcher_Match(t *testing.T) {
	t.Parallel()

	m := DefaultEvidenceMatcher()

	tests := []struct {
		name string
		text string
		want []Evidence
	}{
		{name: "empty", text: "", want: nil},
		{name: "clean", text: "영상 잘 봤습니다", want: nil},
		{
			name: "single indicator",
			text: "너 진짜 관종이네",
			want: []Evidence{{Category: domain.CategoryPersonalAttack, Indicator: "관종"}},
		},
		{
			name: "shared indicator reports every category",
			text: "진짜 꼴통 관종이네",
			want: []Evidence{
				{Category: domain.CategoryPersonalAttack, Indicator: "관종"},
				{Category: domain.CategoryPersonalAttack, Indicator: "꼴통"},
				{Category: domain.CategoryHateSpeech, Indicator: "꼴통"},
			},
		},
		{
			name: "placeholder stem",
			text: "저 놈들 또 왔네",
			want: []Evidence{{Category: domain.CategoryHateSpeech, Indicator: "놈들"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, m.Match(tt.text))
		})
	}
}

func TestEvidenceMatcher_Empty(t *testing.T) {
	t.Parallel()

	m := NewEvidenceMatcher([]Node{{Category: domain.CategorySexual}})
	assert.Equal(t, 0, m.Len())
	assert.Nil(t, m.Match("아무 말"))

	var nilMatcher *EvidenceMatcher
	assert.Nil(t, nilMatcher.Match("관종"))
}

func TestEvidence_String(t *testing.T) {
	t.Parallel()

	e := Evidence{Category: domain.CategoryThreat, Indicator: "죽어"}
	assert.Equal(t, "지표 '죽어'가 매칭되며 카테고리 'THREAT' 근거가 됩니다.", e.String())
}
