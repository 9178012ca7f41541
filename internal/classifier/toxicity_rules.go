package classifier

import (
	"regexp"

	"github.com/euisuk-chung/gemini-hak-creator-hub/internal/domain"
)

func patterns(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(exprs))
	for i, e := range exprs {
		out[i] = regexp.MustCompile(e)
	}
	return out
}

// Rule order matters: matches are reported in this order and the first
// positive pattern of each rule wins.
func defaultRules() []domain.DetectionRule {
	return []domain.DetectionRule{
		{
			ID:          "PROF_CHOSUNG",
			Category:    domain.CategoryProfanity,
			Description: "Chosung (initial consonant) abbreviation swear words",
			Patterns: patterns(
				`[ㅅㅆ][ㅂ]`,
				`ㅈㄹ`,
				`ㄱㅅㄲ`,
				`[ㅂ][ㅅ]`,
				`ㅁㅊ`,
				`ㄲㅈ`,
				`ㅈㄴ`,
			),
			ScoreModifier: 35,
			Confidence:    domain.ConfidenceHigh,
		},
		{
			ID:          "PROF_MORPHED",
			Category:    domain.CategoryProfanity,
			Description: "Morphed/disguised swear words using number/letter substitution",
			Patterns: patterns(
				`(?i)시[1!i]발`,
				`씨[빠바]`,
				`(?i)지[1!i]랄`,
				`(?i)ㅂ[rR]보`,
				`[sS]발`,
				`병[시씬]|병1`,
			),
			ScoreModifier: 40,
			Confidence:    domain.ConfidenceHigh,
		},
		{
			ID:          "PROF_DIRECT",
			Category:    domain.CategoryProfanity,
			Description: "Direct explicit swear words",
			Patterns: patterns(
				`시발|씨발|씨팔`,
				`개새끼|개세끼|개색`,
				`병신`,
				`지랄`,
				`꺼져|닥쳐|꺼지`,
			),
			ScoreModifier: 50,
			Confidence:    domain.ConfidenceHigh,
		},
		{
			ID:          "MOCK_SARCASM",
			Category:    domain.CategoryMockery,
			Description: "Sarcastic expressions using positive words with mocking tone markers",
			Patterns: patterns(
				`와\s*진짜\s*잘.+[~ㅋ]`,
				`대단하시네\s*[ㅋㅎ]`,
				`ㅋ{10,}`,
				`실화\?{2,}`,
				`이걸?\s*왜\s*올[리림].*\?`,
			),
			ScoreModifier: 30,
			Confidence:    domain.ConfidenceMedium,
		},
		{
			ID:            "MOCK_CONSUMER",
			Category:      domain.CategoryMockery,
			Description:   "Consumer-targeted mockery (호구, 흑우)",
			Patterns:      patterns(`호구`, `흑우`, `봉이네|봉이다`, `호갱`),
			ScoreModifier: 30,
			Confidence:    domain.ConfidenceMedium,
		},
		{
			ID:          "THREAT_VIOLENCE",
			Category:    domain.CategoryThreat,
			Description: "Direct violence threats or harm wishes",
			Patterns: patterns(
				`죽어|뒤져|뒤질`,
				`찾아간다|찾아갈`,
				`패[버]린다|패줄까`,
				`신상\s*(까|턴|공개)`,
				`자살\s*(해|하|좀)`,
			),
			NegativePatterns: patterns(
				`죽어도\s*(안|못|싫)`,
				`별점\s*테러`,
				`리뷰\s*테러`,
				`테러\s*방지`,
				`테러리스트`,
			),
			ScoreModifier: 65,
			Confidence:    domain.ConfidenceHigh,
		},
		{
			ID:          "PA_DIRECT",
			Category:    domain.CategoryPersonalAttack,
			Description: "Direct personal attacks on appearance, ability, or character",
			Patterns: patterns(
				`못생[겼긴김]`,
				`관종`,
				`찐따`,
				`인성\s*(쓰레기|문제|봐)`,
				`재능\s*(없|이\s*없)`,
			),
			ScoreModifier: 50,
			Confidence:    domain.ConfidenceHigh,
		},
		{
			ID:          "PA_BELITTLE",
			Category:    domain.CategoryPersonalAttack,
			Description: "Belittling/dismissive language (한심, 멍청, 바보, 노답)",
			Patterns: patterns(
				`한심하[다네]`,
				`멍청`,
				`바보`,
				`무식`,
				`노답`,
				`저능`,
				`무뇌`,
				`답답하[다네]`,
			),
			ScoreModifier: 35,
			Confidence:    domain.ConfidenceMedium,
		},
		{
			ID:          "BLAME_PATTERN",
			Category:    domain.CategoryBlame,
			Description: "Baseless criticism, defamation, or content bashing",
			Patterns: patterns(
				`.+해서\s*망한`,
				`그러니까\s*.+하지`,
				`이래서\s*(안|못)\s*되는`,
				`구독자가\s*그것밖에`,
				`당연하지\s*뭐`,
			),
			ScoreModifier: 30,
			Confidence:    domain.ConfidenceMedium,
		},
		{
			ID:          "FW_PATTERN",
			Category:    domain.CategoryFanWar,
			Description: "Fandom conflict, anti-fan activity, or comparison attacks",
			Patterns: patterns(
				`.+팬들?은?\s*다\s*이래`,
				`빠순이`,
				`사생팬|사생`,
				`탈덕`,
				`안티`,
				`조작`,
			),
			ScoreModifier: 35,
			Confidence:    domain.ConfidenceMedium,
		},
		{
			ID:          "HS_GENDER",
			Category:    domain.CategoryHateSpeech,
			Description: "Gender-based hate speech including Korean-specific slurs",
			Patterns: patterns(
				`한남|한녀`,
				`김치녀|된장녀`,
				`.+충$`,
				`페미|꼴페미`,
			),
			NegativePatterns: patterns(
				`한남동`,
				`한남[자대역교오]`,
				`따뜻한남`,
			),
			ScoreModifier: 55,
			Confidence:    domain.ConfidenceHigh,
		},
		{
			ID:          "HS_POLITICAL",
			Category:    domain.CategoryHateSpeech,
			Description: "Political slurs and partisan hate speech",
			Patterns: patterns(
				`빨갱이`,
				`수꼴`,
				`꼴통`,
				`좌좀|우좀`,
				`국짐`,
				`민주짱`,
				`찍소`,
			),
			ScoreModifier: 45,
			Confidence:    domain.ConfidenceHigh,
		},
		{
			ID:          "DISCRIM_PATTERN",
			Category:    domain.CategoryDiscrimination,
			Description: "Regional, age, education, or appearance discrimination",
			Patterns: patterns(
				`촌놈`,
				`늙은이`,
				`.+학교\s*나온\s*게`,
				`전라도|경상도`,
			),
			ScoreModifier: 45,
			Confidence:    domain.ConfidenceMedium,
		},
		{
			ID:          "DISCRIM_GENERATION",
			Category:    domain.CategoryDiscrimination,
			Description: "Generational hate speech (꼰대, 틀딱, 잼민이)",
			Patterns: patterns(
				`꼰대`,
				`틀딱`,
				`잼민이`,
				`급식충`,
				`요즘\s*것들`,
				`노인네`,
			),
			ScoreModifier: 40,
			Confidence:    domain.ConfidenceMedium,
		},
		{
			ID:          "SPAM_LINK",
			Category:    domain.CategorySpam,
			Description: "Spam comments with promotional links or repetitive content",
			Patterns: patterns(
				`(?i)https?://`,
				`구독.*해\s*주`,
				`홍보|이벤트|당첨`,
			),
			ScoreModifier: 20,
			Confidence:    domain.ConfidenceMedium,
		},
	}
}
