// Package ontology describes the toxicity taxonomy: which domain each
// category belongs to, its subtypes, its typical severity range, and the
// Korean surface indicators used as evidence for the external analyzer.
package ontology

import "github.com/euisuk-chung/gemini-hak-creator-hub/internal/domain"

// Domain is the top-level grouping of categories.
type Domain string

const (
	DomainVerbalAbuse       Domain = "VERBAL_ABUSE"
	DomainPersonalTargeting Domain = "PERSONAL_TARGETING"
	DomainGroupTargeting    Domain = "GROUP_TARGETING"
	DomainBehavioral        Domain = "BEHAVIORAL"
	DomainContentAbuse      Domain = "CONTENT_ABUSE"
)

// Node is one category of the ontology.
type Node struct {
	Category    domain.Category `json:"category"`
	Domain      Domain          `json:"domain"`
	NameKo      string          `json:"name_ko"`
	Description string          `json:"description"`
	SubTypes    []string        `json:"sub_types"`
	SeverityMin int             `json:"severity_min"`
	SeverityMax int             `json:"severity_max"`
	Indicators  []string        `json:"indicators"`
}

var nodes = []Node{
	{
		Category:    domain.CategoryProfanity,
		Domain:      DomainVerbalAbuse,
		NameKo:      "욕설/비속어",
		Description: "욕설, 비속어, 저속한 표현 (초성·변형 포함)",
		SubTypes:    []string{"DIRECT_SWEAR", "CHOSUNG_SWEAR", "MORPHED_SWEAR", "SLANG_SWEAR"},
		SeverityMin: 20,
		SeverityMax: 70,
		Indicators: []string{
			"ㅅㅂ", "ㅆㅂ", "ㅈㄹ", "ㄱㅅㄲ", "ㅂㅅ", "ㄲㅈ", "ㅁㅊ",
			"시1발", "씨빠", "지1랄", "ㅂr보", "s발",
			"ㄹㅇ ㅂㅅ", "ㅈ같은",
		},
	},
	{
		Category:    domain.CategoryBlame,
		Domain:      DomainPersonalTargeting,
		NameKo:      "비난/비방",
		Description: "근거 없는 일방적 비판, 악의적 비방, 명예훼손성 발언",
		SubTypes:    []string{"BASELESS_CRITICISM", "DEFAMATION", "CONTENT_BASHING"},
		SeverityMin: 20,
		SeverityMax: 65,
		Indicators: []string{
			"~해서 망한 거야", "그러니까 ~하지", "역시 ~다운", "당연하지 뭐",
			"이래서 안 되는 거야", "구독자가 그것밖에",
		},
	},
	{
		Category:    domain.CategoryMockery,
		Domain:      DomainPersonalTargeting,
		NameKo:      "조롱/비꼼",
		Description: "비꼬기, 돌려까기, 냉소적 조롱, 놀리기",
		SubTypes:    []string{"SARCASM", "RIDICULE", "CYNICAL_EMOJI", "CONSUMER_ATTACK"},
		SeverityMin: 20,
		SeverityMax: 65,
		Indicators: []string{
			"와 진짜 잘하신다~", "대단하시네 ㅋㅋ",
			"실화???", "🤡", "🤮", "이걸 왜 올림??",
			"호구", "흑우", "봉이네",
		},
	},
	{
		Category:    domain.CategoryPersonalAttack,
		Domain:      DomainPersonalTargeting,
		NameKo:      "인신공격",
		Description: "외모·능력·인격 등 개인 특성을 직접 공격",
		SubTypes: []string{
			"APPEARANCE_ATTACK", "ABILITY_ATTACK", "CHARACTER_ATTACK", "PRIVACY_INVASION", "BELITTLING",
		},
		SeverityMin: 40,
		SeverityMax: 90,
		Indicators: []string{
			"못생겼다", "관종", "찐따", "~꼴", "~대가리",
			"재능 없다", "인성 쓰레기", "~꼴통",
			"한심", "멍청", "바보", "무식", "노답", "저능",
		},
	},
	{
		Category:    domain.CategoryHateSpeech,
		Domain:      DomainGroupTargeting,
		NameKo:      "혐오 표현",
		Description: "인종·젠더·성소수자 등 특정 집단 대상 증오 표현",
		SubTypes:    []string{"GENDER_HATE", "RACIAL_HATE", "SEXUALITY_HATE", "RELIGION_HATE", "POLITICAL_SLUR"},
		SeverityMin: 40,
		SeverityMax: 95,
		Indicators: []string{
			"~충", "~놈들", "~년들", "한남", "한녀", "김치녀", "된장녀",
			"빨갱이", "수꼴", "꼴통", "좌좀", "우좀",
		},
	},
	{
		Category:    domain.CategoryThreat,
		Domain:      DomainBehavioral,
		NameKo:      "위협/협박",
		Description: "폭력·해를 가하겠다는 위협, 자해 유도",
		SubTypes:    []string{"VIOLENCE_THREAT", "DOXXING_THREAT", "SELF_HARM_INCITE"},
		SeverityMin: 50,
		SeverityMax: 100,
		Indicators:  []string{"죽어", "뒤질", "찾아간다", "패버린다", "신상 턴다", "자살해"},
	},
	{
		Category:    domain.CategorySexual,
		Domain:      DomainBehavioral,
		NameKo:      "성희롱/성적 대상화",
		Description: "성적 발언, 성희롱, 성적 대상화",
		SubTypes:    []string{"SEXUAL_OBJECTIFY", "SEXUAL_HARASS"},
		SeverityMin: 35,
		SeverityMax: 90,
		Indicators:  []string{},
	},
	{
		Category:    domain.CategoryDiscrimination,
		Domain:      DomainGroupTargeting,
		NameKo:      "차별",
		Description: "외모·나이·학력·지역·직업 등에 기반한 차별적 표현",
		SubTypes: []string{
			"REGION_DISCRIM", "AGE_DISCRIM", "EDUCATION_DISCRIM", "APPEARANCE_DISCRIM", "GENERATION_HATE",
		},
		SeverityMin: 25,
		SeverityMax: 75,
		Indicators: []string{
			"촌놈", "늙은이", "~학교 나온 게 티난다", "전라도", "경상도",
			"꼰대", "틀딱", "잼민이", "급식충",
		},
	},
	{
		Category:    domain.CategoryFanWar,
		Domain:      DomainGroupTargeting,
		NameKo:      "팬덤 갈등/안티",
		Description: "팬덤 간 갈등, 안티 활동, 타 아티스트 비하",
		SubTypes:    []string{"FANDOM_VS_FANDOM", "ORGANIZED_ANTI", "COMPARISON_ATTACK", "DEFECTION_INCITE"},
		SeverityMin: 20,
		SeverityMax: 75,
		Indicators: []string{
			"~팬들은 다 이래", "우리 애들이 훨씬", "조작", "빠순이", "사생팬",
			"이런 애를 왜 좋아함", "탈덕",
		},
	},
	{
		Category:    domain.CategorySpam,
		Domain:      DomainContentAbuse,
		NameKo:      "스팸/광고",
		Description: "무관한 광고, 반복 스팸, 낚시성 댓글",
		SubTypes:    []string{"AD_SPAM", "REPETITIVE_SPAM", "CLICKBAIT"},
		SeverityMin: 10,
		SeverityMax: 40,
		Indicators:  []string{"구독", "링크", "클릭", "홍보", "이벤트"},
	},
}

// Nodes returns every ontology node. Callers may modify the result.
func Nodes() []Node {
	out := make([]Node, len(nodes))
	for i, n := range nodes {
		out[i] = n.clone()
	}
	return out
}

// Lookup returns the node for category.
func Lookup(category domain.Category) (Node, bool) {
	for _, n := range nodes {
		if n.Category == category {
			return n.clone(), true
		}
	}
	return Node{}, false
}

// ByDomain returns the nodes of one domain in ontology order.
func ByDomain(d Domain) []Node {
	var out []Node
	for _, n := range nodes {
		if n.Domain == d {
			out = append(out, n.clone())
		}
	}
	return out
}

func (n Node) clone() Node {
	n.SubTypes = append([]string(nil), n.SubTypes...)
	n.Indicators = append([]string{}, n.Indicators...)
	return n
}
