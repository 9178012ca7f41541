package classifier

import "github.com/euisuk-chung/gemini-hak-creator-hub/internal/domain"

// defaultRelations is evaluated as a flat list. Pairs declared in both
// directions (HATE_SPEECH/DISCRIMINATION) or twice (MOCKERY -> PERSONAL_ATTACK)
// contribute once per declaration.
func defaultRelations() []domain.CategoryRelation {
	return []domain.CategoryRelation{
		{
			From: domain.CategoryProfanity, To: domain.CategoryPersonalAttack,
			Type: domain.RelationAmplifies, Bonus: 15,
			Description: "욕설 + 인신공격 = 고의적 악의. 단순 욕설보다 심각",
		},
		{
			From: domain.CategoryProfanity, To: domain.CategoryThreat,
			Type: domain.RelationAmplifies, Bonus: 20,
			Description: "욕설 + 위협 = 실행 의지가 높은 위협으로 판단",
		},
		{
			From: domain.CategoryMockery, To: domain.CategoryPersonalAttack,
			Type: domain.RelationAmplifies, Bonus: 10,
			Description: "조롱 + 인신공격 = 수치심 유발 의도",
		},
		{
			From: domain.CategoryHateSpeech, To: domain.CategoryDiscrimination,
			Type: domain.RelationAmplifies, Bonus: 15,
			Description: "혐오발언 + 차별 = 집단 타겟팅 고의성",
		},
		{
			From: domain.CategoryMockery, To: domain.CategoryBlame,
			Type: domain.RelationCoOccurs, Bonus: 5,
			Description: "조롱과 비난은 자주 함께 출현 (비꼬며 깎아내리기)",
		},
		{
			From: domain.CategoryPersonalAttack, To: domain.CategoryHateSpeech,
			Type: domain.RelationCoOccurs, Bonus: 10,
			Description: "인신공격이 특정 집단 혐오와 결합",
		},
		{
			From: domain.CategoryFanWar, To: domain.CategoryMockery,
			Type: domain.RelationCoOccurs, Bonus: 5,
			Description: "팬덤 갈등에서 조롱이 함께 나타남",
		},
		{
			From: domain.CategoryFanWar, To: domain.CategoryPersonalAttack,
			Type: domain.RelationCoOccurs, Bonus: 10,
			Description: "팬덤 전쟁이 아이돌 인신공격으로 확장",
		},
		{
			From: domain.CategoryMockery, To: domain.CategoryPersonalAttack,
			Type: domain.RelationEscalatesTo, Bonus: 10,
			Description: "조롱이 반복되면 직접적 인신공격으로 발전",
		},
		{
			From: domain.CategoryBlame, To: domain.CategoryThreat,
			Type: domain.RelationEscalatesTo, Bonus: 15,
			Description: "비난이 격해지면 위협으로 발전",
		},
		{
			From: domain.CategoryDiscrimination, To: domain.CategoryHateSpeech,
			Type: domain.RelationEscalatesTo, Bonus: 10,
			Description: "차별적 발언이 노골적 혐오로 발전",
		},
		{
			From: domain.CategoryFanWar, To: domain.CategoryThreat,
			Type: domain.RelationEscalatesTo, Bonus: 20,
			Description: "팬덤 갈등이 신상 유출/위협으로 발전",
		},
	}
}
