package domain

import "strings"

// Category is one label of the toxicity taxonomy.
type Category string

const (
	CategoryProfanity      Category = "PROFANITY"
	CategoryThreat         Category = "THREAT"
	CategoryHateSpeech     Category = "HATE_SPEECH"
	CategoryPersonalAttack Category = "PERSONAL_ATTACK"
	CategoryMockery        Category = "MOCKERY"
	CategoryBlame          Category = "BLAME"
	CategoryFanWar         Category = "FAN_WAR"
	CategoryDiscrimination Category = "DISCRIMINATION"
	CategorySpam           Category = "SPAM"
	CategorySexual         Category = "SEXUAL"
)

var allCategories = []Category{
	CategoryProfanity,
	CategoryThreat,
	CategoryHateSpeech,
	CategoryPersonalAttack,
	CategoryMockery,
	CategoryBlame,
	CategoryFanWar,
	CategoryDiscrimination,
	CategorySpam,
	CategorySexual,
}

// AllCategories returns every category. The slice is a copy.
func AllCategories() []Category {
	out := make([]Category, len(allCategories))
	copy(out, allCategories)
	return out
}

// Valid reports whether c belongs to the taxonomy.
func (c Category) Valid() bool {
	for _, known := range allCategories {
		if c == known {
			return true
		}
	}
	return false
}

func (c Category) String() string { return string(c) }

// ParseCategory accepts any case and surrounding whitespace.
func ParseCategory(s string) (Category, bool) {
	c := Category(strings.ToUpper(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", false
	}
	return c, true
}

// Level is the ordinal severity bucket derived from a score.
type Level string

const (
	LevelSafe     Level = "safe"
	LevelMild     Level = "mild"
	LevelModerate Level = "moderate"
	LevelSevere   Level = "severe"
	LevelCritical Level = "critical"
)

var allLevels = []Level{LevelSafe, LevelMild, LevelModerate, LevelSevere, LevelCritical}

// AllLevels returns the levels from least to most severe.
func AllLevels() []Level {
	out := make([]Level, len(allLevels))
	copy(out, allLevels)
	return out
}

// ParseLevel accepts any case and surrounding whitespace.
func ParseLevel(s string) (Level, bool) {
	l := Level(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range allLevels {
		if l == known {
			return l, true
		}
	}
	return "", false
}

// Confidence is informational; it never affects scoring.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Valid reports whether c is a known confidence tag.
func (c Confidence) Valid() bool {
	switch c {
	case ConfidenceHigh, ConfidenceMedium, ConfidenceLow:
		return true
	default:
		return false
	}
}

// AnalysisSource records which layers produced a final verdict.
type AnalysisSource string

const (
	SourceRuleOnly    AnalysisSource = "rule_only"
	SourceLLMPlusRule AnalysisSource = "llm_plus_rule"
)

// RelationType names how two categories interact.
type RelationType string

const (
	RelationAmplifies   RelationType = "AMPLIFIES"
	RelationCoOccurs    RelationType = "CO_OCCURS"
	RelationEscalatesTo RelationType = "ESCALATES_TO"
)
