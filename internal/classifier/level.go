package classifier

import "github.com/euisuk-chung/gemini-hak-creator-hub/internal/domain"

// Lower bounds, inclusive.
const (
	criticalFloor = 80
	severeFloor   = 60
	moderateFloor = 40
	mildFloor     = 20
)

// LevelFor maps a 0-100 score to its level.
func LevelFor(score int) domain.Level {
	switch {
	case score >= criticalFloor:
		return domain.LevelCritical
	case score >= severeFloor:
		return domain.LevelSevere
	case score >= moderateFloor:
		return domain.LevelModerate
	case score >= mildFloor:
		return domain.LevelMild
	default:
		return domain.LevelSafe
	}
}
