// Package scoring maps one answered question to points. Pure arithmetic; the
// cumulative session clamp lives in the quiz state machine, not here.
package scoring

import (
	"math"
)

const (
	// BasePoints is awarded for any correct answer.
	BasePoints = 100

	// TimeBonusMax is the full speed bonus, earned at or under
	// TimeBonusThreshold seconds. Between the threshold and TimeDecayLimit
	// the bonus decays linearly to zero.
	TimeBonusMax       = 50
	TimeBonusThreshold = 5.0
	TimeDecayLimit     = 25.0

	// HintPenalty is subtracted per revealed hint.
	HintPenalty = 20

	// MaxHints is the most hints a question offers.
	MaxHints = 3
)

// Score returns the points for one answer. Incorrect answers score zero
// regardless of time or hints; correct answers earn base plus time bonus
// minus hint penalty, floored at zero.
func Score(elapsedSeconds float64, isCorrect bool, hintsUsed int) int {
	if !isCorrect {
		return 0
	}

	points := BasePoints + timeBonus(elapsedSeconds) - hintsUsed*HintPenalty
	if points < 0 {
		return 0
	}
	return points
}

func timeBonus(elapsedSeconds float64) int {
	switch {
	case elapsedSeconds <= TimeBonusThreshold:
		return TimeBonusMax
	case elapsedSeconds >= TimeDecayLimit:
		return 0
	default:
		remaining := (TimeDecayLimit - elapsedSeconds) / (TimeDecayLimit - TimeBonusThreshold)
		return int(math.Floor(TimeBonusMax * remaining))
	}
}
